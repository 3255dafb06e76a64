package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"career-guide/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
// GetByID nunca carga el hash de la contraseña; GetByEmail si, solo para login.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, age, school_name,
			standard, interests, academic_performance, student_name, academic_info, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Age,
		user.SchoolName,
		user.Standard,
		user.Interests,
		user.AcademicPerformance,
		user.StudentName,
		user.AcademicInfo,
		user.CreatedAt,
	)
	return translatePgError(err)
}

// selectUserByIDQuery no lee password_hash: el perfil nunca carga el hash.
const selectUserByIDQuery = `
	SELECT id, email, first_name, last_name, age, school_name, standard,
		interests, academic_performance, student_name, academic_info, created_at
	FROM users
	WHERE id = $1
`

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, selectUserByIDQuery, id).Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Age,
		&u.SchoolName,
		&u.Standard,
		&u.Interests,
		&u.AcademicPerformance,
		&u.StudentName,
		&u.AcademicInfo,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, translatePgError(err)
	}
	return u, nil
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT id, email, password_hash, first_name, last_name, age, interests, created_at
		FROM users
		WHERE email = $1
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Age,
		&u.Interests,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, translatePgError(err)
	}
	return u, nil
}
