package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"career-guide/internal/domain"
)

type QuestionnaireRepository interface {
	Create(ctx context.Context, q domain.Questionnaire) error
}

type PgQuestionnaireRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuestionnaireRepository(pool *pgxpool.Pool) *PgQuestionnaireRepository {
	return &PgQuestionnaireRepository{pool: pool}
}

func (r *PgQuestionnaireRepository) Create(ctx context.Context, q domain.Questionnaire) error {
	const query = `
		INSERT INTO questionnaires (id, user_id, student_name, age, academic_info, interests, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		q.ID,
		q.UserID,
		q.StudentName,
		q.Age,
		q.AcademicInfo,
		q.Interests,
		q.Answers,
		q.CreatedAt,
	)
	return translatePgError(err)
}
