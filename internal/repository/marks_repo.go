package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"career-guide/internal/domain"
)

type MarksRepository interface {
	Create(ctx context.Context, entry domain.MarksEntry) error
	ListByUserID(ctx context.Context, userID string) ([]domain.MarksEntry, error)
}

type PgMarksRepository struct {
	pool *pgxpool.Pool
}

func NewPgMarksRepository(pool *pgxpool.Pool) *PgMarksRepository {
	return &PgMarksRepository{pool: pool}
}

func (r *PgMarksRepository) Create(ctx context.Context, entry domain.MarksEntry) error {
	const query = `
		INSERT INTO marks (id, user_id, subjects, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Subjects,
		entry.CreatedAt,
	)
	return translatePgError(err)
}

func (r *PgMarksRepository) ListByUserID(ctx context.Context, userID string) ([]domain.MarksEntry, error) {
	const query = `
		SELECT id, user_id, subjects, created_at
		FROM marks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.MarksEntry, 0)
	for rows.Next() {
		var entry domain.MarksEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Subjects, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
