package database

import (
	"context"
	"database/sql"

	"github.com/leadloop/crm-backend/internal/entity"
)

type FeedbackRepository struct {
	DB *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *entity.Feedback) error {
	query := `
		INSERT INTO feedback (feedback_id, contact_id, rating, comments, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(ctx, query,
		f.ID,
		f.ContactID,
		f.Rating,
		nullString(f.Comments),
		f.CreatedAt,
	)
	return err
}

func (r *FeedbackRepository) AverageRating(ctx context.Context, contactID string) (float64, error) {
	var avg float64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM feedback WHERE contact_id = $1`,
		contactID,
	).Scan(&avg)
	return avg, err
}
