package database

import (
	"context"
	"database/sql"

	"github.com/leadloop/crm-backend/internal/entity"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	query := `
		INSERT INTO sessions (session_id, contact_id, emp_id, stage, mode_of_contact, rating, session_status, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		s.ID,
		s.ContactID,
		nullString(s.EmployeeID),
		s.Stage,
		s.Mode,
		s.Rating,
		s.Status,
		nullString(s.Remarks),
		s.CreatedAt,
	)
	return err
}

// Delete exists only as a saga compensation; sessions are append-only
// otherwise.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = $1`, id)
	return err
}

func (r *SessionRepository) AverageRating(ctx context.Context, contactID string, stage entity.SessionStage) (float64, error) {
	var avg float64
	var err error

	if stage == "" {
		err = r.DB.QueryRowContext(ctx,
			`SELECT COALESCE(AVG(rating), 0) FROM sessions WHERE contact_id = $1`,
			contactID,
		).Scan(&avg)
	} else {
		err = r.DB.QueryRowContext(ctx,
			`SELECT COALESCE(AVG(rating), 0) FROM sessions WHERE contact_id = $1 AND stage = $2`,
			contactID, stage,
		).Scan(&avg)
	}

	return avg, err
}
