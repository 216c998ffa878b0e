package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/leadloop/crm-backend/internal/entity"
)

type OpportunityRepository struct {
	DB *sql.DB
}

func NewOpportunityRepository(db *sql.DB) *OpportunityRepository {
	return &OpportunityRepository{DB: db}
}

func (r *OpportunityRepository) Create(ctx context.Context, o *entity.Opportunity) error {
	query := `
		INSERT INTO opportunities (opportunity_id, contact_id, emp_id, expected_value_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		o.ID,
		o.ContactID,
		o.EmployeeID,
		o.ExpectedValueCents,
		o.Status,
		o.CreatedAt,
		o.UpdatedAt,
	)
	return err
}

func (r *OpportunityRepository) GetOpenByContact(ctx context.Context, contactID string) (*entity.Opportunity, error) {
	query := `
		SELECT opportunity_id, contact_id, emp_id, expected_value_cents, status, created_at, updated_at
		FROM opportunities
		WHERE contact_id = $1 AND status = 'OPEN'
		LIMIT 1
	`

	var o entity.Opportunity
	err := r.DB.QueryRowContext(ctx, query, contactID).Scan(
		&o.ID, &o.ContactID, &o.EmployeeID, &o.ExpectedValueCents, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OpportunityRepository) UpdateStatus(ctx context.Context, id string, status entity.OpportunityStatus) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE opportunities SET status = $1, updated_at = NOW() WHERE opportunity_id = $2`,
		status, id,
	)
	return err
}

func (r *OpportunityRepository) ListByContact(ctx context.Context, contactID string) ([]*entity.Opportunity, error) {
	query := `
		SELECT opportunity_id, contact_id, emp_id, expected_value_cents, status, created_at, updated_at
		FROM opportunities
		WHERE contact_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opportunities []*entity.Opportunity
	for rows.Next() {
		var o entity.Opportunity
		if err := rows.Scan(&o.ID, &o.ContactID, &o.EmployeeID, &o.ExpectedValueCents, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		opportunities = append(opportunities, &o)
	}
	return opportunities, rows.Err()
}

func (r *OpportunityRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM opportunities WHERE opportunity_id = $1`, id)
	return err
}
