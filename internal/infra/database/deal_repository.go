package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/leadloop/crm-backend/internal/entity"
)

type DealRepository struct {
	DB *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{DB: db}
}

// Create relies on the unique index on opportunity_id to enforce the 1:1
// deal-per-opportunity rule at the store level too.
func (r *DealRepository) Create(ctx context.Context, d *entity.Deal) error {
	query := `
		INSERT INTO deals (deal_id, opportunity_id, deal_value_cents, product, closed_by, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		d.ID,
		d.OpportunityID,
		d.DealValueCents,
		nullString(d.Product),
		d.ClosedBy,
		d.ClosedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrDuplicateDeal
		}
		return err
	}
	return nil
}

func (r *DealRepository) ListByContact(ctx context.Context, contactID string) ([]*entity.Deal, error) {
	query := `
		SELECT d.deal_id, d.opportunity_id, d.deal_value_cents, d.product, d.closed_by, d.closed_at
		FROM deals d
		JOIN opportunities o ON o.opportunity_id = d.opportunity_id
		WHERE o.contact_id = $1
		ORDER BY d.closed_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []*entity.Deal
	for rows.Next() {
		var d entity.Deal
		var product sql.NullString
		if err := rows.Scan(&d.ID, &d.OpportunityID, &d.DealValueCents, &product, &d.ClosedBy, &d.ClosedAt); err != nil {
			return nil, err
		}
		d.Product = product.String
		deals = append(deals, &d)
	}
	return deals, rows.Err()
}

// Delete is the admin-only escape hatch (also used as saga compensation).
func (r *DealRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM deals WHERE deal_id = $1`, id)
	return err
}
