package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/leadloop/crm-backend/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (contact_id, company_id, name, email, status, temperature, interest_score, assigned_emp_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		nullString(c.CompanyID),
		c.Name,
		c.Email,
		c.Status,
		c.Temperature,
		c.InterestScore,
		nullString(c.AssignedEmpID),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	query := `
		SELECT contact_id, company_id, name, email, status, temperature, interest_score, tracking_token, assigned_emp_id, created_at, updated_at
		FROM contacts
		WHERE contact_id = $1
	`

	var c entity.Contact
	var companyID, trackingToken, assignedEmpID sql.NullString

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&companyID,
		&c.Name,
		&c.Email,
		&c.Status,
		&c.Temperature,
		&c.InterestScore,
		&trackingToken,
		&assignedEmpID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	c.CompanyID = companyID.String
	c.TrackingToken = trackingToken.String
	c.AssignedEmpID = assignedEmpID.String
	return &c, nil
}

func (r *ContactRepository) ListByStatus(ctx context.Context, companyID string, status entity.ContactStatus, limit, offset int) ([]*entity.Contact, error) {
	query := `
		SELECT contact_id, company_id, name, email, status, temperature, interest_score, tracking_token, assigned_emp_id, created_at, updated_at
		FROM contacts
		WHERE ($1 = '' OR company_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.DB.QueryContext(ctx, query, companyID, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*entity.Contact
	for rows.Next() {
		var c entity.Contact
		var cid, token, emp sql.NullString
		if err := rows.Scan(&c.ID, &cid, &c.Name, &c.Email, &c.Status, &c.Temperature, &c.InterestScore, &token, &emp, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.CompanyID = cid.String
		c.TrackingToken = token.String
		c.AssignedEmpID = emp.String
		contacts = append(contacts, &c)
	}
	return contacts, rows.Err()
}

// Update maps the typed patch onto a whitelisted column set. Caller-provided
// field names never reach the SQL.
func (r *ContactRepository) Update(ctx context.Context, id string, patch entity.ContactPatch) error {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	i := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.AssignedEmpID != nil {
		add("assigned_emp_id", nullString(*patch.AssignedEmpID))
	}
	if patch.CompanyID != nil {
		add("company_id", nullString(*patch.CompanyID))
	}

	query := fmt.Sprintf("UPDATE contacts SET %s WHERE contact_id = $%d", strings.Join(sets, ", "), i)
	args = append(args, id)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE contact_id = $1`, id)
	return err
}

// UpdateStatusIf is the conditional update that serializes concurrent
// transitions: the status flips only when it still matches from, and a race
// loser sees entity.ErrStaleStatus instead of double-applying the edge.
func (r *ContactRepository) UpdateStatusIf(ctx context.Context, id string, from, to entity.ContactStatus) error {
	query := `
		UPDATE contacts
		SET status = $1, updated_at = NOW()
		WHERE contact_id = $2 AND status = $3
	`

	res, err := r.DB.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrStaleStatus
	}
	return nil
}

func (r *ContactRepository) UpdateTemperature(ctx context.Context, id string, temp entity.Temperature) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE contacts SET temperature = $1, updated_at = NOW() WHERE contact_id = $2`,
		temp, id,
	)
	return err
}

func (r *ContactRepository) IncrementInterestScore(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE contacts SET interest_score = interest_score + 1, updated_at = NOW() WHERE contact_id = $1`,
		id,
	)
	return err
}

func (r *ContactRepository) SaveTrackingToken(ctx context.Context, id, token string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE contacts SET tracking_token = $1, updated_at = NOW() WHERE contact_id = $2`,
		token, id,
	)
	return err
}

func (r *ContactRepository) InsertStatusHistory(ctx context.Context, h *entity.StatusHistory) error {
	query := `
		INSERT INTO status_history (history_id, contact_id, from_status, to_status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		h.ID,
		h.ContactID,
		h.FromStatus,
		h.ToStatus,
		nullString(h.ChangedBy),
		h.ChangedAt,
	)
	return err
}

func (r *ContactRepository) ListStatusHistory(ctx context.Context, contactID string) ([]*entity.StatusHistory, error) {
	query := `
		SELECT history_id, contact_id, from_status, to_status, changed_by, changed_at
		FROM status_history
		WHERE contact_id = $1
		ORDER BY changed_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*entity.StatusHistory
	for rows.Next() {
		var h entity.StatusHistory
		var changedBy sql.NullString
		if err := rows.Scan(&h.ID, &h.ContactID, &h.FromStatus, &h.ToStatus, &changedBy, &h.ChangedAt); err != nil {
			return nil, err
		}
		h.ChangedBy = changedBy.String
		history = append(history, &h)
	}
	return history, rows.Err()
}
