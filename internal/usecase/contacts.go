package usecase

import (
	"context"
	"errors"

	"github.com/leadloop/crm-backend/internal/entity"
)

// GetContact looks a contact up by ID.
func (e *LifecycleEngine) GetContact(ctx context.Context, contactID string) (*entity.Contact, error) {
	return e.getContact(ctx, contactID)
}

// ListContacts returns the contacts of a company, optionally filtered by
// status, paginated.
func (e *LifecycleEngine) ListContacts(ctx context.Context, companyID string, status entity.ContactStatus, limit, offset int) ([]*entity.Contact, error) {
	if status != "" && !status.Valid() {
		return nil, NewValidationError(FieldError{Field: "status", Message: "unknown contact status"})
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	contacts, err := e.Contacts.ListByStatus(ctx, companyID, status, limit, offset)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return contacts, nil
}

// UpdateContact applies a typed partial update. Status and temperature cannot
// be patched; they belong to the lifecycle operations.
func (e *LifecycleEngine) UpdateContact(ctx context.Context, contactID string, patch entity.ContactPatch) error {
	if patch.Empty() {
		return NewValidationError(FieldError{Field: "patch", Message: "no fields to update"})
	}
	if patch.Name != nil && *patch.Name == "" {
		return NewValidationError(FieldError{Field: "name", Message: "must not be empty"})
	}
	if patch.Email != nil && !ValidateEmail(*patch.Email) {
		return NewValidationError(FieldError{Field: "email", Message: "must be a valid email"})
	}

	if _, err := e.getContact(ctx, contactID); err != nil {
		return err
	}

	if err := e.Contacts.Update(ctx, contactID, patch); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return &ConflictError{Message: "a contact with this email already exists"}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return nil
}

// StatusHistory returns the full transition audit trail for a contact.
func (e *LifecycleEngine) StatusHistory(ctx context.Context, contactID string) ([]*entity.StatusHistory, error) {
	if _, err := e.getContact(ctx, contactID); err != nil {
		return nil, err
	}

	history, err := e.Contacts.ListStatusHistory(ctx, contactID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return history, nil
}
