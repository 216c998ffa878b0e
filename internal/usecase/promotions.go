package usecase

import (
	"context"
	"errors"

	"github.com/leadloop/crm-backend/internal/entity"
)

// PromoteToMQL is the manual counterpart of ProcessLeadActivity: no synthetic
// session, no temperature touch, history records the employee as actor.
func (e *LifecycleEngine) PromoteToMQL(ctx context.Context, contactID, employeeID string) error {
	contact, err := e.getContact(ctx, contactID)
	if err != nil {
		return err
	}
	if contact.Status != entity.StatusLead {
		return &StateError{Op: "promote to MQL", Required: entity.StatusLead, Current: contact.Status}
	}

	return e.transition(ctx, contact.ID, entity.StatusLead, entity.StatusMQL, employeeID)
}

// PromoteToSQL requires the contact's stage-MQL session average to reach the
// qualification threshold. The stage-scoped average is used here, unlike
// temperature which looks at all sessions.
func (e *LifecycleEngine) PromoteToSQL(ctx context.Context, contactID, employeeID string) error {
	contact, err := e.getContact(ctx, contactID)
	if err != nil {
		return err
	}
	if contact.Status != entity.StatusMQL {
		return &StateError{Op: "promote to SQL", Required: entity.StatusMQL, Current: contact.Status}
	}

	avg, err := e.Sessions.AverageRating(ctx, contact.ID, entity.StageMQL)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if avg < MQLToSQLMinAvgRating {
		return &ThresholdError{Rule: "MQL average session rating", Required: MQLToSQLMinAvgRating, Actual: avg}
	}

	return e.transition(ctx, contact.ID, entity.StatusMQL, entity.StatusSQL, employeeID)
}

// transition runs the shared two-write saga: conditional status flip, then
// exactly one history row. The history insert comes last so a lost race never
// leaves an orphan audit record.
func (e *LifecycleEngine) transition(ctx context.Context, contactID string, from, to entity.ContactStatus, actor string) error {
	history := entity.NewStatusHistory(contactID, from, to, actor)

	txn := NewTransaction()
	txn.AddOperation("update_status", func(ctx context.Context) error {
		return e.Contacts.UpdateStatusIf(ctx, contactID, from, to)
	})
	txn.AddCompensation("revert_status", func(ctx context.Context) error {
		return e.Contacts.UpdateStatusIf(ctx, contactID, to, from)
	})
	txn.AddOperation("insert_status_history", func(ctx context.Context) error {
		return e.Contacts.InsertStatusHistory(ctx, history)
	})

	if err := txn.Execute(ctx); err != nil {
		if errors.Is(err, entity.ErrStaleStatus) {
			return &ConflictError{Message: "contact status changed concurrently, transition not applied"}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	logTransition(contactID, from, to, actor)
	return nil
}
