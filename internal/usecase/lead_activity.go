package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/leadloop/crm-backend/internal/entity"
)

// ProcessLeadActivity handles an inbound email click or landing-page visit.
// It is invoked from an unauthenticated tracking endpoint, so business-rule
// misses come back as a structured result, never as an error. Only
// infrastructure failures return an error.
func (e *LifecycleEngine) ProcessLeadActivity(ctx context.Context, input LeadActivityInput) (*LeadActivityResult, error) {
	contact, err := e.Contacts.FindByID(ctx, input.ContactID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return &LeadActivityResult{Converted: false, Reason: "contact not found"}, nil
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	// Token check is skipped when the caller supplies none: inbound calls come
	// from mixed-trust sources (pixel, landing page script). Tokenless hits on
	// a LEAD are logged below so enumeration attempts are visible.
	if input.Token != "" && contact.TrackingToken != "" && contact.TrackingToken != input.Token {
		logrus.WithField("contact_id", contact.ID).Warn("tracking token mismatch")
		return &LeadActivityResult{Converted: false, Reason: "invalid token"}, nil
	}
	if input.Token == "" && contact.Status == entity.StatusLead {
		logrus.WithField("contact_id", contact.ID).Warn("tokenless lead activity accepted")
	}

	if err := e.Contacts.IncrementInterestScore(ctx, contact.ID); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	if contact.Status != entity.StatusLead {
		return &LeadActivityResult{Converted: false, Reason: "contact is not a lead", CurrentStatus: contact.Status}, nil
	}

	session := entity.NewAutomationSession(contact.ID, contact.AssignedEmpID)
	history := entity.NewStatusHistory(contact.ID, entity.StatusLead, entity.StatusMQL, "")

	txn := NewTransaction()
	txn.AddOperation("create_session", func(ctx context.Context) error {
		return e.Sessions.Create(ctx, session)
	})
	txn.AddCompensation("delete_session", func(ctx context.Context) error {
		return e.Sessions.Delete(ctx, session.ID)
	})
	txn.AddOperation("promote_lead_to_mql", func(ctx context.Context) error {
		return e.Contacts.UpdateStatusIf(ctx, contact.ID, entity.StatusLead, entity.StatusMQL)
	})
	txn.AddCompensation("revert_status", func(ctx context.Context) error {
		return e.Contacts.UpdateStatusIf(ctx, contact.ID, entity.StatusMQL, entity.StatusLead)
	})
	txn.AddOperation("refresh_temperature", func(ctx context.Context) error {
		_, err := e.refreshTemperature(ctx, contact.ID)
		return err
	})
	// Temperature is derived; the next session write recomputes it.
	txn.AddCompensation("noop", noopCompensation)
	txn.AddOperation("insert_status_history", func(ctx context.Context) error {
		return e.Contacts.InsertStatusHistory(ctx, history)
	})

	if err := txn.Execute(ctx); err != nil {
		if errors.Is(err, entity.ErrStaleStatus) {
			return &LeadActivityResult{Converted: false, Reason: "contact already converted"}, nil
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	logTransition(contact.ID, entity.StatusLead, entity.StatusMQL, "")
	return &LeadActivityResult{Converted: true, NewStatus: entity.StatusMQL}, nil
}
