package usecase

import (
	"context"
	"errors"

	"github.com/leadloop/crm-backend/internal/entity"
)

// ConvertToOpportunity opens a sales pursuit with an expected monetary value
// and moves the contact SQL → OPPORTUNITY.
func (e *LifecycleEngine) ConvertToOpportunity(ctx context.Context, contactID, employeeID string, expectedValueCents int64) (*entity.Opportunity, error) {
	if expectedValueCents <= 0 {
		return nil, NewValidationError(FieldError{Field: "expected_value_cents", Message: "must be positive"})
	}

	contact, err := e.getContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact.Status != entity.StatusSQL {
		return nil, &StateError{Op: "convert to opportunity", Required: entity.StatusSQL, Current: contact.Status}
	}

	opportunity := entity.NewOpportunity(contact.ID, employeeID, expectedValueCents)
	history := entity.NewStatusHistory(contact.ID, entity.StatusSQL, entity.StatusOpportunity, employeeID)

	txn := NewTransaction()
	txn.AddOperation("create_opportunity", func(ctx context.Context) error {
		return e.Opportunities.Create(ctx, opportunity)
	})
	txn.AddCompensation("delete_opportunity", func(ctx context.Context) error {
		return e.Opportunities.Delete(ctx, opportunity.ID)
	})
	txn.AddOperation("update_status", func(ctx context.Context) error {
		return e.Contacts.UpdateStatusIf(ctx, contact.ID, entity.StatusSQL, entity.StatusOpportunity)
	})
	txn.AddCompensation("revert_status", func(ctx context.Context) error {
		return e.Contacts.UpdateStatusIf(ctx, contact.ID, entity.StatusOpportunity, entity.StatusSQL)
	})
	txn.AddOperation("insert_status_history", func(ctx context.Context) error {
		return e.Contacts.InsertStatusHistory(ctx, history)
	})

	if err := txn.Execute(ctx); err != nil {
		if errors.Is(err, entity.ErrStaleStatus) {
			return nil, &ConflictError{Message: "contact status changed concurrently, transition not applied"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	logTransition(contact.ID, entity.StatusSQL, entity.StatusOpportunity, employeeID)
	return opportunity, nil
}

// CloseDeal records exactly one Deal against the contact's OPEN opportunity,
// marks it WON and moves the contact OPPORTUNITY → CUSTOMER. A second call
// finds no open opportunity and fails; a second Deal is never created.
func (e *LifecycleEngine) CloseDeal(ctx context.Context, contactID, employeeID string, dealValueCents int64, product string) (*entity.Deal, error) {
	if dealValueCents <= 0 {
		return nil, NewValidationError(FieldError{Field: "deal_value_cents", Message: "must be positive"})
	}

	opportunity, err := e.Opportunities.GetOpenByContact(ctx, contactID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, &NotFoundError{Resource: "open opportunity for contact", ID: contactID}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	deal := entity.NewDeal(opportunity.ID, dealValueCents, product, employeeID)
	history := entity.NewStatusHistory(contactID, entity.StatusOpportunity, entity.StatusCustomer, employeeID)

	txn := NewTransaction()
	txn.AddOperation("create_deal", func(ctx context.Context) error {
		return e.Deals.Create(ctx, deal)
	})
	txn.AddCompensation("delete_deal", func(ctx context.Context) error {
		return e.Deals.Delete(ctx, deal.ID)
	})
	txn.AddOperation("mark_opportunity_won", func(ctx context.Context) error {
		return e.Opportunities.UpdateStatus(ctx, opportunity.ID, entity.OpportunityWon)
	})
	txn.AddCompensation("reopen_opportunity", func(ctx context.Context) error {
		return e.Opportunities.UpdateStatus(ctx, opportunity.ID, entity.OpportunityOpen)
	})
	txn.AddOperation("update_status", func(ctx context.Context) error {
		return e.Contacts.UpdateStatusIf(ctx, contactID, entity.StatusOpportunity, entity.StatusCustomer)
	})
	txn.AddCompensation("revert_status", func(ctx context.Context) error {
		return e.Contacts.UpdateStatusIf(ctx, contactID, entity.StatusCustomer, entity.StatusOpportunity)
	})
	txn.AddOperation("insert_status_history", func(ctx context.Context) error {
		return e.Contacts.InsertStatusHistory(ctx, history)
	})

	if err := txn.Execute(ctx); err != nil {
		switch {
		case errors.Is(err, entity.ErrStaleStatus):
			return nil, &ConflictError{Message: "contact status changed concurrently, deal not recorded"}
		case errors.Is(err, entity.ErrDuplicateDeal):
			return nil, &ConflictError{Message: "opportunity already has a deal"}
		default:
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
	}

	logTransition(contactID, entity.StatusOpportunity, entity.StatusCustomer, employeeID)
	return deal, nil
}

// ConvertToEvangelist promotes a CUSTOMER whose feedback average reaches the
// threshold. System-driven: the history actor stays empty.
func (e *LifecycleEngine) ConvertToEvangelist(ctx context.Context, contactID string) error {
	contact, err := e.getContact(ctx, contactID)
	if err != nil {
		return err
	}
	if contact.Status != entity.StatusCustomer {
		return &StateError{Op: "convert to evangelist", Required: entity.StatusCustomer, Current: contact.Status}
	}

	avg, err := e.Feedback.AverageRating(ctx, contact.ID)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if avg < EvangelistMinAvgFeedback {
		return &ThresholdError{Rule: "average feedback rating", Required: EvangelistMinAvgFeedback, Actual: avg}
	}

	return e.transition(ctx, contact.ID, entity.StatusCustomer, entity.StatusEvangelist, "")
}
