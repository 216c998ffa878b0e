package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadloop/crm-backend/internal/entity"
	"github.com/leadloop/crm-backend/internal/infra/queue"
)

// Business-rule thresholds for status qualification.
const (
	MQLToSQLMinAvgRating     = 7.0
	EvangelistMinAvgFeedback = 8.0
)

// LifecycleEngine owns the contact status field: it validates transitions,
// derives temperature, and orchestrates the side-effect writes through the
// injected stores. All stores are constructed by the hosting application.
type LifecycleEngine struct {
	Contacts      ContactRepositoryInterface
	Sessions      SessionRepositoryInterface
	Opportunities OpportunityRepositoryInterface
	Deals         DealRepositoryInterface
	Feedback      FeedbackRepositoryInterface
	EmailQueue    LeadEmailProducerInterface
}

func NewLifecycleEngine(
	contacts ContactRepositoryInterface,
	sessions SessionRepositoryInterface,
	opportunities OpportunityRepositoryInterface,
	deals DealRepositoryInterface,
	feedback FeedbackRepositoryInterface,
	emailQueue LeadEmailProducerInterface,
) *LifecycleEngine {
	return &LifecycleEngine{
		Contacts:      contacts,
		Sessions:      sessions,
		Opportunities: opportunities,
		Deals:         deals,
		Feedback:      feedback,
		EmailQueue:    emailQueue,
	}
}

// CreateLead persists a new LEAD contact, attaches an opaque tracking token
// and queues the personalized welcome email. A queue failure does not fail
// the request, but it is logged and counted so operators see it.
func (e *LifecycleEngine) CreateLead(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if fields := ValidateStruct(input); len(fields) > 0 {
		return nil, NewValidationError(fields...)
	}

	contact, err := entity.NewContact(input.Name, input.Email, input.CompanyID, input.AssignedEmpID)
	if err != nil {
		return nil, NewValidationError(FieldError{Field: "contact", Message: err.Error()})
	}

	token := uuid.New().String()

	txn := NewTransaction()
	txn.AddOperation("create_contact", func(ctx context.Context) error {
		return e.Contacts.Create(ctx, contact)
	})
	txn.AddCompensation("delete_contact", func(ctx context.Context) error {
		return e.Contacts.Delete(ctx, contact.ID)
	})
	txn.AddOperation("save_tracking_token", func(ctx context.Context) error {
		return e.Contacts.SaveTrackingToken(ctx, contact.ID, token)
	})

	if err := txn.Execute(ctx); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &ConflictError{Message: "a contact with this email already exists"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist lead: " + err.Error()}
	}

	if e.EmailQueue != nil {
		payload := queue.LeadEmailPayload{
			ContactID:  contact.ID,
			Name:       contact.Name,
			Email:      contact.Email,
			Token:      token,
			EmployeeID: contact.AssignedEmpID,
			CompanyID:  contact.CompanyID,
		}
		if err := e.EmailQueue.PublishLeadEmail(ctx, payload); err != nil {
			queue.RecordPublishError()
			logrus.WithFields(logrus.Fields{
				"contact_id": contact.ID,
				"error":      err,
			}).Error("lead welcome email could not be queued")
		}
	}

	logrus.WithFields(logrus.Fields{
		"contact_id": contact.ID,
		"status":     contact.Status,
	}).Info("lead created")

	return &CreateLeadOutput{
		ContactID:   contact.ID,
		Status:      contact.Status,
		Temperature: contact.Temperature,
	}, nil
}

// refreshTemperature recomputes the contact temperature from the fresh
// overall session average. Never cached: the aggregate is read on every call.
func (e *LifecycleEngine) refreshTemperature(ctx context.Context, contactID string) (entity.Temperature, error) {
	avg, err := e.Sessions.AverageRating(ctx, contactID, "")
	if err != nil {
		return "", err
	}
	temp := entity.TemperatureFor(avg)
	if err := e.Contacts.UpdateTemperature(ctx, contactID, temp); err != nil {
		return "", err
	}
	return temp, nil
}

func (e *LifecycleEngine) getContact(ctx context.Context, contactID string) (*entity.Contact, error) {
	contact, err := e.Contacts.FindByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, &NotFoundError{Resource: "contact", ID: contactID}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return contact, nil
}

func logTransition(contactID string, from, to entity.ContactStatus, actor string) {
	if actor == "" {
		actor = "system"
	}
	logrus.WithFields(logrus.Fields{
		"contact_id": contactID,
		"from":       from,
		"to":         to,
		"actor":      actor,
	}).Info("contact status transition")
}
