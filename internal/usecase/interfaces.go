package usecase

import (
	"context"

	"github.com/leadloop/crm-backend/internal/entity"
	"github.com/leadloop/crm-backend/internal/infra/queue"
)

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Contact) error
	FindByID(ctx context.Context, id string) (*entity.Contact, error)
	ListByStatus(ctx context.Context, companyID string, status entity.ContactStatus, limit, offset int) ([]*entity.Contact, error)
	Update(ctx context.Context, id string, patch entity.ContactPatch) error
	Delete(ctx context.Context, id string) error

	// UpdateStatusIf applies the transition only when the stored status still
	// equals from; zero rows affected surfaces entity.ErrStaleStatus.
	UpdateStatusIf(ctx context.Context, id string, from, to entity.ContactStatus) error
	UpdateTemperature(ctx context.Context, id string, temp entity.Temperature) error
	IncrementInterestScore(ctx context.Context, id string) error
	SaveTrackingToken(ctx context.Context, id, token string) error

	InsertStatusHistory(ctx context.Context, h *entity.StatusHistory) error
	ListStatusHistory(ctx context.Context, contactID string) ([]*entity.StatusHistory, error)
}

type SessionRepositoryInterface interface {
	Create(ctx context.Context, s *entity.Session) error
	Delete(ctx context.Context, id string) error

	// AverageRating returns the arithmetic mean of session ratings for the
	// contact, stage-scoped when stage is non-empty, 0 when no sessions exist.
	AverageRating(ctx context.Context, contactID string, stage entity.SessionStage) (float64, error)
}

type OpportunityRepositoryInterface interface {
	Create(ctx context.Context, o *entity.Opportunity) error
	GetOpenByContact(ctx context.Context, contactID string) (*entity.Opportunity, error)
	UpdateStatus(ctx context.Context, id string, status entity.OpportunityStatus) error
	ListByContact(ctx context.Context, contactID string) ([]*entity.Opportunity, error)
	Delete(ctx context.Context, id string) error
}

type DealRepositoryInterface interface {
	Create(ctx context.Context, d *entity.Deal) error
	ListByContact(ctx context.Context, contactID string) ([]*entity.Deal, error)
	Delete(ctx context.Context, id string) error
}

type FeedbackRepositoryInterface interface {
	Create(ctx context.Context, f *entity.Feedback) error
	AverageRating(ctx context.Context, contactID string) (float64, error)
}

type LeadEmailProducerInterface interface {
	PublishLeadEmail(ctx context.Context, payload queue.LeadEmailPayload) error
}
