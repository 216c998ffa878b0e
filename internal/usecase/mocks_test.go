package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/leadloop/crm-backend/internal/entity"
	"github.com/leadloop/crm-backend/internal/infra/queue"
)

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) ListByStatus(ctx context.Context, companyID string, status entity.ContactStatus, limit, offset int) ([]*entity.Contact, error) {
	args := m.Called(ctx, companyID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Update(ctx context.Context, id string, patch entity.ContactPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) UpdateStatusIf(ctx context.Context, id string, from, to entity.ContactStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockContactRepository) UpdateTemperature(ctx context.Context, id string, temp entity.Temperature) error {
	args := m.Called(ctx, id, temp)
	return args.Error(0)
}

func (m *MockContactRepository) IncrementInterestScore(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) SaveTrackingToken(ctx context.Context, id, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *MockContactRepository) InsertStatusHistory(ctx context.Context, h *entity.StatusHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockContactRepository) ListStatusHistory(ctx context.Context, contactID string) ([]*entity.StatusHistory, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.StatusHistory), args.Error(1)
}

// MockSessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, s *entity.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) AverageRating(ctx context.Context, contactID string, stage entity.SessionStage) (float64, error) {
	args := m.Called(ctx, contactID, stage)
	return args.Get(0).(float64), args.Error(1)
}

// MockOpportunityRepository
type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) Create(ctx context.Context, o *entity.Opportunity) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOpportunityRepository) GetOpenByContact(ctx context.Context, contactID string) (*entity.Opportunity, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) UpdateStatus(ctx context.Context, id string, status entity.OpportunityStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOpportunityRepository) ListByContact(ctx context.Context, contactID string) ([]*entity.Opportunity, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Opportunity), args.Error(1)
}

func (m *MockOpportunityRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(ctx context.Context, d *entity.Deal) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDealRepository) ListByContact(ctx context.Context, contactID string) ([]*entity.Deal, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Deal), args.Error(1)
}

func (m *MockDealRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, f *entity.Feedback) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFeedbackRepository) AverageRating(ctx context.Context, contactID string) (float64, error) {
	args := m.Called(ctx, contactID)
	return args.Get(0).(float64), args.Error(1)
}

// MockLeadEmailProducer
type MockLeadEmailProducer struct {
	mock.Mock
}

func (m *MockLeadEmailProducer) PublishLeadEmail(ctx context.Context, payload queue.LeadEmailPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// engineMocks bundles the stores behind a fresh engine for one test.
type engineMocks struct {
	contacts      *MockContactRepository
	sessions      *MockSessionRepository
	opportunities *MockOpportunityRepository
	deals         *MockDealRepository
	feedback      *MockFeedbackRepository
	producer      *MockLeadEmailProducer
}

func newEngineMocks() *engineMocks {
	return &engineMocks{
		contacts:      new(MockContactRepository),
		sessions:      new(MockSessionRepository),
		opportunities: new(MockOpportunityRepository),
		deals:         new(MockDealRepository),
		feedback:      new(MockFeedbackRepository),
		producer:      new(MockLeadEmailProducer),
	}
}

func leadContact(id string) *entity.Contact {
	return &entity.Contact{
		ID:            id,
		Name:          "Ana Souza",
		Email:         "ana@example.com",
		Status:        entity.StatusLead,
		Temperature:   entity.TemperatureCold,
		TrackingToken: "token-abc",
		AssignedEmpID: "emp-1",
	}
}
