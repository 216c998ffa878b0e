package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/leadloop/crm-backend/internal/entity"
	"github.com/leadloop/crm-backend/internal/usecase"
)

func TestProcessLeadActivityConvertsLead(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)
	m.contacts.On("IncrementInterestScore", ctx, "contact-1").Return(nil)
	m.sessions.On("Create", ctx, mock.Anything).Return(nil)
	m.contacts.On("UpdateStatusIf", ctx, "contact-1", entity.StatusLead, entity.StatusMQL).Return(nil)
	m.sessions.On("AverageRating", ctx, "contact-1", entity.SessionStage("")).Return(10.0, nil)
	m.contacts.On("UpdateTemperature", ctx, "contact-1", entity.TemperatureHot).Return(nil)
	m.contacts.On("InsertStatusHistory", ctx, mock.Anything).Return(nil)

	result, err := m.engine().ProcessLeadActivity(ctx, usecase.LeadActivityInput{
		ContactID: "contact-1",
		Token:     "token-abc",
	})

	assert.NoError(t, err)
	assert.True(t, result.Converted)
	assert.Equal(t, entity.StatusMQL, result.NewStatus)

	// The synthetic session carries the automation markers.
	m.sessions.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(s *entity.Session) bool {
		return s.ContactID == "contact-1" &&
			s.Stage == entity.StageMQL &&
			s.Rating == entity.SessionRatingMax &&
			s.Status == entity.SessionCompleted
	}))
	// System transition: empty actor on the history row.
	m.contacts.AssertCalled(t, "InsertStatusHistory", ctx, mock.MatchedBy(func(h *entity.StatusHistory) bool {
		return h.FromStatus == entity.StatusLead &&
			h.ToStatus == entity.StatusMQL &&
			h.ChangedBy == ""
	}))
}

func TestProcessLeadActivityUnknownContact(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()

	m.contacts.On("FindByID", ctx, "ghost").Return(nil, entity.ErrNotFound)

	result, err := m.engine().ProcessLeadActivity(ctx, usecase.LeadActivityInput{ContactID: "ghost"})

	assert.NoError(t, err)
	assert.False(t, result.Converted)
	assert.Equal(t, "contact not found", result.Reason)
	m.contacts.AssertNotCalled(t, "IncrementInterestScore")
}

func TestProcessLeadActivityTokenMismatch(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)

	result, err := m.engine().ProcessLeadActivity(ctx, usecase.LeadActivityInput{
		ContactID: "contact-1",
		Token:     "wrong-token",
	})

	assert.NoError(t, err)
	assert.False(t, result.Converted)
	assert.Equal(t, "invalid token", result.Reason)
	m.contacts.AssertNotCalled(t, "IncrementInterestScore")
	m.sessions.AssertNotCalled(t, "Create")
}

// A tokenless hit (open pixel without query token) still converts.
func TestProcessLeadActivityWithoutToken(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)
	m.contacts.On("IncrementInterestScore", ctx, "contact-1").Return(nil)
	m.sessions.On("Create", ctx, mock.Anything).Return(nil)
	m.contacts.On("UpdateStatusIf", ctx, "contact-1", entity.StatusLead, entity.StatusMQL).Return(nil)
	m.sessions.On("AverageRating", ctx, "contact-1", entity.SessionStage("")).Return(10.0, nil)
	m.contacts.On("UpdateTemperature", ctx, "contact-1", entity.TemperatureHot).Return(nil)
	m.contacts.On("InsertStatusHistory", ctx, mock.Anything).Return(nil)

	result, err := m.engine().ProcessLeadActivity(ctx, usecase.LeadActivityInput{ContactID: "contact-1"})

	assert.NoError(t, err)
	assert.True(t, result.Converted)
}

// Repeat visit after conversion: interest keeps accruing, no second session.
func TestProcessLeadActivityOnNonLead(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")
	contact.Status = entity.StatusMQL

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)
	m.contacts.On("IncrementInterestScore", ctx, "contact-1").Return(nil)

	result, err := m.engine().ProcessLeadActivity(ctx, usecase.LeadActivityInput{
		ContactID: "contact-1",
		Token:     "token-abc",
	})

	assert.NoError(t, err)
	assert.False(t, result.Converted)
	assert.Equal(t, "contact is not a lead", result.Reason)
	assert.Equal(t, entity.StatusMQL, result.CurrentStatus)

	m.contacts.AssertCalled(t, "IncrementInterestScore", ctx, "contact-1")
	m.sessions.AssertNotCalled(t, "Create")
}

// Two concurrent clicks: the loser of the status race must delete its
// synthetic session and report a soft miss, not an error.
func TestProcessLeadActivityLostRace(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)
	m.contacts.On("IncrementInterestScore", ctx, "contact-1").Return(nil)
	m.sessions.On("Create", ctx, mock.Anything).Return(nil)
	m.contacts.On("UpdateStatusIf", ctx, "contact-1", entity.StatusLead, entity.StatusMQL).Return(entity.ErrStaleStatus)
	m.sessions.On("Delete", ctx, mock.Anything).Return(nil)

	result, err := m.engine().ProcessLeadActivity(ctx, usecase.LeadActivityInput{
		ContactID: "contact-1",
		Token:     "token-abc",
	})

	assert.NoError(t, err)
	assert.False(t, result.Converted)
	assert.Equal(t, "contact already converted", result.Reason)

	m.sessions.AssertCalled(t, "Delete", ctx, mock.Anything)
	m.contacts.AssertNotCalled(t, "InsertStatusHistory")
}

func TestProcessLeadActivityInfrastructureFailure(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()

	m.contacts.On("FindByID", ctx, "contact-1").Return(nil, errors.New("connection refused"))

	result, err := m.engine().ProcessLeadActivity(ctx, usecase.LeadActivityInput{ContactID: "contact-1"})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, usecase.IsTechnicalError(err))
}
