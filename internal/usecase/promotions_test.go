package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/leadloop/crm-backend/internal/entity"
	"github.com/leadloop/crm-backend/internal/usecase"
)

func TestPromoteToMQLSuccess(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)
	m.contacts.On("UpdateStatusIf", ctx, "contact-1", entity.StatusLead, entity.StatusMQL).Return(nil)
	m.contacts.On("InsertStatusHistory", ctx, mock.Anything).Return(nil)

	err := m.engine().PromoteToMQL(ctx, "contact-1", "emp-1")

	assert.NoError(t, err)
	m.contacts.AssertCalled(t, "InsertStatusHistory", ctx, mock.MatchedBy(func(h *entity.StatusHistory) bool {
		return h.ChangedBy == "emp-1" && h.ToStatus == entity.StatusMQL
	}))
	// Manual promotion never writes a synthetic session.
	m.sessions.AssertNotCalled(t, "Create")
}

func TestPromoteToMQLWrongState(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")
	contact.Status = entity.StatusSQL

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)

	err := m.engine().PromoteToMQL(ctx, "contact-1", "emp-1")

	assert.Error(t, err)
	assert.True(t, usecase.IsStateError(err))
	m.contacts.AssertNotCalled(t, "UpdateStatusIf")
}

func TestPromoteToMQLContactNotFound(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()

	m.contacts.On("FindByID", ctx, "ghost").Return(nil, entity.ErrNotFound)

	err := m.engine().PromoteToMQL(ctx, "ghost", "emp-1")

	assert.Error(t, err)
	assert.True(t, usecase.IsNotFoundError(err))
}

func TestPromoteToMQLConcurrentConflict(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)
	m.contacts.On("UpdateStatusIf", ctx, "contact-1", entity.StatusLead, entity.StatusMQL).Return(entity.ErrStaleStatus)

	err := m.engine().PromoteToMQL(ctx, "contact-1", "emp-1")

	assert.Error(t, err)
	assert.True(t, usecase.IsConflictError(err))
	m.contacts.AssertNotCalled(t, "InsertStatusHistory")
}

func TestPromoteToSQLSuccess(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")
	contact.Status = entity.StatusMQL

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)
	// [9, 8, 7] -> 8.0
	m.sessions.On("AverageRating", ctx, "contact-1", entity.StageMQL).Return(8.0, nil)
	m.contacts.On("UpdateStatusIf", ctx, "contact-1", entity.StatusMQL, entity.StatusSQL).Return(nil)
	m.contacts.On("InsertStatusHistory", ctx, mock.Anything).Return(nil)

	err := m.engine().PromoteToSQL(ctx, "contact-1", "emp-1")

	assert.NoError(t, err)
	// Qualification looks at the MQL stage only, never the overall average.
	m.sessions.AssertCalled(t, "AverageRating", ctx, "contact-1", entity.StageMQL)
}

func TestPromoteToSQLExactThreshold(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")
	contact.Status = entity.StatusMQL

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)
	m.sessions.On("AverageRating", ctx, "contact-1", entity.StageMQL).Return(7.0, nil)
	m.contacts.On("UpdateStatusIf", ctx, "contact-1", entity.StatusMQL, entity.StatusSQL).Return(nil)
	m.contacts.On("InsertStatusHistory", ctx, mock.Anything).Return(nil)

	err := m.engine().PromoteToSQL(ctx, "contact-1", "emp-1")

	assert.NoError(t, err)
}

func TestPromoteToSQLBelowThreshold(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")
	contact.Status = entity.StatusMQL

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)
	m.sessions.On("AverageRating", ctx, "contact-1", entity.StageMQL).Return(6.9, nil)

	err := m.engine().PromoteToSQL(ctx, "contact-1", "emp-1")

	assert.Error(t, err)
	assert.True(t, usecase.IsThresholdError(err))
	m.contacts.AssertNotCalled(t, "UpdateStatusIf")
}

func TestPromoteToSQLNoSessions(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")
	contact.Status = entity.StatusMQL

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)
	m.sessions.On("AverageRating", ctx, "contact-1", entity.StageMQL).Return(0.0, nil)

	err := m.engine().PromoteToSQL(ctx, "contact-1", "emp-1")

	assert.Error(t, err)
	assert.True(t, usecase.IsThresholdError(err))
}

func TestPromoteToSQLWrongState(t *testing.T) {
	ctx := context.Background()
	m := newEngineMocks()
	contact := leadContact("contact-1")

	m.contacts.On("FindByID", ctx, "contact-1").Return(contact, nil)

	err := m.engine().PromoteToSQL(ctx, "contact-1", "emp-1")

	assert.Error(t, err)
	assert.True(t, usecase.IsStateError(err))
	m.sessions.AssertNotCalled(t, "AverageRating")
}
