package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadloop/crm-backend/internal/usecase"
)

func TestTransactionRunsOperationsInOrder(t *testing.T) {
	var calls []string

	txn := usecase.NewTransaction()
	txn.AddOperation("first", func(context.Context) error {
		calls = append(calls, "first")
		return nil
	})
	txn.AddCompensation("undo_first", func(context.Context) error {
		calls = append(calls, "undo_first")
		return nil
	})
	txn.AddOperation("second", func(context.Context) error {
		calls = append(calls, "second")
		return nil
	})

	err := txn.Execute(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestTransactionRollsBackInReverseOrder(t *testing.T) {
	var calls []string

	txn := usecase.NewTransaction()
	txn.AddOperation("first", func(context.Context) error {
		calls = append(calls, "first")
		return nil
	})
	txn.AddCompensation("undo_first", func(context.Context) error {
		calls = append(calls, "undo_first")
		return nil
	})
	txn.AddOperation("second", func(context.Context) error {
		calls = append(calls, "second")
		return nil
	})
	txn.AddCompensation("undo_second", func(context.Context) error {
		calls = append(calls, "undo_second")
		return nil
	})
	txn.AddOperation("third", func(context.Context) error {
		return errors.New("boom")
	})

	err := txn.Execute(context.Background())

	assert.Error(t, err)
	assert.Equal(t, []string{"first", "second", "undo_second", "undo_first"}, calls)
}

// Execute wraps the failing operation's error so sentinel checks still work.
func TestTransactionPreservesSentinelErrors(t *testing.T) {
	sentinel := errors.New("stale")

	txn := usecase.NewTransaction()
	txn.AddOperation("flip", func(context.Context) error {
		return sentinel
	})

	err := txn.Execute(context.Background())

	assert.Error(t, err)
	assert.True(t, errors.Is(err, sentinel))
}

func TestTransactionStopsAtFirstFailure(t *testing.T) {
	var calls []string

	txn := usecase.NewTransaction()
	txn.AddOperation("first", func(context.Context) error {
		return errors.New("boom")
	})
	txn.AddCompensation("undo_first", func(context.Context) error {
		calls = append(calls, "undo_first")
		return nil
	})
	txn.AddOperation("second", func(context.Context) error {
		calls = append(calls, "second")
		return nil
	})

	err := txn.Execute(context.Background())

	assert.Error(t, err)
	// The failed operation itself is not compensated, and nothing after it runs.
	assert.Empty(t, calls)
}
