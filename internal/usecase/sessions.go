package usecase

import (
	"context"

	"github.com/leadloop/crm-backend/internal/entity"
)

// LogSession appends an employee-entered interaction and recomputes the
// contact temperature from the fresh overall average. The COMPLETED status is
// not accepted here: it is reserved for automation-generated sessions.
func (e *LifecycleEngine) LogSession(ctx context.Context, input LogSessionInput) (*LogSessionOutput, error) {
	if fields := ValidateStruct(input); len(fields) > 0 {
		return nil, NewValidationError(fields...)
	}

	contact, err := e.getContact(ctx, input.ContactID)
	if err != nil {
		return nil, err
	}

	session := entity.NewSession(
		contact.ID,
		input.EmployeeID,
		entity.SessionStage(input.Stage),
		input.Mode,
		input.Rating,
		entity.SessionStatus(input.Status),
		input.Remarks,
	)

	var temperature entity.Temperature

	txn := NewTransaction()
	txn.AddOperation("create_session", func(ctx context.Context) error {
		return e.Sessions.Create(ctx, session)
	})
	txn.AddCompensation("delete_session", func(ctx context.Context) error {
		return e.Sessions.Delete(ctx, session.ID)
	})
	txn.AddOperation("refresh_temperature", func(ctx context.Context) error {
		temp, err := e.refreshTemperature(ctx, contact.ID)
		temperature = temp
		return err
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return &LogSessionOutput{SessionID: session.ID, Temperature: temperature}, nil
}

// RecordFeedback stores a post-sale feedback rating; the evangelist threshold
// aggregates over these.
func (e *LifecycleEngine) RecordFeedback(ctx context.Context, input RecordFeedbackInput) (*entity.Feedback, error) {
	if fields := ValidateStruct(input); len(fields) > 0 {
		return nil, NewValidationError(fields...)
	}

	contact, err := e.getContact(ctx, input.ContactID)
	if err != nil {
		return nil, err
	}

	feedback := entity.NewFeedback(contact.ID, input.Rating, input.Comments)
	if err := e.Feedback.Create(ctx, feedback); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return feedback, nil
}
