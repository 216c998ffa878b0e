package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leadloop/crm-backend/internal/entity"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError: bad input shape or value.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// StateError: the contact's current status does not allow the operation.
type StateError struct {
	Op       string
	Required entity.ContactStatus
	Current  entity.ContactStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s requires status %s, contact is %s", e.Op, e.Required, e.Current)
}

// ThresholdError: a numeric qualification rule was not met.
type ThresholdError struct {
	Rule     string
	Required float64
	Actual   float64
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("%s not met: requires %.1f, got %.1f", e.Rule, e.Required, e.Actual)
}

// NotFoundError: a referenced contact or opportunity is absent.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError: a concurrent transition won the race, or a uniqueness rule tripped.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// TechnicalError: infrastructure failure, not a business rule.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsStateError(err error) bool {
	var e *StateError
	return errors.As(err, &e)
}

func IsThresholdError(err error) bool {
	var e *ThresholdError
	return errors.As(err, &e)
}

func IsNotFoundError(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsConflictError(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsTechnicalError(err error) bool {
	var e *TechnicalError
	return errors.As(err, &e)
}
