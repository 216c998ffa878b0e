package entity

import (
	"time"

	"github.com/google/uuid"
)

type OpportunityStatus string

const (
	OpportunityOpen OpportunityStatus = "OPEN"
	OpportunityWon  OpportunityStatus = "WON"
	OpportunityLost OpportunityStatus = "LOST"
)

// Opportunity is an open sales pursuit. Monetary values are integer cents.
type Opportunity struct {
	ID                 string            `json:"id"`
	ContactID          string            `json:"contact_id"`
	EmployeeID         string            `json:"emp_id"`
	ExpectedValueCents int64             `json:"expected_value_cents"`
	Status             OpportunityStatus `json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func NewOpportunity(contactID, employeeID string, expectedValueCents int64) *Opportunity {
	return &Opportunity{
		ID:                 uuid.New().String(),
		ContactID:          contactID,
		EmployeeID:         employeeID,
		ExpectedValueCents: expectedValueCents,
		Status:             OpportunityOpen,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
}
