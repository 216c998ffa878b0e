package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Deal closes an opportunity (1:1). Immutable after creation; deletion is an
// admin-only escape hatch.
type Deal struct {
	ID             string    `json:"id"`
	OpportunityID  string    `json:"opportunity_id"`
	DealValueCents int64     `json:"deal_value_cents"`
	Product        string    `json:"product,omitempty"`
	ClosedBy       string    `json:"closed_by"`
	ClosedAt       time.Time `json:"closed_at"`
}

func NewDeal(opportunityID string, dealValueCents int64, product, closedBy string) *Deal {
	return &Deal{
		ID:             uuid.New().String(),
		OpportunityID:  opportunityID,
		DealValueCents: dealValueCents,
		Product:        strings.ToLower(strings.TrimSpace(product)),
		ClosedBy:       closedBy,
		ClosedAt:       time.Now(),
	}
}
