package entity

import (
	"time"

	"github.com/google/uuid"
)

// StatusHistory is an append-only audit record, written exactly once per
// transition. ChangedBy empty means the system drove the transition.
type StatusHistory struct {
	ID         string        `json:"id"`
	ContactID  string        `json:"contact_id"`
	FromStatus ContactStatus `json:"from_status"`
	ToStatus   ContactStatus `json:"to_status"`
	ChangedBy  string        `json:"changed_by,omitempty"`
	ChangedAt  time.Time     `json:"changed_at"`
}

func NewStatusHistory(contactID string, from, to ContactStatus, changedBy string) *StatusHistory {
	return &StatusHistory{
		ID:         uuid.New().String(),
		ContactID:  contactID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  changedBy,
		ChangedAt:  time.Now(),
	}
}
