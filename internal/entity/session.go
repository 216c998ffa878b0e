package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionStage string

const (
	StageMQL SessionStage = "MQL"
	StageSQL SessionStage = "SQL"
)

type SessionStatus string

const (
	SessionConnected    SessionStatus = "CONNECTED"
	SessionNotConnected SessionStatus = "NOT_CONNECTED"
	SessionBadTiming    SessionStatus = "BAD_TIMING"

	// SessionCompleted is reserved for system-generated sessions (marketing
	// automation). Manual session entry must use one of the three values above.
	SessionCompleted SessionStatus = "COMPLETED"
)

const (
	SessionRatingMin = 1
	SessionRatingMax = 10
)

// Session is an append-only interaction record. Never updated after creation.
type Session struct {
	ID         string        `json:"id"`
	ContactID  string        `json:"contact_id"`
	EmployeeID string        `json:"emp_id,omitempty"` // empty = system-generated
	Stage      SessionStage  `json:"stage"`
	Mode       string        `json:"mode_of_contact"`
	Rating     int           `json:"rating"`
	Status     SessionStatus `json:"session_status"`
	Remarks    string        `json:"remarks,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

func NewSession(contactID, employeeID string, stage SessionStage, mode string, rating int, status SessionStatus, remarks string) *Session {
	return &Session{
		ID:         uuid.New().String(),
		ContactID:  contactID,
		EmployeeID: employeeID,
		Stage:      stage,
		Mode:       mode,
		Rating:     rating,
		Status:     status,
		Remarks:    remarks,
		CreatedAt:  time.Now(),
	}
}

// NewAutomationSession is the synthetic session written when marketing
// automation promotes a LEAD. The full rating marks maximum engagement.
func NewAutomationSession(contactID, employeeID string) *Session {
	return NewSession(
		contactID,
		employeeID,
		StageMQL,
		"EMAIL",
		SessionRatingMax,
		SessionCompleted,
		"Converted by email automation - lead clicked email and visited landing page",
	)
}
