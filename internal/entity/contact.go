package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type ContactStatus string

const (
	StatusLead        ContactStatus = "LEAD"
	StatusMQL         ContactStatus = "MQL"
	StatusSQL         ContactStatus = "SQL"
	StatusOpportunity ContactStatus = "OPPORTUNITY"
	StatusCustomer    ContactStatus = "CUSTOMER"
	StatusEvangelist  ContactStatus = "EVANGELIST"
	StatusDormant     ContactStatus = "DORMANT"
)

// forwardEdges maps each status to the single status reachable from it.
// There is no edge out of EVANGELIST or DORMANT.
var forwardEdges = map[ContactStatus]ContactStatus{
	StatusLead:        StatusMQL,
	StatusMQL:         StatusSQL,
	StatusSQL:         StatusOpportunity,
	StatusOpportunity: StatusCustomer,
	StatusCustomer:    StatusEvangelist,
}

func (s ContactStatus) Valid() bool {
	switch s {
	case StatusLead, StatusMQL, StatusSQL, StatusOpportunity, StatusCustomer, StatusEvangelist, StatusDormant:
		return true
	}
	return false
}

// Next returns the only status this one may move forward to.
func (s ContactStatus) Next() (ContactStatus, bool) {
	next, ok := forwardEdges[s]
	return next, ok
}

// CanTransitionTo reports whether from → to is a defined forward edge.
func (s ContactStatus) CanTransitionTo(to ContactStatus) bool {
	next, ok := forwardEdges[s]
	return ok && next == to
}

type Temperature string

const (
	TemperatureCold Temperature = "COLD"
	TemperatureWarm Temperature = "WARM"
	TemperatureHot  Temperature = "HOT"
)

// TemperatureFor classifies the overall average session rating.
func TemperatureFor(avgRating float64) Temperature {
	switch {
	case avgRating >= 8:
		return TemperatureHot
	case avgRating >= 6:
		return TemperatureWarm
	default:
		return TemperatureCold
	}
}

type Contact struct {
	ID            string        `json:"id"`
	CompanyID     string        `json:"company_id,omitempty"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Status        ContactStatus `json:"status"`
	Temperature   Temperature   `json:"temperature"`
	InterestScore int           `json:"interest_score"`
	TrackingToken string        `json:"-"`
	AssignedEmpID string        `json:"assigned_emp_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ContactPatch enumerates the mutable contact fields. Nil means "leave as is".
// Status and temperature are owned by the lifecycle engine and are not patchable.
type ContactPatch struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	AssignedEmpID *string `json:"assigned_emp_id,omitempty"`
	CompanyID     *string `json:"company_id,omitempty"`
}

func (p ContactPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.AssignedEmpID == nil && p.CompanyID == nil
}

// NewContact builds a fresh LEAD. Temperature starts COLD until a session is rated.
func NewContact(name, email, companyID, assignedEmpID string) (*Contact, error) {
	c := &Contact{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          name,
		Email:         email,
		Status:        StatusLead,
		Temperature:   TemperatureCold,
		AssignedEmpID: assignedEmpID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Contact) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	return nil
}
