package usecase

import "github.com/leadloop/crm-backend/internal/entity"

type CreateLeadInput struct {
	Name          string `json:"name" validate:"required,min=2,max=200"`
	Email         string `json:"email" validate:"required,email"`
	CompanyID     string `json:"company_id,omitempty"`
	AssignedEmpID string `json:"assigned_emp_id,omitempty"`
}

type CreateLeadOutput struct {
	ContactID   string               `json:"contact_id"`
	Status      entity.ContactStatus `json:"status"`
	Temperature entity.Temperature   `json:"temperature"`
}

type LeadActivityInput struct {
	ContactID string `json:"contact_id"`
	Token     string `json:"token,omitempty"`
}

// LeadActivityResult is returned instead of an error for business-rule misses:
// the caller is an unauthenticated tracking endpoint that must never 500.
type LeadActivityResult struct {
	Converted     bool                 `json:"converted"`
	Reason        string               `json:"reason,omitempty"`
	NewStatus     entity.ContactStatus `json:"new_status,omitempty"`
	CurrentStatus entity.ContactStatus `json:"current_status,omitempty"`
}

type LogSessionInput struct {
	ContactID  string `json:"contact_id" validate:"required"`
	EmployeeID string `json:"emp_id" validate:"required"`
	Stage      string `json:"stage" validate:"required,oneof=MQL SQL"`
	Mode       string `json:"mode_of_contact" validate:"required"`
	Rating     int    `json:"rating" validate:"gte=1,lte=10"`
	Status     string `json:"session_status" validate:"required,oneof=CONNECTED NOT_CONNECTED BAD_TIMING"`
	Remarks    string `json:"remarks,omitempty" validate:"max=2000"`
}

type LogSessionOutput struct {
	SessionID   string             `json:"session_id"`
	Temperature entity.Temperature `json:"temperature"`
}

type RecordFeedbackInput struct {
	ContactID string `json:"contact_id" validate:"required"`
	Rating    int    `json:"rating" validate:"gte=1,lte=10"`
	Comments  string `json:"comments,omitempty" validate:"max=2000"`
}

type FinancialSummary struct {
	TotalOpportunities int   `json:"total_opportunities"`
	OpenOpportunities  int   `json:"open_opportunities"`
	WonOpportunities   int   `json:"won_opportunities"`
	LostOpportunities  int   `json:"lost_opportunities"`
	TotalExpectedCents int64 `json:"total_expected_value_cents"`
	TotalDeals         int   `json:"total_deals"`
	TotalDealCents     int64 `json:"total_deal_value_cents"`
	ConversionRatePct  int   `json:"conversion_rate_pct"`
}

type ContactFinancials struct {
	Opportunities []*entity.Opportunity `json:"opportunities"`
	Deals         []*entity.Deal        `json:"deals"`
	Summary       FinancialSummary      `json:"summary"`
}
