package usecase

import (
	"context"
	"math"

	"github.com/leadloop/crm-backend/internal/entity"
)

// ContactFinancials aggregates a contact's opportunities and deals into a
// read-only summary. Pure aggregation, no state mutation.
func (e *LifecycleEngine) ContactFinancials(ctx context.Context, contactID string) (*ContactFinancials, error) {
	if _, err := e.getContact(ctx, contactID); err != nil {
		return nil, err
	}

	opportunities, err := e.Opportunities.ListByContact(ctx, contactID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	deals, err := e.Deals.ListByContact(ctx, contactID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return &ContactFinancials{
		Opportunities: opportunities,
		Deals:         deals,
		Summary:       summarize(opportunities, deals),
	}, nil
}

func summarize(opportunities []*entity.Opportunity, deals []*entity.Deal) FinancialSummary {
	s := FinancialSummary{
		TotalOpportunities: len(opportunities),
		TotalDeals:         len(deals),
	}

	for _, o := range opportunities {
		s.TotalExpectedCents += o.ExpectedValueCents
		switch o.Status {
		case entity.OpportunityOpen:
			s.OpenOpportunities++
		case entity.OpportunityWon:
			s.WonOpportunities++
		case entity.OpportunityLost:
			s.LostOpportunities++
		}
	}
	for _, d := range deals {
		s.TotalDealCents += d.DealValueCents
	}

	if s.TotalOpportunities > 0 {
		rate := float64(s.WonOpportunities) / float64(s.TotalOpportunities) * 100
		s.ConversionRatePct = int(math.Round(rate))
	}

	return s
}
