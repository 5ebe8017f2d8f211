package ledger

import (
	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/shopspring/decimal"
)

// TotalAllocated sums the amounts of events holding part of the campaign's
// raised funds (status PENDING or COMPLETED). Cancelled events are excluded
// permanently.
func TotalAllocated(events []models.CampaignEvent) int64 {
	var total int64
	for i := range events {
		if events[i].CountsAgainstAllocation() {
			total += events[i].Amount
		}
	}
	return total
}

// Remaining returns how many cents of the campaign's raised amount are not
// yet held by an allocation. Never negative.
func Remaining(campaign *models.Campaign, events []models.CampaignEvent) int64 {
	remaining := campaign.RaisedAmount - TotalAllocated(events)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// UtilizationPercentage returns the share of raised funds held by
// allocations, rounded to two decimal places. Zero when nothing was raised.
func UtilizationPercentage(campaign *models.Campaign, events []models.CampaignEvent) float64 {
	if campaign.RaisedAmount <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(TotalAllocated(events)).
		Div(decimal.NewFromInt(campaign.RaisedAmount)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	f, _ := pct.Float64()
	return f
}

// ValidateNewAllocation checks that allocating amount cents on top of the
// campaign's currently held events would not exceed its raised amount.
// excludeEventID skips one event from the held sum, for edits of an
// existing allocation. The caller must persist the allocation atomically
// with this validation (the event store's version-conditional write); the
// check alone does not hold the headroom.
func ValidateNewAllocation(campaign *models.Campaign, events []models.CampaignEvent, amount int64, excludeEventID string) error {
	var held int64
	for i := range events {
		if events[i].Id == excludeEventID {
			continue
		}
		if events[i].CountsAgainstAllocation() {
			held += events[i].Amount
		}
	}

	if held+amount > campaign.RaisedAmount {
		return &OverallocationError{
			CampaignID: campaign.Id,
			Requested:  amount,
			Available:  campaign.RaisedAmount - held,
		}
	}
	return nil
}

// ValidateCampaignEligible checks that the campaign has reached a state in
// which its funds may be allocated.
func ValidateCampaignEligible(campaign *models.Campaign) error {
	if !campaign.Settleable() {
		return &CampaignNotSettleableError{CampaignID: campaign.Id, Status: campaign.Status}
	}
	return nil
}
