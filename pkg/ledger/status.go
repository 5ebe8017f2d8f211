package ledger

import (
	"time"

	"github.com/clearfund/charity-ledger/pkg/models"
)

// ComputeStatus derives a campaign's lifecycle status from the clock and its
// amounts. It is the single authoritative status function; every code path
// that needs a status calls this rather than carrying its own copy.
//
// COMPLETED is evaluated first: once raised reaches the goal the campaign is
// COMPLETED regardless of the date window. Otherwise the status is purely a
// function of now against the start/end dates.
func ComputeStatus(now time.Time, start, end time.Time, goalAmount, raisedAmount int64) models.CampaignStatus {
	if raisedAmount >= goalAmount {
		return models.CampaignCompleted
	}
	if now.Before(start) {
		return models.CampaignUpcoming
	}
	if !now.After(end) {
		return models.CampaignActive
	}
	return models.CampaignEnded
}
