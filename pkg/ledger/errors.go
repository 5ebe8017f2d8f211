package ledger

import (
	"fmt"

	"github.com/clearfund/charity-ledger/pkg/models"
)

// OverallocationError is returned when an allocation would push the sum of
// a campaign's held events past its raised amount.
type OverallocationError struct {
	CampaignID string
	Requested  int64
	Available  int64
}

func (e *OverallocationError) Error() string {
	return fmt.Sprintf("allocation of %d cents exceeds the %d cents remaining for campaign %s", e.Requested, e.Available, e.CampaignID)
}

// CampaignNotSettleableError is returned when funds are allocated against a
// campaign that is still open.
type CampaignNotSettleableError struct {
	CampaignID string
	Status     models.CampaignStatus
}

func (e *CampaignNotSettleableError) Error() string {
	return fmt.Sprintf("campaign %s has status %s; funds can only be allocated for completed or ended campaigns", e.CampaignID, e.Status)
}
