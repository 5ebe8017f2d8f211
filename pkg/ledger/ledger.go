package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/clearfund/charity-ledger/pkg/storage"
)

// recomputeAttempts bounds the optimistic retry loop. Conflicts are short
// write races, so a couple of retries is plenty.
const recomputeAttempts = 3

// Ledger owns a campaign's derived raised amount and lifecycle status.
type Ledger struct {
	Campaigns storage.CampaignStore
	Donations storage.DonationReader

	// Now is the clock used for status derivation. Tests override it.
	Now func() time.Time
}

// New creates a Ledger backed by the given stores.
func New(campaigns storage.CampaignStore, donations storage.DonationReader) *Ledger {
	return &Ledger{
		Campaigns: campaigns,
		Donations: donations,
		Now:       time.Now,
	}
}

// Recompute re-derives the campaign's raised amount from its current
// donation rows and its status from the clock, and persists both if either
// changed. The read-sum-write step is serialized per campaign through the
// version-conditional update: a recomputation that raced a peer write
// re-reads and re-sums rather than applying a stale aggregate.
func (l *Ledger) Recompute(ctx context.Context, campaignID string) (*models.Campaign, error) {
	for attempt := 0; attempt < recomputeAttempts; attempt++ {
		campaign, err := l.Campaigns.GetCampaign(ctx, campaignID)
		if err != nil {
			return nil, fmt.Errorf("failed to load campaign for recompute: %w", err)
		}

		donations, err := l.Donations.ListDonationsByCampaign(ctx, campaignID)
		if err != nil {
			return nil, fmt.Errorf("failed to load donations for recompute: %w", err)
		}

		raised := SumRaised(donations)
		status := ComputeStatus(l.Now(), campaign.StartDate, campaign.EndDate, campaign.GoalAmount, raised)

		if raised == campaign.RaisedAmount && status == campaign.Status {
			return campaign, nil
		}

		err = l.Campaigns.UpdateCampaignDerived(ctx, campaignID, raised, status, campaign.Version)
		if errors.Is(err, storage.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to persist recomputed fields: %w", err)
		}

		campaign.RaisedAmount = raised
		campaign.Status = status
		campaign.Version++
		return campaign, nil
	}

	return nil, fmt.Errorf("campaign %s: recompute retries exhausted: %w", campaignID, storage.ErrVersionConflict)
}

// RecomputeStatus re-derives only the lifecycle status against the stored
// raised amount, leaving the amount untouched so it cannot overwrite a value
// a donation-side recompute just produced. A no-op when the status is
// already current, which also keeps the campaign-save trigger from feeding
// back into itself.
func (l *Ledger) RecomputeStatus(ctx context.Context, campaignID string) (*models.Campaign, error) {
	for attempt := 0; attempt < recomputeAttempts; attempt++ {
		campaign, err := l.Campaigns.GetCampaign(ctx, campaignID)
		if err != nil {
			return nil, fmt.Errorf("failed to load campaign for status recompute: %w", err)
		}

		status := ComputeStatus(l.Now(), campaign.StartDate, campaign.EndDate, campaign.GoalAmount, campaign.RaisedAmount)
		if status == campaign.Status {
			return campaign, nil
		}

		err = l.Campaigns.UpdateCampaignDerived(ctx, campaignID, campaign.RaisedAmount, status, campaign.Version)
		if errors.Is(err, storage.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to persist recomputed status: %w", err)
		}

		campaign.Status = status
		campaign.Version++
		return campaign, nil
	}

	return nil, fmt.Errorf("campaign %s: status recompute retries exhausted: %w", campaignID, storage.ErrVersionConflict)
}

// SumRaised totals the fiat cents of donations that count toward a
// campaign's raised amount. Token-only donations are excluded; they settle
// value separately. An empty slice sums to zero.
func SumRaised(donations []models.Donation) int64 {
	var total int64
	for i := range donations {
		if donations[i].CountsTowardRaised() {
			total += *donations[i].Amount
		}
	}
	return total
}
