package reconcile

import (
	"context"
	"log/slog"

	"github.com/clearfund/charity-ledger/pkg/ledger"
	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/clearfund/charity-ledger/pkg/settlement"
)

// Trigger is the reactive layer keeping derived campaign fields current.
// Every donation or event write calls one of its entry points synchronously,
// immediately after the write commits. Dispatch is explicit: the mutation
// site names the affected campaign instead of relying on implicit hook
// registration, which keeps the dependency graph visible and testable.
type Trigger struct {
	Ledger      *ledger.Ledger
	Coordinator *settlement.Coordinator
	Logger      *slog.Logger
}

// New creates a Trigger.
func New(l *ledger.Ledger, c *settlement.Coordinator, logger *slog.Logger) *Trigger {
	return &Trigger{Ledger: l, Coordinator: c, Logger: logger}
}

// OnDonationChanged recomputes the campaign's raised amount and status after
// any donation create, update or delete.
func (t *Trigger) OnDonationChanged(ctx context.Context, donation *models.Donation) (*models.Campaign, error) {
	return t.Ledger.Recompute(ctx, donation.CampaignId)
}

// OnCampaignSaved recomputes only the campaign's status. The raised amount
// is left alone so this path cannot overwrite a value the donation-side
// recompute just produced, and the no-change short circuit keeps the
// handler's own write from re-triggering itself.
func (t *Trigger) OnCampaignSaved(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	return t.Ledger.RecomputeStatus(ctx, campaign.Id)
}

// OnEventStatusCompleted fires settlement for an event that just reached
// COMPLETED and has no hash yet. Settlement failures never propagate; the
// event keeps its null hash for later remediation.
func (t *Trigger) OnEventStatusCompleted(ctx context.Context, event *models.CampaignEvent) {
	if event.Status != models.EventCompleted || event.Settled() {
		return
	}

	if _, err := t.Coordinator.SettleEvent(ctx, event); err != nil {
		t.Logger.Error("event settlement failed",
			slog.String("event_id", event.Id), slog.String("error", err.Error()))
	}
}
