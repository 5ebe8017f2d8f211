package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clearfund/charity-ledger/pkg/chain"
	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/clearfund/charity-ledger/pkg/storage"
)

// ErrCharityNotOnChain is returned when a campaign is created under a
// charity that has no on-chain registration while chain settlement is
// enabled.
var ErrCharityNotOnChain = errors.New("charity must be registered on-chain before creating campaigns")

// Coordinator orchestrates the persist-locally-then-settle-on-chain sequence
// for every entity type. The rollback policy differs per entity: charity and
// campaign creation unwind the local write on chain failure, while donation
// and event settlement keep the local record and leave it for later
// remediation, because a contribution must never be lost to chain
// unavailability.
type Coordinator struct {
	Store       storage.Storage
	Chain       chain.Ledger
	Logger      *slog.Logger
	AdminWallet string
	MetadataURL string
}

// New creates a Coordinator.
func New(store storage.Storage, chainLedger chain.Ledger, logger *slog.Logger, adminWallet, metadataURL string) *Coordinator {
	return &Coordinator{
		Store:       store,
		Chain:       chainLedger,
		Logger:      logger,
		AdminWallet: adminWallet,
		MetadataURL: metadataURL,
	}
}

// RegisterCharity persists the charity and registers it on-chain. A chain
// failure removes the local record again: an unregistered charity must not
// exist, since no campaign could reference it meaningfully.
func (c *Coordinator) RegisterCharity(ctx context.Context, charity *models.Charity) (*models.Charity, error) {
	created, err := c.Store.CreateCharity(ctx, charity)
	if err != nil {
		return nil, fmt.Errorf("failed to create charity: %w", err)
	}

	if !c.Chain.IsConfigured() {
		c.Logger.Info("charity created without chain settlement", slog.String("charity_id", created.Id))
		return created, nil
	}

	metadataURI := fmt.Sprintf("%s/charities/%s/metadata", c.MetadataURL, created.Id)
	onChainID, txHash, err := c.Chain.RegisterCharity(ctx, c.AdminWallet, created.Name, metadataURI)
	if err != nil {
		c.Logger.Error("charity chain registration failed, rolling back",
			slog.String("charity_id", created.Id), slog.String("error", err.Error()))
		if delErr := c.Store.DeleteCharity(ctx, created.Id); delErr != nil {
			c.Logger.Error("rollback of charity failed", slog.String("charity_id", created.Id), slog.String("error", delErr.Error()))
		}
		return nil, fmt.Errorf("chain registration failed for charity %s: %w", created.Id, err)
	}

	if err := c.Store.SetCharitySettlement(ctx, created.Id, onChainID, txHash); err != nil {
		return nil, fmt.Errorf("failed to record charity settlement: %w", err)
	}

	created.OnChainID = &onChainID
	created.TransactionHash = &txHash
	return created, nil
}

// CreateCampaign persists the campaign and creates it on-chain, with the
// same full-rollback policy as charity registration. When settlement is
// enabled the owning charity must already have an on-chain id.
func (c *Coordinator) CreateCampaign(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	if c.Chain.IsConfigured() {
		charity, err := c.Store.GetCharity(ctx, campaign.CharityId)
		if err != nil {
			return nil, fmt.Errorf("failed to load owning charity: %w", err)
		}
		if charity.OnChainID == nil {
			return nil, ErrCharityNotOnChain
		}
	}

	created, err := c.Store.CreateCampaign(ctx, campaign)
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	if !c.Chain.IsConfigured() {
		c.Logger.Info("campaign created without chain settlement", slog.String("campaign_id", created.Id))
		return created, nil
	}

	charity, err := c.Store.GetCharity(ctx, created.CharityId)
	if err != nil {
		return nil, fmt.Errorf("failed to load owning charity: %w", err)
	}

	onChainID, txHash, err := c.Chain.CreateCampaign(ctx, *charity.OnChainID, created.Title, created.Description,
		GoalCentsToSmallestUnit(created.GoalAmount), created.StartDate.Unix(), created.EndDate.Unix())
	if err != nil {
		c.Logger.Error("campaign chain creation failed, rolling back",
			slog.String("campaign_id", created.Id), slog.String("error", err.Error()))
		if delErr := c.Store.DeleteCampaign(ctx, created.Id); delErr != nil {
			c.Logger.Error("rollback of campaign failed", slog.String("campaign_id", created.Id), slog.String("error", delErr.Error()))
		}
		return nil, fmt.Errorf("chain creation failed for campaign %s: %w", created.Id, err)
	}

	if err := c.Store.SetCampaignSettlement(ctx, created.Id, onChainID, txHash); err != nil {
		return nil, fmt.Errorf("failed to record campaign settlement: %w", err)
	}

	created.OnChainID = &onChainID
	created.TransactionHash = &txHash
	return created, nil
}

// SettleDonation submits a completed, not-yet-settled donation to the chain
// and records the returned hash. It reports whether a settlement was
// performed. Chain failures are logged and swallowed: the donation stays
// with a null hash for later remediation, and the enclosing operation still
// succeeds for the donor.
func (c *Coordinator) SettleDonation(ctx context.Context, donation *models.Donation) (bool, error) {
	if donation.Status != models.DonationCompleted || donation.Settled() {
		return false, nil
	}
	if !c.Chain.IsConfigured() {
		c.Logger.Info("donation recorded without chain settlement", slog.String("donation_id", donation.Id))
		return false, nil
	}
	if donation.Amount == nil || *donation.Amount <= 0 {
		// Token-only donations settle value separately.
		return false, nil
	}

	campaign, err := c.Store.GetCampaign(ctx, donation.CampaignId)
	if err != nil {
		return false, fmt.Errorf("failed to load campaign for donation settlement: %w", err)
	}
	if campaign.OnChainID == nil {
		c.Logger.Warn("donation settlement skipped, campaign has no on-chain id",
			slog.String("donation_id", donation.Id), slog.String("campaign_id", campaign.Id))
		return false, nil
	}

	txHash, err := c.Chain.DonateNative(ctx, *campaign.OnChainID, *donation.Amount, CentsToValueWei(*donation.Amount))
	if err != nil {
		c.logChainFailure("donation", donation.Id, err)
		return false, nil
	}

	if err := c.Store.SetDonationSettlement(ctx, donation.Id, txHash); err != nil {
		if errors.Is(err, storage.ErrAlreadySettled) {
			c.Logger.Warn("donation settled concurrently", slog.String("donation_id", donation.Id))
			return false, nil
		}
		return false, fmt.Errorf("failed to record donation settlement: %w", err)
	}

	donation.TransactionHash = &txHash
	return true, nil
}

// SettleEvent submits a completed, not-yet-settled fund-allocation event to
// the chain and records the returned hash. Same keep-local policy as
// donations: an administrator can re-run settlement later.
func (c *Coordinator) SettleEvent(ctx context.Context, event *models.CampaignEvent) (bool, error) {
	if event.Status != models.EventCompleted || event.Settled() {
		return false, nil
	}
	if !c.Chain.IsConfigured() {
		c.Logger.Info("event recorded without chain settlement", slog.String("event_id", event.Id))
		return false, nil
	}

	campaign, err := c.Store.GetCampaign(ctx, event.CampaignId)
	if err != nil {
		return false, fmt.Errorf("failed to load campaign for event settlement: %w", err)
	}
	if campaign.OnChainID == nil {
		c.Logger.Warn("event settlement skipped, campaign has no on-chain id",
			slog.String("event_id", event.Id), slog.String("campaign_id", campaign.Id))
		return false, nil
	}

	txHash, err := c.Chain.CreateCampaignEvent(ctx, *campaign.OnChainID, event.Amount, event.Title, event.Description)
	if err != nil {
		c.logChainFailure("campaign event", event.Id, err)
		return false, nil
	}

	if err := c.Store.SetEventSettlement(ctx, event.Id, txHash); err != nil {
		if errors.Is(err, storage.ErrAlreadySettled) {
			c.Logger.Warn("event settled concurrently", slog.String("event_id", event.Id))
			return false, nil
		}
		return false, fmt.Errorf("failed to record event settlement: %w", err)
	}

	event.TransactionHash = &txHash
	return true, nil
}

// WithdrawFunds withdraws part of a charity's settled holdings. Unlike the
// creation flows there is no local row to roll back; the transaction hash
// is returned to the caller for disclosure.
func (c *Coordinator) WithdrawFunds(ctx context.Context, charityID string, amountCents int64) (string, error) {
	if !c.Chain.IsConfigured() {
		return "", chain.ErrNotConfigured
	}

	charity, err := c.Store.GetCharity(ctx, charityID)
	if err != nil {
		return "", fmt.Errorf("failed to load charity for withdrawal: %w", err)
	}
	if charity.OnChainID == nil {
		return "", ErrCharityNotOnChain
	}

	txHash, err := c.Chain.WithdrawNative(ctx, *charity.OnChainID, CentsToValueWei(amountCents))
	if err != nil {
		return "", fmt.Errorf("chain withdrawal failed for charity %s: %w", charityID, err)
	}

	return txHash, nil
}

// logChainFailure logs an execution failure and a timeout differently: a
// timed-out transaction may still mine, which matters to the operator
// deciding whether to resubmit.
func (c *Coordinator) logChainFailure(entity, id string, err error) {
	var timeout *chain.TimeoutError
	if errors.As(err, &timeout) {
		c.Logger.Error("chain settlement timed out, outcome unknown",
			slog.String("entity", entity), slog.String("id", id), slog.String("error", err.Error()))
		return
	}
	c.Logger.Error("chain settlement failed",
		slog.String("entity", entity), slog.String("id", id), slog.String("error", err.Error()))
}
