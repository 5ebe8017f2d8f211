package storage

import (
	"context"

	"github.com/clearfund/charity-ledger/pkg/models"
)

// CampaignReader defines the interface for reading campaign data.
type CampaignReader interface {
	// GetCampaign retrieves a campaign by its ID.
	GetCampaign(ctx context.Context, campaignID string) (*models.Campaign, error)

	// ListCampaigns retrieves all campaigns.
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)

	// ListCampaignsByCharity retrieves all campaigns owned by a charity.
	ListCampaignsByCharity(ctx context.Context, charityID string) ([]models.Campaign, error)
}

// CampaignManager defines the interface for creating and mutating campaigns.
type CampaignManager interface {
	// CreateCampaign creates a new campaign record.
	CreateCampaign(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error)

	// DeleteCampaign deletes a campaign and, cascading, its donations and events.
	DeleteCampaign(ctx context.Context, campaignID string) error

	// UpdateCampaignDerived persists the recomputed raised amount and status.
	// The write is conditional on the stored version matching the version the
	// values were computed from; a lost race returns ErrVersionConflict.
	UpdateCampaignDerived(ctx context.Context, campaignID string, raisedAmount int64, status models.CampaignStatus, version int64) error

	// SetCampaignSettlement records the on-chain id and transaction hash in a
	// single write. It fails with ErrAlreadySettled if a hash is present.
	SetCampaignSettlement(ctx context.Context, campaignID string, onChainID int64, txHash string) error
}

// CampaignStore combines the reader and manager interfaces.
type CampaignStore interface {
	CampaignReader
	CampaignManager
}
