package storage

import (
	"context"

	"github.com/clearfund/charity-ledger/pkg/models"
)

// DonationReader defines the interface for reading donation data.
type DonationReader interface {
	// GetDonation retrieves a donation by its ID.
	GetDonation(ctx context.Context, donationID string) (*models.Donation, error)

	// ListDonationsByCampaign retrieves all donations made to a campaign.
	ListDonationsByCampaign(ctx context.Context, campaignID string) ([]models.Donation, error)

	// ListDonationsByDonor retrieves all donations made by a donor.
	ListDonationsByDonor(ctx context.Context, donorID string) ([]models.Donation, error)
}

// DonationManager defines the interface for creating and mutating donations.
type DonationManager interface {
	// CreateDonation creates a new donation record.
	CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error)

	// DeleteDonation deletes a donation.
	DeleteDonation(ctx context.Context, donationID string) error

	// UpdateDonationStatus transitions a donation to the given status. The
	// write is conditional on the current status matching expected; a stale
	// expectation returns ErrVersionConflict.
	UpdateDonationStatus(ctx context.Context, donationID string, expected, next models.DonationStatus) error

	// SetDonationSettlement records the settlement transaction hash. It fails
	// with ErrAlreadySettled if a hash is present.
	SetDonationSettlement(ctx context.Context, donationID string, txHash string) error
}

// DonationStore combines the reader and manager interfaces.
type DonationStore interface {
	DonationReader
	DonationManager
}
