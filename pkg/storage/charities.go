package storage

import (
	"context"

	"github.com/clearfund/charity-ledger/pkg/models"
)

// CharityReader defines the interface for reading charity data.
type CharityReader interface {
	// GetCharity retrieves a charity by its ID.
	GetCharity(ctx context.Context, charityID string) (*models.Charity, error)

	// ListCharities retrieves all charities.
	ListCharities(ctx context.Context) ([]models.Charity, error)
}

// CharityManager defines the interface for creating and removing charities.
type CharityManager interface {
	// CreateCharity creates a new charity record.
	CreateCharity(ctx context.Context, charity *models.Charity) (*models.Charity, error)

	// DeleteCharity deletes a charity and, cascading, its campaigns with
	// their donations and events.
	DeleteCharity(ctx context.Context, charityID string) error

	// SetCharitySettlement records the on-chain id and transaction hash in a
	// single write. It fails with ErrAlreadySettled if a hash is present.
	SetCharitySettlement(ctx context.Context, charityID string, onChainID int64, txHash string) error
}

// CharityStore combines the reader and manager interfaces.
type CharityStore interface {
	CharityReader
	CharityManager
}
