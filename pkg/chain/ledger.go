package chain

import (
	"context"
	"math/big"
)

// Ledger defines the contract operations the settlement coordinator needs.
// The concrete Client implements it; tests substitute a generated mock.
type Ledger interface {
	// IsConfigured reports whether chain settlement is available. All other
	// methods fail with ErrNotConfigured when false.
	IsConfigured() bool

	// RegisterCharity registers a charity and returns its emitted on-chain
	// id and the transaction hash.
	RegisterCharity(ctx context.Context, wallet, name, metadataURI string) (int64, string, error)

	// CreateCampaign creates a campaign and returns its emitted on-chain id
	// and the transaction hash.
	CreateCampaign(ctx context.Context, charityOnChainID int64, title, description string, goalAmount *big.Int, startUnix, endUnix int64) (int64, string, error)

	// DonateNative records a donation, attaching value in the native unit
	// and the actual fiat amount in cents.
	DonateNative(ctx context.Context, campaignOnChainID, amountCents int64, value *big.Int) (string, error)

	// WithdrawNative withdraws funds held for a charity.
	WithdrawNative(ctx context.Context, charityOnChainID int64, amount *big.Int) (string, error)

	// CreateCampaignEvent discloses a fund allocation in fiat cents.
	CreateCampaignEvent(ctx context.Context, campaignOnChainID, amountCents int64, title, description string) (string, error)
}

// Make sure the client conforms to the interface
var _ Ledger = (*Client)(nil)
