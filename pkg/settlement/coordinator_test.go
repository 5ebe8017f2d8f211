package settlement_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/clearfund/charity-ledger/pkg/chain"
	chainmocks "github.com/clearfund/charity-ledger/pkg/chain/mocks"
	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/clearfund/charity-ledger/pkg/settlement"
	"github.com/clearfund/charity-ledger/pkg/storage"
	storagemocks "github.com/clearfund/charity-ledger/pkg/storage/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	adminWallet = "0x00000000000000000000000000000000000000aa"
	metadataURL = "https://ledger.example.org"
)

func ptrInt64(v int64) *int64 { return &v }

func newCoordinator(store *storagemocks.Storage, chainLedger *chainmocks.Ledger) *settlement.Coordinator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return settlement.New(store, chainLedger, logger, adminWallet, metadataURL)
}

func TestRegisterCharity(t *testing.T) {
	charity := func() *models.Charity {
		return &models.Charity{Name: "Clean Water Fund", ContactEmail: "ops@cleanwater.org"}
	}

	t.Run("Local Only When Chain Unconfigured", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		created := charity()
		created.Id = uuid.New().String()
		mockStore.On("CreateCharity", mock.Anything, mock.Anything).Return(created, nil)
		mockChain.On("IsConfigured").Return(false)

		result, err := coordinator.RegisterCharity(context.Background(), charity())

		assert.NoError(t, err)
		assert.Nil(t, result.OnChainID)
		assert.Nil(t, result.TransactionHash)
		mockChain.AssertNotCalled(t, "RegisterCharity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success Records Settlement Pair", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		created := charity()
		created.Id = uuid.New().String()
		mockStore.On("CreateCharity", mock.Anything, mock.Anything).Return(created, nil)
		mockChain.On("IsConfigured").Return(true)
		mockChain.On("RegisterCharity", mock.Anything, adminWallet, "Clean Water Fund", metadataURL+"/charities/"+created.Id+"/metadata").
			Return(int64(7), "0xabc123", nil)
		mockStore.On("SetCharitySettlement", mock.Anything, created.Id, int64(7), "0xabc123").Return(nil)

		result, err := coordinator.RegisterCharity(context.Background(), charity())

		assert.NoError(t, err)
		assert.Equal(t, int64(7), *result.OnChainID)
		assert.Equal(t, "0xabc123", *result.TransactionHash)
		mockStore.AssertExpectations(t)
		mockChain.AssertExpectations(t)
	})

	t.Run("Chain Failure Rolls Back Local Row", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		created := charity()
		created.Id = uuid.New().String()
		mockStore.On("CreateCharity", mock.Anything, mock.Anything).Return(created, nil)
		mockChain.On("IsConfigured").Return(true)
		mockChain.On("RegisterCharity", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(int64(0), "", &chain.ExecutionError{TxHash: "0xdead", Err: errors.New("reverted")})
		mockStore.On("DeleteCharity", mock.Anything, created.Id).Return(nil)

		_, err := coordinator.RegisterCharity(context.Background(), charity())

		assert.Error(t, err)
		mockStore.AssertCalled(t, "DeleteCharity", mock.Anything, created.Id)
		mockStore.AssertNotCalled(t, "SetCharitySettlement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCreateCampaign(t *testing.T) {
	charityID := uuid.New().String()

	t.Run("Requires On-Chain Charity When Configured", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		mockChain.On("IsConfigured").Return(true)
		mockStore.On("GetCharity", mock.Anything, charityID).Return(&models.Charity{Id: charityID}, nil)

		_, err := coordinator.CreateCampaign(context.Background(), &models.Campaign{CharityId: charityID})

		assert.ErrorIs(t, err, settlement.ErrCharityNotOnChain)
		mockStore.AssertNotCalled(t, "CreateCampaign", mock.Anything, mock.Anything)
	})

	t.Run("Chain Failure Rolls Back Local Row", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		onChainCharity := &models.Charity{Id: charityID, OnChainID: ptrInt64(7)}
		created := &models.Campaign{Id: uuid.New().String(), CharityId: charityID, Title: "Well Drilling", GoalAmount: 100_000}

		mockChain.On("IsConfigured").Return(true)
		mockStore.On("GetCharity", mock.Anything, charityID).Return(onChainCharity, nil)
		mockStore.On("CreateCampaign", mock.Anything, mock.Anything).Return(created, nil)
		mockChain.On("CreateCampaign", mock.Anything, int64(7), "Well Drilling", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(int64(0), "", &chain.TimeoutError{TxHash: "0xbeef"})
		mockStore.On("DeleteCampaign", mock.Anything, created.Id).Return(nil)

		_, err := coordinator.CreateCampaign(context.Background(), &models.Campaign{CharityId: charityID, Title: "Well Drilling", GoalAmount: 100_000})

		assert.Error(t, err)
		mockStore.AssertCalled(t, "DeleteCampaign", mock.Anything, created.Id)
	})

	t.Run("Goal Submitted In Whole Unit Scaling", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		onChainCharity := &models.Charity{Id: charityID, OnChainID: ptrInt64(7)}
		created := &models.Campaign{Id: uuid.New().String(), CharityId: charityID, Title: "Well Drilling", GoalAmount: 100_000}

		// $1000.00 goal maps to 1000 native units.
		wantGoal := new(big.Int).Mul(big.NewInt(1000), big.NewInt(1_000_000_000_000_000_000))

		mockChain.On("IsConfigured").Return(true)
		mockStore.On("GetCharity", mock.Anything, charityID).Return(onChainCharity, nil)
		mockStore.On("CreateCampaign", mock.Anything, mock.Anything).Return(created, nil)
		mockChain.On("CreateCampaign", mock.Anything, int64(7), "Well Drilling", mock.Anything, wantGoal, mock.Anything, mock.Anything).
			Return(int64(12), "0xfeed", nil)
		mockStore.On("SetCampaignSettlement", mock.Anything, created.Id, int64(12), "0xfeed").Return(nil)

		result, err := coordinator.CreateCampaign(context.Background(), &models.Campaign{CharityId: charityID, Title: "Well Drilling", GoalAmount: 100_000})

		assert.NoError(t, err)
		assert.Equal(t, int64(12), *result.OnChainID)
		mockChain.AssertExpectations(t)
	})
}

func TestSettleDonation(t *testing.T) {
	campaignID := uuid.New().String()
	donation := func() *models.Donation {
		return &models.Donation{
			Id:         uuid.New().String(),
			CampaignId: campaignID,
			Amount:     ptrInt64(10_000),
			Status:     models.DonationCompleted,
		}
	}

	t.Run("Skips Non-Terminal Donation", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		pending := donation()
		pending.Status = models.DonationPending

		settled, err := coordinator.SettleDonation(context.Background(), pending)

		assert.NoError(t, err)
		assert.False(t, settled)
		mockChain.AssertNotCalled(t, "DonateNative", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Skips Already Settled Donation", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		hash := "0xdone"
		settledDonation := donation()
		settledDonation.TransactionHash = &hash

		settled, err := coordinator.SettleDonation(context.Background(), settledDonation)

		assert.NoError(t, err)
		assert.False(t, settled)
		mockChain.AssertNotCalled(t, "DonateNative", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Skips Token-Only Donation", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		tokenOnly := donation()
		tokenOnly.Amount = nil
		tokenOnly.TokenQuantity = "0.5"

		mockChain.On("IsConfigured").Return(true)

		settled, err := coordinator.SettleDonation(context.Background(), tokenOnly)

		assert.NoError(t, err)
		assert.False(t, settled)
		mockChain.AssertNotCalled(t, "DonateNative", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Chain Execution Failure Keeps Local Row", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		mockChain.On("IsConfigured").Return(true)
		mockStore.On("GetCampaign", mock.Anything, campaignID).Return(&models.Campaign{Id: campaignID, OnChainID: ptrInt64(12)}, nil)
		mockChain.On("DonateNative", mock.Anything, int64(12), int64(10_000), mock.Anything).
			Return("", &chain.ExecutionError{TxHash: "0xdead", Err: errors.New("reverted")})

		d := donation()
		settled, err := coordinator.SettleDonation(context.Background(), d)

		// The donor-facing operation must still succeed.
		assert.NoError(t, err)
		assert.False(t, settled)
		assert.Nil(t, d.TransactionHash)
		mockStore.AssertNotCalled(t, "SetDonationSettlement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success Attaches Proportional Value", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		// $100.00 donation carries 0.001 native units of value.
		wantValue := big.NewInt(1_000_000_000_000_000)

		d := donation()
		mockChain.On("IsConfigured").Return(true)
		mockStore.On("GetCampaign", mock.Anything, campaignID).Return(&models.Campaign{Id: campaignID, OnChainID: ptrInt64(12)}, nil)
		mockChain.On("DonateNative", mock.Anything, int64(12), int64(10_000), wantValue).Return("0xcafe", nil)
		mockStore.On("SetDonationSettlement", mock.Anything, d.Id, "0xcafe").Return(nil)

		settled, err := coordinator.SettleDonation(context.Background(), d)

		assert.NoError(t, err)
		assert.True(t, settled)
		assert.Equal(t, "0xcafe", *d.TransactionHash)
		mockChain.AssertExpectations(t)
	})

	t.Run("Concurrent Settlement Loses Cleanly", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		d := donation()
		mockChain.On("IsConfigured").Return(true)
		mockStore.On("GetCampaign", mock.Anything, campaignID).Return(&models.Campaign{Id: campaignID, OnChainID: ptrInt64(12)}, nil)
		mockChain.On("DonateNative", mock.Anything, int64(12), int64(10_000), mock.Anything).Return("0xcafe", nil)
		mockStore.On("SetDonationSettlement", mock.Anything, d.Id, "0xcafe").Return(storage.ErrAlreadySettled)

		settled, err := coordinator.SettleDonation(context.Background(), d)

		assert.NoError(t, err)
		assert.False(t, settled)
	})
}

func TestSettleEvent(t *testing.T) {
	campaignID := uuid.New().String()
	event := func() *models.CampaignEvent {
		return &models.CampaignEvent{
			Id:         uuid.New().String(),
			CampaignId: campaignID,
			Title:      "Well Drilling Phase 1",
			Amount:     40_000,
			Status:     models.EventCompleted,
		}
	}

	t.Run("Success Submits Amount In Cents", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		e := event()
		mockChain.On("IsConfigured").Return(true)
		mockStore.On("GetCampaign", mock.Anything, campaignID).Return(&models.Campaign{Id: campaignID, OnChainID: ptrInt64(12)}, nil)
		mockChain.On("CreateCampaignEvent", mock.Anything, int64(12), int64(40_000), "Well Drilling Phase 1", "").Return("0xeeee", nil)
		mockStore.On("SetEventSettlement", mock.Anything, e.Id, "0xeeee").Return(nil)

		settled, err := coordinator.SettleEvent(context.Background(), e)

		assert.NoError(t, err)
		assert.True(t, settled)
		assert.Equal(t, "0xeeee", *e.TransactionHash)
	})

	t.Run("Skips Campaign Without On-Chain Id", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		mockChain.On("IsConfigured").Return(true)
		mockStore.On("GetCampaign", mock.Anything, campaignID).Return(&models.Campaign{Id: campaignID}, nil)

		settled, err := coordinator.SettleEvent(context.Background(), event())

		assert.NoError(t, err)
		assert.False(t, settled)
		mockChain.AssertNotCalled(t, "CreateCampaignEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Skips Cancelled Event", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		cancelled := event()
		cancelled.Status = models.EventCancelled

		settled, err := coordinator.SettleEvent(context.Background(), cancelled)

		assert.NoError(t, err)
		assert.False(t, settled)
	})
}

func TestWithdrawFunds(t *testing.T) {
	charityID := uuid.New().String()

	t.Run("Requires Configured Chain", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		mockChain.On("IsConfigured").Return(false)

		_, err := coordinator.WithdrawFunds(context.Background(), charityID, 50_000)

		assert.ErrorIs(t, err, chain.ErrNotConfigured)
	})

	t.Run("Success Returns Transaction Hash", func(t *testing.T) {
		mockStore := new(storagemocks.Storage)
		mockChain := new(chainmocks.Ledger)
		coordinator := newCoordinator(mockStore, mockChain)

		// $500.00 maps to 0.005 native units.
		wantAmount := big.NewInt(5_000_000_000_000_000)

		mockChain.On("IsConfigured").Return(true)
		mockStore.On("GetCharity", mock.Anything, charityID).Return(&models.Charity{Id: charityID, OnChainID: ptrInt64(7)}, nil)
		mockChain.On("WithdrawNative", mock.Anything, int64(7), wantAmount).Return("0xw1thdraw", nil)

		hash, err := coordinator.WithdrawFunds(context.Background(), charityID, 50_000)

		assert.NoError(t, err)
		assert.Equal(t, "0xw1thdraw", hash)
	})
}
