package donations

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clearfund/charity-ledger/pkg/api"
	chain_mocks "github.com/clearfund/charity-ledger/pkg/chain/mocks"
	"github.com/clearfund/charity-ledger/pkg/ledger"
	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/clearfund/charity-ledger/pkg/reconcile"
	"github.com/clearfund/charity-ledger/pkg/settlement"
	storage_mocks "github.com/clearfund/charity-ledger/pkg/storage/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func int64Ptr(v int64) *int64 { return &v }

func newTestHandler(mockStorage *storage_mocks.Storage, mockChain *chain_mocks.Ledger) *DonationsHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coordinator := settlement.New(mockStorage, mockChain, logger, "0xadmin", "https://ledger.example.org")
	trigger := reconcile.New(ledger.New(mockStorage, mockStorage), coordinator, logger)
	return NewDonationsHandler(mockStorage, coordinator, trigger)
}

func patchStatus(status string) *http.Request {
	body, _ := json.Marshal(api.UpdateDonationStatus{Status: status})
	return httptest.NewRequest(http.MethodPatch, "/donations/ignored/status", bytes.NewReader(body))
}

func TestUpdateDonationStatus(t *testing.T) {
	now := time.Now()

	t.Run("Completing Settles On Chain", func(t *testing.T) {
		// 1. Setup
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		campaign := &models.Campaign{
			Id:         uuid.New().String(),
			CharityId:  uuid.New().String(),
			GoalAmount: 50_000,
			Status:     models.CampaignActive,
			StartDate:  now.Add(-24 * time.Hour),
			EndDate:    now.Add(24 * time.Hour),
			Version:    1,
			OnChainID:  int64Ptr(12),
		}
		donation := &models.Donation{
			Id:         uuid.New().String(),
			CampaignId: campaign.Id,
			DonorId:    "donor-1",
			Amount:     int64Ptr(10_000),
			Status:     models.DonationPending,
			DonatedAt:  now,
		}

		// 2. Mock expectations
		mockStorage.On("GetDonation", mock.Anything, donation.Id).Return(donation, nil)
		mockStorage.On("UpdateDonationStatus", mock.Anything, donation.Id, models.DonationPending, models.DonationCompleted).Return(nil)
		mockStorage.On("GetCampaign", mock.Anything, campaign.Id).Return(campaign, nil)
		completed := *donation
		completed.Status = models.DonationCompleted
		mockStorage.On("ListDonationsByCampaign", mock.Anything, campaign.Id).Return([]models.Donation{completed}, nil)
		mockStorage.On("UpdateCampaignDerived", mock.Anything, campaign.Id, int64(10_000), models.CampaignActive, int64(1)).Return(nil)

		mockChain.On("IsConfigured").Return(true)
		// $100.00 donated at 1 cent = 1e11 wei.
		mockChain.On("DonateNative", mock.Anything, int64(12), int64(10_000), big.NewInt(1_000_000_000_000_000)).Return("0xd0nate", nil)
		mockStorage.On("SetDonationSettlement", mock.Anything, donation.Id, "0xd0nate").Return(nil)

		// 3. Execute
		rr := httptest.NewRecorder()
		handler.UpdateDonationStatus(rr, patchStatus(string(models.DonationCompleted)), donation.Id)

		// 4. Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Donation
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, string(models.DonationCompleted), got.Status)
		assert.Equal(t, "0xd0nate", *got.TransactionHash)
		mockStorage.AssertExpectations(t)
		mockChain.AssertExpectations(t)
	})

	t.Run("Refund Releases Raised Amount", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		campaign := &models.Campaign{
			Id:           uuid.New().String(),
			CharityId:    uuid.New().String(),
			GoalAmount:   50_000,
			RaisedAmount: 10_000,
			Status:       models.CampaignActive,
			StartDate:    now.Add(-24 * time.Hour),
			EndDate:      now.Add(24 * time.Hour),
			Version:      2,
		}
		donation := &models.Donation{
			Id:         uuid.New().String(),
			CampaignId: campaign.Id,
			DonorId:    "donor-1",
			Amount:     int64Ptr(10_000),
			Status:     models.DonationCompleted,
			DonatedAt:  now,
		}

		mockStorage.On("GetDonation", mock.Anything, donation.Id).Return(donation, nil)
		mockStorage.On("UpdateDonationStatus", mock.Anything, donation.Id, models.DonationCompleted, models.DonationFailed).Return(nil)
		mockStorage.On("GetCampaign", mock.Anything, campaign.Id).Return(campaign, nil)
		failed := *donation
		failed.Status = models.DonationFailed
		mockStorage.On("ListDonationsByCampaign", mock.Anything, campaign.Id).Return([]models.Donation{failed}, nil)
		mockStorage.On("UpdateCampaignDerived", mock.Anything, campaign.Id, int64(0), models.CampaignActive, int64(2)).Return(nil)

		rr := httptest.NewRecorder()
		handler.UpdateDonationStatus(rr, patchStatus(string(models.DonationFailed)), donation.Id)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Donation
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, string(models.DonationFailed), got.Status)
		mockChain.AssertNotCalled(t, "DonateNative", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Failed Is Final", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		donation := &models.Donation{
			Id:         uuid.New().String(),
			CampaignId: uuid.New().String(),
			DonorId:    "donor-1",
			Amount:     int64Ptr(10_000),
			Status:     models.DonationFailed,
		}

		mockStorage.On("GetDonation", mock.Anything, donation.Id).Return(donation, nil)

		rr := httptest.NewRecorder()
		handler.UpdateDonationStatus(rr, patchStatus(string(models.DonationCompleted)), donation.Id)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStorage.AssertNotCalled(t, "UpdateDonationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Status", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		rr := httptest.NewRecorder()
		handler.UpdateDonationStatus(rr, patchStatus("REVERSED"), uuid.New().String())

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "GetDonation", mock.Anything, mock.Anything)
	})

	t.Run("Pending Is Not A Target", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		rr := httptest.NewRecorder()
		handler.UpdateDonationStatus(rr, patchStatus(string(models.DonationPending)), uuid.New().String())

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "GetDonation", mock.Anything, mock.Anything)
	})
}

func TestListDonationsByDonor(t *testing.T) {
	mockStorage := new(storage_mocks.Storage)
	mockChain := new(chain_mocks.Ledger)
	handler := newTestHandler(mockStorage, mockChain)

	now := time.Now()
	older := models.Donation{
		Id:         uuid.New().String(),
		CampaignId: uuid.New().String(),
		DonorId:    "donor-1",
		Amount:     int64Ptr(5_000),
		Status:     models.DonationCompleted,
		DonatedAt:  now.Add(-time.Hour),
	}
	newer := models.Donation{
		Id:         uuid.New().String(),
		CampaignId: uuid.New().String(),
		DonorId:    "donor-1",
		Amount:     int64Ptr(7_500),
		Status:     models.DonationPending,
		DonatedAt:  now,
	}

	mockStorage.On("ListDonationsByDonor", mock.Anything, "donor-1").Return([]models.Donation{older, newer}, nil)

	req := httptest.NewRequest(http.MethodGet, "/donors/donor-1/donations", nil)
	rr := httptest.NewRecorder()

	handler.ListDonationsByDonor(rr, req, "donor-1")

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []api.Donation
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Len(t, got, 2)
	assert.Equal(t, newer.Id, got[0].Id.String())
	mockStorage.AssertExpectations(t)
}
