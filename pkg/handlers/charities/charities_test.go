package charities

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
	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/clearfund/charity-ledger/pkg/settlement"
	storage_mocks "github.com/clearfund/charity-ledger/pkg/storage/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func int64Ptr(v int64) *int64 { return &v }

func newTestHandler(mockStorage *storage_mocks.Storage, mockChain *chain_mocks.Ledger) *CharitiesHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coordinator := settlement.New(mockStorage, mockChain, logger, "0xadmin", "https://ledger.example.org")
	return NewCharitiesHandler(mockStorage, coordinator)
}

func TestCreateCharity(t *testing.T) {
	t.Run("Registers On Chain", func(t *testing.T) {
		// 1. Setup
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		created := &models.Charity{
			Id:           uuid.New().String(),
			Name:         "Water For All",
			ContactEmail: "ops@waterforall.org",
		}
		metadataURI := "https://ledger.example.org/charities/" + created.Id + "/metadata"

		// 2. Mock expectations
		mockStorage.On("CreateCharity", mock.Anything, mock.AnythingOfType("*models.Charity")).Return(created, nil)
		mockChain.On("IsConfigured").Return(true)
		mockChain.On("RegisterCharity", mock.Anything, "0xadmin", created.Name, metadataURI).Return(int64(7), "0xregister", nil)
		mockStorage.On("SetCharitySettlement", mock.Anything, created.Id, int64(7), "0xregister").Return(nil)

		// 3. Execute
		body, _ := json.Marshal(api.NewCharity{Name: "Water For All", ContactEmail: "ops@waterforall.org"})
		req := httptest.NewRequest(http.MethodPost, "/charities", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateCharity(rr, req)

		// 4. Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Charity
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, int64(7), *got.OnChainId)
		assert.Equal(t, "0xregister", *got.TransactionHash)
		mockStorage.AssertExpectations(t)
		mockChain.AssertExpectations(t)
	})

	t.Run("Missing Name", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		body, _ := json.Marshal(api.NewCharity{ContactEmail: "ops@waterforall.org"})
		req := httptest.NewRequest(http.MethodPost, "/charities", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateCharity(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "CreateCharity", mock.Anything, mock.Anything)
	})
}

func TestWithdrawFunds(t *testing.T) {
	charityID := uuid.New().String()

	withdrawReq := func(amount string) *http.Request {
		body, _ := json.Marshal(api.WithdrawRequest{Amount: amount})
		return httptest.NewRequest(http.MethodPost, "/charities/"+charityID+"/withdraw", bytes.NewReader(body))
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		charity := &models.Charity{Id: charityID, Name: "Water For All", OnChainID: int64Ptr(7)}

		mockChain.On("IsConfigured").Return(true)
		mockStorage.On("GetCharity", mock.Anything, charityID).Return(charity, nil)
		// $500.00 at 1 cent = 1e11 wei.
		mockChain.On("WithdrawNative", mock.Anything, int64(7), big.NewInt(5_000_000_000_000_000)).Return("0xwithdraw", nil)

		rr := httptest.NewRecorder()
		handler.WithdrawFunds(rr, withdrawReq("500.00"), charityID)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.WithdrawResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "0xwithdraw", got.TransactionHash)
		mockStorage.AssertExpectations(t)
		mockChain.AssertExpectations(t)
	})

	t.Run("Charity Not On Chain", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		charity := &models.Charity{Id: charityID, Name: "Water For All"}

		mockChain.On("IsConfigured").Return(true)
		mockStorage.On("GetCharity", mock.Anything, charityID).Return(charity, nil)

		rr := httptest.NewRecorder()
		handler.WithdrawFunds(rr, withdrawReq("500.00"), charityID)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockChain.AssertNotCalled(t, "WithdrawNative", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Chain Not Configured", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		mockChain.On("IsConfigured").Return(false)

		rr := httptest.NewRecorder()
		handler.WithdrawFunds(rr, withdrawReq("500.00"), charityID)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStorage.AssertNotCalled(t, "GetCharity", mock.Anything, mock.Anything)
	})

	t.Run("Negative Amount", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		rr := httptest.NewRecorder()
		handler.WithdrawFunds(rr, withdrawReq("-10.00"), charityID)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockChain.AssertNotCalled(t, "IsConfigured")
	})
}

func TestGetCharityStatistics(t *testing.T) {
	mockStorage := new(storage_mocks.Storage)
	mockChain := new(chain_mocks.Ledger)
	handler := newTestHandler(mockStorage, mockChain)

	charityID := uuid.New().String()
	charity := &models.Charity{Id: charityID, Name: "Water For All"}
	now := time.Now()
	campaigns := []models.Campaign{
		{
			Id: uuid.New().String(), CharityId: charityID, GoalAmount: 500_000, RaisedAmount: 500_000,
			Status: models.CampaignCompleted, StartDate: now.Add(-72 * time.Hour), EndDate: now.Add(-time.Hour),
		},
		{
			Id: uuid.New().String(), CharityId: charityID, GoalAmount: 500_000, RaisedAmount: 250_000,
			Status: models.CampaignActive, StartDate: now.Add(-24 * time.Hour), EndDate: now.Add(24 * time.Hour),
		},
	}
	amount := int64(10_000)
	completedDonation := models.Donation{Id: uuid.New().String(), Amount: &amount, Status: models.DonationCompleted}
	pendingDonation := models.Donation{Id: uuid.New().String(), Amount: &amount, Status: models.DonationPending}

	mockStorage.On("GetCharity", mock.Anything, charityID).Return(charity, nil)
	mockStorage.On("ListCampaignsByCharity", mock.Anything, charityID).Return(campaigns, nil)
	mockStorage.On("ListDonationsByCampaign", mock.Anything, campaigns[0].Id).
		Return([]models.Donation{completedDonation, completedDonation}, nil)
	mockStorage.On("ListDonationsByCampaign", mock.Anything, campaigns[1].Id).
		Return([]models.Donation{completedDonation, pendingDonation}, nil)

	req := httptest.NewRequest(http.MethodGet, "/charities/"+charityID+"/statistics", nil)
	rr := httptest.NewRecorder()

	handler.GetCharityStatistics(rr, req, charityID)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got api.CharityStatistics
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, 2, got.TotalCampaigns)
	assert.Equal(t, 1, got.ActiveCampaigns)
	assert.Equal(t, "7500.00", got.TotalRaised)
	assert.Equal(t, "10000.00", got.TotalGoal)
	assert.Equal(t, 75.0, got.ProgressPercentage)
	assert.Equal(t, 3, got.TotalDonations)
	mockStorage.AssertExpectations(t)
}
