package events

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
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

func newTestHandler(mockStorage *storage_mocks.Storage, mockChain *chain_mocks.Ledger) *EventsHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coordinator := settlement.New(mockStorage, mockChain, logger, "0xadmin", "https://ledger.example.org")
	trigger := reconcile.New(ledger.New(mockStorage, mockStorage), coordinator, logger)
	return NewEventsHandler(mockStorage, trigger)
}

func patchStatus(status models.EventStatus) *http.Request {
	body, _ := json.Marshal(api.UpdateEventStatus{Status: string(status)})
	return httptest.NewRequest(http.MethodPatch, "/events/ignored/status", bytes.NewReader(body))
}

func TestUpdateEventStatus(t *testing.T) {
	campaignID := uuid.New().String()
	newCampaign := func() *models.Campaign {
		now := time.Now()
		return &models.Campaign{
			Id:           campaignID,
			CharityId:    uuid.New().String(),
			GoalAmount:   500_000,
			RaisedAmount: 500_000,
			Status:       models.CampaignCompleted,
			StartDate:    now.Add(-48 * time.Hour),
			EndDate:      now.Add(-time.Hour),
			Version:      4,
			OnChainID:    int64Ptr(9),
		}
	}

	t.Run("Completing Fires Settlement", func(t *testing.T) {
		// 1. Setup
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		campaign := newCampaign()
		event := &models.CampaignEvent{
			Id:          uuid.New().String(),
			CampaignId:  campaignID,
			CreatedBy:   "admin-1",
			Title:       "Well Drilling Phase 1",
			Description: "Drilling equipment rental",
			Amount:      50_000,
			Status:      models.EventPending,
		}

		// 2. Mock expectations. Pending and completed both hold the
		// allocation, so the transition carries a zero delta.
		mockStorage.On("GetCampaignEvent", mock.Anything, event.Id).Return(event, nil)
		mockStorage.On("GetCampaign", mock.Anything, campaignID).Return(campaign, nil)
		mockStorage.On("UpdateCampaignEventStatus", mock.Anything, event, models.EventCompleted, int64(0), campaign).Return(nil)

		mockChain.On("IsConfigured").Return(true)
		mockChain.On("CreateCampaignEvent", mock.Anything, int64(9), int64(50_000), event.Title, event.Description).Return("0xevent", nil)
		mockStorage.On("SetEventSettlement", mock.Anything, event.Id, "0xevent").Return(nil)

		// 3. Execute
		rr := httptest.NewRecorder()
		handler.UpdateEventStatus(rr, patchStatus(models.EventCompleted), event.Id)

		// 4. Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.CampaignEvent
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, string(models.EventCompleted), got.Status)
		assert.Equal(t, "0xevent", *got.TransactionHash)
		mockStorage.AssertExpectations(t)
		mockChain.AssertExpectations(t)
	})

	t.Run("Cancelling Releases The Allocation", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		campaign := newCampaign()
		event := &models.CampaignEvent{
			Id:         uuid.New().String(),
			CampaignId: campaignID,
			CreatedBy:  "admin-1",
			Title:      "Well Drilling Phase 1",
			Amount:     50_000,
			Status:     models.EventPending,
		}

		mockStorage.On("GetCampaignEvent", mock.Anything, event.Id).Return(event, nil)
		mockStorage.On("GetCampaign", mock.Anything, campaignID).Return(campaign, nil)
		mockStorage.On("UpdateCampaignEventStatus", mock.Anything, event, models.EventCancelled, int64(-50_000), campaign).Return(nil)

		rr := httptest.NewRecorder()
		handler.UpdateEventStatus(rr, patchStatus(models.EventCancelled), event.Id)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.CampaignEvent
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, string(models.EventCancelled), got.Status)
		mockChain.AssertNotCalled(t, "CreateCampaignEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Reinstating Revalidates Headroom", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		campaign := newCampaign()
		campaign.RaisedAmount = 100_000
		event := &models.CampaignEvent{
			Id:         uuid.New().String(),
			CampaignId: campaignID,
			CreatedBy:  "admin-1",
			Amount:     50_000,
			Status:     models.EventCancelled,
		}
		held := []models.CampaignEvent{
			*event,
			{Id: uuid.New().String(), CampaignId: campaignID, Amount: 80_000, Status: models.EventPending},
		}

		mockStorage.On("GetCampaignEvent", mock.Anything, event.Id).Return(event, nil)
		mockStorage.On("GetCampaign", mock.Anything, campaignID).Return(campaign, nil)
		mockStorage.On("ListEventsByCampaign", mock.Anything, campaignID).Return(held, nil)

		rr := httptest.NewRecorder()
		handler.UpdateEventStatus(rr, patchStatus(models.EventPending), event.Id)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStorage.AssertNotCalled(t, "UpdateCampaignEventStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Completed Is Final", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		hash := "0xdone"
		event := &models.CampaignEvent{
			Id:              uuid.New().String(),
			CampaignId:      campaignID,
			CreatedBy:       "admin-1",
			Amount:          50_000,
			Status:          models.EventCompleted,
			TransactionHash: &hash,
		}

		mockStorage.On("GetCampaignEvent", mock.Anything, event.Id).Return(event, nil)

		rr := httptest.NewRecorder()
		handler.UpdateEventStatus(rr, patchStatus(models.EventCancelled), event.Id)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStorage.AssertNotCalled(t, "UpdateCampaignEventStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("No Op When Already In Target Status", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockChain := new(chain_mocks.Ledger)
		handler := newTestHandler(mockStorage, mockChain)

		event := &models.CampaignEvent{
			Id:         uuid.New().String(),
			CampaignId: campaignID,
			CreatedBy:  "admin-1",
			Amount:     50_000,
			Status:     models.EventCancelled,
		}

		mockStorage.On("GetCampaignEvent", mock.Anything, event.Id).Return(event, nil)

		rr := httptest.NewRecorder()
		handler.UpdateEventStatus(rr, patchStatus(models.EventCancelled), event.Id)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertNotCalled(t, "UpdateCampaignEventStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
