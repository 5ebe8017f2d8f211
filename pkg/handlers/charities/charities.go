package charities

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/clearfund/charity-ledger/pkg/api"
	"github.com/clearfund/charity-ledger/pkg/chain"
	"github.com/clearfund/charity-ledger/pkg/mapping"
	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/clearfund/charity-ledger/pkg/settlement"
	"github.com/clearfund/charity-ledger/pkg/storage"
)

// CharitiesHandler holds the dependencies for charity-related handlers.
type CharitiesHandler struct {
	Store       storage.Storage
	Coordinator *settlement.Coordinator
}

// NewCharitiesHandler creates a new CharitiesHandler.
func NewCharitiesHandler(store storage.Storage, coordinator *settlement.Coordinator) *CharitiesHandler {
	return &CharitiesHandler{Store: store, Coordinator: coordinator}
}

// CreateCharity registers a new charity through the settlement coordinator.
func (h *CharitiesHandler) CreateCharity(w http.ResponseWriter, r *http.Request) {
	var newCharity api.NewCharity
	if err := json.NewDecoder(r.Body).Decode(&newCharity); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newCharity.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	domainCharity := mapping.FromNewCharity(newCharity)

	created, err := h.Coordinator.RegisterCharity(r.Context(), domainCharity)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create charity: %v", err), http.StatusInternalServerError)
		return
	}

	apiCharity := mapping.ToApiCharity(created)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiCharity); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetCharityById retrieves a single charity.
func (h *CharitiesHandler) GetCharityById(w http.ResponseWriter, r *http.Request, charityId string) {
	domainCharity, err := h.Store.GetCharity(r.Context(), charityId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Charity not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve charity: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiCharity := mapping.ToApiCharity(domainCharity)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiCharity); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListCharities retrieves all charities, newest first.
func (h *CharitiesHandler) ListCharities(w http.ResponseWriter, r *http.Request) {
	domainCharities, err := h.Store.ListCharities(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve charities: %v", err), http.StatusInternalServerError)
		return
	}

	sort.Slice(domainCharities, func(i, j int) bool {
		return domainCharities[i].CreatedAt.After(domainCharities[j].CreatedAt)
	})

	apiCharities := make([]api.Charity, len(domainCharities))
	for i := range domainCharities {
		apiCharities[i] = mapping.ToApiCharity(&domainCharities[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiCharities); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// DeleteCharity deletes a charity and all campaigns, donations and events
// under it.
func (h *CharitiesHandler) DeleteCharity(w http.ResponseWriter, r *http.Request, charityId string) {
	if err := h.Store.DeleteCharity(r.Context(), charityId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Charity not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to delete charity: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCharityStatistics aggregates fundraising totals across the charity's
// campaigns.
func (h *CharitiesHandler) GetCharityStatistics(w http.ResponseWriter, r *http.Request, charityId string) {
	if _, err := h.Store.GetCharity(r.Context(), charityId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Charity not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve charity: %v", err), http.StatusInternalServerError)
		}
		return
	}

	campaigns, err := h.Store.ListCampaignsByCharity(r.Context(), charityId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve campaigns: %v", err), http.StatusInternalServerError)
		return
	}

	var totalRaised, totalGoal int64
	activeCampaigns := 0
	totalDonations := 0
	for i := range campaigns {
		c := &campaigns[i]
		totalRaised += c.RaisedAmount
		totalGoal += c.GoalAmount
		if c.Status == models.CampaignActive {
			activeCampaigns++
		}

		donations, err := h.Store.ListDonationsByCampaign(r.Context(), c.Id)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to retrieve donations: %v", err), http.StatusInternalServerError)
			return
		}
		for j := range donations {
			if donations[j].Status == models.DonationCompleted {
				totalDonations++
			}
		}
	}

	stats := api.CharityStatistics{
		TotalCampaigns:     len(campaigns),
		ActiveCampaigns:    activeCampaigns,
		TotalRaised:        mapping.FormatCents(totalRaised),
		TotalGoal:          mapping.FormatCents(totalGoal),
		ProgressPercentage: mapping.ProgressPercentage(totalRaised, totalGoal),
		TotalDonations:     totalDonations,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// WithdrawFunds submits an on-chain withdrawal of the charity's settled
// funds and returns the transaction reference.
func (h *CharitiesHandler) WithdrawFunds(w http.ResponseWriter, r *http.Request, charityId string) {
	var req api.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	amountCents, err := mapping.ParseAmountCents(req.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txHash, err := h.Coordinator.WithdrawFunds(r.Context(), charityId, amountCents)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Charity not found", http.StatusNotFound)
		case errors.Is(err, settlement.ErrCharityNotOnChain):
			http.Error(w, "Charity is not registered on-chain", http.StatusUnprocessableEntity)
		case errors.Is(err, chain.ErrNotConfigured):
			http.Error(w, "Chain settlement is not configured", http.StatusUnprocessableEntity)
		default:
			http.Error(w, fmt.Sprintf("Failed to withdraw funds: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(api.WithdrawResponse{TransactionHash: txHash}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
