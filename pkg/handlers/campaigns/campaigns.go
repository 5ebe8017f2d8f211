package campaigns

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/clearfund/charity-ledger/pkg/api"
	"github.com/clearfund/charity-ledger/pkg/ledger"
	"github.com/clearfund/charity-ledger/pkg/mapping"
	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/clearfund/charity-ledger/pkg/reconcile"
	"github.com/clearfund/charity-ledger/pkg/settlement"
	"github.com/clearfund/charity-ledger/pkg/storage"
)

// CampaignsHandler holds the dependencies for campaign-related handlers.
type CampaignsHandler struct {
	Store       storage.Storage
	Coordinator *settlement.Coordinator
	Trigger     *reconcile.Trigger
}

// NewCampaignsHandler creates a new CampaignsHandler.
func NewCampaignsHandler(store storage.Storage, coordinator *settlement.Coordinator, trigger *reconcile.Trigger) *CampaignsHandler {
	return &CampaignsHandler{Store: store, Coordinator: coordinator, Trigger: trigger}
}

// refresh re-evaluates the campaign's status against the clock so that a
// just-elapsed start or end boundary is reflected before any gate check.
func (h *CampaignsHandler) refresh(r *http.Request, campaign *models.Campaign) *models.Campaign {
	updated, err := h.Trigger.OnCampaignSaved(r.Context(), campaign)
	if err != nil {
		// Serve the stored state; a refresh race is not a request failure.
		return campaign
	}
	return updated
}

// CreateCampaign creates a new campaign through the settlement coordinator.
func (h *CampaignsHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var newCampaign api.NewCampaign
	if err := json.NewDecoder(r.Body).Decode(&newCampaign); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	domainCampaign, err := mapping.FromNewCampaign(newCampaign)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Store.GetCharity(r.Context(), domainCampaign.CharityId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Charity not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve charity: %v", err), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.Coordinator.CreateCampaign(r.Context(), domainCampaign)
	if err != nil {
		if errors.Is(err, settlement.ErrCharityNotOnChain) {
			http.Error(w, "Charity must be registered on-chain before creating campaigns", http.StatusUnprocessableEntity)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create campaign: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiCampaign := mapping.ToApiCampaign(created)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiCampaign); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetCampaignById retrieves a single campaign with a fresh status.
func (h *CampaignsHandler) GetCampaignById(w http.ResponseWriter, r *http.Request, campaignId string) {
	domainCampaign, err := h.Store.GetCampaign(r.Context(), campaignId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Campaign not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve campaign: %v", err), http.StatusInternalServerError)
		}
		return
	}
	domainCampaign = h.refresh(r, domainCampaign)

	apiCampaign := mapping.ToApiCampaign(domainCampaign)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiCampaign); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListCampaigns retrieves all campaigns, optionally filtered by status via
// the "status" query parameter, newest first.
func (h *CampaignsHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	domainCampaigns, err := h.Store.ListCampaigns(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve campaigns: %v", err), http.StatusInternalServerError)
		return
	}

	statusFilter := models.CampaignStatus(r.URL.Query().Get("status"))

	sort.Slice(domainCampaigns, func(i, j int) bool {
		return domainCampaigns[i].CreatedAt.After(domainCampaigns[j].CreatedAt)
	})

	apiCampaigns := make([]api.Campaign, 0, len(domainCampaigns))
	for i := range domainCampaigns {
		if statusFilter != "" && domainCampaigns[i].Status != statusFilter {
			continue
		}
		apiCampaigns = append(apiCampaigns, mapping.ToApiCampaign(&domainCampaigns[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiCampaigns); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// DeleteCampaign deletes a campaign and its donations and events.
func (h *CampaignsHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request, campaignId string) {
	if err := h.Store.DeleteCampaign(r.Context(), campaignId); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Campaign not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to delete campaign: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Donate records a donation to the campaign. The campaign's status is
// refreshed first so a just-ended campaign rejects the donation. The new
// donation starts PENDING; it counts toward the raised amount and becomes
// eligible for settlement only once its status transitions to COMPLETED.
func (h *CampaignsHandler) Donate(w http.ResponseWriter, r *http.Request, campaignId string) {
	domainCampaign, err := h.Store.GetCampaign(r.Context(), campaignId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Campaign not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve campaign: %v", err), http.StatusInternalServerError)
		}
		return
	}
	domainCampaign = h.refresh(r, domainCampaign)

	if domainCampaign.Status != models.CampaignActive {
		http.Error(w, fmt.Sprintf("Campaign is not accepting donations (status %s)", domainCampaign.Status), http.StatusUnprocessableEntity)
		return
	}

	var newDonation api.NewDonation
	if err := json.NewDecoder(r.Body).Decode(&newDonation); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	domainDonation, err := mapping.FromNewDonation(campaignId, newDonation)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	domainDonation.Status = models.DonationPending
	domainDonation.DonatedAt = time.Now()

	created, err := h.Store.CreateDonation(r.Context(), domainDonation)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create donation: %v", err), http.StatusInternalServerError)
		return
	}

	if _, err := h.Trigger.OnDonationChanged(r.Context(), created); err != nil {
		http.Error(w, fmt.Sprintf("Failed to reconcile campaign: %v", err), http.StatusInternalServerError)
		return
	}

	apiDonation := mapping.ToApiDonation(created)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiDonation); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListDonations retrieves all donations made to the campaign.
func (h *CampaignsHandler) ListDonations(w http.ResponseWriter, r *http.Request, campaignId string) {
	domainDonations, err := h.Store.ListDonationsByCampaign(r.Context(), campaignId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve donations: %v", err), http.StatusInternalServerError)
		return
	}

	sort.Slice(domainDonations, func(i, j int) bool {
		return domainDonations[i].DonatedAt.After(domainDonations[j].DonatedAt)
	})

	apiDonations := make([]api.Donation, len(domainDonations))
	for i := range domainDonations {
		apiDonations[i] = mapping.ToApiDonation(&domainDonations[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiDonations); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetCampaignStatistics summarizes the campaign's fundraising progress.
func (h *CampaignsHandler) GetCampaignStatistics(w http.ResponseWriter, r *http.Request, campaignId string) {
	domainCampaign, err := h.Store.GetCampaign(r.Context(), campaignId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Campaign not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve campaign: %v", err), http.StatusInternalServerError)
		}
		return
	}
	domainCampaign = h.refresh(r, domainCampaign)

	domainDonations, err := h.Store.ListDonationsByCampaign(r.Context(), campaignId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve donations: %v", err), http.StatusInternalServerError)
		return
	}

	totalDonations := 0
	donors := make(map[string]struct{})
	for i := range domainDonations {
		if domainDonations[i].Status != models.DonationCompleted {
			continue
		}
		totalDonations++
		donors[domainDonations[i].DonorId] = struct{}{}
	}

	daysRemaining := 0
	if now := time.Now(); domainCampaign.EndDate.After(now) {
		daysRemaining = int(domainCampaign.EndDate.Sub(now).Hours() / 24)
	}

	stats := api.CampaignStatistics{
		TotalDonations:     totalDonations,
		UniqueDonors:       len(donors),
		GoalAmount:         mapping.FormatCents(domainCampaign.GoalAmount),
		RaisedAmount:       mapping.FormatCents(domainCampaign.RaisedAmount),
		ProgressPercentage: mapping.ProgressPercentage(domainCampaign.RaisedAmount, domainCampaign.GoalAmount),
		Status:             string(domainCampaign.Status),
		DaysRemaining:      daysRemaining,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetUtilization reports how the campaign's raised funds are allocated
// across its events.
func (h *CampaignsHandler) GetUtilization(w http.ResponseWriter, r *http.Request, campaignId string) {
	domainCampaign, err := h.Store.GetCampaign(r.Context(), campaignId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Campaign not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve campaign: %v", err), http.StatusInternalServerError)
		}
		return
	}

	domainEvents, err := h.Store.ListEventsByCampaign(r.Context(), campaignId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve events: %v", err), http.StatusInternalServerError)
		return
	}

	utilization := api.Utilization{
		TotalAllocated:        mapping.FormatCents(ledger.TotalAllocated(domainEvents)),
		RemainingFunds:        mapping.FormatCents(ledger.Remaining(domainCampaign, domainEvents)),
		UtilizationPercentage: ledger.UtilizationPercentage(domainCampaign, domainEvents),
		EventsCount:           len(domainEvents),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(utilization); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListEvents retrieves the campaign's fund-allocation events. Events are
// disclosed only once the campaign has stopped raising.
func (h *CampaignsHandler) ListEvents(w http.ResponseWriter, r *http.Request, campaignId string) {
	domainCampaign, err := h.Store.GetCampaign(r.Context(), campaignId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Campaign not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve campaign: %v", err), http.StatusInternalServerError)
		}
		return
	}
	domainCampaign = h.refresh(r, domainCampaign)

	if !domainCampaign.Settleable() {
		http.Error(w, "Events are only available for completed or ended campaigns", http.StatusBadRequest)
		return
	}

	domainEvents, err := h.Store.ListEventsByCampaign(r.Context(), campaignId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve events: %v", err), http.StatusInternalServerError)
		return
	}

	sort.Slice(domainEvents, func(i, j int) bool {
		return domainEvents[i].CreatedAt.After(domainEvents[j].CreatedAt)
	})

	apiEvents := make([]api.CampaignEvent, len(domainEvents))
	for i := range domainEvents {
		apiEvents[i] = mapping.ToApiCampaignEvent(&domainEvents[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiEvents); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// AllocateFunds creates a PENDING fund-allocation event after validating
// the campaign is settleable and the amount fits in the unallocated
// remainder. Validation and the allocation write race against concurrent
// allocations; a lost race re-validates against fresh state.
func (h *CampaignsHandler) AllocateFunds(w http.ResponseWriter, r *http.Request, campaignId string) {
	var newEvent api.NewCampaignEvent
	if err := json.NewDecoder(r.Body).Decode(&newEvent); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	domainEvent, err := mapping.FromNewCampaignEvent(campaignId, newEvent)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	domainEvent.Status = models.EventPending

	const allocationAttempts = 3
	var created *models.CampaignEvent
	for attempt := 0; attempt < allocationAttempts; attempt++ {
		domainCampaign, err := h.Store.GetCampaign(r.Context(), campaignId)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Campaign not found", http.StatusNotFound)
			} else {
				http.Error(w, fmt.Sprintf("Failed to retrieve campaign: %v", err), http.StatusInternalServerError)
			}
			return
		}
		domainCampaign = h.refresh(r, domainCampaign)

		if err := ledger.ValidateCampaignEligible(domainCampaign); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		domainEvents, err := h.Store.ListEventsByCampaign(r.Context(), campaignId)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to retrieve events: %v", err), http.StatusInternalServerError)
			return
		}

		if err := ledger.ValidateNewAllocation(domainCampaign, domainEvents, domainEvent.Amount, ""); err != nil {
			var overalloc *ledger.OverallocationError
			if errors.As(err, &overalloc) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			} else {
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}

		created, err = h.Store.CreateCampaignEvent(r.Context(), domainEvent, domainCampaign)
		if err == nil {
			break
		}
		if errors.Is(err, storage.ErrVersionConflict) {
			if attempt < allocationAttempts-1 {
				continue
			}
			http.Error(w, "Failed to allocate funds: concurrent allocations, retry", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to allocate funds: %v", err), http.StatusInternalServerError)
		return
	}

	apiEvent := mapping.ToApiCampaignEvent(created)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiEvent); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
