package donations

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/clearfund/charity-ledger/pkg/api"
	"github.com/clearfund/charity-ledger/pkg/mapping"
	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/clearfund/charity-ledger/pkg/reconcile"
	"github.com/clearfund/charity-ledger/pkg/settlement"
	"github.com/clearfund/charity-ledger/pkg/storage"
)

// DonationsHandler holds the dependencies for donation-related handlers.
type DonationsHandler struct {
	Store       storage.Storage
	Coordinator *settlement.Coordinator
	Trigger     *reconcile.Trigger
}

// NewDonationsHandler creates a new DonationsHandler.
func NewDonationsHandler(store storage.Storage, coordinator *settlement.Coordinator, trigger *reconcile.Trigger) *DonationsHandler {
	return &DonationsHandler{Store: store, Coordinator: coordinator, Trigger: trigger}
}

// GetDonationById retrieves a single donation.
func (h *DonationsHandler) GetDonationById(w http.ResponseWriter, r *http.Request, donationId string) {
	domainDonation, err := h.Store.GetDonation(r.Context(), donationId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Donation not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve donation: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiDonation := mapping.ToApiDonation(domainDonation)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiDonation); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListDonationsByDonor retrieves all donations made by a donor, newest first.
func (h *DonationsHandler) ListDonationsByDonor(w http.ResponseWriter, r *http.Request, donorId string) {
	domainDonations, err := h.Store.ListDonationsByDonor(r.Context(), donorId)
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

// validTransition reports whether a donation may move from one status to
// the other. FAILED is final; a completed donation may only fail (refund or
// chargeback), never return to pending.
func validTransition(from, to models.DonationStatus) bool {
	switch from {
	case models.DonationPending:
		return to == models.DonationCompleted || to == models.DonationFailed
	case models.DonationCompleted:
		return to == models.DonationFailed
	default:
		return false
	}
}

// UpdateDonationStatus transitions a donation, recomputes the campaign's
// derived fields and, on the transition into COMPLETED, attempts chain
// settlement. A settlement failure does not fail the request; the donation
// keeps a null transaction hash for later remediation.
func (h *DonationsHandler) UpdateDonationStatus(w http.ResponseWriter, r *http.Request, donationId string) {
	var req api.UpdateDonationStatus
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	next := models.DonationStatus(req.Status)
	if next != models.DonationCompleted && next != models.DonationFailed {
		http.Error(w, fmt.Sprintf("Invalid status %q", req.Status), http.StatusBadRequest)
		return
	}

	domainDonation, err := h.Store.GetDonation(r.Context(), donationId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Donation not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve donation: %v", err), http.StatusInternalServerError)
		}
		return
	}

	if !validTransition(domainDonation.Status, next) {
		http.Error(w, fmt.Sprintf("Cannot transition donation from %s to %s", domainDonation.Status, next), http.StatusUnprocessableEntity)
		return
	}

	if err := h.Store.UpdateDonationStatus(r.Context(), donationId, domainDonation.Status, next); err != nil {
		if errors.Is(err, storage.ErrVersionConflict) {
			http.Error(w, "Donation was modified concurrently, retry", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to update donation: %v", err), http.StatusInternalServerError)
		}
		return
	}
	domainDonation.Status = next

	if _, err := h.Trigger.OnDonationChanged(r.Context(), domainDonation); err != nil {
		http.Error(w, fmt.Sprintf("Failed to reconcile campaign: %v", err), http.StatusInternalServerError)
		return
	}

	// Settlement fires on the transition into COMPLETED, never twice. A
	// chain failure is swallowed by the coordinator.
	if next == models.DonationCompleted {
		if _, err := h.Coordinator.SettleDonation(r.Context(), domainDonation); err != nil {
			http.Error(w, fmt.Sprintf("Failed to record settlement: %v", err), http.StatusInternalServerError)
			return
		}
	}

	apiDonation := mapping.ToApiDonation(domainDonation)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiDonation); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
