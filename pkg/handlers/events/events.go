package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/clearfund/charity-ledger/pkg/api"
	"github.com/clearfund/charity-ledger/pkg/ledger"
	"github.com/clearfund/charity-ledger/pkg/mapping"
	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/clearfund/charity-ledger/pkg/reconcile"
	"github.com/clearfund/charity-ledger/pkg/storage"
)

// EventsHandler holds the dependencies for fund-allocation event handlers.
type EventsHandler struct {
	Store   storage.Storage
	Trigger *reconcile.Trigger
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(store storage.Storage, trigger *reconcile.Trigger) *EventsHandler {
	return &EventsHandler{Store: store, Trigger: trigger}
}

// GetCampaignEventById retrieves a single event.
func (h *EventsHandler) GetCampaignEventById(w http.ResponseWriter, r *http.Request, eventId string) {
	domainEvent, err := h.Store.GetCampaignEvent(r.Context(), eventId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve event: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiEvent := mapping.ToApiCampaignEvent(domainEvent)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiEvent); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// validTransition reports whether an event may move between the two
// statuses. A completed event is final: its expenditure is disclosed and
// possibly settled on-chain. A cancelled event may be reinstated to
// pending, which re-holds its allocation.
func validTransition(from, to models.EventStatus) bool {
	switch from {
	case models.EventPending:
		return to == models.EventCompleted || to == models.EventCancelled
	case models.EventCancelled:
		return to == models.EventPending
	default:
		return false
	}
}

// UpdateEventStatus transitions an event. The campaign's allocated total is
// adjusted atomically with the status write: cancelling releases the
// event's amount, reinstating re-validates and re-holds it. A transition
// into COMPLETED fires chain settlement after the write; settlement
// failures leave the event unsettled for later remediation.
func (h *EventsHandler) UpdateEventStatus(w http.ResponseWriter, r *http.Request, eventId string) {
	var req api.UpdateEventStatus
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	next := models.EventStatus(req.Status)
	switch next {
	case models.EventPending, models.EventCompleted, models.EventCancelled:
	default:
		http.Error(w, fmt.Sprintf("Invalid status %q", req.Status), http.StatusBadRequest)
		return
	}

	const updateAttempts = 3
	var domainEvent *models.CampaignEvent
	for attempt := 0; attempt < updateAttempts; attempt++ {
		var err error
		domainEvent, err = h.Store.GetCampaignEvent(r.Context(), eventId)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Event not found", http.StatusNotFound)
			} else {
				http.Error(w, fmt.Sprintf("Failed to retrieve event: %v", err), http.StatusInternalServerError)
			}
			return
		}

		if domainEvent.Status == next {
			break
		}
		if !validTransition(domainEvent.Status, next) {
			http.Error(w, fmt.Sprintf("Cannot transition event from %s to %s", domainEvent.Status, next), http.StatusUnprocessableEntity)
			return
		}

		domainCampaign, err := h.Store.GetCampaign(r.Context(), domainEvent.CampaignId)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to retrieve campaign: %v", err), http.StatusInternalServerError)
			return
		}

		var delta int64
		wasHeld := domainEvent.CountsAgainstAllocation()
		willHold := next == models.EventPending || next == models.EventCompleted
		switch {
		case !wasHeld && willHold:
			delta = domainEvent.Amount
		case wasHeld && !willHold:
			delta = -domainEvent.Amount
		}

		// Re-holding a released allocation must fit in the current remainder.
		if delta > 0 {
			domainEvents, err := h.Store.ListEventsByCampaign(r.Context(), domainEvent.CampaignId)
			if err != nil {
				http.Error(w, fmt.Sprintf("Failed to retrieve events: %v", err), http.StatusInternalServerError)
				return
			}
			if err := ledger.ValidateNewAllocation(domainCampaign, domainEvents, domainEvent.Amount, domainEvent.Id); err != nil {
				var overalloc *ledger.OverallocationError
				if errors.As(err, &overalloc) {
					http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				} else {
					http.Error(w, err.Error(), http.StatusBadRequest)
				}
				return
			}
		}

		err = h.Store.UpdateCampaignEventStatus(r.Context(), domainEvent, next, delta, domainCampaign)
		if err == nil {
			domainEvent.Status = next
			break
		}
		if errors.Is(err, storage.ErrVersionConflict) {
			if attempt < updateAttempts-1 {
				continue
			}
			http.Error(w, "Event was modified concurrently, retry", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to update event: %v", err), http.StatusInternalServerError)
		return
	}

	if next == models.EventCompleted {
		h.Trigger.OnEventStatusCompleted(r.Context(), domainEvent)
	}

	apiEvent := mapping.ToApiCampaignEvent(domainEvent)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiEvent); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
