// Package handlers assembles the HTTP routing surface of the service and
// delegates to the per-resource handler packages.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clearfund/charity-ledger/pkg/handlers/campaigns"
	"github.com/clearfund/charity-ledger/pkg/handlers/charities"
	"github.com/clearfund/charity-ledger/pkg/handlers/donations"
	"github.com/clearfund/charity-ledger/pkg/handlers/events"
	custommw "github.com/clearfund/charity-ledger/pkg/middleware"
	"github.com/clearfund/charity-ledger/pkg/reconcile"
	"github.com/clearfund/charity-ledger/pkg/settlement"
	"github.com/clearfund/charity-ledger/pkg/storage"
)

// ApiHandler bundles the per-resource handlers behind one router.
type ApiHandler struct {
	Charities *charities.CharitiesHandler
	Campaigns *campaigns.CampaignsHandler
	Donations *donations.DonationsHandler
	Events    *events.EventsHandler
}

// NewApiHandler wires the resource handlers from shared dependencies.
func NewApiHandler(store storage.Storage, coordinator *settlement.Coordinator, trigger *reconcile.Trigger) *ApiHandler {
	return &ApiHandler{
		Charities: charities.NewCharitiesHandler(store, coordinator),
		Campaigns: campaigns.NewCampaignsHandler(store, coordinator, trigger),
		Donations: donations.NewDonationsHandler(store, coordinator, trigger),
		Events:    events.NewEventsHandler(store, trigger),
	}
}

// Router builds the chi router with request logging and all routes mounted.
func (h *ApiHandler) Router(logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(custommw.NewStructuredLogger(logger))

	r.Route("/charities", func(r chi.Router) {
		r.Post("/", h.Charities.CreateCharity)
		r.Get("/", h.Charities.ListCharities)
		r.Route("/{charityId}", func(r chi.Router) {
			r.Get("/", withParam("charityId", h.Charities.GetCharityById))
			r.Delete("/", withParam("charityId", h.Charities.DeleteCharity))
			r.Get("/statistics", withParam("charityId", h.Charities.GetCharityStatistics))
			r.Post("/withdraw", withParam("charityId", h.Charities.WithdrawFunds))
		})
	})

	r.Route("/campaigns", func(r chi.Router) {
		r.Post("/", h.Campaigns.CreateCampaign)
		r.Get("/", h.Campaigns.ListCampaigns)
		r.Route("/{campaignId}", func(r chi.Router) {
			r.Get("/", withParam("campaignId", h.Campaigns.GetCampaignById))
			r.Delete("/", withParam("campaignId", h.Campaigns.DeleteCampaign))
			r.Post("/donate", withParam("campaignId", h.Campaigns.Donate))
			r.Get("/donations", withParam("campaignId", h.Campaigns.ListDonations))
			r.Get("/statistics", withParam("campaignId", h.Campaigns.GetCampaignStatistics))
			r.Get("/utilization", withParam("campaignId", h.Campaigns.GetUtilization))
			r.Get("/events", withParam("campaignId", h.Campaigns.ListEvents))
			r.Post("/allocate-funds", withParam("campaignId", h.Campaigns.AllocateFunds))
		})
	})

	r.Route("/donations/{donationId}", func(r chi.Router) {
		r.Get("/", withParam("donationId", h.Donations.GetDonationById))
		r.Patch("/status", withParam("donationId", h.Donations.UpdateDonationStatus))
	})

	r.Get("/donors/{donorId}/donations", withParam("donorId", h.Donations.ListDonationsByDonor))

	r.Route("/events/{eventId}", func(r chi.Router) {
		r.Get("/", withParam("eventId", h.Events.GetCampaignEventById))
		r.Patch("/status", withParam("eventId", h.Events.UpdateEventStatus))
	})

	return r
}

// withParam adapts a handler taking one URL parameter to http.HandlerFunc.
func withParam(name string, fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, chi.URLParam(r, name))
	}
}
