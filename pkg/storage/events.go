package storage

import (
	"context"

	"github.com/clearfund/charity-ledger/pkg/models"
)

// EventReader defines the interface for reading fund-allocation events.
type EventReader interface {
	// GetCampaignEvent retrieves an event by its ID.
	GetCampaignEvent(ctx context.Context, eventID string) (*models.CampaignEvent, error)

	// ListEventsByCampaign retrieves all events for a campaign.
	ListEventsByCampaign(ctx context.Context, campaignID string) ([]models.CampaignEvent, error)

	// ListUnsettledCompletedEvents retrieves COMPLETED events that carry no
	// settlement transaction hash yet.
	ListUnsettledCompletedEvents(ctx context.Context) ([]models.CampaignEvent, error)
}

// EventManager defines the interface for creating and mutating events.
// Writes that change how much of a campaign's raised funds are held are
// executed atomically with the campaign's allocation mirror, conditional on
// the campaign version the caller validated against. A lost race returns
// ErrVersionConflict so the caller can re-validate against fresh state.
type EventManager interface {
	// CreateCampaignEvent creates the event and adds its amount to the
	// campaign's allocated total in one atomic write.
	CreateCampaignEvent(ctx context.Context, event *models.CampaignEvent, campaign *models.Campaign) (*models.CampaignEvent, error)

	// UpdateCampaignEventStatus transitions the event to next and applies
	// allocationDelta (positive or negative cents) to the campaign's
	// allocated total in one atomic write.
	UpdateCampaignEventStatus(ctx context.Context, event *models.CampaignEvent, next models.EventStatus, allocationDelta int64, campaign *models.Campaign) error

	// DeleteCampaignEvent deletes an event.
	DeleteCampaignEvent(ctx context.Context, eventID string) error

	// SetEventSettlement records the settlement transaction hash. It fails
	// with ErrAlreadySettled if a hash is present.
	SetEventSettlement(ctx context.Context, eventID string, txHash string) error
}

// EventStore combines the reader and manager interfaces.
type EventStore interface {
	EventReader
	EventManager
}
