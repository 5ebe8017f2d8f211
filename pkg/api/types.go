// Package api defines the request and response shapes served over HTTP.
// Monetary amounts cross the wire as decimal strings ("250.00"); the domain
// carries them as integer cents.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Charity is the wire representation of a charity.
type Charity struct {
	Id              openapi_types.UUID  `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Website         *string             `json:"website,omitempty"`
	ContactEmail    openapi_types.Email `json:"contact_email"`
	OnChainId       *int64              `json:"on_chain_id,omitempty"`
	TransactionHash *string             `json:"transaction_hash,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewCharity is the payload for registering a charity.
type NewCharity struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Website      *string             `json:"website,omitempty"`
	ContactEmail openapi_types.Email `json:"contact_email"`
}

// Campaign is the wire representation of a campaign.
type Campaign struct {
	Id                 openapi_types.UUID `json:"id"`
	CharityId          openapi_types.UUID `json:"charity_id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	GoalAmount         string             `json:"goal_amount"`
	RaisedAmount       string             `json:"raised_amount"`
	Status             string             `json:"status"`
	StartDate          time.Time          `json:"start_date"`
	EndDate            time.Time          `json:"end_date"`
	ProgressPercentage float64            `json:"progress_percentage"`
	OnChainId          *int64             `json:"on_chain_id,omitempty"`
	TransactionHash    *string            `json:"transaction_hash,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// NewCampaign is the payload for creating a campaign.
type NewCampaign struct {
	CharityId   openapi_types.UUID `json:"charity_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	GoalAmount  string             `json:"goal_amount"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
}

// Donation is the wire representation of a donation.
type Donation struct {
	Id              openapi_types.UUID `json:"id"`
	CampaignId      openapi_types.UUID `json:"campaign_id"`
	DonorId         string             `json:"donor_id"`
	Amount          *string            `json:"amount,omitempty"`
	TokenQuantity   *string            `json:"token_quantity,omitempty"`
	Status          string             `json:"status"`
	TransactionHash *string            `json:"transaction_hash,omitempty"`
	DonatedAt       time.Time          `json:"donated_at"`
	CreatedAt       time.Time          `json:"created_at"`
}

// NewDonation is the payload for donating to a campaign. At least one of
// Amount or TokenQuantity must be a positive decimal.
type NewDonation struct {
	DonorId       string  `json:"donor_id"`
	Amount        *string `json:"amount,omitempty"`
	TokenQuantity *string `json:"token_quantity,omitempty"`
}

// UpdateDonationStatus is the payload for transitioning a donation.
type UpdateDonationStatus struct {
	Status string `json:"status"`
}

// CampaignEvent is the wire representation of a fund-allocation event.
type CampaignEvent struct {
	Id              openapi_types.UUID `json:"id"`
	CampaignId      openapi_types.UUID `json:"campaign_id"`
	CreatedBy       string             `json:"created_by"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Amount          string             `json:"amount"`
	Status          string             `json:"status"`
	EventDate       time.Time          `json:"event_date"`
	TransactionHash *string            `json:"transaction_hash,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// NewCampaignEvent is the payload for allocating funds to a spending event.
type NewCampaignEvent struct {
	CreatedBy   string    `json:"created_by"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	EventDate   time.Time `json:"event_date"`
}

// UpdateEventStatus is the payload for transitioning an event.
type UpdateEventStatus struct {
	Status string `json:"status"`
}

// CampaignStatistics summarizes a campaign's fundraising progress.
type CampaignStatistics struct {
	TotalDonations     int     `json:"total_donations"`
	UniqueDonors       int     `json:"unique_donors"`
	GoalAmount         string  `json:"goal_amount"`
	RaisedAmount       string  `json:"raised_amount"`
	ProgressPercentage float64 `json:"progress_percentage"`
	Status             string  `json:"status"`
	DaysRemaining      int     `json:"days_remaining"`
}

// CharityStatistics summarizes a charity's campaigns.
type CharityStatistics struct {
	TotalCampaigns     int     `json:"total_campaigns"`
	ActiveCampaigns    int     `json:"active_campaigns"`
	TotalRaised        string  `json:"total_raised"`
	TotalGoal          string  `json:"total_goal"`
	ProgressPercentage float64 `json:"progress_percentage"`
	TotalDonations     int     `json:"total_donations"`
}

// Utilization reports how a campaign's raised funds are allocated.
type Utilization struct {
	TotalAllocated        string  `json:"total_allocated"`
	RemainingFunds        string  `json:"remaining_funds"`
	UtilizationPercentage float64 `json:"utilization_percentage"`
	EventsCount           int     `json:"events_count"`
}

// WithdrawRequest is the payload for withdrawing a charity's settled funds.
type WithdrawRequest struct {
	Amount string `json:"amount"`
}

// WithdrawResponse carries the settlement reference of a withdrawal.
type WithdrawResponse struct {
	TransactionHash string `json:"transaction_hash"`
}
