package models

import (
	"time"
)

// CampaignStatus defines the lifecycle states of a fundraising campaign.
type CampaignStatus string

const (
	CampaignUpcoming  CampaignStatus = "UPCOMING"
	CampaignActive    CampaignStatus = "ACTIVE"
	CampaignCompleted CampaignStatus = "COMPLETED"
	CampaignEnded     CampaignStatus = "ENDED"
)

// DonationStatus defines the possible states of a donation.
type DonationStatus string

const (
	DonationPending   DonationStatus = "PENDING"
	DonationCompleted DonationStatus = "COMPLETED"
	DonationFailed    DonationStatus = "FAILED"
)

// EventStatus defines the possible states of a fund-allocation event.
type EventStatus string

const (
	EventPending   EventStatus = "PENDING"
	EventCompleted EventStatus = "COMPLETED"
	EventCancelled EventStatus = "CANCELLED"
)

// Charity represents a registered charitable organization.
// OnChainID and TransactionHash are written together by the settlement
// coordinator after a successful on-chain registration, never separately.
type Charity struct {
	Id              string    `dynamodbav:"id"`
	Name            string    `dynamodbav:"name"`
	Description     string    `dynamodbav:"description"`
	Website         string    `dynamodbav:"website,omitempty"`
	ContactEmail    string    `dynamodbav:"contact_email"`
	OnChainID       *int64    `dynamodbav:"on_chain_id,omitempty"`
	TransactionHash *string   `dynamodbav:"transaction_hash,omitempty"`
	CreatedAt       time.Time `dynamodbav:"created_at"`
	UpdatedAt       time.Time `dynamodbav:"updated_at"`
}

// Campaign represents a fundraising campaign owned by a charity.
// All monetary amounts are fiat cents. RaisedAmount is recomputed from
// completed donations and AllocatedAmount mirrors the sum of non-cancelled
// event amounts; neither is ever user-set. Version guards every write to
// the derived fields (optimistic locking).
type Campaign struct {
	Id              string         `dynamodbav:"id"`
	CharityId       string         `dynamodbav:"charity_id"`
	Title           string         `dynamodbav:"title"`
	Description     string         `dynamodbav:"description"`
	GoalAmount      int64          `dynamodbav:"goal_amount"`
	RaisedAmount    int64          `dynamodbav:"raised_amount"`
	AllocatedAmount int64          `dynamodbav:"allocated_amount"`
	Status          CampaignStatus `dynamodbav:"status"`
	StartDate       time.Time      `dynamodbav:"start_date"`
	EndDate         time.Time      `dynamodbav:"end_date"`
	OnChainID       *int64         `dynamodbav:"on_chain_id,omitempty"`
	TransactionHash *string        `dynamodbav:"transaction_hash,omitempty"`
	Version         int64          `dynamodbav:"version"`
	CreatedAt       time.Time      `dynamodbav:"created_at"`
	UpdatedAt       time.Time      `dynamodbav:"updated_at"`
}

// Settleable reports whether the campaign has reached a state in which its
// funds may be allocated to spending events.
func (c *Campaign) Settleable() bool {
	return c.Status == CampaignCompleted || c.Status == CampaignEnded
}

// Donation represents a contribution to a campaign. Amount is the fiat
// portion in cents; TokenQuantity carries a token-denominated contribution
// as its decimal string form. At least one of the two must be positive.
// Token-only donations never count toward a campaign's raised amount.
type Donation struct {
	Id              string         `dynamodbav:"id"`
	CampaignId      string         `dynamodbav:"campaign_id"`
	DonorId         string         `dynamodbav:"donor_id"`
	Amount          *int64         `dynamodbav:"amount,omitempty"`
	TokenQuantity   string         `dynamodbav:"token_quantity,omitempty"`
	Status          DonationStatus `dynamodbav:"status"`
	TransactionHash *string        `dynamodbav:"transaction_hash,omitempty"`
	DonatedAt       time.Time      `dynamodbav:"donated_at"`
	CreatedAt       time.Time      `dynamodbav:"created_at"`
}

// CountsTowardRaised reports whether the donation contributes to its
// campaign's raised amount.
func (d *Donation) CountsTowardRaised() bool {
	return d.Status == DonationCompleted && d.Amount != nil && *d.Amount > 0
}

// Settled reports whether the donation already carries an on-chain reference.
func (d *Donation) Settled() bool {
	return d.TransactionHash != nil && *d.TransactionHash != ""
}

// CampaignEvent is a disclosed expenditure allocating part of a campaign's
// raised funds. Amount is fiat cents. Events with status PENDING or
// COMPLETED count against the campaign's raised amount; a CANCELLED event
// releases its allocation permanently.
type CampaignEvent struct {
	Id              string      `dynamodbav:"id"`
	CampaignId      string      `dynamodbav:"campaign_id"`
	CreatedBy       string      `dynamodbav:"created_by"`
	Title           string      `dynamodbav:"title"`
	Description     string      `dynamodbav:"description"`
	Amount          int64       `dynamodbav:"amount"`
	Status          EventStatus `dynamodbav:"status"`
	EventDate       time.Time   `dynamodbav:"event_date"`
	TransactionHash *string     `dynamodbav:"transaction_hash,omitempty"`
	CreatedAt       time.Time   `dynamodbav:"created_at"`
	UpdatedAt       time.Time   `dynamodbav:"updated_at"`
}

// CountsAgainstAllocation reports whether the event's amount is held
// against the campaign's raised funds.
func (e *CampaignEvent) CountsAgainstAllocation() bool {
	return e.Status == EventPending || e.Status == EventCompleted
}

// Settled reports whether the event already carries an on-chain reference.
func (e *CampaignEvent) Settled() bool {
	return e.TransactionHash != nil && *e.TransactionHash != ""
}
