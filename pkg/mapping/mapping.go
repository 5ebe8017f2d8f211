// Package mapping converts between wire types and domain models.
package mapping

import (
	"fmt"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/clearfund/charity-ledger/pkg/api"
	"github.com/clearfund/charity-ledger/pkg/models"
)

var centsPerUnit = decimal.NewFromInt(100)

// ParseAmountCents parses a positive decimal string with at most two
// fractional digits into integer cents.
func ParseAmountCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("amount must be positive, got %q", s)
	}
	cents := d.Mul(centsPerUnit)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	return cents.IntPart(), nil
}

// ParseTokenQuantity validates a positive decimal token quantity and returns
// its canonical string form.
func ParseTokenQuantity(s string) (string, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("invalid token quantity %q: %w", s, err)
	}
	if !d.IsPositive() {
		return "", fmt.Errorf("token quantity must be positive, got %q", s)
	}
	return d.String(), nil
}

// FormatCents renders integer cents as a two-decimal string.
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(centsPerUnit).StringFixed(2)
}

func mustUUID(s string) openapi_types.UUID {
	// Domain ids are minted with uuid.New, so this never fails on our own data.
	return openapi_types.UUID(uuid.MustParse(s))
}

// ToApiCharity maps a domain charity to its wire form.
func ToApiCharity(c *models.Charity) api.Charity {
	out := api.Charity{
		Id:              mustUUID(c.Id),
		Name:            c.Name,
		Description:     c.Description,
		ContactEmail:    openapi_types.Email(c.ContactEmail),
		OnChainId:       c.OnChainID,
		TransactionHash: c.TransactionHash,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if c.Website != "" {
		w := c.Website
		out.Website = &w
	}
	return out
}

// FromNewCharity builds a domain charity from a registration payload.
func FromNewCharity(n api.NewCharity) *models.Charity {
	c := &models.Charity{
		Name:         n.Name,
		Description:  n.Description,
		ContactEmail: string(n.ContactEmail),
	}
	if n.Website != nil {
		c.Website = *n.Website
	}
	return c
}

// ToApiCampaign maps a domain campaign to its wire form.
func ToApiCampaign(c *models.Campaign) api.Campaign {
	return api.Campaign{
		Id:                 mustUUID(c.Id),
		CharityId:          mustUUID(c.CharityId),
		Title:              c.Title,
		Description:        c.Description,
		GoalAmount:         FormatCents(c.GoalAmount),
		RaisedAmount:       FormatCents(c.RaisedAmount),
		Status:             string(c.Status),
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		ProgressPercentage: ProgressPercentage(c.RaisedAmount, c.GoalAmount),
		OnChainId:          c.OnChainID,
		TransactionHash:    c.TransactionHash,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// FromNewCampaign builds a domain campaign from a creation payload.
func FromNewCampaign(n api.NewCampaign) (*models.Campaign, error) {
	goal, err := ParseAmountCents(n.GoalAmount)
	if err != nil {
		return nil, err
	}
	if !n.EndDate.After(n.StartDate) {
		return nil, fmt.Errorf("end_date must be after start_date")
	}
	return &models.Campaign{
		CharityId:   uuid.UUID(n.CharityId).String(),
		Title:       n.Title,
		Description: n.Description,
		GoalAmount:  goal,
		StartDate:   n.StartDate,
		EndDate:     n.EndDate,
	}, nil
}

// ToApiDonation maps a domain donation to its wire form.
func ToApiDonation(d *models.Donation) api.Donation {
	out := api.Donation{
		Id:              mustUUID(d.Id),
		CampaignId:      mustUUID(d.CampaignId),
		DonorId:         d.DonorId,
		Status:          string(d.Status),
		TransactionHash: d.TransactionHash,
		DonatedAt:       d.DonatedAt,
		CreatedAt:       d.CreatedAt,
	}
	if d.Amount != nil {
		s := FormatCents(*d.Amount)
		out.Amount = &s
	}
	if d.TokenQuantity != "" {
		q := d.TokenQuantity
		out.TokenQuantity = &q
	}
	return out
}

// FromNewDonation builds a domain donation from a donate payload. At least
// one of amount or token quantity must be present and positive.
func FromNewDonation(campaignID string, n api.NewDonation) (*models.Donation, error) {
	if n.DonorId == "" {
		return nil, fmt.Errorf("donor_id is required")
	}
	if n.Amount == nil && n.TokenQuantity == nil {
		return nil, fmt.Errorf("one of amount or token_quantity is required")
	}
	d := &models.Donation{
		CampaignId: campaignID,
		DonorId:    n.DonorId,
	}
	if n.Amount != nil {
		cents, err := ParseAmountCents(*n.Amount)
		if err != nil {
			return nil, err
		}
		d.Amount = &cents
	}
	if n.TokenQuantity != nil {
		q, err := ParseTokenQuantity(*n.TokenQuantity)
		if err != nil {
			return nil, err
		}
		d.TokenQuantity = q
	}
	return d, nil
}

// ToApiCampaignEvent maps a domain event to its wire form.
func ToApiCampaignEvent(e *models.CampaignEvent) api.CampaignEvent {
	return api.CampaignEvent{
		Id:              mustUUID(e.Id),
		CampaignId:      mustUUID(e.CampaignId),
		CreatedBy:       e.CreatedBy,
		Title:           e.Title,
		Description:     e.Description,
		Amount:          FormatCents(e.Amount),
		Status:          string(e.Status),
		EventDate:       e.EventDate,
		TransactionHash: e.TransactionHash,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// FromNewCampaignEvent builds a domain event from an allocation payload.
func FromNewCampaignEvent(campaignID string, n api.NewCampaignEvent) (*models.CampaignEvent, error) {
	if n.CreatedBy == "" {
		return nil, fmt.Errorf("created_by is required")
	}
	amount, err := ParseAmountCents(n.Amount)
	if err != nil {
		return nil, err
	}
	return &models.CampaignEvent{
		CampaignId:  campaignID,
		CreatedBy:   n.CreatedBy,
		Title:       n.Title,
		Description: n.Description,
		Amount:      amount,
		EventDate:   n.EventDate,
	}, nil
}

// ProgressPercentage returns raised/goal as a percentage rounded to two
// decimal places, 0 when the goal is zero.
func ProgressPercentage(raised, goal int64) float64 {
	if goal <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(raised).
		Div(decimal.NewFromInt(goal)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	f, _ := pct.Float64()
	return f
}
