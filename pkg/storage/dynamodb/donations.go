package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/clearfund/charity-ledger/pkg/storage"
	"github.com/google/uuid"
)

const (
	campaignIDIndex = "campaign_id-index"
	donorIDIndex    = "donor_id-index"
)

// CreateDonation creates a new donation record in DynamoDB.
func (s *Store) CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	now := time.Now()
	donation.Id = uuid.New().String()
	donation.DonatedAt = now
	donation.CreatedAt = now

	donationAV, err := attributevalue.MarshalMap(donation)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal donation: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.DonationsTableName),
		Item:                donationAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create donation in DynamoDB: %w", err)
	}

	return donation, nil
}

// GetDonation retrieves a donation from DynamoDB by its ID.
func (s *Store) GetDonation(ctx context.Context, donationID string) (*models.Donation, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": donationID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal donation ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.DonationsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get donation from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("donation %s: %w", donationID, storage.ErrNotFound)
	}

	var donation models.Donation
	if err := attributevalue.UnmarshalMap(result.Item, &donation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal donation: %w", err)
	}

	return &donation, nil
}

// ListDonationsByCampaign retrieves all donations made to a campaign. The
// ledger recomputes raised amounts from this query, so it always reads
// current rows rather than any cached aggregate.
func (s *Store) ListDonationsByCampaign(ctx context.Context, campaignID string) ([]models.Donation, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.DonationsTableName),
		IndexName:              aws.String(campaignIDIndex),
		KeyConditionExpression: aws.String("campaign_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: campaignID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations by campaign: %w", err)
	}

	var donations []models.Donation
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &donations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal donations: %w", err)
	}

	return donations, nil
}

// ListDonationsByDonor retrieves all donations made by a donor.
func (s *Store) ListDonationsByDonor(ctx context.Context, donorID string) ([]models.Donation, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.DonationsTableName),
		IndexName:              aws.String(donorIDIndex),
		KeyConditionExpression: aws.String("donor_id = :did"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":did": &types.AttributeValueMemberS{Value: donorID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations by donor: %w", err)
	}

	var donations []models.Donation
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &donations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal donations: %w", err)
	}

	return donations, nil
}

// DeleteDonation deletes a donation record from DynamoDB.
func (s *Store) DeleteDonation(ctx context.Context, donationID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"id": donationID})
	if err != nil {
		return fmt.Errorf("failed to marshal donation ID for deletion: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.DonationsTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id)"),
	}

	_, err = s.Client.DeleteItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("donation %s: %w", donationID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to delete donation from DynamoDB: %w", err)
	}

	return nil
}

// UpdateDonationStatus transitions a donation between statuses. The write is
// conditional on the expected current status so concurrent transitions
// cannot double-apply.
func (s *Store) UpdateDonationStatus(ctx context.Context, donationID string, expected, next models.DonationStatus) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.DonationsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: donationID},
		},
		UpdateExpression:    aws.String("SET #status = :next"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":next":     &types.AttributeValueMemberS{Value: string(next)},
			":expected": &types.AttributeValueMemberS{Value: string(expected)},
		},
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrVersionConflict
		}
		return fmt.Errorf("failed to update donation status: %w", err)
	}

	return nil
}

// SetDonationSettlement records the settlement transaction hash. A recorded
// hash is never overwritten, which makes retried settlement idempotent.
func (s *Store) SetDonationSettlement(ctx context.Context, donationID string, txHash string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.DonationsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: donationID},
		},
		UpdateExpression:    aws.String("SET transaction_hash = :hash"),
		ConditionExpression: aws.String("attribute_exists(id) AND attribute_not_exists(transaction_hash)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hash": &types.AttributeValueMemberS{Value: txHash},
		},
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrAlreadySettled
		}
		return fmt.Errorf("failed to record donation settlement: %w", err)
	}

	return nil
}
