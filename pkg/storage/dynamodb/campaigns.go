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

const charityIDIndex = "charity_id-index"

// CreateCampaign creates a new campaign record in DynamoDB.
func (s *Store) CreateCampaign(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	now := time.Now()
	campaign.Id = uuid.New().String()
	campaign.RaisedAmount = 0
	campaign.AllocatedAmount = 0
	campaign.Version = 1
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	campaignAV, err := attributevalue.MarshalMap(campaign)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal campaign: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.CampaignsTableName),
		Item:                campaignAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create campaign in DynamoDB: %w", err)
	}

	return campaign, nil
}

// GetCampaign retrieves a campaign from DynamoDB by its ID.
func (s *Store) GetCampaign(ctx context.Context, campaignID string) (*models.Campaign, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": campaignID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal campaign ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.CampaignsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("campaign %s: %w", campaignID, storage.ErrNotFound)
	}

	var campaign models.Campaign
	if err := attributevalue.UnmarshalMap(result.Item, &campaign); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign: %w", err)
	}

	return &campaign, nil
}

// ListCampaigns retrieves all campaigns from DynamoDB.
func (s *Store) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.CampaignsTableName),
	}

	result, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan campaigns table: %w", err)
	}

	var campaigns []models.Campaign
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &campaigns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaigns: %w", err)
	}

	return campaigns, nil
}

// ListCampaignsByCharity retrieves all campaigns owned by a charity.
func (s *Store) ListCampaignsByCharity(ctx context.Context, charityID string) ([]models.Campaign, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.CampaignsTableName),
		IndexName:              aws.String(charityIDIndex),
		KeyConditionExpression: aws.String("charity_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: charityID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns by charity: %w", err)
	}

	var campaigns []models.Campaign
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &campaigns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaigns: %w", err)
	}

	return campaigns, nil
}

// DeleteCampaign deletes a campaign and cascades to its donations and events.
func (s *Store) DeleteCampaign(ctx context.Context, campaignID string) error {
	donations, err := s.ListDonationsByCampaign(ctx, campaignID)
	if err != nil {
		return fmt.Errorf("failed to list donations for cascade delete: %w", err)
	}
	events, err := s.ListEventsByCampaign(ctx, campaignID)
	if err != nil {
		return fmt.Errorf("failed to list events for cascade delete: %w", err)
	}

	if err := s.batchDeleteByID(ctx, s.DonationsTableName, donationIDs(donations)); err != nil {
		return fmt.Errorf("failed to cascade delete donations: %w", err)
	}
	if err := s.batchDeleteByID(ctx, s.EventsTableName, eventIDs(events)); err != nil {
		return fmt.Errorf("failed to cascade delete events: %w", err)
	}

	key, err := attributevalue.MarshalMap(map[string]string{"id": campaignID})
	if err != nil {
		return fmt.Errorf("failed to marshal campaign ID for deletion: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.CampaignsTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id)"),
	}

	_, err = s.Client.DeleteItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("campaign %s: %w", campaignID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to delete campaign from DynamoDB: %w", err)
	}

	return nil
}

// UpdateCampaignDerived persists a recomputed raised amount and status. The
// write is conditional on the version the values were computed from, so two
// concurrent recomputations can never both apply against stale aggregates.
func (s *Store) UpdateCampaignDerived(ctx context.Context, campaignID string, raisedAmount int64, status models.CampaignStatus, version int64) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.CampaignsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: campaignID},
		},
		UpdateExpression:    aws.String("SET raised_amount = :raised, #status = :status, version = version + :inc, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id) AND version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":raised":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", raisedAmount)},
			":status":  &types.AttributeValueMemberS{Value: string(status)},
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
			":now":     &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrVersionConflict
		}
		return fmt.Errorf("failed to update campaign derived fields: %w", err)
	}

	return nil
}

// SetCampaignSettlement records the on-chain id and transaction hash
// assigned to the campaign. Same write-once pairing rule as charities.
func (s *Store) SetCampaignSettlement(ctx context.Context, campaignID string, onChainID int64, txHash string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.CampaignsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: campaignID},
		},
		UpdateExpression:    aws.String("SET on_chain_id = :ocid, transaction_hash = :hash, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id) AND attribute_not_exists(transaction_hash)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ocid": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", onChainID)},
			":hash": &types.AttributeValueMemberS{Value: txHash},
			":now":  &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339Nano)},
		},
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrAlreadySettled
		}
		return fmt.Errorf("failed to record campaign settlement: %w", err)
	}

	return nil
}

func donationIDs(donations []models.Donation) []string {
	ids := make([]string, len(donations))
	for i, d := range donations {
		ids[i] = d.Id
	}
	return ids
}

func eventIDs(events []models.CampaignEvent) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.Id
	}
	return ids
}

// batchDeleteByID deletes items by primary key in chunks of 25, the
// BatchWriteItem limit.
func (s *Store) batchDeleteByID(ctx context.Context, table string, ids []string) error {
	for start := 0; start < len(ids); start += 25 {
		end := start + 25
		if end > len(ids) {
			end = len(ids)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, id := range ids[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: id},
					},
				},
			})
		}

		input := &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{table: requests},
		}
		if _, err := s.Client.BatchWriteItem(ctx, input); err != nil {
			return fmt.Errorf("failed to batch delete from %s: %w", table, err)
		}
	}
	return nil
}
