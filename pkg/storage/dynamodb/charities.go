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

// CreateCharity creates a new charity record in DynamoDB.
func (s *Store) CreateCharity(ctx context.Context, charity *models.Charity) (*models.Charity, error) {
	now := time.Now()
	charity.Id = uuid.New().String()
	charity.CreatedAt = now
	charity.UpdatedAt = now

	charityAV, err := attributevalue.MarshalMap(charity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charity: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.CharitiesTableName),
		Item:                charityAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create charity in DynamoDB: %w", err)
	}

	return charity, nil
}

// GetCharity retrieves a charity from DynamoDB by its ID.
func (s *Store) GetCharity(ctx context.Context, charityID string) (*models.Charity, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": charityID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charity ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.CharitiesTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get charity from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("charity %s: %w", charityID, storage.ErrNotFound)
	}

	var charity models.Charity
	if err := attributevalue.UnmarshalMap(result.Item, &charity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal charity: %w", err)
	}

	return &charity, nil
}

// ListCharities retrieves all charities from DynamoDB.
func (s *Store) ListCharities(ctx context.Context) ([]models.Charity, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.CharitiesTableName),
	}

	result, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan charities table: %w", err)
	}

	var charities []models.Charity
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &charities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal charities: %w", err)
	}

	return charities, nil
}

// DeleteCharity deletes a charity and cascades to its campaigns, donations
// and events.
func (s *Store) DeleteCharity(ctx context.Context, charityID string) error {
	campaigns, err := s.ListCampaignsByCharity(ctx, charityID)
	if err != nil {
		return fmt.Errorf("failed to list campaigns for cascade delete: %w", err)
	}
	for _, campaign := range campaigns {
		if err := s.DeleteCampaign(ctx, campaign.Id); err != nil {
			return fmt.Errorf("failed to cascade delete campaign %s: %w", campaign.Id, err)
		}
	}

	key, err := attributevalue.MarshalMap(map[string]string{"id": charityID})
	if err != nil {
		return fmt.Errorf("failed to marshal charity ID for deletion: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.CharitiesTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id)"),
	}

	_, err = s.Client.DeleteItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("charity %s: %w", charityID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to delete charity from DynamoDB: %w", err)
	}

	return nil
}

// SetCharitySettlement records the on-chain id and transaction hash assigned
// to the charity. Both fields are written in one conditional update so a
// charity is never visible in a partially settled state, and a recorded hash
// is never overwritten.
func (s *Store) SetCharitySettlement(ctx context.Context, charityID string, onChainID int64, txHash string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.CharitiesTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: charityID},
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
		return fmt.Errorf("failed to record charity settlement: %w", err)
	}

	return nil
}
