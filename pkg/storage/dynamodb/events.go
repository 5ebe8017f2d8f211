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

// CreateCampaignEvent creates the event and adds its amount to the owning
// campaign's allocated total in a single TransactWriteItems call. The
// campaign update is conditional on the version the caller validated the
// allocation against, so two concurrent allocations can never both be
// admitted against headroom only one of them can honor.
func (s *Store) CreateCampaignEvent(ctx context.Context, event *models.CampaignEvent, campaign *models.Campaign) (*models.CampaignEvent, error) {
	now := time.Now()
	event.Id = uuid.New().String()
	event.CampaignId = campaign.Id
	event.CreatedAt = now
	event.UpdatedAt = now

	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal campaign event: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the event record.
				Put: &types.Put{
					TableName:           aws.String(s.EventsTableName),
					Item:                eventAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 2: Hold the allocation on the campaign.
				Update: &types.Update{
					TableName: aws.String(s.CampaignsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: campaign.Id},
					},
					UpdateExpression:    aws.String("SET allocated_amount = allocated_amount + :amount, version = version + :inc, updated_at = :now"),
					ConditionExpression: aws.String("version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", event.Amount)},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", campaign.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
						":now":     &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
					},
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for _, reason := range txc.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return nil, storage.ErrVersionConflict
				}
			}
		}
		return nil, fmt.Errorf("failed to execute event creation transaction: %w", err)
	}

	return event, nil
}

// UpdateCampaignEventStatus transitions the event's status and applies the
// allocation delta to the owning campaign atomically. The event update is
// conditional on its current status and the campaign update on the version
// the caller validated against.
func (s *Store) UpdateCampaignEventStatus(ctx context.Context, event *models.CampaignEvent, next models.EventStatus, allocationDelta int64, campaign *models.Campaign) error {
	now := time.Now()

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Transition the event.
				Update: &types.Update{
					TableName: aws.String(s.EventsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: event.Id},
					},
					UpdateExpression:    aws.String("SET #status = :next, updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(id) AND #status = :current"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":next":    &types.AttributeValueMemberS{Value: string(next)},
						":current": &types.AttributeValueMemberS{Value: string(event.Status)},
						":now":     &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
					},
				},
			},
			{
				// Operation 2: Adjust the campaign's held allocation.
				Update: &types.Update{
					TableName: aws.String(s.CampaignsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: campaign.Id},
					},
					UpdateExpression:    aws.String("SET allocated_amount = allocated_amount + :delta, version = version + :inc, updated_at = :now"),
					ConditionExpression: aws.String("version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":delta":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", allocationDelta)},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", campaign.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
						":now":     &types.AttributeValueMemberS{Value: now.Format(time.RFC3339Nano)},
					},
				},
			},
		},
	}

	_, err := s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for _, reason := range txc.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return storage.ErrVersionConflict
				}
			}
		}
		return fmt.Errorf("failed to execute event status transaction: %w", err)
	}

	return nil
}

// GetCampaignEvent retrieves an event from DynamoDB by its ID.
func (s *Store) GetCampaignEvent(ctx context.Context, eventID string) (*models.CampaignEvent, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.EventsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get event from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, storage.ErrNotFound)
	}

	var event models.CampaignEvent
	if err := attributevalue.UnmarshalMap(result.Item, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}

// ListEventsByCampaign retrieves all events for a campaign.
func (s *Store) ListEventsByCampaign(ctx context.Context, campaignID string) ([]models.CampaignEvent, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.EventsTableName),
		IndexName:              aws.String(campaignIDIndex),
		KeyConditionExpression: aws.String("campaign_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: campaignID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by campaign: %w", err)
	}

	var events []models.CampaignEvent
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}

	return events, nil
}

// ListUnsettledCompletedEvents retrieves COMPLETED events that have no
// settlement transaction hash. Used by the operator remediation command.
func (s *Store) ListUnsettledCompletedEvents(ctx context.Context) ([]models.CampaignEvent, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.EventsTableName),
		FilterExpression: aws.String("#status = :completed AND attribute_not_exists(transaction_hash)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed": &types.AttributeValueMemberS{Value: string(models.EventCompleted)},
		},
	}

	result, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for unsettled events: %w", err)
	}

	var events []models.CampaignEvent
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}

	return events, nil
}

// DeleteCampaignEvent deletes an event record from DynamoDB.
func (s *Store) DeleteCampaignEvent(ctx context.Context, eventID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"id": eventID})
	if err != nil {
		return fmt.Errorf("failed to marshal event ID for deletion: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.EventsTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id)"),
	}

	_, err = s.Client.DeleteItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("event %s: %w", eventID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to delete event from DynamoDB: %w", err)
	}

	return nil
}

// SetEventSettlement records the settlement transaction hash. A recorded
// hash is never overwritten, which makes retried settlement idempotent.
func (s *Store) SetEventSettlement(ctx context.Context, eventID string, txHash string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.EventsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: eventID},
		},
		UpdateExpression:    aws.String("SET transaction_hash = :hash, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id) AND attribute_not_exists(transaction_hash)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
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
		return fmt.Errorf("failed to record event settlement: %w", err)
	}

	return nil
}
