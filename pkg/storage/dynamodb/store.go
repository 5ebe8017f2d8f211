package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/clearfund/charity-ledger/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the store.
// Tests substitute a generated mock for it.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client             DynamoDBAPI
	CharitiesTableName string
	CampaignsTableName string
	DonationsTableName string
	EventsTableName    string
}

// New creates a new Store.
func New(client DynamoDBAPI, charitiesTable, campaignsTable, donationsTable, eventsTable string) *Store {
	return &Store{
		Client:             client,
		CharitiesTableName: charitiesTable,
		CampaignsTableName: campaignsTable,
		DonationsTableName: donationsTable,
		EventsTableName:    eventsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
