// Command settle_events is an operator remediation tool. It refreshes every
// campaign's lifecycle status against the clock, then re-attempts chain
// settlement for COMPLETED fund-allocation events that have no transaction
// hash. Each settlement step is idempotent, so the command is safe to run
// repeatedly.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/clearfund/charity-ledger/pkg/chain"
	"github.com/clearfund/charity-ledger/pkg/ledger"
	"github.com/clearfund/charity-ledger/pkg/settlement"
	dynamostore "github.com/clearfund/charity-ledger/pkg/storage/dynamodb"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := awsdynamodb.NewFromConfig(cfg)
	charitiesTable := os.Getenv("DYNAMODB_CHARITIES_TABLE_NAME")
	campaignsTable := os.Getenv("DYNAMODB_CAMPAIGNS_TABLE_NAME")
	donationsTable := os.Getenv("DYNAMODB_DONATIONS_TABLE_NAME")
	eventsTable := os.Getenv("DYNAMODB_EVENTS_TABLE_NAME")

	if charitiesTable == "" || campaignsTable == "" || donationsTable == "" || eventsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store := dynamostore.New(dbClient, charitiesTable, campaignsTable, donationsTable, eventsTable)

	chainID, _ := strconv.ParseInt(os.Getenv("BLOCKCHAIN_CHAIN_ID"), 10, 64)
	chainClient, err := chain.New(chain.Config{
		RPCURL:          os.Getenv("BLOCKCHAIN_RPC_URL"),
		ContractAddress: os.Getenv("CONTRACT_ADDRESS"),
		PrivateKey:      os.Getenv("ADMIN_WALLET_PRIVATE_KEY"),
		ChainID:         chainID,
	}, logger)
	if err != nil {
		log.Fatalf("failed to initialize chain client: %v", err)
	}
	if !chainClient.IsConfigured() {
		log.Fatal("chain settlement is not configured, nothing to settle")
	}

	coordinator := settlement.New(store, chainClient, logger,
		os.Getenv("ADMIN_WALLET_ADDRESS"), os.Getenv("METADATA_BASE_URL"))
	campaignLedger := ledger.New(store, store)

	// Status refresh first: an event gated on a campaign that ended since
	// the last request must see the ENDED status.
	campaignsRefreshed := 0
	campaigns, err := store.ListCampaigns(ctx)
	if err != nil {
		log.Fatalf("failed to list campaigns: %v", err)
	}
	for i := range campaigns {
		if _, err := campaignLedger.RecomputeStatus(ctx, campaigns[i].Id); err != nil {
			logger.Error("failed to refresh campaign status",
				slog.String("campaign_id", campaigns[i].Id), slog.String("error", err.Error()))
			continue
		}
		campaignsRefreshed++
	}

	events, err := store.ListUnsettledCompletedEvents(ctx)
	if err != nil {
		log.Fatalf("failed to list unsettled events: %v", err)
	}

	settled, skipped, failed := 0, 0, 0
	for i := range events {
		event := &events[i]
		ok, err := coordinator.SettleEvent(ctx, event)
		switch {
		case err != nil:
			logger.Error("event settlement errored",
				slog.String("event_id", event.Id), slog.String("error", err.Error()))
			failed++
		case ok:
			logger.Info("event settled",
				slog.String("event_id", event.Id), slog.String("tx_hash", *event.TransactionHash))
			settled++
		default:
			// Chain failure was logged by the coordinator, or the event was
			// settled concurrently.
			skipped++
		}
	}

	log.Printf("refreshed %d campaigns; %d events examined: %d settled, %d skipped, %d failed",
		campaignsRefreshed, len(events), settled, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
