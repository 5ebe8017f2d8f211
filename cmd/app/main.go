package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/clearfund/charity-ledger/pkg/chain"
	"github.com/clearfund/charity-ledger/pkg/handlers"
	"github.com/clearfund/charity-ledger/pkg/ledger"
	"github.com/clearfund/charity-ledger/pkg/reconcile"
	"github.com/clearfund/charity-ledger/pkg/settlement"
	dynamostore "github.com/clearfund/charity-ledger/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
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

	// Create our storage implementation
	store := dynamostore.New(dbClient, charitiesTable, campaignsTable, donationsTable, eventsTable)

	// Chain settlement is optional: with incomplete configuration the
	// service runs local-only and every settlement step is skipped.
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

	coordinator := settlement.New(store, chainClient, logger,
		os.Getenv("ADMIN_WALLET_ADDRESS"), os.Getenv("METADATA_BASE_URL"))
	campaignLedger := ledger.New(store, store)
	trigger := reconcile.New(campaignLedger, coordinator, logger)

	// Create our handler and router
	handler := handlers.NewApiHandler(store, coordinator, trigger)
	router := handler.Router(logger)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
