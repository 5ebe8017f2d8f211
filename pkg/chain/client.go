package chain

import (
	"context"
	"crypto/ecdsa"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

//go:embed abi.json
var contractABIJSON string

const (
	// defaultGasLimit backstops a failed gas estimation.
	defaultGasLimit = 300000

	// gasPriceBufferPercent is added on top of the node's suggested price.
	gasPriceBufferPercent = 20

	// receiptPollInterval is how often a pending receipt is re-queried.
	receiptPollInterval = 2 * time.Second

	// DefaultReceiptTimeout bounds how long a submission blocks waiting for
	// its transaction to mine.
	DefaultReceiptTimeout = 300 * time.Second
)

// defaultGasPrice (20 gwei) backstops a failed gas price query.
var defaultGasPrice = big.NewInt(20_000_000_000)

// Backend is the subset of the Ethereum client used by the chain client.
// Tests substitute a fake for it.
type Backend interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Config holds the connection and signing parameters for the chain client.
// All fields must be present for the client to be configured; a partially
// filled config produces a client that fails fast with ErrNotConfigured.
type Config struct {
	RPCURL          string
	ContractAddress string
	PrivateKey      string
	ChainID         int64
	ReceiptTimeout  time.Duration
}

// Complete reports whether every required parameter is set.
func (c Config) Complete() bool {
	return c.RPCURL != "" && c.ContractAddress != "" && c.PrivateKey != "" && c.ChainID != 0
}

// Client submits function-call transactions to the deployed contract and
// decodes the events it emits. It holds the signing key and serializes
// nonce allocation across concurrent submissions; it carries no other state.
type Client struct {
	backend    Backend
	abi        abi.ABI
	contract   common.Address
	key        *ecdsa.PrivateKey
	from       common.Address
	chainID    *big.Int
	timeout    time.Duration
	logger     *slog.Logger
	configured bool

	// nonceMu is held from pending-nonce read through broadcast so two
	// concurrent submissions from the same signer cannot race on a nonce.
	nonceMu sync.Mutex
}

// New constructs a Client from config. A config with missing parameters
// yields an unconfigured client rather than an error: the settlement path
// is a feature that degrades to local-only mode, and callers branch on
// IsConfigured.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if !cfg.Complete() {
		logger.Warn("chain configuration incomplete, settlement disabled",
			slog.Bool("rpc_url_set", cfg.RPCURL != ""),
			slog.Bool("contract_set", cfg.ContractAddress != ""),
			slog.Bool("key_set", cfg.PrivateKey != ""))
		return &Client{configured: false, logger: logger}, nil
	}

	backend, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chain rpc: %w", err)
	}

	return NewWithBackend(cfg, backend, logger)
}

// NewWithBackend constructs a configured Client over an explicit backend.
func NewWithBackend(cfg Config, backend Backend, logger *slog.Logger) (*Client, error) {
	if !cfg.Complete() {
		return &Client{configured: false, logger: logger}, nil
	}

	parsedABI, err := abi.JSON(strings.NewReader(contractABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract abi: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}

	timeout := cfg.ReceiptTimeout
	if timeout <= 0 {
		timeout = DefaultReceiptTimeout
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	logger.Info("chain client initialized",
		slog.String("contract", cfg.ContractAddress),
		slog.String("signer", from.Hex()),
		slog.Int64("chain_id", cfg.ChainID))

	return &Client{
		backend:    backend,
		abi:        parsedABI,
		contract:   common.HexToAddress(cfg.ContractAddress),
		key:        key,
		from:       from,
		chainID:    big.NewInt(cfg.ChainID),
		timeout:    timeout,
		logger:     logger,
		configured: true,
	}, nil
}

// IsConfigured reports whether the client can reach the contract. All other
// methods fail fast with ErrNotConfigured when false.
func (c *Client) IsConfigured() bool {
	return c.configured
}

// RegisterCharity registers a charity on the contract and returns the
// on-chain charity id emitted by the CharityRegistered event along with the
// transaction hash.
func (c *Client) RegisterCharity(ctx context.Context, wallet, name, metadataURI string) (int64, string, error) {
	txHash, err := c.submit(ctx, "registerCharity", nil, common.HexToAddress(wallet), name, metadataURI)
	if err != nil {
		return 0, "", err
	}

	charityID, err := c.ExtractEmittedID(ctx, txHash, "CharityRegistered", "charityId")
	if err != nil {
		return 0, "", err
	}

	c.logger.Info("charity registered on-chain", slog.Int64("on_chain_id", charityID), slog.String("tx", txHash))
	return charityID, txHash, nil
}

// CreateCampaign creates a campaign on the contract and returns the on-chain
// campaign id emitted by the CampaignCreated event along with the
// transaction hash.
func (c *Client) CreateCampaign(ctx context.Context, charityOnChainID int64, title, description string, goalAmount *big.Int, startUnix, endUnix int64) (int64, string, error) {
	txHash, err := c.submit(ctx, "createCampaign", nil,
		big.NewInt(charityOnChainID), title, description, goalAmount, big.NewInt(startUnix), big.NewInt(endUnix))
	if err != nil {
		return 0, "", err
	}

	campaignID, err := c.ExtractEmittedID(ctx, txHash, "CampaignCreated", "campaignId")
	if err != nil {
		return 0, "", err
	}

	c.logger.Info("campaign created on-chain", slog.Int64("on_chain_id", campaignID), slog.String("tx", txHash))
	return campaignID, txHash, nil
}

// DonateNative records a donation against the campaign, attaching value in
// the chain's native unit and reporting the actual fiat amount in cents.
func (c *Client) DonateNative(ctx context.Context, campaignOnChainID, amountCents int64, value *big.Int) (string, error) {
	txHash, err := c.submit(ctx, "donateNative", value, big.NewInt(campaignOnChainID), big.NewInt(amountCents))
	if err != nil {
		return "", err
	}

	c.logger.Info("donation recorded on-chain", slog.String("tx", txHash))
	return txHash, nil
}

// WithdrawNative withdraws funds held for a charity.
func (c *Client) WithdrawNative(ctx context.Context, charityOnChainID int64, amount *big.Int) (string, error) {
	txHash, err := c.submit(ctx, "withdrawNative", nil, big.NewInt(charityOnChainID), amount)
	if err != nil {
		return "", err
	}

	c.logger.Info("funds withdrawn on-chain", slog.String("tx", txHash))
	return txHash, nil
}

// CreateCampaignEvent discloses a fund allocation against the campaign,
// with the allocated amount in fiat cents.
func (c *Client) CreateCampaignEvent(ctx context.Context, campaignOnChainID, amountCents int64, title, description string) (string, error) {
	txHash, err := c.submit(ctx, "createCampaignEvent", nil,
		big.NewInt(campaignOnChainID), big.NewInt(amountCents), title, description)
	if err != nil {
		return "", err
	}

	c.logger.Info("campaign event recorded on-chain", slog.String("tx", txHash))
	return txHash, nil
}

// submit builds, signs and broadcasts a contract call, then blocks until the
// transaction mines or the receipt timeout elapses. There is no retry here;
// retry policy belongs to the caller.
func (c *Client) submit(ctx context.Context, function string, value *big.Int, args ...interface{}) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	data, err := c.abi.Pack(function, args...)
	if err != nil {
		return "", fmt.Errorf("failed to pack %s call: %w", function, err)
	}
	if value == nil {
		value = new(big.Int)
	}

	gasPrice := c.gasPrice(ctx)
	gasLimit := c.estimateGas(ctx, data, value, gasPrice)

	c.nonceMu.Lock()
	nonce, err := c.backend.PendingNonceAt(ctx, c.from)
	if err != nil {
		c.nonceMu.Unlock()
		return "", fmt.Errorf("failed to fetch pending nonce: %w", err)
	}

	tx := types.NewTransaction(nonce, c.contract, value, gasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		c.nonceMu.Unlock()
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	err = c.backend.SendTransaction(ctx, signed)
	c.nonceMu.Unlock()
	if err != nil {
		return "", fmt.Errorf("failed to broadcast transaction: %w", err)
	}

	return c.waitMined(ctx, signed.Hash())
}

// gasPrice asks the node for a suggestion and adds the buffer percentage,
// falling back to the default on failure.
func (c *Client) gasPrice(ctx context.Context) *big.Int {
	suggested, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		c.logger.Warn("gas price query failed, using default", slog.String("error", err.Error()))
		return new(big.Int).Set(defaultGasPrice)
	}

	buffered := new(big.Int).Mul(suggested, big.NewInt(100+gasPriceBufferPercent))
	return buffered.Div(buffered, big.NewInt(100))
}

// estimateGas estimates the gas limit for the call, falling back to the
// default limit on failure.
func (c *Client) estimateGas(ctx context.Context, data []byte, value, gasPrice *big.Int) uint64 {
	msg := ethereum.CallMsg{
		From:     c.from,
		To:       &c.contract,
		Value:    value,
		GasPrice: gasPrice,
		Data:     data,
	}

	gas, err := c.backend.EstimateGas(ctx, msg)
	if err != nil {
		c.logger.Warn("gas estimation failed, using default", slog.String("error", err.Error()))
		return defaultGasLimit
	}
	return gas
}

// waitMined polls for the transaction receipt until it appears or the
// timeout elapses. A mined receipt with a failed status is an execution
// error; an elapsed timeout is reported as such because the transaction may
// still be pending.
func (c *Client) waitMined(ctx context.Context, txHash common.Hash) (string, error) {
	deadline := time.Now().Add(c.timeout)
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, txHash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return "", &ExecutionError{TxHash: txHash.Hex()}
			}
			return txHash.Hex(), nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return "", fmt.Errorf("failed to query receipt for %s: %w", txHash.Hex(), err)
		}

		if time.Now().After(deadline) {
			return "", &TimeoutError{TxHash: txHash.Hex()}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// ExtractEmittedID decodes the named uint256 field from the given event in
// the transaction's receipt. A mined transaction missing the expected event
// indicates an ABI mismatch, surfaced as EventNotFoundError.
func (c *Client) ExtractEmittedID(ctx context.Context, txHash, eventName, field string) (int64, error) {
	if !c.configured {
		return 0, ErrNotConfigured
	}

	event, ok := c.abi.Events[eventName]
	if !ok {
		return 0, fmt.Errorf("event %s not present in contract abi", eventName)
	}

	receipt, err := c.backend.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return 0, fmt.Errorf("failed to query receipt for %s: %w", txHash, err)
	}

	for _, logEntry := range receipt.Logs {
		if logEntry.Address != c.contract || len(logEntry.Topics) == 0 || logEntry.Topics[0] != event.ID {
			continue
		}
		return decodeEventField(event, logEntry, field, txHash)
	}

	return 0, &EventNotFoundError{Event: eventName, TxHash: txHash}
}

func decodeEventField(event abi.Event, logEntry *types.Log, field, txHash string) (int64, error) {
	topicIndex := 1
	for _, input := range event.Inputs {
		if !input.Indexed {
			continue
		}
		if input.Name == field {
			if topicIndex >= len(logEntry.Topics) {
				return 0, &EventNotFoundError{Event: event.Name, TxHash: txHash}
			}
			return logEntry.Topics[topicIndex].Big().Int64(), nil
		}
		topicIndex++
	}

	values := make(map[string]interface{})
	if err := event.Inputs.UnpackIntoMap(values, logEntry.Data); err != nil {
		return 0, fmt.Errorf("failed to unpack %s data: %w", event.Name, err)
	}
	id, ok := values[field].(*big.Int)
	if !ok {
		return 0, &EventNotFoundError{Event: event.Name, TxHash: txHash}
	}
	return id.Int64(), nil
}
