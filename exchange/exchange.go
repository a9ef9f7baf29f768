// Package exchange turns user trading intents into signed, server-verifiable
// /exchange requests: symbols are resolved to wire indices, the action is
// canonically encoded and hashed, the hash (or the typed structure itself)
// is signed, and the signed envelope is submitted.
package exchange

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/oaktrade/go-hyperliquid/constants"
	"github.com/oaktrade/go-hyperliquid/info"
	"github.com/oaktrade/go-hyperliquid/internal/utils"
	"github.com/oaktrade/go-hyperliquid/rest"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

// Config for initializing the Exchange client
type Config struct {
	// BaseURL overrides the network's default API URL.
	BaseURL string
	// Network selects the signing domains. When unset it is derived from
	// BaseURL by equality with the known mainnet URL.
	Network Network
	Timeout time.Duration
	// PrivateKey is the wallet key every action is signed with.
	PrivateKey *ecdsa.PrivateKey
	// VaultAddress, when set, is the sub-account all actions act on behalf
	// of. Absent, the zero address stands in for it in hash inputs.
	VaultAddress common.Address
	// Meta skips the instrument-universe fetch when provided.
	Meta *info.Meta
	// Entropy is the randomness source for agent key generation.
	// Defaults to crypto/rand.
	Entropy io.Reader
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// Exchange provides access to trading operations via the REST API. All
// fields are immutable after New; concurrent calls share only read access.
type Exchange struct {
	rest         rest.ClientInterface
	privateKey   *ecdsa.PrivateKey
	vaultAddress mo.Option[common.Address]
	assets       *assetIndex
	network      Network
	entropy      io.Reader
	log          *zap.Logger

	// now is the single clock read per call; the value is both the
	// replay-protection nonce and a hash-input field.
	now func() uint64
}

// New creates a new Exchange client, fetching the instrument universe
// unless one is supplied in the config.
func New(ctx context.Context, cfg Config) (*Exchange, error) {
	if cfg.PrivateKey == nil {
		return nil, fmt.Errorf("private key is required")
	}

	network := cfg.Network
	baseURL := cfg.BaseURL
	switch {
	case baseURL == "" && network == 0:
		network = NetworkMainnet
		baseURL = network.BaseURL()
	case baseURL == "":
		baseURL = network.BaseURL()
	case network == 0:
		network = NetworkFromURL(baseURL)
	}

	restClient := rest.New(rest.Config{
		BaseUrl: baseURL,
		Timeout: cfg.Timeout,
	})

	meta := cfg.Meta
	if meta == nil {
		infoClient := info.New(info.Config{
			BaseURL: baseURL,
			Timeout: cfg.Timeout,
		})

		var err error
		meta, err = infoClient.Meta(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch instrument universe: %w", err)
		}
	}

	var vaultAddress mo.Option[common.Address]
	if cfg.VaultAddress != constants.ZERO_ADDRESS {
		vaultAddress = mo.Some(cfg.VaultAddress)
	}

	entropy := cfg.Entropy
	if entropy == nil {
		entropy = rand.Reader
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Exchange{
		rest:         restClient,
		privateKey:   cfg.PrivateKey,
		vaultAddress: vaultAddress,
		assets:       newAssetIndex(meta.Universe),
		network:      network,
		entropy:      entropy,
		log:          logger,
		now:          func() uint64 { return uint64(time.Now().UnixMilli()) },
	}, nil
}

// Order submits a single order
func (e *Exchange) Order(
	ctx context.Context,
	order orderRequest,
) (Response, error) {
	return e.BulkOrders(ctx, []orderRequest{order})
}

// BulkOrders submits multiple orders in a single signed action. Any
// unresolved symbol aborts the entire batch before the network call.
func (e *Exchange) BulkOrders(
	ctx context.Context,
	orders []orderRequest,
) (Response, error) {
	if len(orders) == 0 {
		return Response{}, fmt.Errorf("at least one order is required")
	}

	timestamp := e.now()

	tuples := make([]orderTuple, len(orders))
	wires := make([]orderWire, len(orders))
	withCloid := false

	for i, order := range orders {
		asset, err := e.assets.resolve(order.coin)
		if err != nil {
			return Response{}, err
		}

		tuple, err := order.hashTuple(asset)
		if err != nil {
			return Response{}, fmt.Errorf("failed to encode order %d: %w", i, err)
		}

		wire, err := order.toWire(asset)
		if err != nil {
			return Response{}, fmt.Errorf("failed to convert order %d: %w", i, err)
		}

		tuples[i] = tuple
		wires[i] = wire
		withCloid = withCloid || order.cloid.IsPresent()
	}

	connectionID, err := ordersConnectionID(
		tuples,
		withCloid,
		e.vaultOrZero(),
		timestamp,
	)
	if err != nil {
		return Response{}, err
	}

	sig, err := signL1Action(e.privateKey, e.network, connectionID)
	if err != nil {
		return Response{}, err
	}

	return e.post(ctx, ordersToAction(wires), sig, timestamp)
}

// Cancel cancels a single order by order ID
func (e *Exchange) Cancel(
	ctx context.Context,
	cancel cancelRequest,
) (Response, error) {
	return e.BulkCancel(ctx, []cancelRequest{cancel})
}

// BulkCancel cancels multiple orders in a single signed action
func (e *Exchange) BulkCancel(
	ctx context.Context,
	cancels []cancelRequest,
) (Response, error) {
	if len(cancels) == 0 {
		return Response{}, fmt.Errorf("at least one cancel is required")
	}

	timestamp := e.now()

	tuples := make([]cancelTuple, len(cancels))
	wires := make([]cancelWire, len(cancels))

	for i, cancel := range cancels {
		asset, err := e.assets.resolve(cancel.Coin)
		if err != nil {
			return Response{}, err
		}

		tuples[i] = cancel.hashTuple(asset)
		wires[i] = cancel.toWire(asset)
	}

	connectionID, err := cancelsConnectionID(tuples, e.vaultOrZero(), timestamp)
	if err != nil {
		return Response{}, err
	}

	sig, err := signL1Action(e.privateKey, e.network, connectionID)
	if err != nil {
		return Response{}, err
	}

	return e.post(ctx, cancelsToAction(wires), sig, timestamp)
}

// UpdateLeverage updates the leverage for an asset
func (e *Exchange) UpdateLeverage(
	ctx context.Context,
	leverage uint32,
	coin string,
	isCross bool,
) (Response, error) {
	timestamp := e.now()

	asset, err := e.assets.resolve(coin)
	if err != nil {
		return Response{}, err
	}

	connectionID, err := leverageConnectionID(
		asset,
		isCross,
		leverage,
		e.vaultOrZero(),
		timestamp,
	)
	if err != nil {
		return Response{}, err
	}

	sig, err := signL1Action(e.privateKey, e.network, connectionID)
	if err != nil {
		return Response{}, err
	}

	action := updateLeverageAction{
		Type:     "updateLeverage",
		Asset:    asset,
		IsCross:  isCross,
		Leverage: leverage,
	}

	return e.post(ctx, action, sig, timestamp)
}

// UpdateIsolatedMargin adjusts the isolated margin for an asset. The
// user-facing decimal amount is scaled to an integer with 6 decimals.
func (e *Exchange) UpdateIsolatedMargin(
	ctx context.Context,
	amount float64,
	coin string,
) (Response, error) {
	timestamp := e.now()

	asset, err := e.assets.resolve(coin)
	if err != nil {
		return Response{}, err
	}

	ntli := utils.FloatToUsdInt(amount)

	connectionID, err := marginConnectionID(
		asset,
		ntli,
		e.vaultOrZero(),
		timestamp,
	)
	if err != nil {
		return Response{}, err
	}

	sig, err := signL1Action(e.privateKey, e.network, connectionID)
	if err != nil {
		return Response{}, err
	}

	action := updateIsolatedMarginAction{
		Type:  "updateIsolatedMargin",
		Asset: asset,
		IsBuy: true,
		Ntli:  ntli,
	}

	return e.post(ctx, action, sig, timestamp)
}

// UsdTransfer sends USD to another address. The typed payload itself is
// signed; there is no tuple hash for this action.
func (e *Exchange) UsdTransfer(
	ctx context.Context,
	amount string,
	destination common.Address,
) (Response, error) {
	timestamp := e.now()
	dest := strings.ToLower(destination.Hex())

	sig, err := signUsdTransfer(
		e.privateKey,
		e.network,
		dest,
		amount,
		timestamp,
	)
	if err != nil {
		return Response{}, err
	}

	action := usdTransferAction{
		Type:  "usdTransfer",
		Chain: e.network.ChainLabel(),
		Payload: usdTransferPayload{
			Destination: dest,
			Amount:      amount,
			Time:        timestamp,
		},
	}

	return e.post(ctx, action, sig, timestamp)
}

// ApproveAgent generates a throwaway agent key, authorizes its derived
// address with a wallet signature, and returns the raw key hex together
// with the submission result. The caller owns the returned key.
func (e *Exchange) ApproveAgent(ctx context.Context) (string, Response, error) {
	timestamp := e.now()

	agentKey, err := ecdsa.GenerateKey(crypto.S256(), e.entropy)
	if err != nil {
		return "", Response{}, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	agentAddress := crypto.PubkeyToAddress(agentKey.PublicKey)

	connectionID, err := agentConnectionID(agentAddress)
	if err != nil {
		return "", Response{}, err
	}

	sig, err := signAgentApproval(e.privateKey, e.network, connectionID)
	if err != nil {
		return "", Response{}, err
	}

	action := connectAction{
		Type:  "connect",
		Chain: e.network.ChainLabel(),
		Agent: agentWire{
			Source:       constants.AGENT_SOURCE_URL,
			ConnectionID: connectionID,
		},
		AgentAddress: agentAddress,
	}

	resp, err := e.post(ctx, action, sig, timestamp)
	if err != nil {
		return "", Response{}, err
	}

	return hex.EncodeToString(crypto.FromECDSA(agentKey)), resp, nil
}

// exchangeRequest is the signed envelope submitted to /exchange.
type exchangeRequest struct {
	Action       action    `json:"action"`
	Signature    signature `json:"signature"`
	Nonce        uint64    `json:"nonce"`
	VaultAddress *string   `json:"vaultAddress"`
}

func (e *Exchange) post(
	ctx context.Context,
	act action,
	sig signature,
	timestamp uint64,
) (Response, error) {
	var vaultAddress *string
	if v, ok := e.vaultAddress.Get(); ok {
		checksummed := v.Hex()
		vaultAddress = &checksummed
	}

	payload := exchangeRequest{
		Action:       act,
		Signature:    sig,
		Nonce:        timestamp,
		VaultAddress: vaultAddress,
	}

	e.log.Debug("submitting exchange action",
		zap.String("type", act.actionType()),
		zap.Uint64("nonce", timestamp),
		zap.Stringer("network", e.network),
	)

	var result Response
	if err := e.rest.Post(ctx, "/exchange", payload, &result); err != nil {
		return Response{}, fmt.Errorf(
			"failed to post %s action: %w",
			act.actionType(),
			err,
		)
	}

	if result.IsErr() {
		e.log.Debug("exchange rejected action",
			zap.String("type", act.actionType()),
			zap.String("error", result.ErrorMessage),
		)
	}

	return result, nil
}

// vaultOrZero is the fixed-arity hash-input form of the vault address:
// absent vaults are zero-filled, never omitted.
func (e *Exchange) vaultOrZero() common.Address {
	return e.vaultAddress.OrElse(constants.ZERO_ADDRESS)
}
