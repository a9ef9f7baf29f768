package exchange

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oaktrade/go-hyperliquid/internal/utils"
	"github.com/oaktrade/go-hyperliquid/types"
	"github.com/samber/mo"
)

// ============================================================================
// Action Interface
// ============================================================================

// action is implemented by every wire-level action that can be signed and
// posted to /exchange. The type discriminator is part of the JSON envelope.
type action interface {
	actionType() string
}

// ============================================================================
// Order Types
// ============================================================================

type OrderType struct {
	Limit   *LimitOrder
	Trigger *TriggerOrder
}

type LimitOrder struct {
	Tif string `json:"tif"`
}

type TriggerOrder struct {
	IsMarket  bool
	TriggerPx float64
	TpSl      string
}

type orderTypeWire struct {
	Limit   *LimitOrder       `json:"limit,omitempty"`
	Trigger *triggerOrderWire `json:"trigger,omitempty"`
}

type triggerOrderWire struct {
	IsMarket  bool   `json:"isMarket"`
	TriggerPx string `json:"triggerPx"`
	TpSl      string `json:"tpsl"`
}

// hashParams encodes the order type as the (code, argument) pair that
// participates in the canonical tuple. Limit orders carry their tif as the
// code with a zero argument; trigger orders carry the scaled trigger price.
func (t OrderType) hashParams() (uint8, uint64, error) {
	switch {
	case t.Limit != nil:
		switch t.Limit.Tif {
		case "Alo":
			return 1, 0, nil
		case "Gtc":
			return 2, 0, nil
		case "Ioc":
			return 3, 0, nil
		default:
			return 0, 0, fmt.Errorf("%w: unknown tif %q", ErrEncoding, t.Limit.Tif)
		}

	case t.Trigger != nil:
		triggerPx := utils.FloatToIntForHashing(t.Trigger.TriggerPx)
		switch {
		case t.Trigger.TpSl == "tp" && t.Trigger.IsMarket:
			return 4, triggerPx, nil
		case t.Trigger.TpSl == "tp":
			return 5, triggerPx, nil
		case t.Trigger.TpSl == "sl" && t.Trigger.IsMarket:
			return 6, triggerPx, nil
		case t.Trigger.TpSl == "sl":
			return 7, triggerPx, nil
		default:
			return 0, 0, fmt.Errorf("%w: unknown tpsl %q", ErrEncoding, t.Trigger.TpSl)
		}

	default:
		return 0, 0, fmt.Errorf("%w: order type must set limit or trigger", ErrEncoding)
	}
}

// toOrderTypeWire converts OrderType to wire format
func (t OrderType) toOrderTypeWire() (orderTypeWire, error) {
	wire := orderTypeWire{}

	if t.Limit != nil {
		wire.Limit = &LimitOrder{
			Tif: t.Limit.Tif,
		}
	}

	if t.Trigger != nil {
		triggerPxStr, err := utils.FloatToWire(t.Trigger.TriggerPx)
		if err != nil {
			return orderTypeWire{}, fmt.Errorf(
				"failed to convert trigger price: %w",
				err,
			)
		}

		wire.Trigger = &triggerOrderWire{
			IsMarket:  t.Trigger.IsMarket,
			TriggerPx: triggerPxStr,
			TpSl:      t.Trigger.TpSl,
		}
	}

	return wire, nil
}

// ============================================================================
// Order Request
// ============================================================================

type orderRequest struct {
	coin       string
	isBuy      bool
	sz         float64
	limitPx    float64
	orderType  OrderType
	reduceOnly bool
	cloid      mo.Option[types.Cloid]
}

type orderRequestOption func(*orderRequestConfig)

type orderRequestConfig struct {
	reduceOnly   bool
	cloid        mo.Option[types.Cloid]
	limitOrder   mo.Option[LimitOrder]
	triggerOrder mo.Option[TriggerOrder]
}

func OrderRequest(
	coin string,
	isBuy bool,
	sz float64,
	limitPx float64,
	opts ...orderRequestOption,
) orderRequest {
	cfg := orderRequestConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var orderType OrderType
	if l, ok := cfg.limitOrder.Get(); ok {
		orderType.Limit = &l
	} else if t, ok := cfg.triggerOrder.Get(); ok {
		orderType.Trigger = &t
	} else {
		panic("Failed to create OrderRequest. OrderType must be set")
	}

	return orderRequest{
		coin:       coin,
		isBuy:      isBuy,
		sz:         sz,
		limitPx:    limitPx,
		orderType:  orderType,
		reduceOnly: cfg.reduceOnly,
		cloid:      cfg.cloid,
	}
}

// WithReduceOnly sets the reduce-only flag
func WithReduceOnly(reduceOnly bool) orderRequestOption {
	return func(cfg *orderRequestConfig) {
		cfg.reduceOnly = reduceOnly
	}
}

// WithCloid sets the client order ID
func WithCloid(c types.Cloid) orderRequestOption {
	return func(cfg *orderRequestConfig) {
		cfg.cloid = mo.Some(c)
	}
}

func WithLimitOrder(limitOrder LimitOrder) orderRequestOption {
	return func(cfg *orderRequestConfig) {
		cfg.limitOrder = mo.Some(limitOrder)
	}
}

func WithTriggerOrder(triggerOrder TriggerOrder) orderRequestOption {
	return func(cfg *orderRequestConfig) {
		cfg.triggerOrder = mo.Some(triggerOrder)
	}
}

type orderWire struct {
	Asset      uint32        `json:"asset"`
	IsBuy      bool          `json:"isBuy"`
	LimitPx    string        `json:"limitPx"`
	Sz         string        `json:"sz"`
	ReduceOnly bool          `json:"reduceOnly"`
	OrderType  orderTypeWire `json:"orderType"`
	Cloid      *types.Cloid  `json:"cloid,omitempty"`
}

// toWire converts an orderRequest to its JSON wire form
func (o orderRequest) toWire(asset uint32) (orderWire, error) {
	sizeStr, err := utils.FloatToWire(o.sz)
	if err != nil {
		return orderWire{}, fmt.Errorf("failed to convert size: %w", err)
	}

	priceStr, err := utils.FloatToWire(o.limitPx)
	if err != nil {
		return orderWire{}, fmt.Errorf("failed to convert limit price: %w", err)
	}

	orderTypeWire, err := o.orderType.toOrderTypeWire()
	if err != nil {
		return orderWire{}, fmt.Errorf("failed to convert order type: %w", err)
	}

	return orderWire{
		Asset:      asset,
		IsBuy:      o.isBuy,
		LimitPx:    priceStr,
		Sz:         sizeStr,
		ReduceOnly: o.reduceOnly,
		OrderType:  orderTypeWire,
		Cloid:      o.cloid.ToPointer(),
	}, nil
}

// hashTuple converts an orderRequest to its canonical hash form. The cloid
// field is zero-filled when absent; whether it participates in the encoding
// is decided per batch.
func (o orderRequest) hashTuple(asset uint32) (orderTuple, error) {
	code, triggerPx, err := o.orderType.hashParams()
	if err != nil {
		return orderTuple{}, err
	}

	tuple := orderTuple{
		Asset:      asset,
		IsBuy:      o.isBuy,
		LimitPx:    utils.FloatToIntForHashing(o.limitPx),
		Sz:         utils.FloatToIntForHashing(o.sz),
		ReduceOnly: o.reduceOnly,
		OrderType:  code,
		TriggerPx:  triggerPx,
	}

	if c, ok := o.cloid.Get(); ok {
		tuple.Cloid = c.Bytes16()
	}

	return tuple, nil
}

type orderAction struct {
	Type     string      `json:"type"`
	Grouping string      `json:"grouping"`
	Orders   []orderWire `json:"orders"`
}

func (o orderAction) actionType() string {
	return o.Type
}

// ordersToAction wraps order wires in an ungrouped bulk order action
func ordersToAction(orders []orderWire) orderAction {
	return orderAction{
		Type:     "order",
		Grouping: "na",
		Orders:   orders,
	}
}

// ============================================================================
// Cancel Request
// ============================================================================

type cancelRequest struct {
	Coin string
	Oid  uint64
}

// CancelRequest creates a new cancel request with an order ID
func CancelRequest(coin string, oid uint64) cancelRequest {
	return cancelRequest{
		Coin: coin,
		Oid:  oid,
	}
}

// hashTuple converts a cancelRequest to its canonical hash form
func (c cancelRequest) hashTuple(asset uint32) cancelTuple {
	return cancelTuple{
		Asset: asset,
		Oid:   c.Oid,
	}
}

type cancelWire struct {
	Asset uint32 `json:"asset"`
	Oid   uint64 `json:"oid"`
}

func (c cancelRequest) toWire(asset uint32) cancelWire {
	return cancelWire{
		Asset: asset,
		Oid:   c.Oid,
	}
}

type cancelAction struct {
	Type    string       `json:"type"`
	Cancels []cancelWire `json:"cancels"`
}

func (c cancelAction) actionType() string {
	return c.Type
}

func cancelsToAction(cancels []cancelWire) cancelAction {
	return cancelAction{
		Type:    "cancel",
		Cancels: cancels,
	}
}

// ============================================================================
// Update Leverage
// ============================================================================

type updateLeverageAction struct {
	Type     string `json:"type"`
	Asset    uint32 `json:"asset"`
	IsCross  bool   `json:"isCross"`
	Leverage uint32 `json:"leverage"`
}

func (u updateLeverageAction) actionType() string {
	return u.Type
}

// ============================================================================
// Update Isolated Margin
// ============================================================================

type updateIsolatedMarginAction struct {
	Type  string `json:"type"`
	Asset uint32 `json:"asset"`
	IsBuy bool   `json:"isBuy"`
	Ntli  int64  `json:"ntli"`
}

func (u updateIsolatedMarginAction) actionType() string {
	return u.Type
}

// ============================================================================
// USD Transfer
// ============================================================================

type usdTransferPayload struct {
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
	Time        uint64 `json:"time"`
}

type usdTransferAction struct {
	Type    string             `json:"type"`
	Chain   string             `json:"chain"`
	Payload usdTransferPayload `json:"payload"`
}

func (u usdTransferAction) actionType() string {
	return u.Type
}

// ============================================================================
// Agent Connect
// ============================================================================

type agentWire struct {
	Source       string      `json:"source"`
	ConnectionID common.Hash `json:"connectionId"`
}

type connectAction struct {
	Type         string         `json:"type"`
	Chain        string         `json:"chain"`
	Agent        agentWire      `json:"agent"`
	AgentAddress common.Address `json:"agentAddress"`
}

func (c connectAction) actionType() string {
	return c.Type
}
