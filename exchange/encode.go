package exchange

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// The connection id is keccak256 over the standard ABI encoding of a
// canonical, order-significant tuple per action kind. The verifier
// recomputes the identical tuple from the submitted JSON, so field order,
// presence and integer widths here are wire contract.

// groupingCode is a reserved discriminator for future order-grouping
// strategies; the client always emits ungrouped ("na") batches tagged 0.
const groupingCode uint32 = 0

// orderTuple is the canonical hash form of a single order. Cloid only
// participates in the encoding when the batch carries client order ids.
type orderTuple struct {
	Asset      uint32
	IsBuy      bool
	LimitPx    uint64
	Sz         uint64
	ReduceOnly bool
	OrderType  uint8
	TriggerPx  uint64
	Cloid      [16]byte
}

// cancelTuple is the canonical hash form of a single cancel.
type cancelTuple struct {
	Asset uint32
	Oid   uint64
}

var orderComponents = []abi.ArgumentMarshaling{
	{Name: "asset", Type: "uint32"},
	{Name: "isBuy", Type: "bool"},
	{Name: "limitPx", Type: "uint64"},
	{Name: "sz", Type: "uint64"},
	{Name: "reduceOnly", Type: "bool"},
	{Name: "orderType", Type: "uint8"},
	{Name: "triggerPx", Type: "uint64"},
}

var orderCloidComponents = append(
	append([]abi.ArgumentMarshaling{}, orderComponents...),
	abi.ArgumentMarshaling{Name: "cloid", Type: "bytes16"},
)

var (
	orderTuplesT = mustNewType("tuple[]", orderComponents)

	orderCloidTuplesT = mustNewType("tuple[]", orderCloidComponents)

	cancelTuplesT = mustNewType("tuple[]", []abi.ArgumentMarshaling{
		{Name: "asset", Type: "uint32"},
		{Name: "oid", Type: "uint64"},
	})

	uint32T  = mustNewType("uint32", nil)
	boolT    = mustNewType("bool", nil)
	uint64T  = mustNewType("uint64", nil)
	int64T   = mustNewType("int64", nil)
	addressT = mustNewType("address", nil)
)

func mustNewType(t string, components []abi.ArgumentMarshaling) abi.Type {
	typ, err := abi.NewType(t, "", components)
	if err != nil {
		panic(fmt.Sprintf("bad abi type %s: %v", t, err))
	}
	return typ
}

func keccakTuple(types []abi.Type, values ...any) (common.Hash, error) {
	args := make(abi.Arguments, len(types))
	for i, t := range types {
		args[i] = abi.Argument{Type: t}
	}

	packed, err := args.Pack(values...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	return crypto.Keccak256Hash(packed), nil
}

// ordersConnectionID hashes a bulk order batch. When withCloid is set,
// every tuple in the batch is encoded with its trailing bytes16 client
// order id (zero-filled for orders without one).
func ordersConnectionID(
	tuples []orderTuple,
	withCloid bool,
	vaultOrZero common.Address,
	timestamp uint64,
) (common.Hash, error) {
	tuplesT := orderTuplesT
	if withCloid {
		tuplesT = orderCloidTuplesT
	}

	return keccakTuple(
		[]abi.Type{tuplesT, uint32T, addressT, uint64T},
		tuples, groupingCode, vaultOrZero, timestamp,
	)
}

// cancelsConnectionID hashes a bulk cancel batch.
func cancelsConnectionID(
	tuples []cancelTuple,
	vaultOrZero common.Address,
	timestamp uint64,
) (common.Hash, error) {
	return keccakTuple(
		[]abi.Type{cancelTuplesT, addressT, uint64T},
		tuples, vaultOrZero, timestamp,
	)
}

// leverageConnectionID hashes an updateLeverage action.
func leverageConnectionID(
	asset uint32,
	isCross bool,
	leverage uint32,
	vaultOrZero common.Address,
	timestamp uint64,
) (common.Hash, error) {
	return keccakTuple(
		[]abi.Type{uint32T, boolT, uint32T, addressT, uint64T},
		asset, isCross, leverage, vaultOrZero, timestamp,
	)
}

// marginConnectionID hashes an updateIsolatedMargin action. The isBuy flag
// is fixed true on the wire; the sign of ntli carries direction.
func marginConnectionID(
	asset uint32,
	ntli int64,
	vaultOrZero common.Address,
	timestamp uint64,
) (common.Hash, error) {
	return keccakTuple(
		[]abi.Type{uint32T, boolT, int64T, addressT, uint64T},
		asset, true, ntli, vaultOrZero, timestamp,
	)
}

// agentConnectionID hashes the derived agent address alone.
func agentConnectionID(agentAddress common.Address) (common.Hash, error) {
	return keccakTuple([]abi.Type{addressT}, agentAddress)
}
