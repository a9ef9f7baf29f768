package exchange

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/oaktrade/go-hyperliquid/constants"
)

// Two signing schemes exist. Generic L1 actions sign an Agent struct whose
// connectionId is the action's tuple hash; user-signed actions (USD
// transfer) sign the typed structure directly. Domain parameters are a pure
// function of (network, action kind); the verifying contract slot is the
// reserved zero address in every domain.

// signL1Action signs a connection id under the fixed-shape Agent domain,
// tagging the message with the network's one-letter source.
func signL1Action(
	key *ecdsa.PrivateKey,
	network Network,
	connectionID common.Hash,
) (signature, error) {
	typedData := agentTypedData(
		network.l1ChainID(),
		network.agentSource(),
		connectionID,
	)

	return signTypedData(key, typedData)
}

// signAgentApproval signs the Agent struct with the real wallet to
// authorize a freshly generated agent key. Unlike L1 actions, the source is
// the fixed service URL and the domain follows the user-signed chain id.
func signAgentApproval(
	key *ecdsa.PrivateKey,
	network Network,
	connectionID common.Hash,
) (signature, error) {
	typedData := agentTypedData(
		network.userChainID(),
		constants.AGENT_SOURCE_URL,
		connectionID,
	)

	return signTypedData(key, typedData)
}

// signUsdTransfer signs the transfer payload itself as typed data; there is
// no derived tuple hash for this action kind.
func signUsdTransfer(
	key *ecdsa.PrivateKey,
	network Network,
	destination string,
	amount string,
	timestamp uint64,
) (signature, error) {
	typedData := usdTransferTypedData(
		network.userChainID(),
		destination,
		amount,
		timestamp,
	)

	return signTypedData(key, typedData)
}

func signTypedData(
	key *ecdsa.PrivateKey,
	typedData apitypes.TypedData,
) (signature, error) {
	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return signature{}, fmt.Errorf(
			"%w: hashing typed data: %v",
			ErrSigning,
			err,
		)
	}

	return signHash(key, common.BytesToHash(hash))
}

// signHash signs a 32-byte digest and returns a recoverable signature
func signHash(key *ecdsa.PrivateKey, hash common.Hash) (signature, error) {
	var out signature

	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrSigning, err)
	}

	if len(sig) != 65 {
		return out, fmt.Errorf(
			"%w: invalid signature length: %d",
			ErrSigning,
			len(sig),
		)
	}

	// sig = [R || S || V]
	copy(out.R[:], sig[:32])
	copy(out.S[:], sig[32:64])
	v := sig[64]

	// Ethereum canonical V = 27 or 28
	if v < 27 {
		v += 27
	}

	out.V = v

	return out, nil
}

func agentTypedData(
	chainID int64,
	source string,
	connectionID common.Hash,
) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Agent": {
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
		},
		PrimaryType: "Agent",
		Domain:      exchangeDomain(chainID),
		Message: apitypes.TypedDataMessage{
			"source":       source,
			"connectionId": connectionID,
		},
	}
}

func usdTransferTypedData(
	chainID int64,
	destination string,
	amount string,
	timestamp uint64,
) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"HyperliquidTransaction:UsdTransfer": {
				{Name: "destination", Type: "string"},
				{Name: "amount", Type: "string"},
				{Name: "time", Type: "uint64"},
			},
		},
		PrimaryType: "HyperliquidTransaction:UsdTransfer",
		Domain:      exchangeDomain(chainID),
		Message: apitypes.TypedDataMessage{
			"destination": destination,
			"amount":      amount,
			"time":        math.NewHexOrDecimal256(int64(timestamp)),
		},
	}
}

func exchangeDomain(chainID int64) apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              "Exchange",
		Version:           "1",
		ChainId:           math.NewHexOrDecimal256(chainID),
		VerifyingContract: constants.ZERO_ADDRESS.Hex(),
	}
}
