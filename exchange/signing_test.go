package exchange

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/oaktrade/go-hyperliquid/constants"
)

func testPrivateKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	key, err := crypto.HexToECDSA(
		"0123456789012345678901234567890123456789012345678901234567890123",
	)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

// recoverSigner recovers the signing address from a signature over the
// given typed data.
func recoverSigner(
	t *testing.T,
	typedData apitypes.TypedData,
	sig signature,
) common.Address {
	t.Helper()

	digest, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		t.Fatal(err)
	}

	raw := make([]byte, 65)
	copy(raw[:32], sig.R[:])
	copy(raw[32:64], sig.S[:])
	raw[64] = sig.V - 27

	pubkey, err := crypto.SigToPub(digest, raw)
	if err != nil {
		t.Fatal(err)
	}

	return crypto.PubkeyToAddress(*pubkey)
}

func TestSignL1ActionRecoversWallet(t *testing.T) {
	key := testPrivateKey(t)
	connectionID := common.HexToHash(
		"0x0fcbeda5ae3c4950a548021552a4fea2226858c4453571bf3f24ba017eac2908",
	)

	sig, err := signL1Action(key, NetworkMainnet, connectionID)
	if err != nil {
		t.Fatal(err)
	}

	if sig.V != 27 && sig.V != 28 {
		t.Fatalf("non-canonical V: %d", sig.V)
	}

	typedData := agentTypedData(
		NetworkMainnet.l1ChainID(),
		NetworkMainnet.agentSource(),
		connectionID,
	)

	recovered := recoverSigner(t, typedData, sig)
	if want := crypto.PubkeyToAddress(key.PublicKey); recovered != want {
		t.Fatalf("recovered %s, want %s", recovered.Hex(), want.Hex())
	}
}

func TestSignL1ActionDeterministic(t *testing.T) {
	key := testPrivateKey(t)
	connectionID := common.HexToHash("0x01")

	first, err := signL1Action(key, NetworkMainnet, connectionID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := signL1Action(key, NetworkMainnet, connectionID)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Fatal("signing is not deterministic for identical inputs")
	}
}

func TestSignL1ActionNetworkSeparation(t *testing.T) {
	key := testPrivateKey(t)
	connectionID := common.HexToHash("0x01")

	mainnet, err := signL1Action(key, NetworkMainnet, connectionID)
	if err != nil {
		t.Fatal(err)
	}
	testnet, err := signL1Action(key, NetworkTestnet, connectionID)
	if err != nil {
		t.Fatal(err)
	}
	local, err := signL1Action(key, NetworkLocal, connectionID)
	if err != nil {
		t.Fatal(err)
	}

	if mainnet == testnet || mainnet == local || testnet == local {
		t.Fatal("networks share a signature for the same connection id")
	}
}

func TestSignUsdTransferRecoversWallet(t *testing.T) {
	key := testPrivateKey(t)

	sig, err := signUsdTransfer(
		key,
		NetworkMainnet,
		"0x5e9ee1089755c3435139848e47e6635505d5a13a",
		"1.23",
		1690393044548,
	)
	if err != nil {
		t.Fatal(err)
	}

	typedData := usdTransferTypedData(
		NetworkMainnet.userChainID(),
		"0x5e9ee1089755c3435139848e47e6635505d5a13a",
		"1.23",
		1690393044548,
	)

	recovered := recoverSigner(t, typedData, sig)
	if want := crypto.PubkeyToAddress(key.PublicKey); recovered != want {
		t.Fatalf("recovered %s, want %s", recovered.Hex(), want.Hex())
	}
}

func TestSignAgentApprovalUsesServiceSource(t *testing.T) {
	key := testPrivateKey(t)
	connectionID := common.HexToHash("0x02")

	sig, err := signAgentApproval(key, NetworkTestnet, connectionID)
	if err != nil {
		t.Fatal(err)
	}

	typedData := agentTypedData(
		NetworkTestnet.userChainID(),
		constants.AGENT_SOURCE_URL,
		connectionID,
	)

	recovered := recoverSigner(t, typedData, sig)
	if want := crypto.PubkeyToAddress(key.PublicKey); recovered != want {
		t.Fatalf("recovered %s, want %s", recovered.Hex(), want.Hex())
	}
}

func TestDomainSelection(t *testing.T) {
	tests := []struct {
		network     Network
		l1ChainID   int64
		userChainID int64
		agentSource string
		chainLabel  string
	}{
		{NetworkMainnet, 42161, 42161, "a", "Arbitrum"},
		{NetworkTestnet, 421613, 421613, "b", "ArbitrumGoerli"},
		{NetworkLocal, 1337, 421613, "b", "ArbitrumGoerli"},
	}

	for _, tt := range tests {
		t.Run(tt.network.String(), func(t *testing.T) {
			if got := tt.network.l1ChainID(); got != tt.l1ChainID {
				t.Errorf("l1ChainID = %d, want %d", got, tt.l1ChainID)
			}
			if got := tt.network.userChainID(); got != tt.userChainID {
				t.Errorf("userChainID = %d, want %d", got, tt.userChainID)
			}
			if got := tt.network.agentSource(); got != tt.agentSource {
				t.Errorf("agentSource = %q, want %q", got, tt.agentSource)
			}
			if got := tt.network.ChainLabel(); got != tt.chainLabel {
				t.Errorf("ChainLabel = %q, want %q", got, tt.chainLabel)
			}
		})
	}
}

func TestNetworkFromURL(t *testing.T) {
	if got := NetworkFromURL(constants.MAINNET_API_URL); got != NetworkMainnet {
		t.Errorf("mainnet URL resolved to %s", got)
	}
	if got := NetworkFromURL(constants.TESTNET_API_URL); got != NetworkTestnet {
		t.Errorf("testnet URL resolved to %s", got)
	}
	if got := NetworkFromURL("http://localhost:8080"); got != NetworkTestnet {
		t.Errorf("unknown URL resolved to %s", got)
	}
}
