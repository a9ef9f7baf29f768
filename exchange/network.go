package exchange

import (
	"fmt"

	"github.com/oaktrade/go-hyperliquid/constants"
)

// Network identifies which deployment of the exchange a client talks to.
// It is fixed at construction and selects the typed-data domain parameters
// for every signature.
type Network uint8

const (
	NetworkMainnet Network = iota + 1
	NetworkTestnet
	// NetworkLocal is a non-production deployment used only for local
	// testing; its L1 domain carries chain id 1337.
	NetworkLocal
)

// NetworkFromURL maps a base URL to a network. Only the known mainnet URL
// selects mainnet; every other URL is treated as non-mainnet.
func NetworkFromURL(baseURL string) Network {
	if baseURL == constants.MAINNET_API_URL {
		return NetworkMainnet
	}
	return NetworkTestnet
}

// BaseURL returns the default API URL for the network.
func (n Network) BaseURL() string {
	switch n {
	case NetworkMainnet:
		return constants.MAINNET_API_URL
	case NetworkTestnet:
		return constants.TESTNET_API_URL
	default:
		return constants.LOCAL_API_URL
	}
}

// ChainLabel is the chain name embedded in usdTransfer and connect actions.
func (n Network) ChainLabel() string {
	if n == NetworkMainnet {
		return "Arbitrum"
	}
	return "ArbitrumGoerli"
}

// agentSource is the network tag inside the Agent struct signed for
// generic L1 actions.
func (n Network) agentSource() string {
	if n == NetworkMainnet {
		return "a"
	}
	return "b"
}

// l1ChainID selects the typed-data domain chain id for generic L1 actions.
func (n Network) l1ChainID() int64 {
	switch n {
	case NetworkMainnet:
		return constants.L1_MAINNET_CHAIN_ID
	case NetworkTestnet:
		return constants.L1_TESTNET_CHAIN_ID
	default:
		return constants.L1_LOCAL_CHAIN_ID
	}
}

// userChainID selects the typed-data domain chain id for user-signed
// actions (USD transfer, agent connect).
func (n Network) userChainID() int64 {
	if n == NetworkMainnet {
		return constants.USER_MAINNET_CHAIN_ID
	}
	return constants.USER_TESTNET_CHAIN_ID
}

func (n Network) String() string {
	switch n {
	case NetworkMainnet:
		return "mainnet"
	case NetworkTestnet:
		return "testnet"
	case NetworkLocal:
		return "local"
	default:
		return fmt.Sprintf("Network(%d)", uint8(n))
	}
}
