package constants

import "github.com/ethereum/go-ethereum/common"

const MAINNET_API_URL = "https://api.hyperliquid.xyz"
const TESTNET_API_URL = "https://api.hyperliquid-testnet.xyz"
const LOCAL_API_URL = "http://localhost:3001"

// Chain ids for the Agent typed-data domain used by generic L1 actions.
const (
	L1_MAINNET_CHAIN_ID = 42161
	L1_TESTNET_CHAIN_ID = 421613
	L1_LOCAL_CHAIN_ID   = 1337
)

// Chain ids for user-signed typed-data actions (USD transfer, agent connect).
const (
	USER_MAINNET_CHAIN_ID = 42161
	USER_TESTNET_CHAIN_ID = 421613
)

// AGENT_SOURCE_URL is the fixed source embedded in an agent approval.
const AGENT_SOURCE_URL = "https://hyperliquid.xyz"

// ZERO_ADDRESS doubles as the reserved verifying-contract slot and as the
// stand-in for an absent vault address in hash inputs.
var ZERO_ADDRESS = common.Address{}
