package exchange

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/joho/godotenv"
	"github.com/maxatome/go-testdeep/helpers/tdsuite"
	"github.com/maxatome/go-testdeep/td"
)

// ExchangeIntegrationSuite runs manual tests against the public testnet.
// It is skipped unless RUN_EXCHANGE_INTEGRATION=1 and a funded testnet
// wallet key is configured.
type ExchangeIntegrationSuite struct {
	privateKey *ecdsa.PrivateKey
	exchange   *Exchange
}

// Setup is called once before any test runs.
func (s *ExchangeIntegrationSuite) Setup(t *td.T) error {
	_ = godotenv.Load("../.env")

	rawKey := os.Getenv("WALLET_PRIVATE_KEY")
	if rawKey == "" {
		return fmt.Errorf("WALLET_PRIVATE_KEY not set in environment")
	}

	privateKey, err := crypto.HexToECDSA(rawKey)
	if err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}

	e, err := New(context.Background(), Config{
		Network:    NetworkTestnet,
		PrivateKey: privateKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create exchange client: %w", err)
	}

	s.privateKey = privateKey
	s.exchange = e

	return nil
}

func TestExchangeIntegrationSuite(t *testing.T) {
	if os.Getenv("RUN_EXCHANGE_INTEGRATION") != "1" {
		t.Skip(
			"skipping ExchangeIntegrationSuite; set RUN_EXCHANGE_INTEGRATION=1 to run",
		)
	}

	tdsuite.Run(t, &ExchangeIntegrationSuite{})
}

func (s *ExchangeIntegrationSuite) TestOrderAndCancel(assert, require *td.T) {
	ctx := context.Background()

	// Place an order that should rest by setting the price very low
	orderResponse, err := s.exchange.Order(
		ctx,
		OrderRequest(
			"ETH",
			true,
			0.2,
			1100,
			WithLimitOrder(LimitOrder{Tif: "Gtc"}),
		),
	)
	require.CmpNoError(err)
	assert.True(orderResponse.IsOK())

	var result struct {
		Data struct {
			Statuses []struct {
				Resting *struct {
					Oid uint64 `json:"oid"`
				} `json:"resting"`
			} `json:"statuses"`
		} `json:"data"`
	}
	require.CmpNoError(json.Unmarshal(orderResponse.Data, &result))
	require.Cmp(len(result.Data.Statuses), 1)
	require.NotNil(result.Data.Statuses[0].Resting)

	cancelResponse, err := s.exchange.Cancel(
		ctx,
		CancelRequest("ETH", result.Data.Statuses[0].Resting.Oid),
	)
	require.CmpNoError(err)
	assert.True(cancelResponse.IsOK())
}

func (s *ExchangeIntegrationSuite) TestUpdateLeverage(assert, require *td.T) {
	resp, err := s.exchange.UpdateLeverage(context.Background(), 2, "ETH", true)
	require.CmpNoError(err)
	assert.True(resp.IsOK())
}
