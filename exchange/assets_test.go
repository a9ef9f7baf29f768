package exchange

import (
	"errors"
	"testing"

	"github.com/oaktrade/go-hyperliquid/info"
)

func testUniverse() []info.AssetInfo {
	return []info.AssetInfo{
		{Name: "BTC", SzDecimals: 5},
		{Name: "ETH", SzDecimals: 4},
		{Name: "SOL", SzDecimals: 2},
		{Name: "AVAX", SzDecimals: 2},
		{Name: "ARB", SzDecimals: 1},
		{Name: "OP", SzDecimals: 1},
		{Name: "DOGE", SzDecimals: 0},
		{Name: "WIF", SzDecimals: 1},
	}
}

func TestAssetIndexMatchesUniverseOrder(t *testing.T) {
	universe := testUniverse()
	index := newAssetIndex(universe)

	seen := make(map[uint32]bool, len(universe))
	for i, asset := range universe {
		got, err := index.resolve(asset.Name)
		if err != nil {
			t.Fatalf("resolve(%s): %v", asset.Name, err)
		}
		if got != uint32(i) {
			t.Errorf("resolve(%s) = %d, want %d", asset.Name, got, i)
		}
		if seen[got] {
			t.Errorf("index %d assigned twice", got)
		}
		seen[got] = true
	}

	if len(seen) != len(universe) {
		t.Errorf("expected %d distinct indices, got %d", len(universe), len(seen))
	}
}

func TestAssetIndexUnknownSymbol(t *testing.T) {
	index := newAssetIndex(testUniverse())

	_, err := index.resolve("NOPE")
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestAssetIndexEmptyUniverse(t *testing.T) {
	index := newAssetIndex(nil)

	_, err := index.resolve("BTC")
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}
