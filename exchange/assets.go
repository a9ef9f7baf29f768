package exchange

import (
	"fmt"

	"github.com/oaktrade/go-hyperliquid/info"
)

// assetIndex maps instrument symbols to the small integer indices used in
// wire-level actions. Indices are the zero-based enumeration order of the
// exchange's published universe and never change for the lifetime of a
// client. The universe is trusted to contain unique symbols.
type assetIndex struct {
	bySymbol map[string]uint32
}

func newAssetIndex(universe []info.AssetInfo) *assetIndex {
	bySymbol := make(map[string]uint32, len(universe))
	for i, asset := range universe {
		bySymbol[asset.Name] = uint32(i)
	}

	return &assetIndex{bySymbol: bySymbol}
}

// resolve returns the wire index for a symbol. Unknown symbols fail with
// ErrAssetNotFound, never a default index.
func (a *assetIndex) resolve(symbol string) (uint32, error) {
	index, ok := a.bySymbol[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrAssetNotFound, symbol)
	}

	return index, nil
}
