package info

// AssetInfo contains metadata about an instrument in the perp universe
type AssetInfo struct {
	Name       string `json:"name"`
	SzDecimals int    `json:"szDecimals"`
}

// Meta contains exchange metadata for perpetuals. The enumeration order of
// Universe assigns the wire-level asset indices.
type Meta struct {
	Universe []AssetInfo `json:"universe"`
}
