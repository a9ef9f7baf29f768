package exchange

import "errors"

// Failure kinds surfaced by the client. All are returned synchronously;
// nothing is retried or swallowed internally.
var (
	// ErrAssetNotFound is returned when a symbol is absent from the
	// instrument universe. A single unresolved symbol invalidates an
	// entire bulk submission before any network call.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrSigning is returned when signature construction fails.
	ErrSigning = errors.New("signing failed")

	// ErrEncoding is returned when an action cannot be canonically encoded.
	ErrEncoding = errors.New("action encoding failed")

	// ErrKeyGeneration is returned when an agent key cannot be derived.
	ErrKeyGeneration = errors.New("key generation failed")
)
