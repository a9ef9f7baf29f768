package types

import (
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const cloidLength = 16

// Cloid is a 128-bit client order id, carried on the wire as a hex string
// and hashed as its raw fixed-width bytes.
type Cloid [cloidLength]byte

var cloidT = reflect.TypeFor[Cloid]()

// BytesToCloid returns Cloid with value b.
// If b is larger than len(c), b will be cropped from the left.
func BytesToCloid(b []byte) Cloid {
	var c Cloid
	c.SetBytes(b)
	return c
}

// HexToCloid returns Cloid with byte values of s.
// If s is larger than len(c), s will be cropped from the left.
func HexToCloid(s string) Cloid {
	return BytesToCloid(common.FromHex(s))
}

// BigToCloid sets byte representation of b to cloid.
// If b is larger than len(c), b will be cropped from the left.
func BigToCloid(b *big.Int) Cloid {
	return BytesToCloid(b.Bytes())
}

// SetBytes sets the Cloid to the value of b.
// If b is larger than len(c), b will be cropped from the left.
func (c *Cloid) SetBytes(b []byte) {
	if len(b) > len(c) {
		b = b[len(b)-cloidLength:]
	}

	copy(c[cloidLength-len(b):], b)
}

// Bytes16 returns the raw fixed-width value used in hash tuples.
func (c Cloid) Bytes16() [cloidLength]byte {
	return c
}

// Hex converts a Cloid to a hex string.
func (c Cloid) Hex() string { return hexutil.Encode(c[:]) }

func (c Cloid) String() string {
	return c.Hex()
}

// UnmarshalJSON parses a Cloid in hex syntax.
func (c *Cloid) UnmarshalJSON(input []byte) error {
	return hexutil.UnmarshalFixedJSON(cloidT, input, c[:])
}

// MarshalText returns the hex representation of c.
func (c Cloid) MarshalText() ([]byte, error) {
	return hexutil.Bytes(c[:]).MarshalText()
}
