package types

import (
	"encoding/json"
	"math/big"
	"testing"
)

func TestCloidHexRoundTrip(t *testing.T) {
	c := HexToCloid("0x000000000000000000000000000000ff")

	if got := c.Hex(); got != "0x000000000000000000000000000000ff" {
		t.Fatalf("Hex() = %s", got)
	}

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `"0x000000000000000000000000000000ff"` {
		t.Fatalf("marshaled %s", raw)
	}

	var back Cloid
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if back != c {
		t.Fatalf("round trip changed value: %s", back)
	}
}

func TestCloidBytes16PreservesWidth(t *testing.T) {
	c := BigToCloid(big.NewInt(255))

	b := c.Bytes16()
	if len(b) != 16 {
		t.Fatalf("len = %d", len(b))
	}
	if b[15] != 0xff {
		t.Fatalf("low byte = %x", b[15])
	}
	for i := 0; i < 15; i++ {
		if b[i] != 0 {
			t.Fatalf("byte %d not zero padded", i)
		}
	}
}

func TestCloidSetBytesCropsFromLeft(t *testing.T) {
	long := make([]byte, 20)
	long[19] = 0x01
	long[0] = 0xaa

	c := BytesToCloid(long)
	if c.Hex() != "0x00000000000000000000000000000001" {
		t.Fatalf("crop produced %s", c.Hex())
	}
}
