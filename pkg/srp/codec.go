package srp

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// HexToBytes decodes a hex string (either case, no "0x" prefix) and left-pads
// the result with zero bytes to padTo. A padTo of zero or less disables padding.
func HexToBytes(s string, padTo int) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidHex)
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrInvalidHex, len(s))
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}

	return Pad(b, padTo), nil
}

// HexToInt decodes a hex string into a non-negative integer.
func HexToInt(s string) (*big.Int, error) {
	b, err := HexToBytes(s, 0)
	if err != nil {
		return nil, err
	}
	return BytesToInt(b), nil
}

// BytesToInt interprets b as an unsigned big-endian integer.
func BytesToInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// IntToHex encodes a non-negative integer as uppercase hex, left-padded to
// width bytes. Zero encodes as "00" when no width is requested.
func IntToHex(n *big.Int, width int) string {
	b := n.Bytes()
	if len(b) == 0 && width <= 0 {
		width = 1
	}
	return strings.ToUpper(hex.EncodeToString(Pad(b, width)))
}

// BytesToHex encodes b as uppercase hex.
func BytesToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// Pad left-pads b with zero bytes to size. It never truncates: a slice that
// is already size bytes or longer is returned unchanged.
func Pad(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	padded := make([]byte, size)
	copy(padded[size-len(b):], b)
	return padded
}

// padInt returns the big-endian encoding of n padded to size bytes.
func padInt(n *big.Int, size int) []byte {
	return Pad(n.Bytes(), size)
}
