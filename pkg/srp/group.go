package srp

import (
	"fmt"
	"math/big"
	"sync"
)

// MinModulusBytes is the smallest accepted size of N.
const MinModulusBytes = 16

// Group holds the SRP group parameters (N, g) and the hash bound to them.
// A Group is immutable after construction and safe for concurrent use.
type Group struct {
	ID   int
	Name string
	N    *big.Int
	G    *big.Int
	Hash Hash

	kOnce sync.Once
	k     *big.Int
}

// NewGroup validates the parameters and returns a Group.
// N must be odd, at least MinModulusBytes long and greater than g, and g must
// be greater than 1.
//
//nolint:gocritic // N is capitalized per RFC 5054 SRP-6a specification
func NewGroup(id int, name string, N, g *big.Int, h Hash) (*Group, error) {
	if N == nil || g == nil {
		return nil, fmt.Errorf("%w: N and g are required", ErrInvalidGroup)
	}
	if !h.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedHash, h)
	}
	if N.Bit(0) == 0 {
		return nil, fmt.Errorf("%w: N must be odd", ErrInvalidGroup)
	}
	if len(N.Bytes()) < MinModulusBytes {
		return nil, fmt.Errorf("%w: N must be at least %d bytes, got %d", ErrInvalidGroup, MinModulusBytes, len(N.Bytes()))
	}
	if g.Cmp(big.NewInt(1)) <= 0 {
		return nil, fmt.Errorf("%w: g must be greater than 1", ErrInvalidGroup)
	}
	if g.Cmp(N) >= 0 {
		return nil, fmt.Errorf("%w: g must be less than N", ErrInvalidGroup)
	}

	return &Group{
		ID:   id,
		Name: name,
		N:    new(big.Int).Set(N),
		G:    new(big.Int).Set(g),
		Hash: h,
	}, nil
}

// ParseGroup builds a Group from a hex-encoded N.
func ParseGroup(id int, name, nHex string, g int64, h Hash) (*Group, error) {
	n, err := HexToInt(nHex)
	if err != nil {
		return nil, fmt.Errorf("group %d modulus: %w", id, err)
	}
	return NewGroup(id, name, n, big.NewInt(g), h)
}

// ByteLen returns the length of N in bytes. All padded values use this width.
func (grp *Group) ByteLen() int {
	return (grp.N.BitLen() + 7) / 8
}

// Bits returns the bit length of N.
func (grp *Group) Bits() int {
	return grp.N.BitLen()
}

// Multiplier returns k = H(N | PAD(g)). It is computed on first use and cached.
func (grp *Group) Multiplier() *big.Int {
	grp.kOnce.Do(func() {
		grp.k = ComputeMultiplier(grp.N, grp.G, grp.Hash)
	})
	return new(big.Int).Set(grp.k)
}

// WithHash returns a copy of the group bound to a different hash. The copy
// has its own multiplier cache.
func (grp *Group) WithHash(h Hash) (*Group, error) {
	if h == grp.Hash {
		return grp, nil
	}
	return NewGroup(grp.ID, grp.Name, grp.N, grp.G, h)
}

// String returns a short description such as "rfc5054-2048 (2048 bits, g=2, SHA-256)".
func (grp *Group) String() string {
	return fmt.Sprintf("%s (%d bits, g=%s, %s)", grp.Name, grp.Bits(), grp.G, grp.Hash)
}

// ComputeMultiplier computes the SRP-6a multiplier k = H(N | PAD(g)), with N in
// its minimal big-endian encoding and g left-padded to the length of N.
//
//nolint:gocritic // N is capitalized per RFC 5054 SRP-6a specification
func ComputeMultiplier(N, g *big.Int, h Hash) *big.Int {
	nBytes := N.Bytes()
	return BytesToInt(h.Digest(nBytes, padInt(g, len(nBytes))))
}
