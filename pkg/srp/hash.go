package srp

import (
	"crypto/sha1" //nolint:gosec // G505: SHA-1 is required by the RFC 5054 reference profile
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"
)

// Hash identifies the digest function used by an SRP group.
type Hash int

// Supported digest functions.
const (
	SHA1 Hash = iota + 1
	SHA256
	SHA384
	SHA512
)

var hashNames = map[Hash]string{
	SHA1:   "SHA-1",
	SHA256: "SHA-256",
	SHA384: "SHA-384",
	SHA512: "SHA-512",
}

// ParseHash resolves a hash name. Matching ignores case, hyphens and
// underscores, so "SHA-256", "sha256" and "Sha_256" are equivalent.
func ParseHash(name string) (Hash, error) {
	normalized := strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(name))

	switch strings.ToLower(normalized) {
	case "sha1":
		return SHA1, nil
	case "sha256":
		return SHA256, nil
	case "sha384":
		return SHA384, nil
	case "sha512":
		return SHA512, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedHash, name)
	}
}

// Valid reports whether h is one of the supported digest functions.
func (h Hash) Valid() bool {
	_, ok := hashNames[h]
	return ok
}

// String returns the canonical name, e.g. "SHA-256".
func (h Hash) String() string {
	if name, ok := hashNames[h]; ok {
		return name
	}
	return fmt.Sprintf("Hash(%d)", int(h))
}

// Size returns the digest length in bytes.
func (h Hash) Size() int {
	switch h {
	case SHA1:
		return sha1.Size
	case SHA256:
		return sha256.Size
	case SHA384:
		return sha512.Size384
	case SHA512:
		return sha512.Size
	default:
		return 0
	}
}

// New returns a fresh hash.Hash. It panics for an invalid Hash value, the
// same way crypto.Hash.New does for an unavailable function.
func (h Hash) New() hash.Hash {
	switch h {
	case SHA1:
		return sha1.New() //nolint:gosec // G401: see import note
	case SHA256:
		return sha256.New()
	case SHA384:
		return sha512.New384()
	case SHA512:
		return sha512.New()
	default:
		panic(fmt.Sprintf("srp: hash function %s is not supported", h))
	}
}

// Digest hashes the concatenation of parts, in order.
func (h Hash) Digest(parts ...[]byte) []byte {
	d := h.New()
	for _, p := range parts {
		d.Write(p)
	}
	return d.Sum(nil)
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedHash, h)
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
