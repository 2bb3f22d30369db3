package srp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// MinPrivateKeyBits is the minimum number of significant bits of a generated
// ephemeral exponent. Groups smaller than that require bits-1 instead.
const MinPrivateKeyBits = 256

const maxKeyAttempts = 64

// Verifier is the enrollment record stored by a server in place of the password.
type Verifier struct {
	Username string
	Salt     []byte
	V        *big.Int
	GroupID  int
}

// GeneratePrivateKey draws a uniform ephemeral exponent in [1, N) with at least
// MinPrivateKeyBits significant bits. A nil reader uses crypto/rand.
func GeneratePrivateKey(r io.Reader, grp *Group) (*big.Int, error) {
	if r == nil {
		r = rand.Reader
	}

	minBits := min(MinPrivateKeyBits, grp.Bits()-1)
	for range maxKeyAttempts {
		key, err := rand.Int(r, grp.N)
		if err != nil {
			return nil, fmt.Errorf("failed to generate private key: %w", err)
		}
		if key.Sign() > 0 && key.BitLen() >= minBits {
			return key, nil
		}
	}
	return nil, fmt.Errorf("failed to generate private key: no acceptable value after %d attempts", maxKeyAttempts)
}

// MinSaltSize returns the salt length used for h, equal to its digest size.
func MinSaltSize(h Hash) int {
	return h.Size()
}

// GenerateSalt returns MinSaltSize(h) random bytes. A nil reader uses crypto/rand.
func GenerateSalt(r io.Reader, h Hash) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	salt := make([]byte, MinSaltSize(h))
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// NewVerifier creates an enrollment record with a fresh random salt.
func NewVerifier(r io.Reader, grp *Group, username, password string, mode XMode) (*Verifier, error) {
	salt, err := GenerateSalt(r, grp.Hash)
	if err != nil {
		return nil, err
	}
	return NewVerifierWithSalt(grp, username, password, salt, mode), nil
}

// NewVerifierWithSalt creates an enrollment record for a caller-chosen salt.
func NewVerifierWithSalt(grp *Group, username, password string, salt []byte, mode XMode) *Verifier {
	x := ComputeX(grp.Hash, salt, username, password, mode)
	defer x.SetInt64(0)

	return &Verifier{
		Username: username,
		Salt:     append([]byte(nil), salt...),
		V:        ComputeVerifier(x, grp),
		GroupID:  grp.ID,
	}
}
