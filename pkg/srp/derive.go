package srp

import (
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
)

// XMode selects how the private key x is derived from the credentials.
type XMode int

const (
	// XModeRFC5054 derives x = H(salt | H(username | ":" | password)).
	XModeRFC5054 XMode = iota
	// XModeSaltPassword derives x = H(salt | H(password)), leaving the
	// username out of the verifier.
	XModeSaltPassword
)

// ParseXMode parses "rfc5054" or "salt-password". An empty string selects
// the RFC 5054 derivation.
func ParseXMode(s string) (XMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rfc5054":
		return XModeRFC5054, nil
	case "salt-password":
		return XModeSaltPassword, nil
	default:
		return 0, fmt.Errorf("unknown x derivation %q (want rfc5054 or salt-password)", s)
	}
}

func (m XMode) String() string {
	switch m {
	case XModeRFC5054:
		return "rfc5054"
	case XModeSaltPassword:
		return "salt-password"
	default:
		return fmt.Sprintf("XMode(%d)", int(m))
	}
}

// KeyPair is an ephemeral SRP key pair.
type KeyPair struct {
	Private *big.Int
	Public  *big.Int
}

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// ComputeX derives the private key x from salt and credentials.
func ComputeX(h Hash, salt []byte, username, password string, mode XMode) *big.Int {
	var inner []byte
	switch mode {
	case XModeSaltPassword:
		inner = h.Digest([]byte(password))
	default:
		inner = h.Digest([]byte(username), []byte(":"), []byte(password))
	}
	return BytesToInt(h.Digest(salt, inner))
}

// ComputeVerifier computes v = g^x mod N.
func ComputeVerifier(x *big.Int, grp *Group) *big.Int {
	return new(big.Int).Exp(grp.G, x, grp.N)
}

// ClientPublic computes A = g^a mod N.
func ClientPublic(a *big.Int, grp *Group) (*big.Int, error) {
	if err := checkPrivate(a, grp); err != nil {
		return nil, fmt.Errorf("client private key: %w", err)
	}

	A := new(big.Int).Exp(grp.G, a, grp.N)
	if err := CheckPublic(A, grp); err != nil {
		return nil, fmt.Errorf("client public key: %w", err)
	}
	return A, nil
}

// ServerPublic computes B = (k*v + g^b) mod N.
func ServerPublic(b, k, v *big.Int, grp *Group) (*big.Int, error) {
	if err := checkPrivate(b, grp); err != nil {
		return nil, fmt.Errorf("server private key: %w", err)
	}

	// Step 1: k*v mod N
	kv := new(big.Int).Mul(k, v)
	kv.Mod(kv, grp.N)

	// Step 2: g^b mod N
	gb := new(big.Int).Exp(grp.G, b, grp.N)

	// Step 3: (k*v + g^b) mod N
	B := kv.Add(kv, gb)
	B.Mod(B, grp.N)

	if err := CheckPublic(B, grp); err != nil {
		return nil, fmt.Errorf("server public key: %w", err)
	}
	return B, nil
}

// CheckPublic rejects a public value that is zero mod N.
func CheckPublic(value *big.Int, grp *Group) error {
	if value == nil || new(big.Int).Mod(value, grp.N).Sign() == 0 {
		return fmt.Errorf("%w: public value is zero mod N", ErrProtocolAbort)
	}
	return nil
}

// InRange reports whether 1 < value < N.
func InRange(value *big.Int, grp *Group) bool {
	return value != nil && value.Cmp(one) > 0 && value.Cmp(grp.N) < 0
}

// ComputeU computes the scrambling parameter u = H(PAD(A) | PAD(B)).
// A zero u aborts the session.
//
//nolint:gocritic // A and B are capitalized per RFC 5054 SRP-6a specification
func ComputeU(h Hash, A, B *big.Int, nLen int) (*big.Int, error) {
	u := BytesToInt(h.Digest(padInt(A, nLen), padInt(B, nLen)))
	if err := checkScrambler(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ClientSecret computes S = (B - k*g^x)^(a + u*x) mod N.
// The exponent is not reduced.
//
//nolint:gocritic // B is capitalized per RFC 5054 SRP-6a specification
func ClientSecret(B, k, g, x, a, u *big.Int, grp *Group) (*big.Int, error) {
	if err := CheckPublic(B, grp); err != nil {
		return nil, err
	}
	if err := checkScrambler(u); err != nil {
		return nil, err
	}
	if err := checkPrivate(a, grp); err != nil {
		return nil, fmt.Errorf("client private key: %w", err)
	}

	// Step 1: g^x mod N
	gx := new(big.Int).Exp(g, x, grp.N)

	// Step 2: k*g^x mod N
	kgx := new(big.Int).Mul(k, gx)
	kgx.Mod(kgx, grp.N)

	// Step 3: B - k*g^x, normalized into [0, N)
	base := new(big.Int).Sub(B, kgx)
	base.Mod(base, grp.N)

	// Step 4: a + u*x
	exponent := new(big.Int).Mul(u, x)
	exponent.Add(exponent, a)

	// Step 5: base^exponent mod N
	return new(big.Int).Exp(base, exponent, grp.N), nil
}

// ServerSecret computes S = (A * v^u)^b mod N.
//
//nolint:gocritic // A is capitalized per RFC 5054 SRP-6a specification
func ServerSecret(A, v, u, b *big.Int, grp *Group) (*big.Int, error) {
	if err := CheckPublic(A, grp); err != nil {
		return nil, err
	}
	if err := checkScrambler(u); err != nil {
		return nil, err
	}
	if err := checkPrivate(b, grp); err != nil {
		return nil, fmt.Errorf("server private key: %w", err)
	}

	// Step 1: v^u mod N
	vu := new(big.Int).Exp(v, u, grp.N)

	// Step 2: A * v^u mod N
	base := vu.Mul(A, vu)
	base.Mod(base, grp.N)

	// Step 3: (A * v^u)^b mod N
	return new(big.Int).Exp(base, b, grp.N), nil
}

// SessionKey computes K = H(PAD(S)).
//
//nolint:gocritic // S is capitalized per RFC 5054 SRP-6a specification
func SessionKey(h Hash, S *big.Int, nLen int) []byte {
	return h.Digest(padInt(S, nLen))
}

// ClientProof computes M1 = H(H(N) XOR H(g) | H(username) | salt | A | B | K).
// N, g, A and B are hashed in their minimal encoding.
//
//nolint:gocritic // A, B and K are capitalized per RFC 5054 SRP-6a specification
func ClientProof(h Hash, grp *Group, username string, salt []byte, A, B *big.Int, K []byte) []byte {
	hashN := h.Digest(grp.N.Bytes())
	hashG := h.Digest(grp.G.Bytes())

	// H(N) XOR H(g)
	for i := range hashN {
		hashN[i] ^= hashG[i]
	}

	return h.Digest(
		hashN,
		h.Digest([]byte(username)),
		salt,
		A.Bytes(),
		B.Bytes(),
		K,
	)
}

// ServerProof computes M2 = H(A | M1 | K).
//
//nolint:gocritic // A, M1 and K are capitalized per RFC 5054 SRP-6a specification
func ServerProof(h Hash, A *big.Int, M1, K []byte) []byte {
	return h.Digest(A.Bytes(), M1, K)
}

// VerifyProof compares a received proof with the expected one in constant time.
func VerifyProof(expected, received []byte) error {
	if subtle.ConstantTimeCompare(expected, received) != 1 {
		return ErrProofMismatch
	}
	return nil
}

func checkPrivate(key *big.Int, grp *Group) error {
	if key == nil || key.Sign() <= 0 || key.Cmp(grp.N) >= 0 {
		return ErrInvalidPrivateKey
	}
	return nil
}

func checkScrambler(u *big.Int) error {
	if u == nil || u.Cmp(zero) == 0 {
		return fmt.Errorf("%w: scrambling parameter is zero", ErrProtocolAbort)
	}
	return nil
}
