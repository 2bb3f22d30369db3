package srp

import (
	"fmt"
	"math/big"
)

// Hex entry points. Inputs are case-insensitive hex without a "0x" prefix,
// outputs are uppercase. Values reduced mod N (v, A, B, S) are padded to the
// length of N; digest-sized values (k, x, u) are padded to the digest size.
// The hash argument takes precedence over the group's own hash.

// DeriveMultiplier returns k for grp under h.
func DeriveMultiplier(h Hash, grp *Group) string {
	return IntToHex(ComputeMultiplier(grp.N, grp.G, h), h.Size())
}

// DeriveX returns the private key x using the RFC 5054 derivation.
func DeriveX(h Hash, saltHex, username, password string) (string, error) {
	salt, err := HexToBytes(saltHex, 0)
	if err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}
	return IntToHex(ComputeX(h, salt, username, password, XModeRFC5054), h.Size()), nil
}

// DeriveVerifier returns v = g^x mod N for the given credentials.
func DeriveVerifier(h Hash, saltHex, username, password string, grp *Group) (string, error) {
	salt, err := HexToBytes(saltHex, 0)
	if err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}
	x := ComputeX(h, salt, username, password, XModeRFC5054)
	defer x.SetInt64(0)

	return IntToHex(ComputeVerifier(x, grp), grp.ByteLen()), nil
}

// DeriveClientPublic returns A = g^a mod N.
func DeriveClientPublic(aHex string, grp *Group) (string, error) {
	a, err := parseHex("a", aHex)
	if err != nil {
		return "", err
	}
	A, err := ClientPublic(a, grp)
	if err != nil {
		return "", err
	}
	return IntToHex(A, grp.ByteLen()), nil
}

// DeriveServerPublic returns B = (k*v + g^b) mod N.
func DeriveServerPublic(bHex, kHex, vHex string, grp *Group) (string, error) {
	values, err := parseHexValues([]string{"b", "k", "v"}, bHex, kHex, vHex)
	if err != nil {
		return "", err
	}
	B, err := ServerPublic(values[0], values[1], values[2], grp)
	if err != nil {
		return "", err
	}
	return IntToHex(B, grp.ByteLen()), nil
}

// DeriveScrambler returns u = H(PAD(A) | PAD(B)).
//
//nolint:gocritic // AHex and BHex are capitalized per RFC 5054 SRP-6a specification
func DeriveScrambler(h Hash, AHex, BHex string, grp *Group) (string, error) {
	values, err := parseHexValues([]string{"A", "B"}, AHex, BHex)
	if err != nil {
		return "", err
	}
	u, err := ComputeU(h, values[0], values[1], grp.ByteLen())
	if err != nil {
		return "", err
	}
	return IntToHex(u, h.Size()), nil
}

// DeriveSharedSecretClient returns the client's S = (B - k*g^x)^(a + u*x) mod N.
//
//nolint:gocritic // BHex is capitalized per RFC 5054 SRP-6a specification
func DeriveSharedSecretClient(BHex, kHex string, g int64, xHex, aHex, uHex string, grp *Group) (string, error) {
	values, err := parseHexValues([]string{"B", "k", "x", "a", "u"}, BHex, kHex, xHex, aHex, uHex)
	if err != nil {
		return "", err
	}
	S, err := ClientSecret(values[0], values[1], big.NewInt(g), values[2], values[3], values[4], grp)
	if err != nil {
		return "", err
	}
	return IntToHex(S, grp.ByteLen()), nil
}

// DeriveSharedSecretServer returns the server's S = (A * v^u)^b mod N.
//
//nolint:gocritic // AHex is capitalized per RFC 5054 SRP-6a specification
func DeriveSharedSecretServer(AHex, vHex, uHex, bHex string, grp *Group) (string, error) {
	values, err := parseHexValues([]string{"A", "v", "u", "b"}, AHex, vHex, uHex, bHex)
	if err != nil {
		return "", err
	}
	S, err := ServerSecret(values[0], values[1], values[2], values[3], grp)
	if err != nil {
		return "", err
	}
	return IntToHex(S, grp.ByteLen()), nil
}

// DeriveSessionKey returns K = H(PAD(S)).
//
//nolint:gocritic // SHex is capitalized per RFC 5054 SRP-6a specification
func DeriveSessionKey(h Hash, SHex string, grp *Group) (string, error) {
	S, err := parseHex("S", SHex)
	if err != nil {
		return "", err
	}
	return BytesToHex(SessionKey(h, S, grp.ByteLen())), nil
}

// DeriveProof1 returns the client proof M1.
//
//nolint:gocritic // AHex, BHex and KHex are capitalized per RFC 5054 SRP-6a specification
func DeriveProof1(h Hash, grp *Group, username, saltHex, AHex, BHex, KHex string) (string, error) {
	salt, err := HexToBytes(saltHex, 0)
	if err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}
	values, err := parseHexValues([]string{"A", "B"}, AHex, BHex)
	if err != nil {
		return "", err
	}
	K, err := HexToBytes(KHex, 0)
	if err != nil {
		return "", fmt.Errorf("K: %w", err)
	}
	return BytesToHex(ClientProof(h, grp, username, salt, values[0], values[1], K)), nil
}

// DeriveProof2 returns the server proof M2.
//
//nolint:gocritic // AHex, M1Hex and KHex are capitalized per RFC 5054 SRP-6a specification
func DeriveProof2(h Hash, AHex, M1Hex, KHex string) (string, error) {
	A, err := parseHex("A", AHex)
	if err != nil {
		return "", err
	}
	M1, err := HexToBytes(M1Hex, 0)
	if err != nil {
		return "", fmt.Errorf("M1: %w", err)
	}
	K, err := HexToBytes(KHex, 0)
	if err != nil {
		return "", fmt.Errorf("K: %w", err)
	}
	return BytesToHex(ServerProof(h, A, M1, K)), nil
}

func parseHex(name, s string) (*big.Int, error) {
	n, err := HexToInt(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func parseHexValues(names []string, values ...string) ([]*big.Int, error) {
	out := make([]*big.Int, len(values))
	for i, s := range values {
		n, err := parseHex(names[i], s)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
