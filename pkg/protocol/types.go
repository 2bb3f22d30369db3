package protocol

import (
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// GroupInfo describes an SRP group.
type GroupInfo struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Bits      int    `json:"bits" yaml:"bits"`
	Generator int64  `json:"g" yaml:"g"`
	Hash      string `json:"hash" yaml:"hash"`
	K         string `json:"k" yaml:"k"`
	N         string `json:"N,omitempty" yaml:"N,omitempty"` // Hex, only when requested
}

// VerifierRecord is what a server stores for a user. Salt and Verifier are
// uppercase hex; Verifier is padded to the modulus length.
type VerifierRecord struct {
	Username string `json:"username" yaml:"username"`
	GroupID  int    `json:"group" yaml:"group"`
	Hash     string `json:"hash" yaml:"hash"`
	XMode    string `json:"x_derivation" yaml:"x_derivation"`
	Salt     string `json:"salt" yaml:"salt"`
	Verifier string `json:"verifier" yaml:"verifier"`
}

// ExchangeTranscript records the public values and outcome of a complete
// client/server exchange. SessionKey is only set when explicitly requested.
type ExchangeTranscript struct {
	Username   string `json:"username" yaml:"username"`
	GroupID    int    `json:"group" yaml:"group"`
	Hash       string `json:"hash" yaml:"hash"`
	Salt       string `json:"salt" yaml:"salt"`
	A          string `json:"A" yaml:"A"`
	B          string `json:"B" yaml:"B"`
	U          string `json:"u" yaml:"u"`
	M1         string `json:"M1" yaml:"M1"`
	M2         string `json:"M2" yaml:"M2"`
	Verified   bool   `json:"verified" yaml:"verified"`
	SessionKey string `json:"session_key,omitempty" yaml:"session_key,omitempty"`
}

// VectorCheck is the result of checking one known-answer vector.
type VectorCheck struct {
	Name     string `json:"name" yaml:"name"`
	Passed   bool   `json:"passed" yaml:"passed"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual   string `json:"actual,omitempty" yaml:"actual,omitempty"`
}

// NewGroupInfo describes grp, including the modulus when withModulus is set.
func NewGroupInfo(grp *srp.Group, withModulus bool) GroupInfo {
	info := GroupInfo{
		ID:        grp.ID,
		Name:      grp.Name,
		Bits:      grp.Bits(),
		Generator: grp.G.Int64(),
		Hash:      grp.Hash.String(),
		K:         srp.IntToHex(grp.Multiplier(), grp.Hash.Size()),
	}
	if withModulus {
		info.N = srp.IntToHex(grp.N, 0)
	}
	return info
}

// NewVerifierRecord converts a verifier into its storable form.
func NewVerifierRecord(grp *srp.Group, v *srp.Verifier, mode srp.XMode) VerifierRecord {
	return VerifierRecord{
		Username: v.Username,
		GroupID:  grp.ID,
		Hash:     grp.Hash.String(),
		XMode:    mode.String(),
		Salt:     srp.BytesToHex(v.Salt),
		Verifier: srp.IntToHex(v.V, grp.ByteLen()),
	}
}

// ToVerifier parses the record back into an srp.Verifier for grp.
func (r VerifierRecord) ToVerifier(grp *srp.Group) (*srp.Verifier, error) {
	salt, err := srp.HexToBytes(r.Salt, 0)
	if err != nil {
		return nil, err
	}

	v, err := srp.HexToInt(r.Verifier)
	if err != nil {
		return nil, err
	}

	return &srp.Verifier{
		Username: r.Username,
		Salt:     salt,
		V:        v,
		GroupID:  grp.ID,
	}, nil
}
