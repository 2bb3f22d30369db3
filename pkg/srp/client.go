package srp

import (
	"fmt"
	"io"
	"math/big"
)

// Option configures a Client or Server.
type Option func(*options)

type options struct {
	random     io.Reader
	mode       XMode
	privateKey *big.Int
}

// WithRandom sets the randomness source for ephemeral keys. Defaults to crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(o *options) {
		o.random = r
	}
}

// WithXMode selects the private key derivation. Defaults to XModeRFC5054.
func WithXMode(mode XMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithPrivateKey fixes the ephemeral private exponent instead of drawing one.
// It exists for reproducing published test vectors.
func WithPrivateKey(key *big.Int) Option {
	return func(o *options) {
		o.privateKey = new(big.Int).Set(key)
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) ephemeral(grp *Group) (*big.Int, error) {
	if o.privateKey != nil {
		if err := checkPrivate(o.privateKey, grp); err != nil {
			return nil, err
		}
		return new(big.Int).Set(o.privateKey), nil
	}
	return GeneratePrivateKey(o.random, grp)
}

type clientState int

const (
	clientNew clientState = iota
	clientStarted
	clientResponded
	clientKeyed
	clientProved
	clientVerified
	clientFailed
)

// Client represents the client-side state for an SRP-6a authentication session.
// A Client is not safe for concurrent use.
type Client struct {
	group    *Group
	username string
	password string
	opts     options
	state    clientState

	salt []byte
	a    *big.Int // Client ephemeral private value
	A    *big.Int // Client ephemeral public value
	B    *big.Int // Server ephemeral public value
	S    *big.Int // Shared secret
	K    []byte   // Session key
	M1   []byte   // Client proof
}

// NewClient creates a new SRP client for authentication.
func NewClient(grp *Group, username, password string, opts ...Option) *Client {
	return &Client{
		group:    grp,
		username: username,
		password: password,
		opts:     newOptions(opts),
	}
}

// Start generates the ephemeral key pair and returns A = g^a mod N.
func (c *Client) Start() (*big.Int, error) {
	if c.state != clientNew {
		return nil, fmt.Errorf("%w: client already started", ErrInvalidState)
	}

	a, err := c.opts.ephemeral(c.group)
	if err != nil {
		return nil, c.fail(err)
	}

	A, err := ClientPublic(a, c.group)
	if err != nil {
		return nil, c.fail(err)
	}

	c.a, c.A = a, A
	c.state = clientStarted
	return new(big.Int).Set(A), nil
}

// SetServerResponse sets the salt and B received from the server.
//
//nolint:gocritic // B is capitalized per RFC 5054 SRP-6a specification
func (c *Client) SetServerResponse(salt []byte, B *big.Int) error {
	if c.state != clientStarted {
		return fmt.Errorf("%w: must call Start first", ErrInvalidState)
	}
	if len(salt) == 0 {
		return c.fail(fmt.Errorf("%w: empty salt", ErrInvalidHex))
	}
	if err := CheckPublic(B, c.group); err != nil {
		return c.fail(fmt.Errorf("invalid B: %w", err))
	}

	c.salt = append([]byte(nil), salt...)
	c.B = new(big.Int).Set(B)
	c.state = clientResponded
	return nil
}

// ComputeSharedSecret computes the shared secret S and session key K.
func (c *Client) ComputeSharedSecret() error {
	if c.state != clientResponded {
		return fmt.Errorf("%w: must call SetServerResponse first", ErrInvalidState)
	}

	grp := c.group
	u, err := ComputeU(grp.Hash, c.A, c.B, grp.ByteLen())
	if err != nil {
		return c.fail(err)
	}

	x := ComputeX(grp.Hash, c.salt, c.username, c.password, c.opts.mode)
	defer x.SetInt64(0)

	S, err := ClientSecret(c.B, grp.Multiplier(), grp.G, x, c.a, u, grp)
	if err != nil {
		return c.fail(err)
	}

	c.S = S
	c.K = SessionKey(grp.Hash, S, grp.ByteLen())
	c.state = clientKeyed
	return nil
}

// Proof returns the client proof M1.
func (c *Client) Proof() ([]byte, error) {
	if c.state != clientKeyed {
		return nil, fmt.Errorf("%w: must call ComputeSharedSecret first", ErrInvalidState)
	}

	c.M1 = ClientProof(c.group.Hash, c.group, c.username, c.salt, c.A, c.B, c.K)
	c.state = clientProved
	return append([]byte(nil), c.M1...), nil
}

// VerifyServerProof checks the server proof M2 = H(A | M1 | K).
// Returns nil if M2 matches, completing mutual authentication.
//
//nolint:gocritic // M2 is capitalized per RFC 5054 SRP-6a specification
func (c *Client) VerifyServerProof(M2 []byte) error {
	if c.state != clientProved {
		return fmt.Errorf("%w: must call Proof first", ErrInvalidState)
	}

	expected := ServerProof(c.group.Hash, c.A, c.M1, c.K)
	if err := VerifyProof(expected, M2); err != nil {
		return c.fail(err)
	}

	c.state = clientVerified
	return nil
}

// SessionKey returns K once the server proof has been verified.
func (c *Client) SessionKey() ([]byte, error) {
	if c.state != clientVerified {
		return nil, fmt.Errorf("%w: session not authenticated", ErrInvalidState)
	}
	return append([]byte(nil), c.K...), nil
}

// ClearSecrets clears sensitive values from memory. The client cannot be
// used afterwards.
func (c *Client) ClearSecrets() {
	c.password = ""

	for _, n := range []*big.Int{c.a, c.S} {
		if n != nil {
			n.SetInt64(0)
		}
	}
	for _, b := range [][]byte{c.salt, c.K, c.M1} {
		clear(b)
	}

	c.a, c.S = nil, nil
	c.salt, c.K, c.M1 = nil, nil, nil
	c.state = clientFailed
}

func (c *Client) fail(err error) error {
	c.ClearSecrets()
	return err
}
