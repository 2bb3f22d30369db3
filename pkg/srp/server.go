package srp

import (
	"fmt"
	"math/big"
)

type serverState int

const (
	serverNew serverState = iota
	serverInitialized
	serverVerified
	serverFailed
)

// Server represents the server-side state for an SRP-6a authentication session.
// A Server is not safe for concurrent use.
type Server struct {
	group    *Group
	verifier *Verifier
	opts     options
	state    serverState

	b *big.Int // Server ephemeral private value
	B *big.Int // Server ephemeral public value
	A *big.Int // Client ephemeral public value (received during init)
	S *big.Int // Shared secret
	K []byte   // Session key
}

// NewServer creates a server session for an enrolled verifier.
func NewServer(grp *Group, verifier *Verifier, opts ...Option) (*Server, error) {
	if verifier == nil || verifier.V == nil {
		return nil, fmt.Errorf("%w: verifier is required", ErrInvalidState)
	}
	if verifier.GroupID != 0 && verifier.GroupID != grp.ID {
		return nil, fmt.Errorf("%w: verifier was created for group %d, not %d", ErrInvalidGroup, verifier.GroupID, grp.ID)
	}
	if verifier.V.Sign() < 0 || verifier.V.Cmp(grp.N) >= 0 {
		return nil, fmt.Errorf("%w: verifier out of range", ErrInvalidGroup)
	}
	if len(verifier.Salt) == 0 {
		return nil, fmt.Errorf("%w: verifier has no salt", ErrInvalidState)
	}

	return &Server{
		group:    grp,
		verifier: verifier,
		opts:     newOptions(opts),
	}, nil
}

// Init handles the SRP-6a initialization phase.
// The client sends A, the server generates b and answers with salt and B.
// S and K are derived here so that Verify only has to check proofs.
//
//nolint:gocritic // A and B are capitalized per RFC 5054 SRP-6a specification
func (s *Server) Init(A *big.Int) (salt []byte, B *big.Int, err error) {
	if s.state != serverNew {
		return nil, nil, fmt.Errorf("%w: server already initialized", ErrInvalidState)
	}

	grp := s.group
	if err := CheckPublic(A, grp); err != nil {
		return nil, nil, s.fail(fmt.Errorf("invalid A: %w", err))
	}

	b, err := s.opts.ephemeral(grp)
	if err != nil {
		return nil, nil, s.fail(err)
	}

	B, err = ServerPublic(b, grp.Multiplier(), s.verifier.V, grp)
	if err != nil {
		return nil, nil, s.fail(err)
	}

	u, err := ComputeU(grp.Hash, A, B, grp.ByteLen())
	if err != nil {
		return nil, nil, s.fail(err)
	}

	S, err := ServerSecret(A, s.verifier.V, u, b, grp)
	if err != nil {
		return nil, nil, s.fail(err)
	}

	s.A = new(big.Int).Set(A)
	s.b, s.B, s.S = b, B, S
	s.K = SessionKey(grp.Hash, S, grp.ByteLen())
	s.state = serverInitialized

	return append([]byte(nil), s.verifier.Salt...), new(big.Int).Set(B), nil
}

// Verify handles the SRP-6a verification phase.
// The client sends M1, the server validates it and returns M2.
//
//nolint:gocritic // M1 and M2 are capitalized per RFC 5054 SRP-6a specification
func (s *Server) Verify(M1 []byte) (M2 []byte, err error) {
	if s.state != serverInitialized {
		return nil, fmt.Errorf("%w: init must be called before verify", ErrInvalidState)
	}

	grp := s.group
	expected := ClientProof(grp.Hash, grp, s.verifier.Username, s.verifier.Salt, s.A, s.B, s.K)
	if err := VerifyProof(expected, M1); err != nil {
		return nil, s.fail(err)
	}

	s.state = serverVerified
	return ServerProof(grp.Hash, s.A, expected, s.K), nil
}

// SessionKey returns K once the client proof has been verified.
func (s *Server) SessionKey() ([]byte, error) {
	if s.state != serverVerified {
		return nil, fmt.Errorf("%w: session not authenticated", ErrInvalidState)
	}
	return append([]byte(nil), s.K...), nil
}

// ClearSecrets clears sensitive values from memory. The server session cannot
// be used afterwards.
func (s *Server) ClearSecrets() {
	for _, n := range []*big.Int{s.b, s.S} {
		if n != nil {
			n.SetInt64(0)
		}
	}
	clear(s.K)

	s.b, s.S, s.K = nil, nil, nil
	s.state = serverFailed
}

func (s *Server) fail(err error) error {
	s.ClearSecrets()
	return err
}
