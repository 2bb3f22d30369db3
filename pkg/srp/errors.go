package srp

import "errors"

var (
	// ErrInvalidHex is returned when a hex string is empty, has odd length or
	// contains characters outside [0-9a-fA-F].
	ErrInvalidHex = errors.New("invalid hex encoding")

	// ErrUnsupportedHash is returned for hash names other than SHA-1, SHA-256,
	// SHA-384 and SHA-512.
	ErrUnsupportedHash = errors.New("unsupported hash algorithm")

	// ErrProtocolAbort is returned when A, B or u is zero mod N.
	// The session must be abandoned and never retried with the same values.
	ErrProtocolAbort = errors.New("srp protocol abort")

	// ErrProofMismatch is returned when a received proof (M1 or M2) does not
	// match the locally computed one. It deliberately carries no detail.
	ErrProofMismatch = errors.New("authentication failed")

	// ErrInvalidPrivateKey is returned for ephemeral exponents outside [1, N).
	ErrInvalidPrivateKey = errors.New("invalid private exponent")

	// ErrInvalidGroup is returned when group parameters fail validation.
	ErrInvalidGroup = errors.New("invalid group parameters")

	// ErrInvalidState is returned when session steps are called out of order
	// or after the session has failed.
	ErrInvalidState = errors.New("invalid session state")
)
