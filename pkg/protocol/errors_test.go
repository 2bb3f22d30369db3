package protocol_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *protocol.ErrorResponse
		expected string
	}{
		{
			name:     "without details",
			err:      protocol.NewAuthenticationFailedError(),
			expected: "AUTHENTICATION_FAILED: Authentication failed",
		},
		{
			name:     "with details",
			err:      protocol.NewConfigurationError("unknown group 9"),
			expected: "CONFIGURATION_ERROR: Configuration error (unknown group 9)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	data, err := json.Marshal(protocol.NewAuthenticationFailedError())
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"AUTHENTICATION_FAILED","message":"Authentication failed"}`, string(data))

	data, err = json.Marshal(protocol.NewInvalidRequestError("missing --username"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"INVALID_REQUEST","message":"Invalid request","details":"missing --username"}`, string(data))
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code protocol.ErrorCode
	}{
		{name: "hex", err: fmt.Errorf("salt: %w", srp.ErrInvalidHex), code: protocol.ErrCodeFormatError},
		{name: "hash", err: srp.ErrUnsupportedHash, code: protocol.ErrCodeUnsupportedAlgorithm},
		{name: "abort", err: fmt.Errorf("B: %w", srp.ErrProtocolAbort), code: protocol.ErrCodeProtocolAbort},
		{name: "proof", err: srp.ErrProofMismatch, code: protocol.ErrCodeAuthenticationFailed},
		{name: "group", err: fmt.Errorf("%w: unknown group 9", srp.ErrInvalidGroup), code: protocol.ErrCodeConfigurationError},
		{name: "private key", err: srp.ErrInvalidPrivateKey, code: protocol.ErrCodeInvalidRequest},
		{name: "state", err: srp.ErrInvalidState, code: protocol.ErrCodeInvalidRequest},
		{name: "other", err: errors.New("disk full"), code: protocol.ErrCodeSystemError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, protocol.FromError(tt.err).Code)
		})
	}
}

func TestFromError_AuthenticationHasNoDetails(t *testing.T) {
	resp := protocol.FromError(fmt.Errorf("server: %w", srp.ErrProofMismatch))
	assert.Empty(t, resp.Details)
}

func TestFromError_PassThrough(t *testing.T) {
	orig := protocol.NewConfigurationError("bad")
	assert.Same(t, orig, protocol.FromError(fmt.Errorf("load: %w", orig)))
	assert.Nil(t, protocol.FromError(nil))
}
