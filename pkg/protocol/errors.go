// Package protocol defines the records and error codes srp6a emits.
package protocol

import (
	"errors"
	"fmt"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// ErrorCode represents a stable, machine-readable error code.
type ErrorCode string

// Error codes.
const (
	// ErrCodeFormatError indicates malformed hex or byte input.
	ErrCodeFormatError ErrorCode = "FORMAT_ERROR"
	// ErrCodeUnsupportedAlgorithm indicates an unknown hash algorithm.
	ErrCodeUnsupportedAlgorithm ErrorCode = "UNSUPPORTED_ALGORITHM"
	// ErrCodeProtocolAbort indicates a public value or u was zero mod N.
	ErrCodeProtocolAbort ErrorCode = "PROTOCOL_ABORT"
	// ErrCodeAuthenticationFailed indicates a proof did not match.
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"

	// ErrCodeConfigurationError indicates invalid group parameters or settings.
	ErrCodeConfigurationError ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeInvalidRequest indicates invalid arguments or call order.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeSystemError indicates any other failure.
	ErrCodeSystemError ErrorCode = "SYSTEM_ERROR"
)

// ErrorResponse represents a standardized error report.
type ErrorResponse struct {
	Code    ErrorCode `json:"code" yaml:"code"`
	Message string    `json:"message" yaml:"message"`
	Details string    `json:"details,omitempty" yaml:"details,omitempty"`
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new ErrorResponse.
func NewError(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithDetails creates a new ErrorResponse with details.
func NewErrorWithDetails(code ErrorCode, message, details string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewAuthenticationFailedError creates an authentication failed error. It never
// carries details, so callers cannot learn which side rejected the proof.
func NewAuthenticationFailedError() *ErrorResponse {
	return NewError(ErrCodeAuthenticationFailed, "Authentication failed")
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeConfigurationError, "Configuration error", details)
}

// NewInvalidRequestError creates an invalid request error.
func NewInvalidRequestError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeInvalidRequest, "Invalid request", details)
}

// NewSystemError creates a system error.
func NewSystemError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeSystemError, "System error", details)
}

// FromError maps an error chain to an ErrorResponse. An ErrorResponse already
// in the chain is returned as is.
func FromError(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	var resp *ErrorResponse
	if errors.As(err, &resp) {
		return resp
	}

	switch {
	case errors.Is(err, srp.ErrProofMismatch):
		return NewAuthenticationFailedError()
	case errors.Is(err, srp.ErrProtocolAbort):
		return NewErrorWithDetails(ErrCodeProtocolAbort, "Protocol aborted", err.Error())
	case errors.Is(err, srp.ErrInvalidHex):
		return NewErrorWithDetails(ErrCodeFormatError, "Malformed input", err.Error())
	case errors.Is(err, srp.ErrUnsupportedHash):
		return NewErrorWithDetails(ErrCodeUnsupportedAlgorithm, "Unsupported algorithm", err.Error())
	case errors.Is(err, srp.ErrInvalidGroup):
		return NewConfigurationError(err.Error())
	case errors.Is(err, srp.ErrInvalidPrivateKey), errors.Is(err, srp.ErrInvalidState):
		return NewInvalidRequestError(err.Error())
	default:
		return NewSystemError(err.Error())
	}
}
