package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// ErrorKind classifies provider failures.
type ErrorKind int

const (
	KindTimeout ErrorKind = iota + 1
	KindConnect
	KindNetwork
	KindHTTPStatus
	KindResponseParse
	KindEmptyCompletion
	KindNoCompletion
	KindUnsupportedProvider
	KindSerialization
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnect:
		return "connect"
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindResponseParse:
		return "response_parse"
	case KindEmptyCompletion:
		return "empty_completion"
	case KindNoCompletion:
		return "no_completion"
	case KindUnsupportedProvider:
		return "unsupported_provider"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// Error is a provider failure with a message fit for end users.
type Error struct {
	Kind ErrorKind
	// Status is the HTTP status for KindHTTPStatus, zero otherwise.
	Status int
	Msg    string
	Err    error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// ValidationError reports empty or missing input caught before any I/O.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsKind reports whether err is a provider error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func transportError(err error) *Error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &Error{Kind: KindTimeout, Msg: "Request timed out. Try increasing the timeout in settings.", Err: err}
	case isConnectError(err):
		return &Error{Kind: KindConnect, Msg: "Failed to connect to AI service. Check your base URL and internet connection.", Err: err}
	default:
		return &Error{Kind: KindNetwork, Msg: fmt.Sprintf("Network error: %v", err), Err: err}
	}
}

func isConnectError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}

// apiError wraps a message decoded from a provider error envelope.
func apiError(status int, msg string) *Error {
	return &Error{Kind: KindHTTPStatus, Status: status, Msg: "API Error: " + msg}
}

// statusError is the fallback when the error body is not a known envelope.
// The raw body is kept in the message for diagnosis.
func statusError(status int, body []byte) *Error {
	var msg string
	switch {
	case status == http.StatusUnauthorized:
		msg = "Unauthorized: Invalid API key"
	case status == http.StatusForbidden:
		msg = "Forbidden: Check your API key permissions"
	case status == http.StatusNotFound:
		msg = "Not found: Check your base URL and model"
	case status == http.StatusTooManyRequests:
		msg = "Rate limited: Too many requests"
	case status >= 500 && status <= 599:
		msg = "Server error: AI service is temporarily unavailable"
	default:
		msg = "Unknown API error"
	}
	return &Error{Kind: KindHTTPStatus, Status: status, Msg: fmt.Sprintf("%s (%s)", msg, body)}
}

func parseError(err error) *Error {
	return &Error{Kind: KindResponseParse, Msg: fmt.Sprintf("Failed to parse API response: %v", err), Err: err}
}

func emptyCompletionError() *Error {
	return &Error{Kind: KindEmptyCompletion, Msg: "AI service returned empty response"}
}
