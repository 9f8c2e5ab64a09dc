// Package common defines the error taxonomy shared across the client layers.
// Remote and storage failures are modeled as tagged types so callers can
// branch exhaustively with errors.As instead of matching on strings.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("not found")
)

// NetworkErrorKind classifies a failed remote call.
type NetworkErrorKind int

const (
	// NetworkUnreachable covers transport-level failures: DNS, dial,
	// timeouts, canceled requests.
	NetworkUnreachable NetworkErrorKind = iota
	// NetworkBadStatus covers non-2xx responses.
	NetworkBadStatus
	// NetworkDecodeFailure covers responses the client cannot decode.
	NetworkDecodeFailure
)

func (k NetworkErrorKind) String() string {
	switch k {
	case NetworkUnreachable:
		return "unreachable"
	case NetworkBadStatus:
		return "bad status"
	case NetworkDecodeFailure:
		return "decode failure"
	default:
		return "unknown"
	}
}

// NetworkError is a failed remote call. It is always recoverable: the
// repositories translate it into offline mode instead of propagating it.
type NetworkError struct {
	Kind   NetworkErrorKind
	Status int // HTTP status, set for NetworkBadStatus only
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Kind == NetworkBadStatus {
		return fmt.Sprintf("network error: %s %d", e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("network error: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("network error: %s", e.Kind)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StorageError is a durable-store failure. Callers must treat local state as
// unknown and fall back to an empty or previous in-memory snapshot.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ValidationError rejects a mutation before any store or network call is
// attempted. It carries a user-facing reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsNetwork reports whether err is, or wraps, a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsStorage reports whether err is, or wraps, a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
