package esserror

import (
	"errors"
	"fmt"
	"net"
	"strings"

	relaierrors "github.com/sirseerhq/transfer-ads/internal/errors"
)

// Inspector provides methods for analyzing Elasticsearch errors.
type Inspector interface {
	// IsAuthError returns true if the error represents an authentication or authorization failure.
	IsAuthError(err error) bool

	// IsNotFoundError returns true if the error represents a missing index.
	IsNotFoundError(err error) bool

	// IsQueryError returns true if the error represents a malformed or rejected query.
	IsQueryError(err error) bool

	// IsUnavailableError returns true if the cluster answered but could not serve the request.
	IsUnavailableError(err error) bool

	// IsNetworkError returns true if the error represents a network connectivity error.
	IsNetworkError(err error) bool
}

// MessageInspector implements Inspector by matching on error text. It covers
// errors whose type has been lost, such as transport errors the client wraps
// with fmt.Errorf. Status codes are never matched as bare digits: they arrive
// typed as *StatusError, and digits also occur in hosts and ports.
type MessageInspector struct{}

// NewInspector returns an Inspector that checks typed errors in the chain
// first and falls back to message matching.
func NewInspector() Inspector {
	return NewErrorChainInspector(&MessageInspector{})
}

// IsAuthError checks if the error is an authentication or authorization error.
func (i *MessageInspector) IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "security_exception") ||
		strings.Contains(errStr, "unable to authenticate")
}

// IsNotFoundError checks if the error is a missing index error.
func (i *MessageInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "index_not_found_exception") ||
		strings.Contains(errStr, "no such index")
}

// IsQueryError checks if the error is a query parsing or validation error.
func (i *MessageInspector) IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "parsing_exception") ||
		strings.Contains(errStr, "x_content_parse_exception") ||
		strings.Contains(errStr, "illegal_argument_exception") ||
		strings.Contains(errStr, "search_phase_execution_exception")
}

// IsUnavailableError checks if the error is a cluster availability error.
func (i *MessageInspector) IsUnavailableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "es_rejected_execution_exception") ||
		strings.Contains(errStr, "cluster_block_exception") ||
		strings.Contains(errStr, "no_shard_available_action_exception")
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *MessageInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}

// ErrorChainInspector wraps a base inspector and adds support for checking errors
// in the error chain using errors.As.
type ErrorChainInspector struct {
	base Inspector
}

// NewErrorChainInspector creates a new ErrorChainInspector that checks both
// the error chain and falls back to string-based inspection.
func NewErrorChainInspector(base Inspector) Inspector {
	return &ErrorChainInspector{base: base}
}

// IsAuthError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsAuthError(err error) bool {
	var authErr interface{ IsAuthError() bool }
	if errors.As(err, &authErr) {
		return authErr.IsAuthError()
	}
	return e.base.IsAuthError(err)
}

// IsNotFoundError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsNotFoundError(err error) bool {
	var notFoundErr interface{ IsNotFoundError() bool }
	if errors.As(err, &notFoundErr) {
		return notFoundErr.IsNotFoundError()
	}
	return e.base.IsNotFoundError(err)
}

// IsQueryError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsQueryError(err error) bool {
	var queryErr interface{ IsQueryError() bool }
	if errors.As(err, &queryErr) {
		return queryErr.IsQueryError()
	}
	return e.base.IsQueryError(err)
}

// IsUnavailableError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsUnavailableError(err error) bool {
	var unavailableErr interface{ IsUnavailableError() bool }
	if errors.As(err, &unavailableErr) {
		return unavailableErr.IsUnavailableError()
	}
	return e.base.IsUnavailableError(err)
}

// IsNetworkError checks for net.Error in the chain, then falls back to base inspector.
func (e *ErrorChainInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return e.base.IsNetworkError(err)
}

// Classify wraps err with the sentinel matching its kind, keeping the
// original message. Transport failures are checked first so an address
// in the message cannot be mistaken for anything else. Unrecognized errors
// are returned unchanged.
func Classify(inspector Inspector, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case inspector.IsNetworkError(err):
		return fmt.Errorf("%w: %w", relaierrors.ErrNetworkFailure, err)
	case inspector.IsAuthError(err):
		return fmt.Errorf("%w: %w", relaierrors.ErrAuthFailed, err)
	case inspector.IsNotFoundError(err):
		return fmt.Errorf("%w: %w", relaierrors.ErrIndexNotFound, err)
	case inspector.IsQueryError(err):
		return fmt.Errorf("%w: %w", relaierrors.ErrQueryRejected, err)
	case inspector.IsUnavailableError(err):
		return fmt.Errorf("%w: %w", relaierrors.ErrServiceUnavailable, err)
	}
	return err
}
