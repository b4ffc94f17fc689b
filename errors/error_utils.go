// Package errors provides coded errors and their classification for the dashbook gateway.
package errors

import (
	"context"
	"errors"
	"strings"
)

// Kind is the coarse classification preserved from the upstream call to the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// KindOf returns the classification of err. The first coded error in the chain decides.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}

	var tErr *Error
	if !As(err, &tErr) {
		return KindInternal
	}

	switch tErr.Code() {
	case ERR_NOT_FOUND:
		return KindNotFound
	case ERR_INVALID_ARGUMENT:
		return KindBadRequest
	case ERR_UPSTREAM:
		return KindUpstream
	default:
		return KindInternal
	}
}

// UpstreamData returns the node's error code and message if err carries them.
func UpstreamData(err error) (*UpstreamErrData, bool) {
	var data *UpstreamErrData
	if AsData(err, &data) {
		return data, true
	}

	return nil, false
}

// IsNetworkError determines if an error is a transport failure towards the node.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		switch tErr.Code() {
		case ERR_NETWORK_ERROR,
			ERR_NETWORK_TIMEOUT,
			ERR_NETWORK_CONNECTION_REFUSED:
			return true
		}
	}

	errStr := strings.ToLower(err.Error())
	networkStrings := []string{
		"connection refused",
		"connection reset",
		"no such host",
		"dial tcp",
		"broken pipe",
		"i/o timeout",
	}

	for _, s := range networkStrings {
		if strings.Contains(errStr, s) {
			return true
		}
	}

	return false
}

// IsContextError determines if an error is related to context cancellation or deadline.
func IsContextError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var tErr *Error
	if As(err, &tErr) {
		if tErr.Code() == ERR_CONTEXT_CANCELED || tErr.Code() == ERR_CONTEXT {
			return true
		}
	}

	return false
}

// GetErrorCategory returns a short label used for logging and metrics.
func GetErrorCategory(err error) string {
	if err == nil {
		return "none"
	}

	if IsContextError(err) {
		return "context"
	}

	if IsNetworkError(err) {
		return "network"
	}

	return KindOf(err).String()
}
