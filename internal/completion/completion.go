// Package completion talks to hosted language-model completion services.
package completion

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// PlaceholderReply stands in for a successful response that carried no text.
	PlaceholderReply = "No answer"

	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 1 << 20
)

var (
	ErrEmptyReply    = errors.New("completion: response carried no reply text")
	ErrMissingAPIKey = errors.New("completion: api key is not configured")
)

// Completer turns one user-authored string into one reply.
type Completer interface {
	Complete(ctx context.Context, text string) (string, error)
}

// NetworkError means the request never reached the provider or the response
// could not be read or decoded.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("completion: network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProviderError carries a non-2xx status and the raw error body.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("completion: provider returned %d: %s", e.Status, e.Body)
}

type ErrorKind string

const (
	KindNone           ErrorKind = ""
	KindNetworkFailure ErrorKind = "network_failure"
	KindProviderError  ErrorKind = "provider_error"
	KindEmptyReply     ErrorKind = "empty_reply"
	KindOther          ErrorKind = "other"
)

// Kind classifies err into the failure taxonomy used by callers.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return KindProviderError
	}
	if errors.Is(err, ErrEmptyReply) {
		return KindEmptyReply
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return KindNetworkFailure
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindNetworkFailure
	}
	return KindOther
}
