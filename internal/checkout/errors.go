package checkout

import (
	"errors"
	"fmt"
)

// ErrCheckoutInFlight means a submission is already running for this session;
// the caller must wait for it to finish before retrying.
var ErrCheckoutInFlight = errors.New("checkout already in flight")

// ValidationError reports a precondition failure detected before any network
// interaction: the request is never sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// TransientError is a retryable failure: the request did not reach the order
// service, or the service answered 5xx. The cart is left untouched.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("checkout failed, retry later: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// ConflictError carries a server-side settlement conflict (e.g. insufficient
// stock) verbatim; the user adjusts the cart and retries.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
