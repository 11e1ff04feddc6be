package provider

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument indicates missing or malformed caller input. It is
// returned before any network call is made.
var ErrInvalidArgument = errors.New("invalid argument")

// Upstream error codes this system inspects. Any other code is surfaced
// verbatim and treated as unclassified.
const (
	CodeProductNotReady    = "PRODUCT_NOT_READY"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeTransactionsLimit  = "TRANSACTIONS_LIMIT"
	CodeInvalidAccessToken = "INVALID_ACCESS_TOKEN"
	CodeItemLoginRequired  = "ITEM_LOGIN_REQUIRED"
	CodeItemLocked         = "ITEM_LOCKED"
)

// Error carries an upstream provider failure with its original error code and
// HTTP status intact, so callers can classify it rather than string-match.
type Error struct {
	Op         string // logical operation, e.g. "transactions_get"
	Code       string // provider error code, verbatim
	Message    string // provider error message, verbatim
	StatusCode int    // HTTP status the provider responded with, 0 if unknown
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s failed: %s - %s", e.Op, e.Code, e.Message)
}

// AsError unwraps err into a provider *Error, or nil if it is not one.
func AsError(err error) *Error {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr
	}
	return nil
}
