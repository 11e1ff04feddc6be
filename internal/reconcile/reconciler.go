// Package reconcile implements the transaction window reconciler: it requests
// a bounded historical window from the provider gateway, detects when the
// provider has not finished backfilling, computes how much of the requested
// window is actually present, and reports a completeness verdict plus retry
// advice so the caller can converge on a full result.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerbridge/ledgerbridge/internal/model"
	"github.com/ledgerbridge/ledgerbridge/internal/provider"
)

// Policy holds the tunable knobs of the reconciler. The tolerance threshold
// is an empirical constant, not a hard invariant; treat it as configuration.
type Policy struct {
	DefaultWindowMonths int           // lookback when the caller omits a window bound
	ToleranceDays       int           // coverage gap still considered complete
	RetryAfter          time.Duration // hint returned with a not-ready outcome
	PageLimit           int           // page size ceiling forwarded to the gateway
}

// DefaultPolicy returns the standard reconciler policy.
func DefaultPolicy() Policy {
	return Policy{
		DefaultWindowMonths: 6,
		ToleranceDays:       30,
		RetryAfter:          30 * time.Second,
		PageLimit:           provider.MaxPageSize,
	}
}

// Request describes one transaction retrieval. Window, Limit, Offset, and
// AccountID are optional; AccessToken is required.
type Request struct {
	AccessToken string
	Window      model.DateWindow
	Limit       int
	Offset      int
	AccountID   string
}

// Reconciler produces a RetrievalOutcome for "give me transactions for this
// item between these dates". It is stateless across calls and performs a
// single gateway round trip per invocation; retrying is the caller's job,
// driven by the outcome's completeness and not-ready signals.
type Reconciler struct {
	gateway provider.Gateway
	policy  Policy
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a reconciler over the given gateway. Zero-valued policy fields
// fall back to DefaultPolicy.
func New(gateway provider.Gateway, policy Policy) *Reconciler {
	defaults := DefaultPolicy()
	if policy.DefaultWindowMonths <= 0 {
		policy.DefaultWindowMonths = defaults.DefaultWindowMonths
	}
	if policy.ToleranceDays <= 0 {
		policy.ToleranceDays = defaults.ToleranceDays
	}
	if policy.RetryAfter <= 0 {
		policy.RetryAfter = defaults.RetryAfter
	}
	if policy.PageLimit <= 0 || policy.PageLimit > provider.MaxPageSize {
		policy.PageLimit = defaults.PageLimit
	}

	return &Reconciler{
		gateway: gateway,
		policy:  policy,
		logger:  slog.Default().With("component", "reconcile"),
		now:     time.Now,
	}
}

// Retrieve fetches transactions for the request's window and reconciles the
// result against it. Failures are reported inside the outcome, never as a
// Go error: classification is part of the contract.
func (r *Reconciler) Retrieve(ctx context.Context, req Request) Outcome {
	if req.AccessToken == "" {
		return Outcome{
			Status:  StatusFailure,
			Class:   ClassInvalidArgument,
			Message: "access token is required",
		}
	}

	window := resolveWindow(req.Window, r.now(), r.policy.DefaultWindowMonths)
	if !window.Valid() {
		return Outcome{
			Status:  StatusFailure,
			Class:   ClassInvalidArgument,
			Message: fmt.Sprintf("invalid date window %s: start must not follow end", window),
		}
	}

	limit := req.Limit
	if limit <= 0 || limit > r.policy.PageLimit {
		limit = r.policy.PageLimit
	}

	result, err := r.gateway.ListTransactions(ctx, req.AccessToken, window, provider.Query{
		Limit:     limit,
		Offset:    req.Offset,
		AccountID: req.AccountID,
	})
	if err != nil {
		return r.classifyFailure(err)
	}

	coverage := computeCoverage(window, result.Transactions, result.Total, r.policy.ToleranceDays)

	r.logger.Info("Retrieved transactions",
		"window", window.String(),
		"count", len(result.Transactions),
		"total", result.Total,
		"gap_days", coverage.GapDays,
		"complete", coverage.Complete)

	return Outcome{
		Status:   StatusSuccess,
		Records:  result.Transactions,
		Total:    result.Total,
		Coverage: &coverage,
	}
}

// classifyFailure maps a gateway error onto the retrieval taxonomy. A
// still-processing provider is an expected transient state and becomes a
// NotReady outcome regardless of the HTTP status the provider used for it.
func (r *Reconciler) classifyFailure(err error) Outcome {
	if errors.Is(err, provider.ErrInvalidArgument) {
		return Outcome{
			Status:  StatusFailure,
			Class:   ClassInvalidArgument,
			Message: err.Error(),
		}
	}

	provErr := provider.AsError(err)
	if provErr == nil {
		return Outcome{
			Status:  StatusFailure,
			Class:   ClassOther,
			Message: err.Error(),
		}
	}

	if provErr.Code == provider.CodeProductNotReady {
		r.logger.Info("Provider still backfilling history", "code", provErr.Code)
		return Outcome{
			Status:     StatusNotReady,
			RetryAfter: r.policy.RetryAfter,
		}
	}

	class := classifyCode(provErr.Code)
	r.logger.Warn("Provider call failed",
		"code", provErr.Code,
		"status", provErr.StatusCode,
		"class", class)

	return Outcome{
		Status:         StatusFailure,
		Class:          class,
		Message:        provErr.Message,
		ProviderStatus: provErr.StatusCode,
	}
}

// classifyCode maps a provider error code onto a failure class. Unknown codes
// stay unclassified rather than being guessed at.
func classifyCode(code string) Class {
	switch code {
	case provider.CodeRateLimitExceeded, provider.CodeTransactionsLimit:
		return ClassRateLimited
	case provider.CodeInvalidAccessToken, provider.CodeItemLoginRequired, provider.CodeItemLocked:
		return ClassInvalidCredential
	default:
		return ClassOther
	}
}

// resolveWindow fills in the effective date window: the caller's bounds when
// both are present, otherwise today minus the default lookback through today,
// date-only.
func resolveWindow(w model.DateWindow, now time.Time, months int) model.DateWindow {
	if w.IsZero() {
		today := model.Day(now)
		return model.DateWindow{
			Start: today.AddDate(0, -months, 0),
			End:   today,
		}
	}
	return model.NewDateWindow(w.Start, w.End)
}
