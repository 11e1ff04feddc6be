package reconcile

import (
	"time"

	"github.com/ledgerbridge/ledgerbridge/internal/model"
)

// Status tags a retrieval outcome.
type Status string

// Retrieval outcome statuses.
const (
	StatusSuccess  Status = "success"
	StatusNotReady Status = "not_ready"
	StatusFailure  Status = "failure"
)

// Class identifies why a retrieval failed, mapped from the provider's error
// code so callers branch on a typed value instead of matching strings.
type Class string

// Failure classes.
const (
	ClassInvalidArgument   Class = "invalid_argument"   // caller error, no retry
	ClassRateLimited       Class = "rate_limited"       // transient, back off
	ClassInvalidCredential Class = "invalid_credential" // token rejected, re-link required
	ClassOther             Class = "other"              // unclassified provider failure
)

// Coverage reports how much of a requested window the provider actually
// covered. Computed fresh per request, never persisted.
type Coverage struct {
	Requested model.DateWindow  `json:"requested"`
	Actual    *model.DateWindow `json:"actual,omitempty"` // nil when no records came back
	GapDays   int               `json:"gap_days"`
	Complete  bool              `json:"complete"`
}

// Outcome is the tagged result of one transaction retrieval. Exactly one of
// the three shapes is populated, selected by Status: Success carries records
// and coverage, NotReady carries a retry hint, Failure carries the
// classification plus the provider's original detail.
type Outcome struct {
	Status Status

	// Success
	Records  []model.Transaction
	Total    int
	Coverage *Coverage

	// NotReady
	RetryAfter time.Duration

	// Failure
	Class          Class
	Message        string
	ProviderStatus int // HTTP status the provider responded with, 0 if unknown
}
