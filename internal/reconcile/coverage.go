package reconcile

import (
	"time"

	"github.com/ledgerbridge/ledgerbridge/internal/model"
)

// computeCoverage derives actual-vs-requested coverage for one retrieval.
// total is the provider's count of records available in the window, which
// can exceed len(records) when the caller asked for a single page.
func computeCoverage(requested model.DateWindow, records []model.Transaction, total, toleranceDays int) Coverage {
	cov := Coverage{Requested: requested}

	var oldest, newest time.Time
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		if oldest.IsZero() || r.Date.Before(oldest) {
			oldest = r.Date
		}
		if newest.IsZero() || r.Date.After(newest) {
			newest = r.Date
		}
	}

	if oldest.IsZero() {
		// Nothing surfaced. Only a genuinely empty account is complete; a
		// positive total with no records means backfill is still pending.
		if total == 0 {
			cov.Complete = true
			return cov
		}
		cov.GapDays = requested.Days()
		return cov
	}

	actual := model.NewDateWindow(oldest, newest)
	cov.Actual = &actual
	cov.GapDays = gapDays(requested.Start, actual.Start)
	cov.Complete = cov.GapDays <= toleranceDays
	return cov
}

// gapDays counts the calendar days of requested history the provider has not
// yet surfaced: the days from the requested start through the oldest observed
// date, inclusive of both. Zero when the oldest record is on or before the
// requested start.
func gapDays(requestedStart, actualStart time.Time) int {
	requestedStart = model.Day(requestedStart)
	actualStart = model.Day(actualStart)
	if !actualStart.After(requestedStart) {
		return 0
	}
	return int(actualStart.Sub(requestedStart).Hours()/24) + 1
}
