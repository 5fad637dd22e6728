package invoices

import (
	"fmt"
	"time"
)

// statusTransitions declares the allowed explicit transitions from each
// stored status. Cancelled is terminal; paid can only be cancelled.
var statusTransitions = map[Status][]Status{
	StatusDraft:     {StatusSent, StatusCancelled},
	StatusSent:      {StatusOverdue, StatusCancelled},
	StatusPaid:      {StatusCancelled},
	StatusOverdue:   {StatusCancelled},
	StatusCancelled: {},
}

// InvalidTransitionError rejects a status-change request that is not in the
// transition table.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
}

// CanTransition reports whether an explicit change from one status to another
// is declared in the transition table.
func CanTransition(from, to Status) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ResolveStatusChange decides the outcome of an explicit status-change
// request. Pure: the caller persists the returned status.
//
// When recorded payments cover the total and the stored status is not yet
// paid, the result is forced to paid regardless of the requested status, even
// for a cancel request. Otherwise the request is validated against the
// transition table.
func ResolveStatusChange(inv *Invoice, requested Status) (Status, error) {
	if inv.IsPaid() && inv.Status != StatusPaid {
		return StatusPaid, nil
	}
	if !CanTransition(inv.Status, requested) {
		return "", &InvalidTransitionError{From: inv.Status, To: requested}
	}
	return requested, nil
}

// EffectiveStatus is the status as displayed. A cancelled invoice always
// displays cancelled; otherwise a fully paid invoice displays paid even when
// the stored status lags behind.
func EffectiveStatus(inv *Invoice) Status {
	return effectiveDisplay(inv.Status, inv.TotalPaid(), inv.Total)
}

func effectiveDisplay(stored Status, paid, total float64) Status {
	if stored == StatusCancelled {
		return StatusCancelled
	}
	if paid >= total {
		return StatusPaid
	}
	return stored
}

// OverdueCorrection evaluates the opportunistic overdue check: a sent, unpaid
// invoice whose due date (at day granularity) lies strictly before today
// should be corrected to overdue. Pure evaluate step; the caller applies and
// persists, and a persist failure must not fail the surrounding read.
func OverdueCorrection(inv *Invoice, today time.Time) (Status, bool) {
	if inv.Status != StatusSent || inv.IsPaid() {
		return inv.Status, false
	}
	due := truncateToDay(inv.DueDate)
	if due.Before(truncateToDay(today)) {
		return StatusOverdue, true
	}
	return inv.Status, false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
