package invoices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func unpaidInvoice(status Status) *Invoice {
	return &Invoice{Status: status, Total: 100}
}

func TestTransitionTableExhaustive(t *testing.T) {
	all := []Status{StatusDraft, StatusSent, StatusOverdue, StatusPaid, StatusCancelled}
	allowed := map[Status]map[Status]bool{
		StatusDraft:     {StatusSent: true, StatusCancelled: true},
		StatusSent:      {StatusOverdue: true, StatusCancelled: true},
		StatusPaid:      {StatusCancelled: true},
		StatusOverdue:   {StatusCancelled: true},
		StatusCancelled: {},
	}

	for _, from := range all {
		for _, to := range all {
			inv := unpaidInvoice(from)
			// A stored paid status would trip the auto-paid override with
			// zero payments only if totalPaid >= total; keep it unpaid.
			got, err := ResolveStatusChange(inv, to)
			if allowed[from][to] {
				require.NoError(t, err, "%s -> %s should be accepted", from, to)
				require.Equal(t, to, got)
			} else {
				require.Error(t, err, "%s -> %s should be rejected", from, to)
				var ite *InvalidTransitionError
				require.ErrorAs(t, err, &ite)
				require.Equal(t, from, ite.From)
				require.Equal(t, to, ite.To)
			}
		}
	}
}

func TestInvalidTransitionErrorNamesBothStatuses(t *testing.T) {
	_, err := ResolveStatusChange(unpaidInvoice(StatusSent), StatusDraft)
	require.EqualError(t, err, "cannot change status from sent to draft")
}

func TestCancelledIsTerminal(t *testing.T) {
	for _, to := range []Status{StatusDraft, StatusSent, StatusOverdue, StatusPaid, StatusCancelled} {
		_, err := ResolveStatusChange(unpaidInvoice(StatusCancelled), to)
		require.Error(t, err)
	}
}

func TestAutoPaidOverrideForcesPaid(t *testing.T) {
	for _, requested := range []Status{StatusOverdue, StatusCancelled, StatusDraft} {
		inv := &Invoice{
			Status: StatusSent,
			Total:  100,
			Payments: []Payment{
				{Amount: 60},
				{Amount: 40},
			},
		}
		got, err := ResolveStatusChange(inv, requested)
		require.NoError(t, err)
		require.Equal(t, StatusPaid, got, "requested %s", requested)
	}
}

func TestAutoPaidOverrideWithOverpayment(t *testing.T) {
	inv := &Invoice{
		Status:   StatusSent,
		Total:    100,
		Payments: []Payment{{Amount: 150}},
	}
	got, err := ResolveStatusChange(inv, StatusCancelled)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, got)
}

func TestAutoPaidOverrideSkippedWhenAlreadyPaid(t *testing.T) {
	inv := &Invoice{
		Status:   StatusPaid,
		Total:    100,
		Payments: []Payment{{Amount: 100}},
	}
	got, err := ResolveStatusChange(inv, StatusCancelled)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, got)
}

func TestEffectiveStatusCancelledWins(t *testing.T) {
	inv := &Invoice{
		Status:   StatusCancelled,
		Total:    100,
		Payments: []Payment{{Amount: 100}},
	}
	require.Equal(t, StatusCancelled, EffectiveStatus(inv))
}

func TestEffectiveStatusPaidOverridesStored(t *testing.T) {
	inv := &Invoice{
		Status:   StatusOverdue,
		Total:    200,
		Payments: []Payment{{Amount: 120}, {Amount: 80}},
	}
	require.Equal(t, StatusPaid, EffectiveStatus(inv))
	require.Equal(t, 0.0, inv.AmountDue())
	require.True(t, inv.IsPaid())
}

func TestEffectiveStatusFallsBackToStored(t *testing.T) {
	inv := &Invoice{Status: StatusSent, Total: 100, Payments: []Payment{{Amount: 40}}}
	require.Equal(t, StatusSent, EffectiveStatus(inv))
}

func TestOverdueCorrectionPastDue(t *testing.T) {
	today := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	inv := &Invoice{
		Status:  StatusSent,
		Total:   100,
		DueDate: time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC),
	}
	got, corrected := OverdueCorrection(inv, today)
	require.True(t, corrected)
	require.Equal(t, StatusOverdue, got)
}

func TestOverdueCorrectionDueTodayOrLater(t *testing.T) {
	today := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	for _, due := range []time.Time{
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
	} {
		inv := &Invoice{Status: StatusSent, Total: 100, DueDate: due}
		got, corrected := OverdueCorrection(inv, today)
		require.False(t, corrected)
		require.Equal(t, StatusSent, got)
	}
}

func TestOverdueCorrectionSkipsPaidAndNonSent(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	paid := &Invoice{Status: StatusSent, Total: 100, DueDate: yesterday, Payments: []Payment{{Amount: 100}}}
	_, corrected := OverdueCorrection(paid, today)
	require.False(t, corrected)

	for _, status := range []Status{StatusDraft, StatusOverdue, StatusPaid, StatusCancelled} {
		inv := &Invoice{Status: status, Total: 100, DueDate: yesterday}
		_, corrected := OverdueCorrection(inv, today)
		require.False(t, corrected, "status %s", status)
	}
}

func TestStatusValid(t *testing.T) {
	require.True(t, StatusDraft.Valid())
	require.True(t, StatusCancelled.Valid())
	require.False(t, Status("archived").Valid())
}
