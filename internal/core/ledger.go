package core

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Daily     PeriodType = "daily"
	Weekly    PeriodType = "weekly"
	Monthly   PeriodType = "monthly"
	Quarterly PeriodType = "quarterly"
	Yearly    PeriodType = "yearly"
)

type (
	PeriodType string

	// Window is an inclusive [Start, End] date range for one period.
	Window struct {
		Start time.Time
		End   time.Time
	}

	// BalancedTransaction pairs a ledger transaction with its running
	// balance inside a summarized window.
	BalancedTransaction struct {
		LedgerTransaction
		Balance decimal.Decimal
	}

	// LedgerSummary is the cash-book/bank-book roll-up for one window.
	//
	// The opening balance is back-computed from the window's own net
	// movement (closing - totalIn + totalOut) rather than carried forward
	// from prior periods, so each window is summarized in isolation. A
	// window with zero net movement therefore always opens at zero
	// regardless of history. This mirrors the dashboard's long-standing
	// behavior; changing it would silently shift every printed balance.
	LedgerSummary struct {
		Window         Window
		OpeningBalance decimal.Decimal
		ClosingBalance decimal.Decimal
		TotalIn        decimal.Decimal
		TotalOut       decimal.Decimal
		Transactions   []BalancedTransaction
	}
)

var ErrInvalidPeriod = errors.New("invalid period type")

func (p PeriodType) Validate() error {
	switch p {
	case Daily, Weekly, Monthly, Quarterly, Yearly:
		return nil
	default:
		return ErrInvalidPeriod
	}
}

// WindowFor computes the calendar window containing ref for the given
// period type. Weeks start on Sunday; months, quarters and years use
// calendar boundaries. The end bound is the last instant of the final
// day so inclusive date comparisons work with timestamped transactions.
// Windows are built in UTC because record dates are stored as UTC
// midnights; a reference in another zone is converted first.
func WindowFor(ref time.Time, period PeriodType) (Window, error) {
	if err := period.Validate(); err != nil {
		return Window{}, err
	}
	ref = ref.UTC()
	y, m, d := ref.Date()
	loc := time.UTC
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)

	var end time.Time
	switch period {
	case Daily:
		end = start.AddDate(0, 0, 1)
	case Weekly:
		start = start.AddDate(0, 0, -int(start.Weekday()))
		end = start.AddDate(0, 0, 7)
	case Monthly:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	case Quarterly:
		qm := time.Month((int(m)-1)/3*3 + 1)
		start = time.Date(y, qm, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 3, 0)
	case Yearly:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0)
	}
	return Window{Start: start, End: end.Add(-time.Nanosecond)}, nil
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Summarize filters transactions to the window around referenceDate,
// orders them by date ascending (ties keep arrival order) and walks them
// accumulating a running balance from zero. An empty window yields a
// summary of all zeros, which is a valid state, not an error.
func Summarize(transactions []LedgerTransaction, referenceDate time.Time, period PeriodType) (LedgerSummary, error) {
	window, err := WindowFor(referenceDate, period)
	if err != nil {
		return LedgerSummary{}, err
	}

	inWindow := make([]LedgerTransaction, 0, len(transactions))
	for _, tx := range transactions {
		if window.Contains(tx.Date.Time) {
			inWindow = append(inWindow, tx)
		}
	}
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].Date.Before(inWindow[j].Date.Time)
	})

	summary := LedgerSummary{
		Window:         window,
		OpeningBalance: decimal.Zero,
		ClosingBalance: decimal.Zero,
		TotalIn:        decimal.Zero,
		TotalOut:       decimal.Zero,
	}

	running := decimal.Zero
	for _, tx := range inWindow {
		running = running.Add(tx.Signed())
		summary.Transactions = append(summary.Transactions, BalancedTransaction{
			LedgerTransaction: tx,
			Balance:           running,
		})
		if tx.Direction == In {
			summary.TotalIn = summary.TotalIn.Add(tx.Amount)
		} else {
			summary.TotalOut = summary.TotalOut.Add(tx.Amount)
		}
	}

	summary.ClosingBalance = running
	summary.OpeningBalance = running.Sub(summary.TotalIn.Sub(summary.TotalOut))
	return summary, nil
}
