package core

import (
	"testing"
	"time"
)

func TestWindowFor(t *testing.T) {
	// Wednesday, 8 January 2025.
	ref := time.Date(2025, 1, 8, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		period    PeriodType
		wantStart time.Time
		inside    time.Time
		outside   time.Time
	}{
		{Daily,
			time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 8, 23, 59, 0, 0, time.UTC),
			time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)},
		{Weekly, // week starts Sunday 5 Jan
			time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 11, 23, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)},
		{Monthly,
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Quarterly,
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{Yearly,
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(string(tc.period), func(t *testing.T) {
			w, err := WindowFor(ref, tc.period)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !w.Start.Equal(tc.wantStart) {
				t.Fatalf("start = %v, want %v", w.Start, tc.wantStart)
			}
			if !w.Contains(tc.inside) {
				t.Fatalf("window should contain %v", tc.inside)
			}
			if w.Contains(tc.outside) {
				t.Fatalf("window should not contain %v", tc.outside)
			}
		})
	}
}

func TestWindowForInvalidPeriod(t *testing.T) {
	if _, err := WindowFor(time.Now(), PeriodType("fortnightly")); err == nil {
		t.Fatalf("expected error for unknown period type")
	}
}

func tx(day int, dir Direction, amount string) LedgerTransaction {
	return LedgerTransaction{
		ID:          "t",
		Ledger:      CashBook,
		Date:        NewDate(2025, 3, day),
		Description: "x",
		Direction:   dir,
		Amount:      dec(amount),
		Category:    "Sales",
	}
}

func TestSummarize(t *testing.T) {
	txs := []LedgerTransaction{
		tx(3, In, "100"),
		tx(10, Out, "40"),
		tx(20, In, "20"),
	}
	sum, err := Summarize(txs, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sum.TotalIn.Equal(dec("120")) {
		t.Fatalf("totalIn = %s, want 120", sum.TotalIn)
	}
	if !sum.TotalOut.Equal(dec("40")) {
		t.Fatalf("totalOut = %s, want 40", sum.TotalOut)
	}
	if !sum.ClosingBalance.Equal(dec("80")) {
		t.Fatalf("closing = %s, want 80", sum.ClosingBalance)
	}
	// Isolated-window model: opening derives from the window's own net
	// movement, so it lands on zero here.
	if !sum.OpeningBalance.IsZero() {
		t.Fatalf("opening = %s, want 0", sum.OpeningBalance)
	}

	wantBalances := []string{"100", "60", "80"}
	if len(sum.Transactions) != len(wantBalances) {
		t.Fatalf("got %d transactions, want %d", len(sum.Transactions), len(wantBalances))
	}
	for i, want := range wantBalances {
		if !sum.Transactions[i].Balance.Equal(dec(want)) {
			t.Fatalf("running balance[%d] = %s, want %s", i, sum.Transactions[i].Balance, want)
		}
	}
}

func TestWindowForNormalizesZone(t *testing.T) {
	// Stored dates are UTC midnights, so a reference in another zone
	// must not shift the window start past the first day's records.
	ref := time.Date(2025, 3, 15, 12, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))

	w, err := WindowFor(ref, Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", w.Start, wantStart)
	}
	if !w.Contains(NewDate(2025, 3, 1).Time) {
		t.Fatalf("window should contain the first day of the month")
	}
}

func TestSummarizeNonUTCReference(t *testing.T) {
	txs := []LedgerTransaction{tx(1, In, "100")}
	ref := time.Date(2025, 3, 15, 12, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))

	sum, err := Summarize(txs, ref, Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.TotalIn.Equal(dec("100")) {
		t.Fatalf("totalIn = %s, want 100", sum.TotalIn)
	}
}

func TestSummarizeIdentity(t *testing.T) {
	txs := []LedgerTransaction{
		tx(1, In, "10.50"),
		tx(2, Out, "3.25"),
		tx(2, Out, "1.25"),
		tx(28, In, "0.01"),
	}
	sum, err := Summarize(txs, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	net := sum.TotalIn.Sub(sum.TotalOut)
	if !sum.ClosingBalance.Sub(sum.OpeningBalance).Equal(net) {
		t.Fatalf("closing-opening = %s, want net %s",
			sum.ClosingBalance.Sub(sum.OpeningBalance), net)
	}
}

func TestSummarizeSortsAndKeepsTieOrder(t *testing.T) {
	first := tx(5, In, "1")
	first.ID = "first"
	second := tx(5, Out, "2")
	second.ID = "second"
	earlier := tx(2, In, "7")
	earlier.ID = "earlier"

	sum, err := Summarize([]LedgerTransaction{first, second, earlier},
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotOrder := []string{sum.Transactions[0].ID, sum.Transactions[1].ID, sum.Transactions[2].ID}
	want := []string{"earlier", "first", "second"}
	for i := range want {
		if gotOrder[i] != want[i] {
			t.Fatalf("order = %v, want %v", gotOrder, want)
		}
	}
}

func TestSummarizeEmptyWindow(t *testing.T) {
	txs := []LedgerTransaction{tx(3, In, "100")}
	sum, err := Summarize(txs, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.OpeningBalance.IsZero() || !sum.ClosingBalance.IsZero() ||
		!sum.TotalIn.IsZero() || !sum.TotalOut.IsZero() || len(sum.Transactions) != 0 {
		t.Fatalf("empty window should be all zeros, got %+v", sum)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	txs := []LedgerTransaction{tx(3, In, "100"), tx(4, Out, "25")}
	ref := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	a, err := Summarize(txs, ref, Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Summarize(txs, ref, Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.ClosingBalance.Equal(b.ClosingBalance) || !a.TotalIn.Equal(b.TotalIn) ||
		!a.TotalOut.Equal(b.TotalOut) || len(a.Transactions) != len(b.Transactions) {
		t.Fatalf("summarize is not idempotent: %+v vs %+v", a, b)
	}
}
