package memory

import (
	"context"
	"testing"

	"daftar/internal/core"

	"github.com/shopspring/decimal"
)

func TestWriteStatement(t *testing.T) {
	store := New()
	ctx := context.Background()

	window, err := core.WindowFor(core.NewDate(2025, 3, 10).Time, core.Monthly)
	if err != nil {
		t.Fatalf("WindowFor() error = %v", err)
	}
	stmt := core.PLStatement{
		Window:    window,
		Revenue:   decimal.NewFromInt(1000),
		Expenses:  decimal.NewFromInt(300),
		NetProfit: decimal.NewFromInt(700),
	}

	ref, err := store.WriteStatement(ctx, stmt)
	if err != nil {
		t.Fatalf("WriteStatement() error = %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("WriteStatement() ref = %v, want mem:1", ref)
	}

	ref, err = store.WriteStatement(ctx, stmt)
	if err != nil {
		t.Fatalf("WriteStatement() error = %v", err)
	}
	if ref != "mem:2" {
		t.Errorf("WriteStatement() ref = %v, want mem:2", ref)
	}

	got := store.Statements()
	if len(got) != 2 {
		t.Fatalf("Statements() returned %d entries, want 2", len(got))
	}
	if !got[0].NetProfit.Equal(decimal.NewFromInt(700)) {
		t.Errorf("stored NetProfit = %v, want 700", got[0].NetProfit)
	}
}
