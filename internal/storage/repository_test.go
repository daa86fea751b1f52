package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"daftar/internal/core"

	"github.com/shopspring/decimal"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInvoiceRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	inv := core.Invoice{
		ClientID:      7,
		InvoiceNumber: "INV-001",
		IssueDate:     core.NewDate(2025, 3, 10),
		DueDate:       core.NewDate(2025, 4, 9),
		Subtotal:      dec("31.05"),
		VATRate:       dec("15"),
		Status:        core.StatusPending,
		Notes:         "first order",
	}
	items := []core.InvoiceLineItem{
		{ProductID: 1, Quantity: dec("2"), Price: dec("10.50"), TaxRate: dec("15")},
		{ProductID: 2, Quantity: dec("1"), Price: dec("10.05"), TaxRate: dec("15")},
	}

	id, err := repo.CreateInvoice(ctx, inv, items)
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if id == 0 {
		t.Fatal("CreateInvoice returned zero id")
	}

	got, gotItems, err := repo.GetInvoice(ctx, id)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.InvoiceNumber != "INV-001" || got.ClientID != 7 {
		t.Errorf("unexpected invoice: %+v", got)
	}
	if !got.Subtotal.Equal(dec("31.05")) {
		t.Errorf("Subtotal = %s, want 31.05", got.Subtotal)
	}
	if !got.IssueDate.Equal(core.NewDate(2025, 3, 10).Time) {
		t.Errorf("IssueDate = %v", got.IssueDate)
	}
	if len(gotItems) != 2 {
		t.Fatalf("items = %d, want 2", len(gotItems))
	}
	if !gotItems[0].Price.Equal(dec("10.50")) {
		t.Errorf("item price = %s, want 10.50", gotItems[0].Price)
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, _, err := repo.GetInvoice(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListInvoicesBetween(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i, day := range []int{5, 15, 25} {
		inv := core.Invoice{
			ClientID:      1,
			InvoiceNumber: "INV-" + string(rune('A'+i)),
			IssueDate:     core.NewDate(2025, 3, day),
			DueDate:       core.NewDate(2025, 4, day),
			Subtotal:      dec("100"),
			VATRate:       dec("15"),
			Status:        core.StatusPaid,
		}
		if _, err := repo.CreateInvoice(ctx, inv, nil); err != nil {
			t.Fatalf("CreateInvoice: %v", err)
		}
	}

	got, err := repo.ListInvoicesBetween(ctx,
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListInvoicesBetween: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("invoices in range = %d, want 1", len(got))
	}
	if !got[0].IssueDate.Equal(core.NewDate(2025, 3, 15).Time) {
		t.Errorf("unexpected invoice in range: %+v", got[0])
	}
}

func validTransaction(id string, day int) core.LedgerTransaction {
	return core.LedgerTransaction{
		ID:               id,
		Ledger:           core.CashBook,
		Date:             core.NewDate(2025, 3, day),
		Description:      "cash sale",
		Direction:        core.In,
		Amount:           dec("120"),
		Category:         "sales",
		VATRate:          dec("15"),
		SubmissionStatus: core.SubmissionPending,
		CreatedAt:        time.Now().UTC(),
	}
}

func TestLedgerTransactionLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := validTransaction("tx-1", 3)
	if err := repo.CreateLedgerTransaction(ctx, tx); err != nil {
		t.Fatalf("CreateLedgerTransaction: %v", err)
	}

	got, err := repo.GetLedgerTransaction(ctx, "tx-1")
	if err != nil {
		t.Fatalf("GetLedgerTransaction: %v", err)
	}
	if got.SubmissionStatus != core.SubmissionPending {
		t.Errorf("status = %s, want pending", got.SubmissionStatus)
	}
	if !got.Amount.Equal(dec("120")) {
		t.Errorf("amount = %s, want 120", got.Amount)
	}

	pending, err := repo.GetPendingSubmissions(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSubmissions: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "tx-1" {
		t.Fatalf("pending = %+v, want tx-1", pending)
	}

	if err := repo.MarkSubmitted(ctx, "tx-1"); err != nil {
		t.Fatalf("MarkSubmitted: %v", err)
	}
	pending, err = repo.GetPendingSubmissions(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSubmissions: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after submit = %d, want 0", len(pending))
	}

	if err := repo.MarkSubmitted(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("MarkSubmitted(missing) = %v, want ErrNotFound", err)
	}
}

func TestListLedgerTransactionsFiltersAndOrders(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	later := validTransaction("tx-late", 20)
	earlier := validTransaction("tx-early", 10)
	bank := validTransaction("tx-bank", 12)
	bank.Ledger = core.BankBook

	for _, tx := range []core.LedgerTransaction{later, earlier, bank} {
		if err := repo.CreateLedgerTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateLedgerTransaction(%s): %v", tx.ID, err)
		}
	}

	got, err := repo.ListLedgerTransactions(ctx, core.CashBook,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListLedgerTransactions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("transactions = %d, want 2", len(got))
	}
	if got[0].ID != "tx-early" || got[1].ID != "tx-late" {
		t.Errorf("order = %s, %s; want tx-early, tx-late", got[0].ID, got[1].ID)
	}
}
