package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func invoice(day int, subtotal, vatRate string) Invoice {
	return Invoice{
		ID:            1,
		ClientID:      1,
		InvoiceNumber: "INV-1",
		IssueDate:     NewDate(2025, 3, day),
		DueDate:       NewDate(2025, 4, day),
		Subtotal:      dec(subtotal),
		VATRate:       dec(vatRate),
		Status:        StatusPending,
	}
}

func expense(day int, category, amount, taxAmount string) Expense {
	return Expense{
		ID:            1,
		ExpenseDate:   NewDate(2025, 3, day),
		ExpenseNumber: "EXP-1",
		Category:      category,
		Amount:        dec(amount),
		TaxAmount:     dec(taxAmount),
	}
}

func TestBuildPLStatement(t *testing.T) {
	invoices := []Invoice{invoice(10, "1000", "15")}
	expenses := []Expense{expense(12, "rent", "200", "0")}

	pl, err := BuildPLStatement(invoices, expenses, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pl.Revenue.Equal(dec("1150")) {
		t.Fatalf("revenue = %s, want 1150 (VAT-inclusive)", pl.Revenue)
	}
	if !pl.Expenses.Equal(dec("200")) {
		t.Fatalf("expenses = %s, want 200", pl.Expenses)
	}
	if !pl.NetProfit.Equal(dec("950")) {
		t.Fatalf("net profit = %s, want 950", pl.NetProfit)
	}
	if len(pl.ByCategory) != 1 || pl.ByCategory[0].Name != "rent" {
		t.Fatalf("by-category = %+v, want single rent bucket", pl.ByCategory)
	}
}

func TestBuildPLStatementLoss(t *testing.T) {
	invoices := []Invoice{invoice(10, "100", "0")}
	expenses := []Expense{
		expense(11, "rent", "200", "0"),
		expense(12, "supplies", "50", "0"),
	}

	pl, err := BuildPLStatement(invoices, expenses, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pl.NetProfit.Equal(dec("-150")) {
		t.Fatalf("net profit = %s, want -150 (loss keeps its sign)", pl.NetProfit)
	}
}

func TestBuildPLStatementExcludesOutOfWindow(t *testing.T) {
	invoices := []Invoice{
		invoice(10, "1000", "15"),
		{ID: 2, ClientID: 1, InvoiceNumber: "INV-2",
			IssueDate: NewDate(2025, 5, 10), DueDate: NewDate(2025, 6, 10),
			Subtotal: dec("9999"), VATRate: dec("15"), Status: StatusPending},
	}
	pl, err := BuildPLStatement(invoices, nil, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pl.Revenue.Equal(dec("1150")) {
		t.Fatalf("revenue = %s, want 1150 (May invoice excluded)", pl.Revenue)
	}
}

func TestBuildTaxReport(t *testing.T) {
	invoices := []Invoice{invoice(10, "1000", "15")}
	expenses := []Expense{expense(12, "rent", "200", "30")}

	tr, err := BuildTaxReport(invoices, expenses, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tr.TotalSales.Equal(dec("1000")) {
		t.Fatalf("total sales = %s, want 1000", tr.TotalSales)
	}
	if !tr.VATCollected.Equal(dec("150")) {
		t.Fatalf("vat collected = %s, want 150", tr.VATCollected)
	}
	if !tr.TotalPurchases.Equal(dec("200")) {
		t.Fatalf("total purchases = %s, want 200", tr.TotalPurchases)
	}
	if !tr.VATPaid.Equal(dec("30")) {
		t.Fatalf("vat paid = %s, want 30", tr.VATPaid)
	}
	if !tr.NetVAT.Equal(dec("120")) {
		t.Fatalf("net vat = %s, want 120", tr.NetVAT)
	}
}

func TestSumByCategory(t *testing.T) {
	window, err := WindowFor(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dates := []time.Time{
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), // outside
	}
	sums, total := SumByCategory(dates,
		[]string{"rent", "rent", "rent"},
		[]decimal.Decimal{dec("100"), dec("50"), dec("999")}, window)

	if !total.Equal(dec("150")) {
		t.Fatalf("total = %s, want 150", total)
	}
	if len(sums) != 1 || !sums[0].Amount.Equal(dec("150")) {
		t.Fatalf("sums = %+v, want single rent=150", sums)
	}
}
