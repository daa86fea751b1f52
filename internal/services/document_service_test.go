package services

import (
	"context"
	"testing"

	"daftar/internal/core"
)

type fakeDocumentStore struct {
	invoices  []core.Invoice
	estimates []core.Estimate
}

func (f *fakeDocumentStore) CreateInvoice(_ context.Context, inv core.Invoice, _ []core.InvoiceLineItem) (int64, error) {
	f.invoices = append(f.invoices, inv)
	return int64(len(f.invoices)), nil
}

func (f *fakeDocumentStore) CreateEstimate(_ context.Context, est core.Estimate, _ []core.EstimateItem) (int64, error) {
	f.estimates = append(f.estimates, est)
	return int64(len(f.estimates)), nil
}

func TestCreateInvoiceDerivesSubtotal(t *testing.T) {
	store := &fakeDocumentStore{}
	service := NewDocumentService(store)

	inv := core.Invoice{
		ClientID:      1,
		InvoiceNumber: "INV-001",
		IssueDate:     core.NewDate(2025, 1, 10),
		DueDate:       core.NewDate(2025, 2, 10),
		Subtotal:      dec("9999"), // caller-supplied, must be ignored
		VATRate:       dec("15"),
		Status:        core.StatusDraft,
	}
	items := []core.InvoiceLineItem{
		{ProductID: 1, Quantity: dec("3"), Price: dec("10.35"), TaxRate: dec("0")},
	}

	saved, totals, err := service.CreateInvoice(context.Background(), inv, items)
	if err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}

	if !saved.Subtotal.Equal(dec("31.05")) {
		t.Errorf("Subtotal = %v, want 31.05", saved.Subtotal)
	}
	if !totals.TaxAmount.Equal(dec("4.6575")) {
		t.Errorf("TaxAmount = %v, want 4.6575", totals.TaxAmount)
	}
	if !totals.Total.Equal(dec("35.7075")) {
		t.Errorf("Total = %v, want 35.7075", totals.Total)
	}
	if saved.ID != 1 {
		t.Errorf("ID = %d, want 1", saved.ID)
	}
}

func TestCreateInvoiceRejectsBadLineItem(t *testing.T) {
	service := NewDocumentService(&fakeDocumentStore{})

	inv := core.Invoice{
		ClientID:      1,
		InvoiceNumber: "INV-002",
		IssueDate:     core.NewDate(2025, 1, 10),
		DueDate:       core.NewDate(2025, 2, 10),
		VATRate:       dec("15"),
		Status:        core.StatusDraft,
	}
	items := []core.InvoiceLineItem{
		{ProductID: 1, Quantity: dec("0"), Price: dec("10")},
	}

	if _, _, err := service.CreateInvoice(context.Background(), inv, items); err == nil {
		t.Error("CreateInvoice() should reject a zero-quantity line item")
	}
}

func TestCreateEstimateComputesAmounts(t *testing.T) {
	store := &fakeDocumentStore{}
	service := NewDocumentService(store)

	est := core.Estimate{
		ClientID:       1,
		EstimateNumber: 7,
		EstimateDate:   core.NewDate(2025, 1, 10),
	}
	items := []core.EstimateItem{
		{ProductID: 1, Name: "Consulting", Quantity: dec("3"), Rate: dec("10.00"), Discount: dec("10"), SalesTax: dec("15")},
		{ProductID: 2, Name: "Delivery", Quantity: dec("1"), Rate: dec("20.00")},
	}

	saved, savedItems, err := service.CreateEstimate(context.Background(), est, items)
	if err != nil {
		t.Fatalf("CreateEstimate() error = %v", err)
	}

	if !savedItems[0].Amount.Equal(dec("31.05")) {
		t.Errorf("item 1 Amount = %v, want 31.05", savedItems[0].Amount)
	}
	if !savedItems[1].Amount.Equal(dec("20")) {
		t.Errorf("item 2 Amount = %v, want 20", savedItems[1].Amount)
	}
	if !saved.NetAmount.Equal(dec("51.05")) {
		t.Errorf("NetAmount = %v, want 51.05", saved.NetAmount)
	}
}
