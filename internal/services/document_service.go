package services

import (
	"context"
	"fmt"

	"daftar/internal/core"
)

// DocumentStore is the storage surface the document service needs.
type DocumentStore interface {
	CreateInvoice(ctx context.Context, inv core.Invoice, items []core.InvoiceLineItem) (int64, error)
	CreateEstimate(ctx context.Context, est core.Estimate, items []core.EstimateItem) (int64, error)
}

// DocumentService creates invoices and estimates. Document totals are
// always recomputed from the line items here; totals supplied by the
// caller are ignored.
type DocumentService struct {
	store DocumentStore
}

func NewDocumentService(store DocumentStore) *DocumentService {
	return &DocumentService{store: store}
}

// CreateInvoice derives the pre-tax subtotal from the line items and
// persists the invoice with it. The header VAT rate stays a rate; tax
// and total are computed on read so a rate change never strands stale
// derived values.
func (s *DocumentService) CreateInvoice(ctx context.Context, inv core.Invoice, items []core.InvoiceLineItem) (core.Invoice, core.DocumentTotals, error) {
	for i, li := range items {
		if err := li.Validate(); err != nil {
			return core.Invoice{}, core.DocumentTotals{}, fmt.Errorf("line item %d: %w", i+1, err)
		}
	}

	totals := core.AggregateHeaderTax(items, inv.VATRate)
	inv.Subtotal = totals.Subtotal

	if err := inv.Validate(); err != nil {
		return core.Invoice{}, core.DocumentTotals{}, fmt.Errorf("validate invoice: %w", err)
	}

	id, err := s.store.CreateInvoice(ctx, inv, items)
	if err != nil {
		return core.Invoice{}, core.DocumentTotals{}, fmt.Errorf("save invoice: %w", err)
	}
	inv.ID = id

	return inv, totals, nil
}

// CreateEstimate recomputes every item amount from quantity, rate,
// discount and per-line tax, sums them into the net amount and persists
// the result.
func (s *DocumentService) CreateEstimate(ctx context.Context, est core.Estimate, items []core.EstimateItem) (core.Estimate, []core.EstimateItem, error) {
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return core.Estimate{}, nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items[i].Amount = core.ComputeAmount(items[i].Quantity, items[i].Rate, items[i].Discount, items[i].SalesTax)
	}

	totals := core.AggregatePerLineTax(items)
	est.NetAmount = totals.Total

	if err := est.Validate(); err != nil {
		return core.Estimate{}, nil, fmt.Errorf("validate estimate: %w", err)
	}

	id, err := s.store.CreateEstimate(ctx, est, items)
	if err != nil {
		return core.Estimate{}, nil, fmt.Errorf("save estimate: %w", err)
	}
	est.ID = id

	return est, items, nil
}
