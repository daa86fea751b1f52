package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"daftar/internal/core"
	"daftar/internal/export"
)

// ReportStore is the storage surface the report service needs.
type ReportStore interface {
	ListInvoicesBetween(ctx context.Context, start, end time.Time) ([]core.Invoice, error)
	ListExpensesBetween(ctx context.Context, start, end time.Time) ([]core.Expense, error)
}

// ReportService builds profit and loss statements and VAT summaries
// from stored invoices and expenses.
type ReportService struct {
	store ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

func (s *ReportService) loadWindow(ctx context.Context, referenceDate time.Time, period core.PeriodType) ([]core.Invoice, []core.Expense, error) {
	window, err := core.WindowFor(referenceDate, period)
	if err != nil {
		return nil, nil, err
	}

	invoices, err := s.store.ListInvoicesBetween(ctx, window.Start, window.End)
	if err != nil {
		return nil, nil, fmt.Errorf("list invoices: %w", err)
	}
	expenses, err := s.store.ListExpensesBetween(ctx, window.Start, window.End)
	if err != nil {
		return nil, nil, fmt.Errorf("list expenses: %w", err)
	}
	return invoices, expenses, nil
}

// ProfitAndLoss computes the P&L statement for the period window around
// referenceDate.
func (s *ReportService) ProfitAndLoss(ctx context.Context, referenceDate time.Time, period core.PeriodType) (core.PLStatement, error) {
	invoices, expenses, err := s.loadWindow(ctx, referenceDate, period)
	if err != nil {
		return core.PLStatement{}, err
	}
	return core.BuildPLStatement(invoices, expenses, referenceDate, period)
}

// TaxSummary computes the VAT report for the period window around
// referenceDate.
func (s *ReportService) TaxSummary(ctx context.Context, referenceDate time.Time, period core.PeriodType) (core.TaxReport, error) {
	invoices, expenses, err := s.loadWindow(ctx, referenceDate, period)
	if err != nil {
		return core.TaxReport{}, err
	}
	return core.BuildTaxReport(invoices, expenses, referenceDate, period)
}

// ExportStatement builds the P&L for the window and hands it to the
// writer, returning the destination reference.
func (s *ReportService) ExportStatement(ctx context.Context, writer export.StatementWriter, referenceDate time.Time, period core.PeriodType) (string, error) {
	stmt, err := s.ProfitAndLoss(ctx, referenceDate, period)
	if err != nil {
		return "", fmt.Errorf("build statement: %w", err)
	}

	ref, err := writer.WriteStatement(ctx, stmt)
	if err != nil {
		return "", fmt.Errorf("write statement: %w", err)
	}

	slog.InfoContext(ctx, "Statement export completed",
		"ref", ref,
		"period", period,
		"net_profit", stmt.NetProfit.String())
	return ref, nil
}
