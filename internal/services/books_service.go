// Package services provides business logic and orchestration between
// storage, the message broker and the calculation engine.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"daftar/internal/core"

	"github.com/google/uuid"
)

// LedgerStore is the storage surface the books service needs.
type LedgerStore interface {
	CreateLedgerTransaction(ctx context.Context, t core.LedgerTransaction) error
	ListLedgerTransactions(ctx context.Context, ledger core.LedgerKind, start, end time.Time) ([]core.LedgerTransaction, error)
}

// SubmissionPublisher enqueues tax authority submission requests.
type SubmissionPublisher interface {
	PublishSubmission(ctx context.Context, transactionID, ledger string) error
}

// BooksService records cash-book and bank-book transactions and
// produces period summaries for them.
type BooksService struct {
	store     LedgerStore
	publisher SubmissionPublisher
}

func NewBooksService(store LedgerStore, publisher SubmissionPublisher) *BooksService {
	return &BooksService{
		store:     store,
		publisher: publisher,
	}
}

// RecordTransaction validates and persists a new ledger transaction,
// then enqueues it for submission. A publish failure is logged but does
// not fail the request; the worker's startup check picks up strays.
func (s *BooksService) RecordTransaction(ctx context.Context, t core.LedgerTransaction) (core.LedgerTransaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.SubmissionStatus == "" {
		t.SubmissionStatus = core.SubmissionPending
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	if err := t.Validate(); err != nil {
		return core.LedgerTransaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	if err := s.store.CreateLedgerTransaction(ctx, t); err != nil {
		return core.LedgerTransaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "No publisher configured, skipping submission message", "id", t.ID)
		return t, nil
	}
	if err := s.publisher.PublishSubmission(ctx, t.ID, string(t.Ledger)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish submission message",
			"id", t.ID, "error", err)
	}

	return t, nil
}

// SummarizeLedger loads one book's transactions for the period window
// around referenceDate and rolls them up with running balances.
func (s *BooksService) SummarizeLedger(ctx context.Context, ledger core.LedgerKind, referenceDate time.Time, period core.PeriodType) (core.LedgerSummary, error) {
	switch ledger {
	case core.CashBook, core.BankBook:
	default:
		return core.LedgerSummary{}, core.ErrInvalidLedger
	}

	window, err := core.WindowFor(referenceDate, period)
	if err != nil {
		return core.LedgerSummary{}, err
	}

	transactions, err := s.store.ListLedgerTransactions(ctx, ledger, window.Start, window.End)
	if err != nil {
		return core.LedgerSummary{}, fmt.Errorf("list transactions: %w", err)
	}

	return core.Summarize(transactions, referenceDate, period)
}
