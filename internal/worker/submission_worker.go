// Package worker processes queued tax authority submissions and runs
// the periodic statement export.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"daftar/internal/amqp"
	"daftar/internal/core"
)

// SubmissionStore is the storage surface the worker needs.
type SubmissionStore interface {
	GetLedgerTransaction(ctx context.Context, id string) (core.LedgerTransaction, error)
	GetPendingSubmissions(ctx context.Context, limit int) ([]core.LedgerTransaction, error)
	MarkSubmitted(ctx context.Context, id string) error
	MarkSubmissionRejected(ctx context.Context, id string) error
}

// Submitter sends one transaction to the tax authority. The production
// implementation is a stub until the real integration lands; it accepts
// everything after validating the record.
type Submitter interface {
	Submit(ctx context.Context, t core.LedgerTransaction) error
}

// StubSubmitter validates the transaction and pretends the authority
// accepted it. TODO: replace with the ZATCA e-invoicing API client once
// onboarding credentials are issued.
type StubSubmitter struct{}

func (StubSubmitter) Submit(ctx context.Context, t core.LedgerTransaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("reject invalid transaction: %w", err)
	}
	slog.InfoContext(ctx, "Submission accepted (stub)",
		"id", t.ID,
		"ledger", t.Ledger,
		"amount", t.Amount.String())
	return nil
}

// SubmissionWorker consumes submission messages and reconciles
// transactions that missed the queue.
type SubmissionWorker struct {
	storage   SubmissionStore
	submitter Submitter
	batchSize int
}

func NewSubmissionWorker(storage SubmissionStore, submitter Submitter, batchSize int) *SubmissionWorker {
	return &SubmissionWorker{
		storage:   storage,
		submitter: submitter,
		batchSize: batchSize,
	}
}

// HandleSubmissionMessage processes a single submission message. The
// transaction is re-read from storage so the message only needs the ID.
func (w *SubmissionWorker) HandleSubmissionMessage(ctx context.Context, msg *amqp.SubmissionMessage) error {
	slog.InfoContext(ctx, "Processing submission message",
		"transaction_id", msg.TransactionID,
		"ledger", msg.Ledger)

	t, err := w.storage.GetLedgerTransaction(ctx, msg.TransactionID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	if t.SubmissionStatus != core.SubmissionPending {
		slog.InfoContext(ctx, "Transaction already handled, skipping",
			"transaction_id", t.ID,
			"status", t.SubmissionStatus)
		return nil
	}

	return w.submit(ctx, t)
}

// ProcessPendingSubmissions submits transactions still marked pending.
// Backup mechanism in case queue messages are lost.
func (w *SubmissionWorker) ProcessPendingSubmissions(ctx context.Context) error {
	pending, err := w.storage.GetPendingSubmissions(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending submissions: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending submissions", "count", len(pending))

	for _, t := range pending {
		if err := w.submit(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to submit transaction",
				"transaction_id", t.ID, "error", err)
		}
	}

	return nil
}

// StartupCheck drains a larger pending batch when the worker boots, to
// recover from missed messages or downtime.
func (w *SubmissionWorker) StartupCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSubmissions(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending submissions for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending submissions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending submissions on startup, processing...",
		"count", len(pending))

	submitted := 0
	failed := 0
	for _, t := range pending {
		if err := w.submit(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to submit transaction during startup",
				"transaction_id", t.ID, "error", err)
			failed++
			continue
		}
		submitted++
	}

	slog.InfoContext(ctx, "Startup submission check completed",
		"total", len(pending),
		"submitted", submitted,
		"failed", failed)

	return nil
}

func (w *SubmissionWorker) submit(ctx context.Context, t core.LedgerTransaction) error {
	if err := w.submitter.Submit(ctx, t); err != nil {
		if markErr := w.storage.MarkSubmissionRejected(ctx, t.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark transaction rejected",
				"transaction_id", t.ID, "error", markErr)
		}
		return fmt.Errorf("submit transaction: %w", err)
	}

	if err := w.storage.MarkSubmitted(ctx, t.ID); err != nil {
		// The submission went through; surface the bookkeeping failure
		// but let the pending check retry the status update.
		return fmt.Errorf("mark transaction submitted: %w", err)
	}

	return nil
}

// ExportRunner periodically exports the profit and loss statement for
// the current period.
type ExportRunner struct {
	export   func(ctx context.Context) error
	interval time.Duration
}

func NewExportRunner(interval time.Duration, export func(ctx context.Context) error) *ExportRunner {
	return &ExportRunner{export: export, interval: interval}
}

// Run blocks until the context is cancelled, invoking the export on
// every tick. Export failures are logged and retried next tick.
func (r *ExportRunner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := r.export(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}
