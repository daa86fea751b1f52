package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"daftar/internal/amqp"
	"daftar/internal/core"

	"github.com/shopspring/decimal"
)

type fakeSubmissionStore struct {
	transactions map[string]*core.LedgerTransaction
}

func newFakeStore(txs ...core.LedgerTransaction) *fakeSubmissionStore {
	store := &fakeSubmissionStore{transactions: map[string]*core.LedgerTransaction{}}
	for i := range txs {
		tx := txs[i]
		store.transactions[tx.ID] = &tx
	}
	return store
}

func (f *fakeSubmissionStore) GetLedgerTransaction(_ context.Context, id string) (core.LedgerTransaction, error) {
	t, ok := f.transactions[id]
	if !ok {
		return core.LedgerTransaction{}, errors.New("record not found")
	}
	return *t, nil
}

func (f *fakeSubmissionStore) GetPendingSubmissions(_ context.Context, limit int) ([]core.LedgerTransaction, error) {
	var out []core.LedgerTransaction
	for _, t := range f.transactions {
		if t.SubmissionStatus == core.SubmissionPending && len(out) < limit {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) MarkSubmitted(_ context.Context, id string) error {
	t, ok := f.transactions[id]
	if !ok {
		return errors.New("record not found")
	}
	t.SubmissionStatus = core.SubmissionSubmitted
	return nil
}

func (f *fakeSubmissionStore) MarkSubmissionRejected(_ context.Context, id string) error {
	t, ok := f.transactions[id]
	if !ok {
		return errors.New("record not found")
	}
	t.SubmissionStatus = core.SubmissionRejected
	return nil
}

func pendingTransaction(id string) core.LedgerTransaction {
	return core.LedgerTransaction{
		ID:               id,
		Ledger:           core.CashBook,
		Date:             core.NewDate(2025, 1, 8),
		Description:      "Sale",
		Direction:        core.In,
		Amount:           decimal.NewFromInt(100),
		Category:         "Sales",
		SubmissionStatus: core.SubmissionPending,
		CreatedAt:        time.Now().UTC(),
	}
}

func TestHandleSubmissionMessage(t *testing.T) {
	store := newFakeStore(pendingTransaction("tx-1"))
	worker := NewSubmissionWorker(store, StubSubmitter{}, 10)

	msg := amqp.NewSubmissionMessage("tx-1", "cash")
	if err := worker.HandleSubmissionMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSubmissionMessage() error = %v", err)
	}

	if got := store.transactions["tx-1"].SubmissionStatus; got != core.SubmissionSubmitted {
		t.Errorf("status = %v, want submitted", got)
	}
}

func TestHandleSubmissionMessageUnknownTransaction(t *testing.T) {
	worker := NewSubmissionWorker(newFakeStore(), StubSubmitter{}, 10)

	msg := amqp.NewSubmissionMessage("missing", "cash")
	if err := worker.HandleSubmissionMessage(context.Background(), msg); err == nil {
		t.Error("HandleSubmissionMessage() should fail for an unknown transaction")
	}
}

func TestHandleSubmissionMessageSkipsAlreadySubmitted(t *testing.T) {
	tx := pendingTransaction("tx-1")
	tx.SubmissionStatus = core.SubmissionSubmitted
	store := newFakeStore(tx)

	failing := submitterFunc(func(context.Context, core.LedgerTransaction) error {
		return errors.New("should not be called")
	})
	worker := NewSubmissionWorker(store, failing, 10)

	msg := amqp.NewSubmissionMessage("tx-1", "cash")
	if err := worker.HandleSubmissionMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSubmissionMessage() error = %v, want nil for a handled transaction", err)
	}
}

type submitterFunc func(ctx context.Context, t core.LedgerTransaction) error

func (f submitterFunc) Submit(ctx context.Context, t core.LedgerTransaction) error {
	return f(ctx, t)
}

func TestSubmitRejectionMarksTransaction(t *testing.T) {
	store := newFakeStore(pendingTransaction("tx-1"))
	rejecting := submitterFunc(func(context.Context, core.LedgerTransaction) error {
		return errors.New("authority said no")
	})
	worker := NewSubmissionWorker(store, rejecting, 10)

	msg := amqp.NewSubmissionMessage("tx-1", "cash")
	if err := worker.HandleSubmissionMessage(context.Background(), msg); err == nil {
		t.Error("HandleSubmissionMessage() should surface the submit failure")
	}
	if got := store.transactions["tx-1"].SubmissionStatus; got != core.SubmissionRejected {
		t.Errorf("status = %v, want rejected", got)
	}
}

func TestStartupCheck(t *testing.T) {
	store := newFakeStore(
		pendingTransaction("tx-1"),
		pendingTransaction("tx-2"),
	)
	worker := NewSubmissionWorker(store, StubSubmitter{}, 10)

	if err := worker.StartupCheck(context.Background()); err != nil {
		t.Fatalf("StartupCheck() error = %v", err)
	}

	for id, tx := range store.transactions {
		if tx.SubmissionStatus != core.SubmissionSubmitted {
			t.Errorf("transaction %s status = %v, want submitted", id, tx.SubmissionStatus)
		}
	}
}

func TestExportRunnerStopsOnCancel(t *testing.T) {
	calls := 0
	runner := NewExportRunner(5*time.Millisecond, func(context.Context) error {
		calls++
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v, want nil on cancel", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop after cancel")
	}

	if calls == 0 {
		t.Error("export should have been invoked at least once")
	}
}
