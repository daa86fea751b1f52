package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"daftar/internal/core"
)

type transactionRequest struct {
	Date          string `json:"date"`
	Description   string `json:"description"`
	Direction     string `json:"direction"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	Reference     string `json:"reference"`
	VATRate       string `json:"vat_rate"`
	PaymentMethod string `json:"payment_method"`
}

type transactionView struct {
	ID               string `json:"id"`
	Ledger           string `json:"ledger"`
	Date             string `json:"date"`
	Description      string `json:"description"`
	Direction        string `json:"direction"`
	Amount           string `json:"amount"`
	Category         string `json:"category"`
	Reference        string `json:"reference"`
	VATRate          string `json:"vat_rate"`
	PaymentMethod    string `json:"payment_method"`
	SubmissionStatus string `json:"submission_status"`
}

func toTransactionView(t core.LedgerTransaction) transactionView {
	return transactionView{
		ID:               t.ID,
		Ledger:           string(t.Ledger),
		Date:             t.Date.Format("2006-01-02"),
		Description:      t.Description,
		Direction:        string(t.Direction),
		Amount:           core.Display(t.Amount).String(),
		Category:         t.Category,
		Reference:        t.Reference,
		VATRate:          t.VATRate.String(),
		PaymentMethod:    t.PaymentMethod,
		SubmissionStatus: string(t.SubmissionStatus),
	}
}

type balancedTransactionView struct {
	transactionView
	Balance string `json:"balance"`
}

type ledgerSummaryView struct {
	Ledger         string                    `json:"ledger"`
	Period         string                    `json:"period"`
	WindowStart    string                    `json:"window_start"`
	WindowEnd      string                    `json:"window_end"`
	OpeningBalance string                    `json:"opening_balance"`
	ClosingBalance string                    `json:"closing_balance"`
	TotalIn        string                    `json:"total_in"`
	TotalOut       string                    `json:"total_out"`
	Transactions   []balancedTransactionView `json:"transactions"`
}

func toLedgerSummaryView(ledger core.LedgerKind, period core.PeriodType, summary core.LedgerSummary) ledgerSummaryView {
	view := ledgerSummaryView{
		Ledger:         string(ledger),
		Period:         string(period),
		WindowStart:    summary.Window.Start.Format("2006-01-02"),
		WindowEnd:      summary.Window.End.Format("2006-01-02"),
		OpeningBalance: core.Display(summary.OpeningBalance).String(),
		ClosingBalance: core.Display(summary.ClosingBalance).String(),
		TotalIn:        core.Display(summary.TotalIn).String(),
		TotalOut:       core.Display(summary.TotalOut).String(),
		Transactions:   make([]balancedTransactionView, 0, len(summary.Transactions)),
	}
	for _, bt := range summary.Transactions {
		view.Transactions = append(view.Transactions, balancedTransactionView{
			transactionView: toTransactionView(bt.LedgerTransaction),
			Balance:         core.Display(bt.Balance).String(),
		})
	}
	return view
}

func ledgerFromPath(r *http.Request) (core.LedgerKind, error) {
	ledger := core.LedgerKind(r.PathValue("ledger"))
	switch ledger {
	case core.CashBook, core.BankBook:
		return ledger, nil
	default:
		return "", core.ErrInvalidLedger
	}
}

func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	ledger, err := ledgerFromPath(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown ledger")
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	vatRate, err := core.ParseRate(req.VATRate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid vat rate")
		return
	}

	tx := core.LedgerTransaction{
		Ledger:        ledger,
		Date:          date,
		Description:   sanitizeInput(req.Description),
		Direction:     core.Direction(req.Direction),
		Amount:        amount,
		Category:      sanitizeInput(req.Category),
		Reference:     sanitizeInput(req.Reference),
		VATRate:       vatRate,
		PaymentMethod: sanitizeInput(req.PaymentMethod),
	}

	saved, err := s.books.RecordTransaction(r.Context(), tx)
	if err != nil {
		slog.WarnContext(r.Context(), "Record transaction rejected",
			"ledger", ledger, "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateSummaries(ledger)

	writeJSON(w, http.StatusCreated, toTransactionView(saved))
}

func (s *Server) handleLedgerSummary(w http.ResponseWriter, r *http.Request) {
	ledger, err := ledgerFromPath(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown ledger")
		return
	}

	ref, period, err := parseWindowQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	window, err := core.WindowFor(ref, period)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cacheKey := fmt.Sprintf("%s:%s:%s", ledger, period, window.Start.Format("2006-01-02"))

	if summary, ok := s.summaryCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, toLedgerSummaryView(ledger, period, summary))
		return
	}

	summary, err := s.books.SummarizeLedger(r.Context(), ledger, ref, period)
	if err != nil {
		if errors.Is(err, core.ErrInvalidPeriod) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Summarize ledger failed",
			"ledger", ledger, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}
	s.summaryCache.Set(cacheKey, summary)

	writeJSON(w, http.StatusOK, toLedgerSummaryView(ledger, period, summary))
}
