package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"daftar/internal/core"
)

type categoryAmountView struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type plStatementView struct {
	Period      string               `json:"period"`
	WindowStart string               `json:"window_start"`
	WindowEnd   string               `json:"window_end"`
	Revenue     string               `json:"revenue"`
	Expenses    string               `json:"expenses"`
	ByCategory  []categoryAmountView `json:"by_category"`
	NetProfit   string               `json:"net_profit"`
}

func toPLStatementView(period core.PeriodType, stmt core.PLStatement) plStatementView {
	view := plStatementView{
		Period:      string(period),
		WindowStart: stmt.Window.Start.Format("2006-01-02"),
		WindowEnd:   stmt.Window.End.Format("2006-01-02"),
		Revenue:     core.Display(stmt.Revenue).String(),
		Expenses:    core.Display(stmt.Expenses).String(),
		ByCategory:  make([]categoryAmountView, 0, len(stmt.ByCategory)),
		NetProfit:   core.Display(stmt.NetProfit).String(),
	}
	for _, ca := range stmt.ByCategory {
		view.ByCategory = append(view.ByCategory, categoryAmountView{
			Name:   ca.Name,
			Amount: core.Display(ca.Amount).String(),
		})
	}
	return view
}

type taxReportView struct {
	Period         string `json:"period"`
	WindowStart    string `json:"window_start"`
	WindowEnd      string `json:"window_end"`
	TotalSales     string `json:"total_sales"`
	TotalPurchases string `json:"total_purchases"`
	VATCollected   string `json:"vat_collected"`
	VATPaid        string `json:"vat_paid"`
	NetVAT         string `json:"net_vat"`
}

func toTaxReportView(period core.PeriodType, report core.TaxReport) taxReportView {
	return taxReportView{
		Period:         string(period),
		WindowStart:    report.Window.Start.Format("2006-01-02"),
		WindowEnd:      report.Window.End.Format("2006-01-02"),
		TotalSales:     core.Display(report.TotalSales).String(),
		TotalPurchases: core.Display(report.TotalPurchases).String(),
		VATCollected:   core.Display(report.VATCollected).String(),
		VATPaid:        core.Display(report.VATPaid).String(),
		NetVAT:         core.Display(report.NetVAT).String(),
	}
}

func (s *Server) handlePLStatement(w http.ResponseWriter, r *http.Request) {
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
	cacheKey := fmt.Sprintf("%s:%s", period, window.Start.Format("2006-01-02"))

	if stmt, ok := s.plCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, toPLStatementView(period, stmt))
		return
	}

	stmt, err := s.reports.ProfitAndLoss(r.Context(), ref, period)
	if err != nil {
		slog.ErrorContext(r.Context(), "Build P&L statement failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build statement")
		return
	}
	s.plCache.Set(cacheKey, stmt)

	writeJSON(w, http.StatusOK, toPLStatementView(period, stmt))
}

func (s *Server) handleTaxReport(w http.ResponseWriter, r *http.Request) {
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
	cacheKey := fmt.Sprintf("%s:%s", period, window.Start.Format("2006-01-02"))

	if report, ok := s.taxCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, toTaxReportView(period, report))
		return
	}

	report, err := s.reports.TaxSummary(r.Context(), ref, period)
	if err != nil {
		slog.ErrorContext(r.Context(), "Build tax report failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	s.taxCache.Set(cacheKey, report)

	writeJSON(w, http.StatusOK, toTaxReportView(period, report))
}

type exportResponse struct {
	Ref string `json:"ref"`
}

func (s *Server) handleExportStatement(w http.ResponseWriter, r *http.Request) {
	if s.statements == nil {
		writeError(w, http.StatusServiceUnavailable, "no export destination configured")
		return
	}

	ref, period, err := parseWindowQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dest, err := s.reports.ExportStatement(r.Context(), s.statements, ref, period)
	if err != nil {
		slog.ErrorContext(r.Context(), "Statement export failed", "error", err)
		writeError(w, http.StatusBadGateway, "statement export failed")
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{Ref: dest})
}
