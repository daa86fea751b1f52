package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"daftar/internal/core"
	"daftar/internal/storage"
)

// --- invoices ---

type invoiceLineItemRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  string `json:"quantity"`
	Price     string `json:"price"`
	TaxRate   string `json:"tax_rate"`
}

type invoiceRequest struct {
	ClientID      int64                    `json:"client_id"`
	InvoiceNumber string                   `json:"invoice_number"`
	IssueDate     string                   `json:"issue_date"`
	DueDate       string                   `json:"due_date"`
	VATRate       string                   `json:"vat_rate"`
	Status        string                   `json:"status"`
	Notes         string                   `json:"notes"`
	Items         []invoiceLineItemRequest `json:"items"`
}

type invoiceLineItemView struct {
	ProductID int64  `json:"product_id"`
	Quantity  string `json:"quantity"`
	Price     string `json:"price"`
	TaxRate   string `json:"tax_rate"`
	Amount    string `json:"amount"`
}

type invoiceView struct {
	ID            int64                 `json:"id"`
	ClientID      int64                 `json:"client_id"`
	InvoiceNumber string                `json:"invoice_number"`
	IssueDate     string                `json:"issue_date"`
	DueDate       string                `json:"due_date"`
	Subtotal      string                `json:"subtotal"`
	VATRate       string                `json:"vat_rate"`
	TaxAmount     string                `json:"tax_amount"`
	Total         string                `json:"total"`
	Status        string                `json:"status"`
	Notes         string                `json:"notes"`
	Items         []invoiceLineItemView `json:"items,omitempty"`
}

func toInvoiceView(inv core.Invoice, totals core.DocumentTotals, items []core.InvoiceLineItem) invoiceView {
	view := invoiceView{
		ID:            inv.ID,
		ClientID:      inv.ClientID,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate.Format("2006-01-02"),
		DueDate:       inv.DueDate.Format("2006-01-02"),
		Subtotal:      core.Display(totals.Subtotal).String(),
		VATRate:       inv.VATRate.String(),
		TaxAmount:     core.Display(totals.TaxAmount).String(),
		Total:         core.Display(totals.Total).String(),
		Status:        string(inv.Status),
		Notes:         inv.Notes,
	}
	for _, li := range items {
		view.Items = append(view.Items, invoiceLineItemView{
			ProductID: li.ProductID,
			Quantity:  li.Quantity.String(),
			Price:     li.Price.String(),
			TaxRate:   li.TaxRate.String(),
			Amount:    core.Display(li.Quantity.Mul(li.Price)).String(),
		})
	}
	return view
}

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid issue date")
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid due date")
		return
	}
	vatRate, err := core.ParseRate(req.VATRate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid vat rate")
		return
	}

	status := core.InvoiceStatus(req.Status)
	if req.Status == "" {
		status = core.StatusDraft
	}

	items := make([]core.InvoiceLineItem, 0, len(req.Items))
	for i, it := range req.Items {
		quantity, err := core.ParseAmount(it.Quantity)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "line item "+strconv.Itoa(i+1)+": invalid quantity")
			return
		}
		price, err := core.ParseAmount(it.Price)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "line item "+strconv.Itoa(i+1)+": invalid price")
			return
		}
		taxRate, err := core.ParseRate(it.TaxRate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "line item "+strconv.Itoa(i+1)+": invalid tax rate")
			return
		}
		items = append(items, core.InvoiceLineItem{
			ProductID: it.ProductID,
			Quantity:  quantity,
			Price:     price,
			TaxRate:   taxRate,
		})
	}

	inv := core.Invoice{
		ClientID:      req.ClientID,
		InvoiceNumber: sanitizeInput(req.InvoiceNumber),
		IssueDate:     issueDate,
		DueDate:       dueDate,
		VATRate:       vatRate,
		Status:        status,
		Notes:         sanitizeInput(req.Notes),
	}

	saved, totals, err := s.documents.CreateInvoice(r.Context(), inv, items)
	if err != nil {
		slog.WarnContext(r.Context(), "Create invoice rejected", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateReports()

	writeJSON(w, http.StatusCreated, toInvoiceView(saved, totals, items))
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.store.ListInvoices(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List invoices failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list invoices")
		return
	}

	views := make([]invoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, toInvoiceView(inv, core.HeaderTaxTotals(inv.Subtotal, inv.VATRate), nil))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	inv, items, err := s.store.GetInvoice(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "invoice not found")
			return
		}
		slog.ErrorContext(r.Context(), "Get invoice failed", "invoice_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load invoice")
		return
	}

	totals := core.AggregateHeaderTax(items, inv.VATRate)
	writeJSON(w, http.StatusOK, toInvoiceView(inv, totals, items))
}

// --- estimates ---

type estimateItemRequest struct {
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Discount    string `json:"discount"`
	SalesTax    string `json:"sales_tax"`
}

type estimateRequest struct {
	ClientID        int64                 `json:"client_id"`
	EstimateNumber  int64                 `json:"estimate_number"`
	EstimateDate    string                `json:"estimate_date"`
	ReferenceNumber string                `json:"reference_number"`
	Notes           string                `json:"notes"`
	Terms           string                `json:"terms"`
	Items           []estimateItemRequest `json:"items"`
}

type estimateItemView struct {
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Discount    string `json:"discount"`
	SalesTax    string `json:"sales_tax"`
	Amount      string `json:"amount"`
}

type estimateView struct {
	ID              int64              `json:"id"`
	ClientID        int64              `json:"client_id"`
	EstimateNumber  int64              `json:"estimate_number"`
	EstimateDate    string             `json:"estimate_date"`
	ReferenceNumber string             `json:"reference_number"`
	Notes           string             `json:"notes"`
	Terms           string             `json:"terms"`
	NetAmount       string             `json:"net_amount"`
	Items           []estimateItemView `json:"items,omitempty"`
}

func toEstimateView(est core.Estimate, items []core.EstimateItem) estimateView {
	view := estimateView{
		ID:              est.ID,
		ClientID:        est.ClientID,
		EstimateNumber:  est.EstimateNumber,
		EstimateDate:    est.EstimateDate.Format("2006-01-02"),
		ReferenceNumber: est.ReferenceNumber,
		Notes:           est.Notes,
		Terms:           est.Terms,
		NetAmount:       core.Display(est.NetAmount).String(),
	}
	for _, it := range items {
		view.Items = append(view.Items, estimateItemView{
			ProductID:   it.ProductID,
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			Rate:        it.Rate.String(),
			Discount:    it.Discount.String(),
			SalesTax:    it.SalesTax.String(),
			Amount:      core.Display(it.Amount).String(),
		})
	}
	return view
}

func (s *Server) handleCreateEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	estimateDate, err := parseDate(req.EstimateDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid estimate date")
		return
	}

	items := make([]core.EstimateItem, 0, len(req.Items))
	for i, it := range req.Items {
		quantity, err := core.ParseRate(it.Quantity)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "item "+strconv.Itoa(i+1)+": invalid quantity")
			return
		}
		rate, err := core.ParseRate(it.Rate)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "item "+strconv.Itoa(i+1)+": invalid rate")
			return
		}
		discount, err := core.ParseRate(it.Discount)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "item "+strconv.Itoa(i+1)+": invalid discount")
			return
		}
		salesTax, err := core.ParseRate(it.SalesTax)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "item "+strconv.Itoa(i+1)+": invalid sales tax")
			return
		}
		items = append(items, core.EstimateItem{
			ProductID:   it.ProductID,
			Name:        sanitizeInput(it.Name),
			Description: sanitizeInput(it.Description),
			Quantity:    quantity,
			Rate:        rate,
			Discount:    discount,
			SalesTax:    salesTax,
		})
	}

	est := core.Estimate{
		ClientID:        req.ClientID,
		EstimateNumber:  req.EstimateNumber,
		EstimateDate:    estimateDate,
		ReferenceNumber: sanitizeInput(req.ReferenceNumber),
		Notes:           sanitizeInput(req.Notes),
		Terms:           sanitizeInput(req.Terms),
	}

	saved, savedItems, err := s.documents.CreateEstimate(r.Context(), est, items)
	if err != nil {
		slog.WarnContext(r.Context(), "Create estimate rejected", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toEstimateView(saved, savedItems))
}

func (s *Server) handleListEstimates(w http.ResponseWriter, r *http.Request) {
	estimates, err := s.store.ListEstimates(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List estimates failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list estimates")
		return
	}

	views := make([]estimateView, 0, len(estimates))
	for _, est := range estimates {
		views = append(views, toEstimateView(est, nil))
	}
	writeJSON(w, http.StatusOK, views)
}
