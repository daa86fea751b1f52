package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"daftar/internal/core"
	"daftar/internal/storage"

	"github.com/google/uuid"
)

// --- clients ---

type clientRequest struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	VATNumber   string `json:"vat_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

type clientView struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	VATNumber   string `json:"vat_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

func toClientView(c core.Client) clientView {
	return clientView{
		ID:          c.ID,
		CompanyName: c.CompanyName,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		VATNumber:   c.VATNumber,
		Address:     c.Address,
		City:        c.City,
		Country:     c.Country,
	}
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	client := core.Client{
		CompanyName: sanitizeInput(req.CompanyName),
		ContactName: sanitizeInput(req.ContactName),
		Email:       sanitizeInput(req.Email),
		Phone:       sanitizeInput(req.Phone),
		VATNumber:   sanitizeInput(req.VATNumber),
		Address:     sanitizeInput(req.Address),
		City:        sanitizeInput(req.City),
		Country:     sanitizeInput(req.Country),
	}
	if err := client.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.store.CreateClient(r.Context(), client)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create client failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save client")
		return
	}
	client.ID = id

	writeJSON(w, http.StatusCreated, toClientView(client))
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.store.ListClients(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List clients failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list clients")
		return
	}

	views := make([]clientView, 0, len(clients))
	for _, c := range clients {
		views = append(views, toClientView(c))
	}
	writeJSON(w, http.StatusOK, views)
}

// --- products ---

type productRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	Cost            string `json:"cost"`
	TaxRate         string `json:"tax_rate"`
	HSNCode         string `json:"hsn_code"`
	Barcode         string `json:"barcode"`
	SKU             string `json:"sku"`
	Unit            string `json:"unit"`
	QuantityInStock int64  `json:"quantity_in_stock"`
}

type productView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	Cost            string `json:"cost"`
	TaxRate         string `json:"tax_rate"`
	HSNCode         string `json:"hsn_code"`
	Barcode         string `json:"barcode"`
	SKU             string `json:"sku"`
	Unit            string `json:"unit"`
	QuantityInStock int64  `json:"quantity_in_stock"`
}

func toProductView(p core.Product) productView {
	return productView{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           core.Display(p.Price).String(),
		Cost:            core.Display(p.Cost).String(),
		TaxRate:         p.TaxRate.String(),
		HSNCode:         p.HSNCode,
		Barcode:         p.Barcode,
		SKU:             p.SKU,
		Unit:            p.Unit,
		QuantityInStock: p.QuantityInStock,
	}
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	price, err := core.ParseRate(req.Price)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid price")
		return
	}
	cost, err := core.ParseRate(req.Cost)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid cost")
		return
	}
	taxRate, err := core.ParseRate(req.TaxRate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid tax rate")
		return
	}

	product := core.Product{
		Name:            sanitizeInput(req.Name),
		Description:     sanitizeInput(req.Description),
		Price:           price,
		Cost:            cost,
		TaxRate:         taxRate,
		HSNCode:         sanitizeInput(req.HSNCode),
		Barcode:         sanitizeInput(req.Barcode),
		SKU:             sanitizeInput(req.SKU),
		Unit:            sanitizeInput(req.Unit),
		QuantityInStock: req.QuantityInStock,
	}
	if err := product.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.store.CreateProduct(r.Context(), product)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create product failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save product")
		return
	}
	product.ID = id

	writeJSON(w, http.StatusCreated, toProductView(product))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := s.store.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		slog.ErrorContext(r.Context(), "Get product failed", "product_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	writeJSON(w, http.StatusOK, toProductView(product))
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List products failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

// --- vendors ---

type vendorRequest struct {
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	TaxID        string `json:"tax_id"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	PaymentTerms string `json:"payment_terms"`
	Website      string `json:"website"`
}

type vendorView struct {
	ID           int64  `json:"id"`
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	TaxID        string `json:"tax_id"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	PaymentTerms string `json:"payment_terms"`
	Website      string `json:"website"`
}

func toVendorView(v core.Vendor) vendorView {
	return vendorView{
		ID:           v.ID,
		CompanyName:  v.CompanyName,
		ContactName:  v.ContactName,
		Email:        v.Email,
		Phone:        v.Phone,
		TaxID:        v.TaxID,
		Address:      v.Address,
		City:         v.City,
		Country:      v.Country,
		PaymentTerms: v.PaymentTerms,
		Website:      v.Website,
	}
}

func (s *Server) handleCreateVendor(w http.ResponseWriter, r *http.Request) {
	var req vendorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	vendor := core.Vendor{
		CompanyName:  sanitizeInput(req.CompanyName),
		ContactName:  sanitizeInput(req.ContactName),
		Email:        sanitizeInput(req.Email),
		Phone:        sanitizeInput(req.Phone),
		TaxID:        sanitizeInput(req.TaxID),
		Address:      sanitizeInput(req.Address),
		City:         sanitizeInput(req.City),
		Country:      sanitizeInput(req.Country),
		PaymentTerms: sanitizeInput(req.PaymentTerms),
		Website:      sanitizeInput(req.Website),
	}
	if err := vendor.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.store.CreateVendor(r.Context(), vendor)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create vendor failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save vendor")
		return
	}
	vendor.ID = id

	writeJSON(w, http.StatusCreated, toVendorView(vendor))
}

func (s *Server) handleListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.store.ListVendors(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List vendors failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list vendors")
		return
	}

	views := make([]vendorView, 0, len(vendors))
	for _, v := range vendors {
		views = append(views, toVendorView(v))
	}
	writeJSON(w, http.StatusOK, views)
}

// --- payments ---

type paymentRequest struct {
	ClientID        int64  `json:"client_id"`
	PayDate         string `json:"pay_date"`
	Mode            string `json:"mode"`
	Amount          string `json:"amount"`
	DepositTo       string `json:"deposit_to"`
	Issuer          string `json:"issuer"`
	ReferenceNumber string `json:"reference_number"`
	Comments        string `json:"comments"`
}

type paymentView struct {
	ID              string `json:"id"`
	ClientID        int64  `json:"client_id"`
	PayDate         string `json:"pay_date"`
	Mode            string `json:"mode"`
	Amount          string `json:"amount"`
	DepositTo       string `json:"deposit_to"`
	Issuer          string `json:"issuer"`
	ReferenceNumber string `json:"reference_number"`
	Comments        string `json:"comments"`
}

func toPaymentView(p core.Payment) paymentView {
	return paymentView{
		ID:              p.ID,
		ClientID:        p.ClientID,
		PayDate:         p.PayDate.Format("2006-01-02"),
		Mode:            p.Mode,
		Amount:          core.Display(p.Amount).String(),
		DepositTo:       p.DepositTo,
		Issuer:          p.Issuer,
		ReferenceNumber: p.ReferenceNumber,
		Comments:        p.Comments,
	}
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	payDate, err := parseDate(req.PayDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid pay date")
		return
	}
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	payment := core.Payment{
		ID:              uuid.NewString(),
		ClientID:        req.ClientID,
		PayDate:         payDate,
		Mode:            sanitizeInput(req.Mode),
		Amount:          amount,
		DepositTo:       sanitizeInput(req.DepositTo),
		Issuer:          sanitizeInput(req.Issuer),
		ReferenceNumber: sanitizeInput(req.ReferenceNumber),
		Comments:        sanitizeInput(req.Comments),
	}
	if err := payment.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreatePayment(r.Context(), payment); err != nil {
		slog.ErrorContext(r.Context(), "Create payment failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save payment")
		return
	}

	writeJSON(w, http.StatusCreated, toPaymentView(payment))
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.store.ListPayments(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List payments failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}

	views := make([]paymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, toPaymentView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

// --- refunds ---

type refundRequest struct {
	Date      string `json:"date"`
	InvoiceID string `json:"invoice_id"`
	ReceiptID string `json:"receipt_id"`
	Name      string `json:"name"`
	Mode      string `json:"mode"`
	Amount    string `json:"amount"`
}

type refundView struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	InvoiceID string `json:"invoice_id"`
	ReceiptID string `json:"receipt_id"`
	Name      string `json:"name"`
	Mode      string `json:"mode"`
	Amount    string `json:"amount"`
}

func toRefundView(ref core.Refund) refundView {
	return refundView{
		ID:        ref.ID,
		Date:      ref.Date.Format("2006-01-02"),
		InvoiceID: ref.InvoiceID,
		ReceiptID: ref.ReceiptID,
		Name:      ref.Name,
		Mode:      ref.Mode,
		Amount:    core.Display(ref.Amount).String(),
	}
}

func (s *Server) handleCreateRefund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
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

	refund := core.Refund{
		ID:        uuid.NewString(),
		Date:      date,
		InvoiceID: sanitizeInput(req.InvoiceID),
		ReceiptID: sanitizeInput(req.ReceiptID),
		Name:      sanitizeInput(req.Name),
		Mode:      sanitizeInput(req.Mode),
		Amount:    amount,
	}
	if err := refund.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreateRefund(r.Context(), refund); err != nil {
		slog.ErrorContext(r.Context(), "Create refund failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save refund")
		return
	}

	writeJSON(w, http.StatusCreated, toRefundView(refund))
}

func (s *Server) handleListRefunds(w http.ResponseWriter, r *http.Request) {
	refunds, err := s.store.ListRefunds(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List refunds failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list refunds")
		return
	}

	views := make([]refundView, 0, len(refunds))
	for _, ref := range refunds {
		views = append(views, toRefundView(ref))
	}
	writeJSON(w, http.StatusOK, views)
}

// --- expenses ---

type expenseRequest struct {
	ExpenseDate     string `json:"expense_date"`
	ExpenseNumber   string `json:"expense_number"`
	VendorID        int64  `json:"vendor_id"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	Amount          string `json:"amount"`
	TaxAmount       string `json:"tax_amount"`
	PaymentStatus   string `json:"payment_status"`
	PaymentMethod   string `json:"payment_method"`
	ReferenceNumber string `json:"reference_number"`
	Notes           string `json:"notes"`
}

type expenseView struct {
	ID              int64  `json:"id"`
	ExpenseDate     string `json:"expense_date"`
	ExpenseNumber   string `json:"expense_number"`
	VendorID        int64  `json:"vendor_id"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	Amount          string `json:"amount"`
	TaxAmount       string `json:"tax_amount"`
	PaymentStatus   string `json:"payment_status"`
	PaymentMethod   string `json:"payment_method"`
	ReferenceNumber string `json:"reference_number"`
	Notes           string `json:"notes"`
}

func toExpenseView(e core.Expense) expenseView {
	return expenseView{
		ID:              e.ID,
		ExpenseDate:     e.ExpenseDate.Format("2006-01-02"),
		ExpenseNumber:   e.ExpenseNumber,
		VendorID:        e.VendorID,
		Category:        e.Category,
		Description:     e.Description,
		Amount:          core.Display(e.Amount).String(),
		TaxAmount:       core.Display(e.TaxAmount).String(),
		PaymentStatus:   e.PaymentStatus,
		PaymentMethod:   e.PaymentMethod,
		ReferenceNumber: e.ReferenceNumber,
		Notes:           e.Notes,
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(req.ExpenseDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid expense date")
		return
	}
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	taxAmount, err := core.ParseRate(req.TaxAmount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid tax amount")
		return
	}

	expense := core.Expense{
		ExpenseDate:     date,
		ExpenseNumber:   sanitizeInput(req.ExpenseNumber),
		VendorID:        req.VendorID,
		Category:        sanitizeInput(req.Category),
		Description:     sanitizeInput(req.Description),
		Amount:          amount,
		TaxAmount:       taxAmount,
		PaymentStatus:   sanitizeInput(req.PaymentStatus),
		PaymentMethod:   sanitizeInput(req.PaymentMethod),
		ReferenceNumber: sanitizeInput(req.ReferenceNumber),
		Notes:           sanitizeInput(req.Notes),
	}
	if err := expense.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.store.CreateExpense(r.Context(), expense)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create expense failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save expense")
		return
	}
	expense.ID = id

	s.invalidateReports()

	writeJSON(w, http.StatusCreated, toExpenseView(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.store.ListExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	views := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, toExpenseView(e))
	}
	writeJSON(w, http.StatusOK, views)
}

// --- purchase orders ---

type purchaseOrderRequest struct {
	Date       string `json:"date"`
	PONumber   string `json:"po_number"`
	VendorName string `json:"vendor_name"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	Amount     string `json:"amount"`
}

type purchaseOrderView struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	PONumber   string `json:"po_number"`
	VendorName string `json:"vendor_name"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	Amount     string `json:"amount"`
}

func toPurchaseOrderView(po core.PurchaseOrder) purchaseOrderView {
	return purchaseOrderView{
		ID:         po.ID,
		Date:       po.Date.Format("2006-01-02"),
		PONumber:   po.PONumber,
		VendorName: po.VendorName,
		Contact:    po.Contact,
		Email:      po.Email,
		Amount:     core.Display(po.Amount).String(),
	}
}

func (s *Server) handleCreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req purchaseOrderRequest
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

	po := core.PurchaseOrder{
		ID:         uuid.NewString(),
		Date:       date,
		PONumber:   sanitizeInput(req.PONumber),
		VendorName: sanitizeInput(req.VendorName),
		Contact:    sanitizeInput(req.Contact),
		Email:      sanitizeInput(req.Email),
		Amount:     amount,
	}
	if err := po.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreatePurchaseOrder(r.Context(), po); err != nil {
		slog.ErrorContext(r.Context(), "Create purchase order failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save purchase order")
		return
	}

	writeJSON(w, http.StatusCreated, toPurchaseOrderView(po))
}

func (s *Server) handleListPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.store.ListPurchaseOrders(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List purchase orders failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list purchase orders")
		return
	}

	views := make([]purchaseOrderView, 0, len(orders))
	for _, po := range orders {
		views = append(views, toPurchaseOrderView(po))
	}
	writeJSON(w, http.StatusOK, views)
}

// --- delivery notes ---

type deliveryNoteRequest struct {
	Date    string `json:"date"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

type deliveryNoteView struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

func toDeliveryNoteView(dn core.DeliveryNote) deliveryNoteView {
	return deliveryNoteView{
		ID:      dn.ID,
		Date:    dn.Date.Format("2006-01-02"),
		Name:    dn.Name,
		Contact: dn.Contact,
		Email:   dn.Email,
	}
}

func (s *Server) handleCreateDeliveryNote(w http.ResponseWriter, r *http.Request) {
	var req deliveryNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	dn := core.DeliveryNote{
		ID:      uuid.NewString(),
		Date:    date,
		Name:    sanitizeInput(req.Name),
		Contact: sanitizeInput(req.Contact),
		Email:   sanitizeInput(req.Email),
	}
	if err := dn.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreateDeliveryNote(r.Context(), dn); err != nil {
		slog.ErrorContext(r.Context(), "Create delivery note failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save delivery note")
		return
	}

	writeJSON(w, http.StatusCreated, toDeliveryNoteView(dn))
}

func (s *Server) handleListDeliveryNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.store.ListDeliveryNotes(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List delivery notes failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list delivery notes")
		return
	}

	views := make([]deliveryNoteView, 0, len(notes))
	for _, dn := range notes {
		views = append(views, toDeliveryNoteView(dn))
	}
	writeJSON(w, http.StatusOK, views)
}
