// Package storage persists dashboard records in SQLite. Monetary values
// are stored as decimal strings so nothing is lost between the engine
// and the database; dates are stored as ISO day strings for lexicographic
// range scans.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"daftar/internal/core"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const dayFormat = "2006-01-02"

var ErrNotFound = errors.New("record not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func day(d core.Date) string {
	return d.Format(dayFormat)
}

func parseDay(s string) (core.Date, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return core.Date{Time: t}, nil
}

func parseDec(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

// --- clients ---

func (r *SQLiteRepository) CreateClient(ctx context.Context, c core.Client) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (company_name, contact_name, email, phone, vat_number, address, city, country)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CompanyName, c.ContactName, c.Email, c.Phone, c.VATNumber, c.Address, c.City, c.Country)
	if err != nil {
		return 0, fmt.Errorf("create client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("client id: %w", err)
	}
	slog.InfoContext(ctx, "Client saved", "id", id, "company", c.CompanyName)
	return id, nil
}

func (r *SQLiteRepository) ListClients(ctx context.Context) ([]core.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_name, contact_name, email, phone, vat_number, address, city, country
		 FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []core.Client
	for rows.Next() {
		var c core.Client
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.ContactName, &c.Email, &c.Phone,
			&c.VATNumber, &c.Address, &c.City, &c.Country); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// --- products ---

func (r *SQLiteRepository) CreateProduct(ctx context.Context, p core.Product) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, description, price, cost, tax_rate, hsn_code, barcode, sku, unit, quantity_in_stock)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Price.String(), p.Cost.String(), p.TaxRate.String(),
		p.HSNCode, p.Barcode, p.SKU, p.Unit, p.QuantityInStock)
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product id: %w", err)
	}
	slog.InfoContext(ctx, "Product saved", "id", id, "name", p.Name)
	return id, nil
}

func (r *SQLiteRepository) scanProduct(rows interface{ Scan(...any) error }) (core.Product, error) {
	var p core.Product
	var price, cost, taxRate string
	if err := rows.Scan(&p.ID, &p.Name, &p.Description, &price, &cost, &taxRate,
		&p.HSNCode, &p.Barcode, &p.SKU, &p.Unit, &p.QuantityInStock); err != nil {
		return p, err
	}
	var err error
	if p.Price, err = parseDec(price); err != nil {
		return p, err
	}
	if p.Cost, err = parseDec(cost); err != nil {
		return p, err
	}
	if p.TaxRate, err = parseDec(taxRate); err != nil {
		return p, err
	}
	return p, nil
}

const productColumns = `id, name, description, price, cost, tax_rate, hsn_code, barcode, sku, unit, quantity_in_stock`

func (r *SQLiteRepository) GetProduct(ctx context.Context, id int64) (core.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := r.scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Product{}, ErrNotFound
	}
	if err != nil {
		return core.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (r *SQLiteRepository) ListProducts(ctx context.Context) ([]core.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []core.Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// --- vendors ---

func (r *SQLiteRepository) CreateVendor(ctx context.Context, v core.Vendor) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO vendors (company_name, contact_name, email, phone, tax_id, address, city, country, payment_terms, website)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.CompanyName, v.ContactName, v.Email, v.Phone, v.TaxID, v.Address, v.City, v.Country, v.PaymentTerms, v.Website)
	if err != nil {
		return 0, fmt.Errorf("create vendor: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("vendor id: %w", err)
	}
	slog.InfoContext(ctx, "Vendor saved", "id", id, "company", v.CompanyName)
	return id, nil
}

func (r *SQLiteRepository) ListVendors(ctx context.Context) ([]core.Vendor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_name, contact_name, email, phone, tax_id, address, city, country, payment_terms, website
		 FROM vendors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []core.Vendor
	for rows.Next() {
		var v core.Vendor
		if err := rows.Scan(&v.ID, &v.CompanyName, &v.ContactName, &v.Email, &v.Phone,
			&v.TaxID, &v.Address, &v.City, &v.Country, &v.PaymentTerms, &v.Website); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

// --- invoices ---

// CreateInvoice inserts the invoice header and its line items in one
// transaction. The caller is expected to have recomputed the subtotal
// from the items already.
func (r *SQLiteRepository) CreateInvoice(ctx context.Context, inv core.Invoice, items []core.InvoiceLineItem) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin invoice tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO invoices (client_id, invoice_number, issue_date, due_date, subtotal, vat_rate, status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ClientID, inv.InvoiceNumber, day(inv.IssueDate), day(inv.DueDate),
		inv.Subtotal.String(), inv.VATRate.String(), string(inv.Status), inv.Notes)
	if err != nil {
		return 0, fmt.Errorf("create invoice: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("invoice id: %w", err)
	}

	for _, li := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO invoice_line_items (invoice_id, product_id, quantity, price, tax_rate)
			 VALUES (?, ?, ?, ?, ?)`,
			id, li.ProductID, li.Quantity.String(), li.Price.String(), li.TaxRate.String()); err != nil {
			return 0, fmt.Errorf("create invoice line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit invoice: %w", err)
	}
	slog.InfoContext(ctx, "Invoice saved", "id", id, "number", inv.InvoiceNumber, "lines", len(items))
	return id, nil
}

func scanInvoice(rows interface{ Scan(...any) error }) (core.Invoice, error) {
	var inv core.Invoice
	var issue, due, subtotal, vatRate, status string
	if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.InvoiceNumber, &issue, &due,
		&subtotal, &vatRate, &status, &inv.Notes); err != nil {
		return inv, err
	}
	var err error
	if inv.IssueDate, err = parseDay(issue); err != nil {
		return inv, err
	}
	if inv.DueDate, err = parseDay(due); err != nil {
		return inv, err
	}
	if inv.Subtotal, err = parseDec(subtotal); err != nil {
		return inv, err
	}
	if inv.VATRate, err = parseDec(vatRate); err != nil {
		return inv, err
	}
	inv.Status = core.InvoiceStatus(status)
	return inv, nil
}

const invoiceColumns = `id, client_id, invoice_number, issue_date, due_date, subtotal, vat_rate, status, notes`

func (r *SQLiteRepository) listInvoices(ctx context.Context, query string, args ...any) ([]core.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []core.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *SQLiteRepository) ListInvoices(ctx context.Context) ([]core.Invoice, error) {
	return r.listInvoices(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY issue_date, id`)
}

// ListInvoicesBetween returns invoices whose issue date falls in the
// inclusive [start, end] day range. Feeds the P&L and tax reports.
func (r *SQLiteRepository) ListInvoicesBetween(ctx context.Context, start, end time.Time) ([]core.Invoice, error) {
	return r.listInvoices(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE issue_date >= ? AND issue_date <= ? ORDER BY issue_date, id`,
		start.Format(dayFormat), end.Format(dayFormat))
}

func (r *SQLiteRepository) GetInvoice(ctx context.Context, id int64) (core.Invoice, []core.InvoiceLineItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Invoice{}, nil, ErrNotFound
	}
	if err != nil {
		return core.Invoice{}, nil, fmt.Errorf("get invoice %d: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, invoice_id, product_id, quantity, price, tax_rate
		 FROM invoice_line_items WHERE invoice_id = ? ORDER BY id`, id)
	if err != nil {
		return core.Invoice{}, nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var items []core.InvoiceLineItem
	for rows.Next() {
		var li core.InvoiceLineItem
		var quantity, price, taxRate string
		if err := rows.Scan(&li.ID, &li.InvoiceID, &li.ProductID, &quantity, &price, &taxRate); err != nil {
			return core.Invoice{}, nil, fmt.Errorf("scan invoice item: %w", err)
		}
		if li.Quantity, err = parseDec(quantity); err != nil {
			return core.Invoice{}, nil, err
		}
		if li.Price, err = parseDec(price); err != nil {
			return core.Invoice{}, nil, err
		}
		if li.TaxRate, err = parseDec(taxRate); err != nil {
			return core.Invoice{}, nil, err
		}
		items = append(items, li)
	}
	return inv, items, rows.Err()
}

// --- estimates ---

func (r *SQLiteRepository) CreateEstimate(ctx context.Context, est core.Estimate, items []core.EstimateItem) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin estimate tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO estimates (client_id, estimate_number, estimate_date, reference_number, notes, terms, net_amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		est.ClientID, est.EstimateNumber, day(est.EstimateDate), est.ReferenceNumber,
		est.Notes, est.Terms, est.NetAmount.String())
	if err != nil {
		return 0, fmt.Errorf("create estimate: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("estimate id: %w", err)
	}

	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO estimate_items (estimate_id, product_id, name, description, quantity, rate, discount, sales_tax, amount)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, it.ProductID, it.Name, it.Description, it.Quantity.String(), it.Rate.String(),
			it.Discount.String(), it.SalesTax.String(), it.Amount.String()); err != nil {
			return 0, fmt.Errorf("create estimate item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit estimate: %w", err)
	}
	slog.InfoContext(ctx, "Estimate saved", "id", id, "number", est.EstimateNumber, "items", len(items))
	return id, nil
}

func (r *SQLiteRepository) ListEstimates(ctx context.Context) ([]core.Estimate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, client_id, estimate_number, estimate_date, reference_number, notes, terms, net_amount
		 FROM estimates ORDER BY estimate_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	defer rows.Close()

	var estimates []core.Estimate
	for rows.Next() {
		var est core.Estimate
		var date, netAmount string
		if err := rows.Scan(&est.ID, &est.ClientID, &est.EstimateNumber, &date,
			&est.ReferenceNumber, &est.Notes, &est.Terms, &netAmount); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		if est.EstimateDate, err = parseDay(date); err != nil {
			return nil, err
		}
		if est.NetAmount, err = parseDec(netAmount); err != nil {
			return nil, err
		}
		estimates = append(estimates, est)
	}
	return estimates, rows.Err()
}

// --- payments / refunds ---

func (r *SQLiteRepository) CreatePayment(ctx context.Context, p core.Payment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (id, client_id, pay_date, mode, amount, deposit_to, issuer, reference_number, comments)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ClientID, day(p.PayDate), p.Mode, p.Amount.String(),
		p.DepositTo, p.Issuer, p.ReferenceNumber, p.Comments)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	slog.InfoContext(ctx, "Payment saved", "id", p.ID, "amount", p.Amount.String())
	return nil
}

func (r *SQLiteRepository) ListPayments(ctx context.Context) ([]core.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, client_id, pay_date, mode, amount, deposit_to, issuer, reference_number, comments
		 FROM payments ORDER BY pay_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []core.Payment
	for rows.Next() {
		var p core.Payment
		var date, amount string
		if err := rows.Scan(&p.ID, &p.ClientID, &date, &p.Mode, &amount,
			&p.DepositTo, &p.Issuer, &p.ReferenceNumber, &p.Comments); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if p.PayDate, err = parseDay(date); err != nil {
			return nil, err
		}
		if p.Amount, err = parseDec(amount); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *SQLiteRepository) CreateRefund(ctx context.Context, ref core.Refund) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refunds (id, date, invoice_id, receipt_id, name, mode, amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ref.ID, day(ref.Date), ref.InvoiceID, ref.ReceiptID, ref.Name, ref.Mode, ref.Amount.String())
	if err != nil {
		return fmt.Errorf("create refund: %w", err)
	}
	slog.InfoContext(ctx, "Refund saved", "id", ref.ID, "amount", ref.Amount.String())
	return nil
}

func (r *SQLiteRepository) ListRefunds(ctx context.Context) ([]core.Refund, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, invoice_id, receipt_id, name, mode, amount FROM refunds ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	defer rows.Close()

	var refunds []core.Refund
	for rows.Next() {
		var ref core.Refund
		var date, amount string
		if err := rows.Scan(&ref.ID, &date, &ref.InvoiceID, &ref.ReceiptID, &ref.Name, &ref.Mode, &amount); err != nil {
			return nil, fmt.Errorf("scan refund: %w", err)
		}
		if ref.Date, err = parseDay(date); err != nil {
			return nil, err
		}
		if ref.Amount, err = parseDec(amount); err != nil {
			return nil, err
		}
		refunds = append(refunds, ref)
	}
	return refunds, rows.Err()
}

// --- expenses ---

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (expense_date, expense_number, vendor_id, category, description, amount, tax_amount, payment_status, payment_method, reference_number, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		day(e.ExpenseDate), e.ExpenseNumber, e.VendorID, e.Category, e.Description,
		e.Amount.String(), e.TaxAmount.String(), e.PaymentStatus, e.PaymentMethod,
		e.ReferenceNumber, e.Notes)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense id: %w", err)
	}
	slog.InfoContext(ctx, "Expense saved", "id", id, "number", e.ExpenseNumber, "amount", e.Amount.String())
	return id, nil
}

const expenseColumns = `id, expense_date, expense_number, vendor_id, category, description, amount, tax_amount, payment_status, payment_method, reference_number, notes`

func (r *SQLiteRepository) listExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		var date, amount, taxAmount string
		if err := rows.Scan(&e.ID, &date, &e.ExpenseNumber, &e.VendorID, &e.Category,
			&e.Description, &amount, &taxAmount, &e.PaymentStatus, &e.PaymentMethod,
			&e.ReferenceNumber, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.ExpenseDate, err = parseDay(date); err != nil {
			return nil, err
		}
		if e.Amount, err = parseDec(amount); err != nil {
			return nil, err
		}
		if e.TaxAmount, err = parseDec(taxAmount); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return r.listExpenses(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY expense_date, id`)
}

func (r *SQLiteRepository) ListExpensesBetween(ctx context.Context, start, end time.Time) ([]core.Expense, error) {
	return r.listExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE expense_date >= ? AND expense_date <= ? ORDER BY expense_date, id`,
		start.Format(dayFormat), end.Format(dayFormat))
}

// --- purchase orders / delivery notes ---

func (r *SQLiteRepository) CreatePurchaseOrder(ctx context.Context, po core.PurchaseOrder) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO purchase_orders (id, date, po_number, vendor_name, contact, email, amount)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		po.ID, day(po.Date), po.PONumber, po.VendorName, po.Contact, po.Email, po.Amount.String())
	if err != nil {
		return fmt.Errorf("create purchase order: %w", err)
	}
	slog.InfoContext(ctx, "Purchase order saved", "id", po.ID, "number", po.PONumber)
	return nil
}

func (r *SQLiteRepository) ListPurchaseOrders(ctx context.Context) ([]core.PurchaseOrder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, po_number, vendor_name, contact, email, amount FROM purchase_orders ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []core.PurchaseOrder
	for rows.Next() {
		var po core.PurchaseOrder
		var date, amount string
		if err := rows.Scan(&po.ID, &date, &po.PONumber, &po.VendorName, &po.Contact, &po.Email, &amount); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		if po.Date, err = parseDay(date); err != nil {
			return nil, err
		}
		if po.Amount, err = parseDec(amount); err != nil {
			return nil, err
		}
		orders = append(orders, po)
	}
	return orders, rows.Err()
}

func (r *SQLiteRepository) CreateDeliveryNote(ctx context.Context, dn core.DeliveryNote) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO delivery_notes (id, date, name, contact, email) VALUES (?, ?, ?, ?, ?)`,
		dn.ID, day(dn.Date), dn.Name, dn.Contact, dn.Email)
	if err != nil {
		return fmt.Errorf("create delivery note: %w", err)
	}
	slog.InfoContext(ctx, "Delivery note saved", "id", dn.ID, "name", dn.Name)
	return nil
}

func (r *SQLiteRepository) ListDeliveryNotes(ctx context.Context) ([]core.DeliveryNote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, name, contact, email FROM delivery_notes ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes: %w", err)
	}
	defer rows.Close()

	var notes []core.DeliveryNote
	for rows.Next() {
		var dn core.DeliveryNote
		var date string
		if err := rows.Scan(&dn.ID, &date, &dn.Name, &dn.Contact, &dn.Email); err != nil {
			return nil, fmt.Errorf("scan delivery note: %w", err)
		}
		if dn.Date, err = parseDay(date); err != nil {
			return nil, err
		}
		notes = append(notes, dn)
	}
	return notes, rows.Err()
}

// --- ledger transactions ---

func (r *SQLiteRepository) CreateLedgerTransaction(ctx context.Context, t core.LedgerTransaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ledger_transactions (id, ledger, date, description, direction, amount, category, reference, vat_rate, payment_method, zatca_status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Ledger), day(t.Date), t.Description, string(t.Direction),
		t.Amount.String(), t.Category, t.Reference, t.VATRate.String(), t.PaymentMethod,
		string(t.SubmissionStatus), t.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("create ledger transaction: %w", err)
	}
	slog.InfoContext(ctx, "Ledger transaction saved",
		"id", t.ID, "ledger", t.Ledger, "direction", t.Direction, "amount", t.Amount.String())
	return nil
}

const ledgerColumns = `id, ledger, date, description, direction, amount, category, reference, vat_rate, payment_method, zatca_status, created_at`

func scanLedgerTransaction(rows interface{ Scan(...any) error }) (core.LedgerTransaction, error) {
	var t core.LedgerTransaction
	var ledger, date, direction, amount, vatRate, status, createdAt string
	if err := rows.Scan(&t.ID, &ledger, &date, &t.Description, &direction, &amount,
		&t.Category, &t.Reference, &vatRate, &t.PaymentMethod, &status, &createdAt); err != nil {
		return t, err
	}
	t.Ledger = core.LedgerKind(ledger)
	t.Direction = core.Direction(direction)
	t.SubmissionStatus = core.SubmissionStatus(status)
	var err error
	if t.Date, err = parseDay(date); err != nil {
		return t, err
	}
	if t.Amount, err = parseDec(amount); err != nil {
		return t, err
	}
	if t.VATRate, err = parseDec(vatRate); err != nil {
		return t, err
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return t, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return t, nil
}

// ListLedgerTransactions returns one ledger's transactions in the
// inclusive [start, end] day range, ordered by date then arrival so the
// summarizer's tie-break matches insertion order.
func (r *SQLiteRepository) ListLedgerTransactions(ctx context.Context, ledger core.LedgerKind, start, end time.Time) ([]core.LedgerTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ledgerColumns+` FROM ledger_transactions
		 WHERE ledger = ? AND date >= ? AND date <= ?
		 ORDER BY date, created_at`,
		string(ledger), start.Format(dayFormat), end.Format(dayFormat))
	if err != nil {
		return nil, fmt.Errorf("list ledger transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.LedgerTransaction
	for rows.Next() {
		t, err := scanLedgerTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *SQLiteRepository) GetLedgerTransaction(ctx context.Context, id string) (core.LedgerTransaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ledgerColumns+` FROM ledger_transactions WHERE id = ?`, id)
	t, err := scanLedgerTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.LedgerTransaction{}, ErrNotFound
	}
	if err != nil {
		return core.LedgerTransaction{}, fmt.Errorf("get ledger transaction %s: %w", id, err)
	}
	return t, nil
}

// GetPendingSubmissions returns transactions not yet submitted, oldest
// first. Backup path for lost queue messages, mirrored by the worker's
// startup check.
func (r *SQLiteRepository) GetPendingSubmissions(ctx context.Context, limit int) ([]core.LedgerTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ledgerColumns+` FROM ledger_transactions
		 WHERE zatca_status = ? ORDER BY created_at LIMIT ?`,
		string(core.SubmissionPending), limit)
	if err != nil {
		return nil, fmt.Errorf("get pending submissions: %w", err)
	}
	defer rows.Close()

	var txs []core.LedgerTransaction
	for rows.Next() {
		t, err := scanLedgerTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending submission: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *SQLiteRepository) setSubmissionStatus(ctx context.Context, id string, status core.SubmissionStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE ledger_transactions SET zatca_status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkSubmitted marks a transaction as submitted to the tax authority.
func (r *SQLiteRepository) MarkSubmitted(ctx context.Context, id string) error {
	if err := r.setSubmissionStatus(ctx, id, core.SubmissionSubmitted); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Ledger transaction marked submitted", "id", id)
	return nil
}

// MarkSubmissionRejected flags a transaction whose submission failed.
func (r *SQLiteRepository) MarkSubmissionRejected(ctx context.Context, id string) error {
	if err := r.setSubmissionStatus(ctx, id, core.SubmissionRejected); err != nil {
		return err
	}
	slog.WarnContext(ctx, "Ledger transaction marked rejected", "id", id)
	return nil
}
