package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CashBook LedgerKind = "cash"
	BankBook LedgerKind = "bank"

	In  Direction = "in"
	Out Direction = "out"

	StatusDraft     InvoiceStatus = "Draft"
	StatusPending   InvoiceStatus = "Pending"
	StatusPaid      InvoiceStatus = "Paid"
	StatusOverdue   InvoiceStatus = "Overdue"
	StatusCancelled InvoiceStatus = "Cancelled"

	SubmissionPending   SubmissionStatus = "pending"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionAccepted  SubmissionStatus = "accepted"
	SubmissionRejected  SubmissionStatus = "rejected"
)

type (
	LedgerKind       string
	Direction        string
	InvoiceStatus    string
	SubmissionStatus string

	Date struct {
		time.Time
	}

	Client struct {
		ID          int64
		CompanyName string
		ContactName string
		Email       string
		Phone       string
		VATNumber   string
		Address     string
		City        string
		Country     string
	}

	Product struct {
		ID              int64
		Name            string
		Description     string
		Price           decimal.Decimal
		Cost            decimal.Decimal
		TaxRate         decimal.Decimal
		HSNCode         string
		Barcode         string
		SKU             string
		Unit            string
		QuantityInStock int64
	}

	Vendor struct {
		ID           int64
		CompanyName  string
		ContactName  string
		Email        string
		Phone        string
		TaxID        string
		Address      string
		City         string
		Country      string
		PaymentTerms string
		Website      string
	}

	// Invoice carries a single header VAT rate applied over the pre-tax
	// subtotal of its line items. The subtotal is derived, never trusted
	// from the caller.
	Invoice struct {
		ID            int64
		ClientID      int64
		InvoiceNumber string
		IssueDate     Date
		DueDate       Date
		Subtotal      decimal.Decimal
		VATRate       decimal.Decimal
		Status        InvoiceStatus
		Notes         string
	}

	InvoiceLineItem struct {
		ID        int64
		InvoiceID int64
		ProductID int64
		Quantity  decimal.Decimal
		Price     decimal.Decimal
		TaxRate   decimal.Decimal
	}

	// Estimate items fold discount and tax into each line amount, so the
	// estimate has no header rate.
	Estimate struct {
		ID              int64
		ClientID        int64
		EstimateNumber  int64
		EstimateDate    Date
		ReferenceNumber string
		Notes           string
		Terms           string
		NetAmount       decimal.Decimal
	}

	EstimateItem struct {
		ID          int64
		EstimateID  int64
		ProductID   int64
		Name        string
		Description string
		Quantity    decimal.Decimal
		Rate        decimal.Decimal
		Discount    decimal.Decimal // percent, 0-100
		SalesTax    decimal.Decimal // percent
		Amount      decimal.Decimal // derived via ComputeAmount
	}

	Payment struct {
		ID              string
		ClientID        int64
		PayDate         Date
		Mode            string
		Amount          decimal.Decimal
		DepositTo       string
		Issuer          string
		ReferenceNumber string
		Comments        string
	}

	Refund struct {
		ID        string
		Date      Date
		InvoiceID string
		ReceiptID string
		Name      string
		Mode      string
		Amount    decimal.Decimal
	}

	Expense struct {
		ID              int64
		ExpenseDate     Date
		ExpenseNumber   string
		VendorID        int64
		Category        string
		Description     string
		Amount          decimal.Decimal
		TaxAmount       decimal.Decimal
		PaymentStatus   string
		PaymentMethod   string
		ReferenceNumber string
		Notes           string
	}

	PurchaseOrder struct {
		ID         string
		Date       Date
		PONumber   string
		VendorName string
		Contact    string
		Email      string
		Amount     decimal.Decimal
	}

	DeliveryNote struct {
		ID      string
		Date    Date
		Name    string
		Contact string
		Email   string
	}

	// LedgerTransaction is a single cash-book or bank-book entry. Entries
	// are immutable once created; balances are always recomputed from the
	// ordered window, never stored.
	LedgerTransaction struct {
		ID               string
		Ledger           LedgerKind
		Date             Date
		Description      string
		Direction        Direction
		Amount           decimal.Decimal
		Category         string
		Reference        string
		VATRate          decimal.Decimal
		PaymentMethod    string
		SubmissionStatus SubmissionStatus
		CreatedAt        time.Time
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidRate      = errors.New("invalid rate")
	ErrInvalidDiscount  = errors.New("discount must be between 0 and 100")
	ErrInvalidTaxRate   = errors.New("invalid tax rate")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidLedger    = errors.New("invalid ledger kind")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyCompanyName = errors.New("empty company name")
	ErrEmptyName        = errors.New("empty name")
	ErrMissingClient    = errors.New("missing client reference")
	ErrMissingProduct   = errors.New("missing product reference")
)

var oneHundred = decimal.NewFromInt(100)

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (s InvoiceStatus) Validate() error {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
		return nil
	default:
		return ErrInvalidStatus
	}
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.CompanyName) == "" {
		return ErrEmptyCompanyName
	}
	if strings.TrimSpace(c.ContactName) == "" {
		return errors.New("empty contact name")
	}
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("empty email")
	}
	return nil
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return errors.New("negative price")
	}
	if p.Cost.IsNegative() {
		return errors.New("negative cost")
	}
	if p.TaxRate.IsNegative() {
		return ErrInvalidTaxRate
	}
	if p.QuantityInStock < 0 {
		return errors.New("negative stock quantity")
	}
	return nil
}

func (v Vendor) Validate() error {
	if strings.TrimSpace(v.CompanyName) == "" {
		return ErrEmptyCompanyName
	}
	if strings.TrimSpace(v.ContactName) == "" {
		return errors.New("empty contact name")
	}
	return nil
}

func (li InvoiceLineItem) Validate() error {
	if li.ProductID <= 0 {
		return ErrMissingProduct
	}
	if !li.Quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	if !li.Price.IsPositive() {
		return ErrInvalidRate
	}
	if li.TaxRate.IsNegative() {
		return ErrInvalidTaxRate
	}
	return nil
}

func (i Invoice) Validate() error {
	if i.ClientID <= 0 {
		return ErrMissingClient
	}
	if strings.TrimSpace(i.InvoiceNumber) == "" {
		return errors.New("empty invoice number")
	}
	if err := i.IssueDate.Validate(); err != nil {
		return errors.New("invalid issue date: " + err.Error())
	}
	if err := i.DueDate.Validate(); err != nil {
		return errors.New("invalid due date: " + err.Error())
	}
	if i.DueDate.Before(i.IssueDate.Time) {
		return errors.New("due date before issue date")
	}
	if i.VATRate.IsNegative() {
		return ErrInvalidTaxRate
	}
	return i.Status.Validate()
}

func (it EstimateItem) Validate() error {
	if it.ProductID <= 0 {
		return ErrMissingProduct
	}
	if strings.TrimSpace(it.Name) == "" {
		return ErrEmptyName
	}
	if it.Quantity.IsNegative() {
		return ErrInvalidQuantity
	}
	if it.Rate.IsNegative() {
		return ErrInvalidRate
	}
	if it.Discount.IsNegative() || it.Discount.GreaterThan(oneHundred) {
		return ErrInvalidDiscount
	}
	if it.SalesTax.IsNegative() {
		return ErrInvalidTaxRate
	}
	return nil
}

func (e Estimate) Validate() error {
	if e.ClientID <= 0 {
		return ErrMissingClient
	}
	if e.EstimateNumber <= 0 {
		return errors.New("invalid estimate number")
	}
	return e.EstimateDate.Validate()
}

func (p Payment) Validate() error {
	if p.ClientID <= 0 {
		return ErrMissingClient
	}
	if err := p.PayDate.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Mode) == "" {
		return errors.New("empty payment mode")
	}
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (r Refund) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(r.Mode) == "" {
		return errors.New("empty refund mode")
	}
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.ExpenseDate.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.ExpenseNumber) == "" {
		return errors.New("empty expense number")
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if e.TaxAmount.IsNegative() {
		return errors.New("negative tax amount")
	}
	return nil
}

func (po PurchaseOrder) Validate() error {
	if err := po.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(po.PONumber) == "" {
		return errors.New("empty purchase order number")
	}
	if strings.TrimSpace(po.VendorName) == "" {
		return ErrEmptyCompanyName
	}
	if !po.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (dn DeliveryNote) Validate() error {
	if err := dn.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(dn.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (t LedgerTransaction) Validate() error {
	switch t.Ledger {
	case CashBook, BankBook:
	default:
		return ErrInvalidLedger
	}
	switch t.Direction {
	case In, Out:
	default:
		return ErrInvalidDirection
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.VATRate.IsNegative() {
		return ErrInvalidTaxRate
	}
	return nil
}

// Signed returns the transaction amount with its direction applied:
// positive for money in, negative for money out.
func (t LedgerTransaction) Signed() decimal.Decimal {
	if t.Direction == Out {
		return t.Amount.Neg()
	}
	return t.Amount
}
