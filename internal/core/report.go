package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// CategoryAmount is an amount aggregated under one category name.
	CategoryAmount struct {
		Name   string
		Amount decimal.Decimal
	}

	// PLStatement is the profit-and-loss roll-up for one window. Revenue
	// is VAT-inclusive: each invoice contributes subtotal*(1+vatRate/100).
	PLStatement struct {
		Window     Window
		Revenue    decimal.Decimal
		Expenses   decimal.Decimal
		ByCategory []CategoryAmount
		NetProfit  decimal.Decimal // negative means a loss
	}

	// TaxReport summarizes VAT collected on sales against VAT paid on
	// purchases for one window.
	TaxReport struct {
		Window         Window
		TotalSales     decimal.Decimal
		TotalPurchases decimal.Decimal
		VATCollected   decimal.Decimal
		VATPaid        decimal.Decimal
		NetVAT         decimal.Decimal
	}
)

// SumByCategory buckets amounts by category for records inside the
// window, returning the per-category sums (sorted by name for stable
// output) and the grand total.
func SumByCategory(dates []time.Time, categories []string, amounts []decimal.Decimal, window Window) ([]CategoryAmount, decimal.Decimal) {
	byCategory := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for i, date := range dates {
		if !window.Contains(date) {
			continue
		}
		byCategory[categories[i]] = byCategory[categories[i]].Add(amounts[i])
		total = total.Add(amounts[i])
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	sums := make([]CategoryAmount, 0, len(names))
	for _, name := range names {
		sums = append(sums, CategoryAmount{Name: name, Amount: byCategory[name]})
	}
	return sums, total
}

// BuildPLStatement computes the P&L for the window around referenceDate.
// Invoices are bucketed by issue date, expenses by expense date and
// category. Net profit keeps its sign; a loss is a negative value.
func BuildPLStatement(invoices []Invoice, expenses []Expense, referenceDate time.Time, period PeriodType) (PLStatement, error) {
	window, err := WindowFor(referenceDate, period)
	if err != nil {
		return PLStatement{}, err
	}

	revenue := decimal.Zero
	for _, inv := range invoices {
		if !window.Contains(inv.IssueDate.Time) {
			continue
		}
		revenue = revenue.Add(inv.Subtotal.Add(percent(inv.Subtotal, inv.VATRate)))
	}

	dates := make([]time.Time, len(expenses))
	categories := make([]string, len(expenses))
	amounts := make([]decimal.Decimal, len(expenses))
	for i, exp := range expenses {
		dates[i] = exp.ExpenseDate.Time
		categories[i] = exp.Category
		amounts[i] = exp.Amount
	}
	byCategory, expenseTotal := SumByCategory(dates, categories, amounts, window)

	return PLStatement{
		Window:     window,
		Revenue:    revenue,
		Expenses:   expenseTotal,
		ByCategory: byCategory,
		NetProfit:  revenue.Sub(expenseTotal),
	}, nil
}

// BuildTaxReport computes the VAT summary for the window around
// referenceDate: VAT collected from invoice header rates over their
// subtotals, VAT paid from recorded expense tax amounts.
func BuildTaxReport(invoices []Invoice, expenses []Expense, referenceDate time.Time, period PeriodType) (TaxReport, error) {
	window, err := WindowFor(referenceDate, period)
	if err != nil {
		return TaxReport{}, err
	}

	report := TaxReport{
		Window:         window,
		TotalSales:     decimal.Zero,
		TotalPurchases: decimal.Zero,
		VATCollected:   decimal.Zero,
		VATPaid:        decimal.Zero,
	}

	for _, inv := range invoices {
		if !window.Contains(inv.IssueDate.Time) {
			continue
		}
		report.TotalSales = report.TotalSales.Add(inv.Subtotal)
		report.VATCollected = report.VATCollected.Add(percent(inv.Subtotal, inv.VATRate))
	}
	for _, exp := range expenses {
		if !window.Contains(exp.ExpenseDate.Time) {
			continue
		}
		report.TotalPurchases = report.TotalPurchases.Add(exp.Amount)
		report.VATPaid = report.VATPaid.Add(exp.TaxAmount)
	}

	report.NetVAT = report.VATCollected.Sub(report.VATPaid)
	return report, nil
}
