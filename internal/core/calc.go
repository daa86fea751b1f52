package core

import "github.com/shopspring/decimal"

// DocumentTotals is the computed roll-up of a document's line items.
// Total = Subtotal + TaxAmount holds exactly at full precision.
type DocumentTotals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeAmount calculates a single line amount from its four inputs:
//
//	subtotal   = quantity * rate
//	discounted = subtotal - subtotal*discountPercent/100
//	amount     = discounted + discounted*taxPercent/100
//
// A zero quantity or rate yields zero; that is a valid draft line, not an
// error. Negative inputs are rejected by record validation before they
// reach this function. The amount is always recomputed from the inputs,
// never read back from a stored row.
func ComputeAmount(quantity, rate, discountPercent, taxPercent decimal.Decimal) decimal.Decimal {
	subtotal := quantity.Mul(rate)
	discounted := subtotal.Sub(percent(subtotal, discountPercent))
	return discounted.Add(percent(discounted, taxPercent))
}

// AggregateHeaderTax sums invoice line items under a single header tax
// rate. The subtotal is the plain quantity*price sum: per-line tax rates
// are not used in this mode, the header rate applies once over the whole
// subtotal.
func AggregateHeaderTax(lines []InvoiceLineItem, headerTaxPercent decimal.Decimal) DocumentTotals {
	subtotal := decimal.Zero
	for _, li := range lines {
		subtotal = subtotal.Add(li.Quantity.Mul(li.Price))
	}
	return HeaderTaxTotals(subtotal, headerTaxPercent)
}

// HeaderTaxTotals applies a header tax rate over an already-derived
// subtotal. Listing paths use it to rebuild invoice totals when the
// line items are not loaded.
func HeaderTaxTotals(subtotal, headerTaxPercent decimal.Decimal) DocumentTotals {
	tax := percent(subtotal, headerTaxPercent)
	return DocumentTotals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}

// AggregatePerLineTax sums estimate items whose amounts already embed
// their own discount and tax (see ComputeAmount). No header rate is
// applied, so subtotal and total coincide and no separate tax amount is
// reported.
func AggregatePerLineTax(items []EstimateItem) DocumentTotals {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(ComputeAmount(it.Quantity, it.Rate, it.Discount, it.SalesTax))
	}
	return DocumentTotals{
		Subtotal:  total,
		TaxAmount: decimal.Zero,
		Total:     total,
	}
}
