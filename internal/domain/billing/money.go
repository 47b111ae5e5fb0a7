package billing

// All monetary amounts in the billing core are int64 paise. Decimal rupees
// only exist at the API boundary.

const (
	// TaxRatePercent is the flat GST rate applied on top of the subtotal.
	TaxRatePercent = 18

	// BudgetEpsilonCents is the tolerance added to the budget limit during
	// pre-checks. Integer arithmetic cannot drift, but the observable
	// contract (total <= limit + epsilon) is kept as-is.
	BudgetEpsilonCents = 5
)

// TaxOn returns the GST amount for the given pre-tax amount.
func TaxOn(amountCents int64) int64 {
	return amountCents * TaxRatePercent / 100
}

// WithTax returns the given pre-tax amount plus GST.
func WithTax(amountCents int64) int64 {
	return amountCents + TaxOn(amountCents)
}

// CentsFromDecimal converts a decimal rupee amount to paise.
func CentsFromDecimal(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

// DecimalFromCents converts paise to decimal rupees for display.
func DecimalFromCents(cents int64) float64 {
	return float64(cents) / 100
}
