package domain

// Address is a US shipping address used for tax jurisdiction resolution.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// TaxInput is the input to a tax calculation.
type TaxInput struct {
	Address    Address
	Amount     float64
	IsDonation bool
}

// TaxResult is the outcome of a tax calculation.
// GrandTotal always equals Amount + TaxAmount, including fallback paths.
type TaxResult struct {
	TaxAmount           float64 `json:"tax_amount"`
	EffectiveTaxRate    float64 `json:"effective_tax_rate"`
	TaxJurisdictionName string  `json:"tax_jurisdiction_name"`
	GrandTotal          float64 `json:"grand_total"`
}
