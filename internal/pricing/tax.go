package pricing

import (
	"context"
	"log"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
)

// Jurisdiction labels used in place of an oracle-provided name.
const (
	DonationJurisdictionLabel    = "Tax-exempt (donation)"
	UnavailableJurisdictionLabel = "Tax calculation unavailable"
)

// Jurisdiction levels as reported by the tax oracle.
const (
	JurisdictionLevelState    = "state"
	JurisdictionLevelCounty   = "county"
	JurisdictionLevelCity     = "city"
	JurisdictionLevelDistrict = "district"
)

// Oracle is the interface for an external tax-calculation provider. Any
// provider returning a jurisdiction-level breakdown is substitutable.
type Oracle interface {
	Calculate(ctx context.Context, req OracleRequest) (*OracleQuote, error)
}

// OracleRequest is a tax quote request in minor currency units.
type OracleRequest struct {
	Currency         string
	AmountMinorUnits int64
	Reference        string
	Address          domain.Address
}

// OracleQuote is a tax quote with its jurisdiction breakdown.
type OracleQuote struct {
	TaxAmountMinorUnits int64
	Breakdown           []JurisdictionTax
}

// JurisdictionTax is one jurisdiction entry of a tax breakdown.
type JurisdictionTax struct {
	Level       string
	DisplayName string
	Name        string
	State       string
}

// TaxService resolves jurisdiction-aware sales tax for delivery-fee
// subtotals through an injected oracle.
type TaxService struct {
	oracle Oracle
	logger *log.Logger
}

// NewTaxService creates a new TaxService. A nil oracle is treated as a
// permanently unavailable provider and every calculation falls back.
func NewTaxService(oracle Oracle, logger *log.Logger) *TaxService {
	if logger == nil {
		logger = log.Default()
	}
	return &TaxService{
		oracle: oracle,
		logger: logger,
	}
}

// Calculate computes sales tax for the given subtotal. It never returns an
// error: oracle failures degrade to a zero-tax result so checkout is never
// blocked on the tax provider. The under-collection is logged for finance
// reconciliation.
func (s *TaxService) Calculate(ctx context.Context, in domain.TaxInput) domain.TaxResult {
	// Donations are fee-bearing but tax-exempt. No oracle call is made.
	if in.IsDonation {
		return domain.TaxResult{
			TaxAmount:           0,
			EffectiveTaxRate:    0,
			TaxJurisdictionName: DonationJurisdictionLabel,
			GrandTotal:          round2(in.Amount),
		}
	}

	quote, err := s.requestQuote(ctx, in)
	if err != nil {
		s.logger.Printf("[TAX] fallback to zero tax: amount=%.2f state=%s err=%v",
			in.Amount, in.Address.State, err)
		return s.fallbackResult(in.Amount)
	}

	taxAmount := round2(float64(quote.TaxAmountMinorUnits) / 100)

	rate := 0.0
	if in.Amount > 0 {
		rate = round4(taxAmount / in.Amount)
	}

	return domain.TaxResult{
		TaxAmount:           taxAmount,
		EffectiveTaxRate:    rate,
		TaxJurisdictionName: selectJurisdiction(quote.Breakdown, in.Address),
		GrandTotal:          round2(in.Amount + taxAmount),
	}
}

// requestQuote performs the single outbound oracle call. The oracle enforces
// its own timeout; no retry is attempted so checkout latency stays bounded.
func (s *TaxService) requestQuote(ctx context.Context, in domain.TaxInput) (*OracleQuote, error) {
	if s.oracle == nil {
		return nil, ErrOracleUnavailable
	}

	return s.oracle.Calculate(ctx, OracleRequest{
		Currency:         "usd",
		AmountMinorUnits: toMinorUnits(in.Amount),
		Reference:        "delivery-fee",
		Address:          in.Address,
	})
}

// fallbackResult is the fail-open degrade step: the transaction proceeds
// with zero tax rather than stalling on the provider.
func (s *TaxService) fallbackResult(amount float64) domain.TaxResult {
	return domain.TaxResult{
		TaxAmount:           0,
		EffectiveTaxRate:    0,
		TaxJurisdictionName: UnavailableJurisdictionLabel,
		GrandTotal:          round2(amount),
	}
}

// selectJurisdiction picks the display jurisdiction from a breakdown with
// strict precedence county > city > state. County names disambiguate
// otherwise-identical city names, and delivery-fee liability in the target
// jurisdictions is reported most accurately at the county level.
func selectJurisdiction(breakdown []JurisdictionTax, addr domain.Address) string {
	var cityName, stateName string

	for _, entry := range breakdown {
		name := entry.DisplayName
		if name == "" {
			name = entry.Name
		}
		if name == "" {
			continue
		}

		switch entry.Level {
		case JurisdictionLevelCounty:
			// First county entry wins outright.
			return name
		case JurisdictionLevelCity:
			if cityName == "" {
				cityName = name
			}
		case JurisdictionLevelState:
			if stateName == "" {
				stateName = name
			}
		}
	}

	if cityName != "" {
		return cityName
	}
	if stateName != "" {
		return stateName
	}
	return addr.State
}
