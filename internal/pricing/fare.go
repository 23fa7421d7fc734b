package pricing

import (
	"context"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
)

// Rates contains the fare rate table.
type Rates struct {
	BasePay   float64 // flat driver base pay
	BasePrice float64 // flat customer base fee; the spread over BasePay is the service fee

	DistancePayPerMile float64 // per-mile portion paid to the driver
	DistanceFeePerMile float64 // per-mile portion retained by the company

	TimePayPerHour float64 // per-hour portion paid to the driver
	TimeFeePerHour float64 // per-hour portion retained by the company

	// Driver bonus per size tier. Paid entirely to the driver.
	SizeBonusLarge float64
	SizeBonusXL    float64

	// Customer surcharge per size tier. Deliberately larger than the
	// driver bonus for the same tier; the excess is company margin.
	SizeSurchargeLarge float64
	SizeSurchargeXL    float64
}

// DefaultRates returns the production rate table.
func DefaultRates() Rates {
	return Rates{
		BasePay:            3.00,
		BasePrice:          3.99,
		DistancePayPerMile: 0.35,
		DistanceFeePerMile: 0.15,
		TimePayPerHour:     8.00,
		TimeFeePerHour:     2.00,
		SizeBonusLarge:     1.00,
		SizeBonusXL:        2.00,
		SizeSurchargeLarge: 2.00,
		SizeSurchargeXL:    4.00,
	}
}

// QuoteInput contains the parameters for composing a fare.
type QuoteInput struct {
	DistanceMiles   float64
	BillableMinutes int
	BoxSize         domain.BoxSize
	Tip             float64
	IsDonation      bool
	PeakMultiplier  float64 // 1.0 when not in a peak window
	Address         domain.Address
}

// FareService composes the three-way fare ledger from a pickup quote.
type FareService struct {
	rates Rates
	tax   *TaxService
}

// NewFareService creates a new FareService.
func NewFareService(rates Rates, tax *TaxService) *FareService {
	return &FareService{
		rates: rates,
		tax:   tax,
	}
}

// Rates returns the active rate table.
func (s *FareService) Rates() Rates {
	return s.rates
}

// Compose calculates the customer payment, driver earnings, and company
// revenue for one pickup. Each line item is computed from its own formula:
// the customer-side distance and time charges decompose exactly into the
// driver pay plus the company fee for the same item. The tip flows 100% to
// the driver and is excluded from both company revenue and the taxable
// subtotal. The peak multiplier applies to the time components only, before
// tax is computed.
func (s *FareService) Compose(ctx context.Context, in QuoteInput) domain.FareBreakdown {
	peak := in.PeakMultiplier
	if peak < 1.0 {
		peak = 1.0
	}

	hours := float64(in.BillableMinutes) / 60

	basePay := round2(s.rates.BasePay)
	distancePay := round2(in.DistanceMiles * s.rates.DistancePayPerMile)
	timePay := round2(hours * s.rates.TimePayPerHour * peak)
	sizeBonus := round2(s.sizeBonus(in.BoxSize))
	tip := round2(in.Tip)

	serviceFee := round2(s.rates.BasePrice - s.rates.BasePay)
	distanceFee := round2(in.DistanceMiles * s.rates.DistanceFeePerMile)
	timeFee := round2(hours * s.rates.TimeFeePerHour * peak)

	basePrice := round2(s.rates.BasePrice)
	surcharges := round2(s.sizeSurcharge(in.BoxSize))
	distanceCharge := round2(distancePay + distanceFee)
	timeCharge := round2(timePay + timeFee)

	// Tax base is exactly the non-tip subtotal. The driver size bonus is
	// passed through to the customer, on top of the surcharges line.
	subtotal := round2(basePrice + surcharges + sizeBonus + distanceCharge + timeCharge)

	taxResult := s.tax.Calculate(ctx, domain.TaxInput{
		Address:    in.Address,
		Amount:     subtotal,
		IsDonation: in.IsDonation,
	})

	return domain.FareBreakdown{
		Driver: domain.DriverEarnings{
			BasePay:     basePay,
			DistancePay: distancePay,
			TimePay:     timePay,
			SizeBonus:   sizeBonus,
			Tip:         tip,
			Total:       round2(basePay + distancePay + timePay + sizeBonus + tip),
		},
		Company: domain.CompanyRevenue{
			ServiceFee:  serviceFee,
			DistanceFee: distanceFee,
			TimeFee:     timeFee,
			Total:       round2(serviceFee + distanceFee + timeFee),
		},
		Customer: domain.CustomerPayment{
			BasePrice:      basePrice,
			Surcharges:     surcharges,
			DistanceCharge: distanceCharge,
			TimeCharge:     timeCharge,
			Taxes:          taxResult.TaxAmount,
			Total:          round2(subtotal + taxResult.TaxAmount + tip),
		},
		Subtotal:       subtotal,
		Tax:            taxResult,
		PeakMultiplier: peak,
	}
}

// sizeBonus returns the driver bonus for a size tier.
func (s *FareService) sizeBonus(size domain.BoxSize) float64 {
	switch size {
	case domain.BoxSizeLarge:
		return s.rates.SizeBonusLarge
	case domain.BoxSizeXL:
		return s.rates.SizeBonusXL
	default:
		return 0
	}
}

// sizeSurcharge returns the customer surcharge for a size tier.
func (s *FareService) sizeSurcharge(size domain.BoxSize) float64 {
	switch size {
	case domain.BoxSizeLarge:
		return s.rates.SizeSurchargeLarge
	case domain.BoxSizeXL:
		return s.rates.SizeSurchargeXL
	default:
		return 0
	}
}
