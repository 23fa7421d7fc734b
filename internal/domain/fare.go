package domain

import "time"

// RouteEstimate is the road-adjusted distance and time estimate for a pickup.
type RouteEstimate struct {
	DistanceMiles    float64 `json:"distance_miles"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	TimeCapMinutes   int     `json:"time_cap_minutes"`
}

// TimeEstimate is a time-only estimate derived from a known distance.
type TimeEstimate struct {
	EstimatedMinutes      int       `json:"estimated_minutes"`
	TimeCapMinutes        int       `json:"time_cap_minutes"`
	EstimatedDeliveryTime time.Time `json:"estimated_delivery_time"`
}

// DriverEarnings is the driver's side of the fare ledger.
type DriverEarnings struct {
	BasePay     float64 `json:"base_pay"`
	DistancePay float64 `json:"distance_pay"`
	TimePay     float64 `json:"time_pay"`
	SizeBonus   float64 `json:"size_bonus"`
	Tip         float64 `json:"tip"`
	Total       float64 `json:"total"`
}

// CompanyRevenue is the platform's side of the fare ledger.
type CompanyRevenue struct {
	ServiceFee  float64 `json:"service_fee"`
	DistanceFee float64 `json:"distance_fee"`
	TimeFee     float64 `json:"time_fee"`
	Total       float64 `json:"total"`
}

// CustomerPayment is the customer's side of the fare ledger.
// DistanceCharge and TimeCharge are the full customer-facing amounts for
// those line items; each decomposes into the driver pay plus the company
// fee for the same item with nothing lost or double counted.
type CustomerPayment struct {
	BasePrice      float64 `json:"base_price"`
	Surcharges     float64 `json:"surcharges"`
	DistanceCharge float64 `json:"distance_charge"`
	TimeCharge     float64 `json:"time_charge"`
	Taxes          float64 `json:"taxes"`
	Total          float64 `json:"total"`
}

// FareBreakdown is the three-way split of one transaction: what the
// customer pays, what the driver earns, and what the company retains.
type FareBreakdown struct {
	Driver         DriverEarnings  `json:"driver_earnings"`
	Company        CompanyRevenue  `json:"company_revenue"`
	Customer       CustomerPayment `json:"customer_payment"`
	Subtotal       float64         `json:"subtotal"`
	Tax            TaxResult       `json:"tax"`
	PeakMultiplier float64         `json:"peak_multiplier"`
}
