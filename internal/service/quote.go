package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/pricing"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/redis"
)

// QuoteService produces fare quotes for the booking flow without creating
// an order. Quotes are cached briefly so a customer stepping through the
// booking form does not re-hit the tax oracle on every render.
type QuoteService struct {
	fareService *pricing.FareService
	cache       redis.QuoteCacheInterface
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(fareService *pricing.FareService, cache redis.QuoteCacheInterface) *QuoteService {
	return &QuoteService{
		fareService: fareService,
		cache:       cache,
	}
}

// QuoteRequest contains the parameters for a fare quote.
type QuoteRequest struct {
	PickupLat     float64
	PickupLng     float64
	StoreLat      float64
	StoreLng      float64
	PickupAddress domain.Address
	BoxSize       domain.BoxSize
	Tip           float64
	IsDonation    bool
	IsRush        bool
}

// QuoteResult is a fare quote with its route estimate.
type QuoteResult struct {
	Route domain.RouteEstimate
	Fare  domain.FareBreakdown
}

// Quote estimates the route and composes the full fare ledger for the
// given booking parameters.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	if !validCoordinates(req.PickupLat, req.PickupLng) {
		return nil, ErrInvalidPickupLocation
	}
	if !validCoordinates(req.StoreLat, req.StoreLng) {
		return nil, ErrInvalidStoreLocation
	}
	if req.Tip < 0 {
		return nil, ErrInvalidTip
	}

	boxSize, err := ValidateBoxSize(string(req.BoxSize))
	if err != nil {
		return nil, err
	}

	peak := pricing.PeakMultiplier(time.Now())
	if req.IsRush {
		peak = pricing.RushMultiplier
	}

	cacheKey := s.cacheKey(req, boxSize, peak)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil && cached != nil {
			return &QuoteResult{Route: cached.Route, Fare: cached.Fare}, nil
		}
		// Cache errors are ignored; a quote is always computable locally.
	}

	route := pricing.EstimateRoute(req.PickupLat, req.PickupLng, req.StoreLat, req.StoreLng)

	fare := s.fareService.Compose(ctx, pricing.QuoteInput{
		DistanceMiles:   route.DistanceMiles,
		BillableMinutes: route.EstimatedMinutes,
		BoxSize:         boxSize,
		Tip:             req.Tip,
		IsDonation:      req.IsDonation,
		PeakMultiplier:  peak,
		Address:         req.PickupAddress,
	})

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, &redis.CachedQuote{Route: route, Fare: fare})
	}

	return &QuoteResult{Route: route, Fare: fare}, nil
}

// cacheKey derives a cache key from every input that can change the quote.
func (s *QuoteService) cacheKey(req QuoteRequest, boxSize domain.BoxSize, peak float64) string {
	return fmt.Sprintf("%.5f:%.5f:%.5f:%.5f:%s:%s:%.2f:%t:%.1f",
		req.PickupLat, req.PickupLng, req.StoreLat, req.StoreLng,
		req.PickupAddress.PostalCode, boxSize, req.Tip, req.IsDonation, peak)
}
