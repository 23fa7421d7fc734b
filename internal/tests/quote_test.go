package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/service"
)

func validQuoteRequest() service.QuoteRequest {
	return service.QuoteRequest{
		PickupLat: 38.6270, PickupLng: -90.1994,
		StoreLat: 38.6530, StoreLng: -90.2435,
		PickupAddress: domain.Address{
			Line1:      "123 Main St",
			City:       "St. Louis",
			State:      "MO",
			PostalCode: "63101",
			Country:    "US",
		},
		BoxSize: domain.BoxSizeLarge,
		Tip:     5,
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	cache := NewMockQuoteCache()
	svc := service.NewQuoteService(newFareService(nil), cache)

	quote, err := svc.Quote(context.Background(), validQuoteRequest())

	require.NoError(t, err)
	assert.Greater(t, quote.Route.DistanceMiles, 0.0)
	assert.Greater(t, quote.Fare.Subtotal, 0.0)
	assert.InDelta(t, quote.Fare.Subtotal+quote.Fare.Customer.Taxes+5,
		quote.Fare.Customer.Total, 0.001)

	assert.Equal(t, 1, cache.GetCalls)
	assert.Equal(t, 1, cache.SetCalls)
}

func TestQuote_SecondCallServedFromCache(t *testing.T) {
	t.Parallel()

	cache := NewMockQuoteCache()
	svc := service.NewQuoteService(newFareService(nil), cache)

	first, err := svc.Quote(context.Background(), validQuoteRequest())
	require.NoError(t, err)

	second, err := svc.Quote(context.Background(), validQuoteRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, cache.GetCalls)
	assert.Equal(t, 1, cache.SetCalls, "cache hit must not rewrite the entry")
}

func TestQuote_CacheErrorsIgnored(t *testing.T) {
	t.Parallel()

	cache := NewMockQuoteCache()
	cache.GetErr = errors.New("redis down")
	cache.SetErr = errors.New("redis down")
	svc := service.NewQuoteService(newFareService(nil), cache)

	quote, err := svc.Quote(context.Background(), validQuoteRequest())

	require.NoError(t, err)
	assert.Greater(t, quote.Fare.Subtotal, 0.0)
}

func TestQuote_Validation(t *testing.T) {
	t.Parallel()

	svc := service.NewQuoteService(newFareService(nil), nil)

	req := validQuoteRequest()
	req.PickupLat = 100
	_, err := svc.Quote(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrInvalidPickupLocation)

	req = validQuoteRequest()
	req.Tip = -0.01
	_, err = svc.Quote(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrInvalidTip)

	req = validQuoteRequest()
	req.BoxSize = "HUGE"
	_, err = svc.Quote(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrInvalidBoxSize)
}

func TestQuote_NilCache(t *testing.T) {
	t.Parallel()

	svc := service.NewQuoteService(newFareService(nil), nil)

	quote, err := svc.Quote(context.Background(), validQuoteRequest())

	require.NoError(t, err)
	assert.Greater(t, quote.Route.DistanceMiles, 0.0)
}
