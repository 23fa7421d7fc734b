package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/service"
)

// QuoteHandler handles HTTP requests for fare quotes.
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// QuoteRequest is the HTTP request body for a fare quote.
type QuoteRequest struct {
	PickupLat     float64        `json:"pickup_lat"`
	PickupLng     float64        `json:"pickup_lng"`
	StoreLat      float64        `json:"store_lat"`
	StoreLng      float64        `json:"store_lng"`
	PickupAddress AddressRequest `json:"pickup_address"`
	BoxSize       string         `json:"box_size,omitempty"`
	Tip           float64        `json:"tip,omitempty"`
	IsDonation    bool           `json:"is_donation,omitempty"`
	IsRush        bool           `json:"is_rush,omitempty"`
}

// QuoteResponse is the HTTP response for a fare quote.
type QuoteResponse struct {
	Route domain.RouteEstimate `json:"route"`
	Fare  domain.FareBreakdown `json:"fare"`
}

// Quote handles POST /v1/quotes
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.quoteService.Quote(c.Request.Context(), service.QuoteRequest{
		PickupLat: req.PickupLat,
		PickupLng: req.PickupLng,
		StoreLat:  req.StoreLat,
		StoreLng:  req.StoreLng,
		PickupAddress: domain.Address{
			Line1:      req.PickupAddress.Line1,
			Line2:      req.PickupAddress.Line2,
			City:       req.PickupAddress.City,
			State:      req.PickupAddress.State,
			PostalCode: req.PickupAddress.PostalCode,
			Country:    req.PickupAddress.Country,
		},
		BoxSize:    domain.BoxSize(req.BoxSize),
		Tip:        req.Tip,
		IsDonation: req.IsDonation,
		IsRush:     req.IsRush,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, QuoteResponse{
		Route: result.Route,
		Fare:  result.Fare,
	})
}
