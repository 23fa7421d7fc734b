package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/service"
)

// OrderHandler handles HTTP requests for return pickup orders.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// AddressRequest is the HTTP request body for a pickup address.
type AddressRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country,omitempty"`
}

// CreateOrderRequest is the HTTP request body for booking a pickup.
type CreateOrderRequest struct {
	CustomerID    string         `json:"customer_id"`
	PickupLat     float64        `json:"pickup_lat"`
	PickupLng     float64        `json:"pickup_lng"`
	StoreLat      float64        `json:"store_lat"`
	StoreLng      float64        `json:"store_lng"`
	PickupAddress AddressRequest `json:"pickup_address"`
	BoxSize       string         `json:"box_size,omitempty"` // SMALL, MEDIUM, LARGE, XL
	Tip           float64        `json:"tip,omitempty"`
	IsDonation    bool           `json:"is_donation,omitempty"`
	IsRush        bool           `json:"is_rush,omitempty"`
}

// AcceptOrderRequest is the HTTP request body for a driver acceptance.
type AcceptOrderRequest struct {
	DriverID string `json:"driver_id"`
}

// CancelOrderRequest is the HTTP request body for cancelling an order.
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// OrderResponse is the HTTP representation of an order.
type OrderResponse struct {
	ID              string               `json:"id"`
	OrderNumber     string               `json:"order_number"`
	TrackingNumber  string               `json:"tracking_number"`
	CustomerID      string               `json:"customer_id"`
	DriverID        string               `json:"driver_id,omitempty"`
	Status          string               `json:"status"`
	BoxSize         string               `json:"box_size"`
	Tip             float64              `json:"tip"`
	IsDonation      bool                 `json:"is_donation"`
	Route           domain.RouteEstimate `json:"route"`
	Fare            domain.FareBreakdown `json:"fare"`
	BillableMinutes int                  `json:"billable_minutes"`
	PickedUpAt      string               `json:"picked_up_at,omitempty"`
	DeliveredAt     string               `json:"delivered_at,omitempty"`
	CancelledAt     string               `json:"cancelled_at,omitempty"`
	CancelReason    string               `json:"cancel_reason,omitempty"`
	CreatedAt       string               `json:"created_at"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		TrackingNumber:  order.TrackingNumber,
		CustomerID:      order.CustomerID,
		DriverID:        order.DriverID,
		Status:          string(order.Status),
		BoxSize:         string(order.BoxSize),
		Tip:             order.Tip,
		IsDonation:      order.IsDonation,
		Route:           order.Route,
		Fare:            order.Fare,
		BillableMinutes: order.BillableMinutes,
		PickedUpAt:      formatTime(order.PickedUpAt),
		DeliveredAt:     formatTime(order.DeliveredAt),
		CancelledAt:     formatTime(order.CancelledAt),
		CancelReason:    order.CancelReason,
		CreatedAt:       formatTime(order.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// CreateOrder handles POST /v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), service.CreateOrderRequest{
		CustomerID: req.CustomerID,
		PickupLat:  req.PickupLat,
		PickupLng:  req.PickupLng,
		StoreLat:   req.StoreLat,
		StoreLng:   req.StoreLng,
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

	respondJSON(c, http.StatusCreated, toOrderResponse(order))
}

// GetOrder handles GET /v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}

// GetAll handles GET /v1/orders, optionally filtered by order_number.
func (h *OrderHandler) GetAll(c *gin.Context) {
	if orderNumber := c.Query("order_number"); orderNumber != "" {
		order, err := h.orderService.GetOrderByNumber(c.Request.Context(), orderNumber)
		if err != nil {
			respondError(c, err)
			return
		}

		respondJSON(c, http.StatusOK, []OrderResponse{toOrderResponse(order)})
		return
	}

	orders, err := h.orderService.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(order))
	}

	respondJSON(c, http.StatusOK, response)
}

// AcceptOrder handles POST /v1/orders/:id/accept
func (h *OrderHandler) AcceptOrder(c *gin.Context) {
	var req AcceptOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.AcceptOrder(c.Request.Context(), service.AcceptOrderRequest{
		OrderID:  c.Param("id"),
		DriverID: req.DriverID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}

// MarkPickedUp handles POST /v1/orders/:id/pickup
func (h *OrderHandler) MarkPickedUp(c *gin.Context) {
	order, err := h.orderService.MarkPickedUp(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}

// CompleteOrder handles POST /v1/orders/:id/complete
func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	order, err := h.orderService.CompleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}

// CancelOrder handles POST /v1/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), service.CancelOrderRequest{
		OrderID: c.Param("id"),
		Reason:  req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}

// TrackOrder handles GET /v1/track/:trackingNumber
func (h *OrderHandler) TrackOrder(c *gin.Context) {
	order, err := h.orderService.TrackOrder(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}
