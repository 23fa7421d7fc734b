package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationOrderBooked       NotificationType = "ORDER_BOOKED"
	NotificationDriverAssigned    NotificationType = "DRIVER_ASSIGNED"
	NotificationPickupConfirmed   NotificationType = "PICKUP_CONFIRMED"
	NotificationDeliveryCompleted NotificationType = "DELIVERY_COMPLETED"
	NotificationOrderCancelled    NotificationType = "ORDER_CANCELLED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string // Customer or Driver ID
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - SMS client (Twilio)
	// - Email client (SendGrid)
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyOrderBooked notifies the customer that the pickup is booked.
func (s *NotificationService) NotifyOrderBooked(ctx context.Context, order *domain.Order) error {
	notification := Notification{
		Type:        NotificationOrderBooked,
		RecipientID: order.CustomerID,
		Title:       "Pickup Booked",
		Message: fmt.Sprintf("Your return pickup %s is booked. Track it with %s.",
			order.OrderNumber, order.TrackingNumber),
		Data: map[string]interface{}{
			"order_id":        order.ID,
			"order_number":    order.OrderNumber,
			"tracking_number": order.TrackingNumber,
			"estimated_total": order.Fare.Customer.Total,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyDriverAssigned notifies the customer that a driver accepted the pickup.
func (s *NotificationService) NotifyDriverAssigned(ctx context.Context, order *domain.Order) error {
	notification := Notification{
		Type:        NotificationDriverAssigned,
		RecipientID: order.CustomerID,
		Title:       "Driver On The Way",
		Message:     fmt.Sprintf("A driver has accepted your pickup %s.", order.OrderNumber),
		Data: map[string]interface{}{
			"order_id":  order.ID,
			"driver_id": order.DriverID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyPickupConfirmed notifies the customer that the package was collected.
func (s *NotificationService) NotifyPickupConfirmed(ctx context.Context, order *domain.Order) error {
	notification := Notification{
		Type:        NotificationPickupConfirmed,
		RecipientID: order.CustomerID,
		Title:       "Package Picked Up",
		Message:     fmt.Sprintf("Your return %s is on its way to the store.", order.TrackingNumber),
		Data: map[string]interface{}{
			"order_id":     order.ID,
			"picked_up_at": order.PickedUpAt,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyDeliveryCompleted notifies the customer of the final charge.
func (s *NotificationService) NotifyDeliveryCompleted(ctx context.Context, order *domain.Order) error {
	notification := Notification{
		Type:        NotificationDeliveryCompleted,
		RecipientID: order.CustomerID,
		Title:       "Return Delivered",
		Message: fmt.Sprintf("Your return %s was delivered. Total charged: $%.2f",
			order.TrackingNumber, order.Fare.Customer.Total),
		Data: map[string]interface{}{
			"order_id":         order.ID,
			"delivered_at":     order.DeliveredAt,
			"customer_total":   order.Fare.Customer.Total,
			"driver_earnings":  order.Fare.Driver.Total,
			"billable_minutes": order.BillableMinutes,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyOrderCancelled notifies the affected parties about a cancellation.
func (s *NotificationService) NotifyOrderCancelled(ctx context.Context, order *domain.Order) error {
	notification := Notification{
		Type:        NotificationOrderCancelled,
		RecipientID: order.CustomerID,
		Title:       "Pickup Cancelled",
		Message:     fmt.Sprintf("Your pickup %s has been cancelled.", order.OrderNumber),
		Data: map[string]interface{}{
			"order_id": order.ID,
			"reason":   order.CancelReason,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	// In a real implementation, this would:
	// 1. Store notification in database
	// 2. Send push notification via FCM/APNS
	// 3. Send SMS if enabled

	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	return nil
}
