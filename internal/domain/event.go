package domain

import "time"

const (
	EventOrderPlaced           = "order_placed"
	EventOrderStatusChanged    = "order_status_changed"
	EventOrderCancelled        = "order_cancelled"
	EventDeliveryAccepted      = "delivery_accepted"
	EventDeliveryStatusChanged = "delivery_status_changed"
)

// Event describes a user action that the backend accepted.
type Event struct {
	Type         string    `json:"type"`
	OrderID      int64     `json:"order_id"`
	DeliveryID   int64     `json:"delivery_id,omitempty"`
	RestaurantID int64     `json:"restaurant_id,omitempty"`
	Status       string    `json:"status,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
