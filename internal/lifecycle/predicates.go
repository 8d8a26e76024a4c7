package lifecycle

import "marketplace-client/internal/domain"

// IsActiveOrder reports whether a customer still waits on the order.
func IsActiveOrder(status domain.OrderStatus) bool {
	switch status {
	case domain.OrderPending, domain.OrderConfirmed, domain.OrderPreparing,
		domain.OrderReady, domain.OrderPickedUp:
		return true
	}
	return false
}

func AwaitingRestaurant(status domain.OrderStatus) bool {
	return status == domain.OrderPending || status == domain.OrderConfirmed
}

func InKitchen(status domain.OrderStatus) bool {
	return status == domain.OrderPreparing || status == domain.OrderReady
}

func IsActiveDelivery(status domain.DeliveryStatus) bool {
	switch status {
	case domain.DeliveryAssigned, domain.DeliveryPickedUp, domain.DeliveryInTransit:
		return true
	}
	return false
}

// IsAvailableDelivery reports whether a driver can still claim d.
func IsAvailableDelivery(d domain.Delivery) bool {
	return d.Status == domain.DeliveryPending && d.DeliveryPersonID == nil
}
