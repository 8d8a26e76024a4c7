package lifecycle

import (
	"errors"

	"marketplace-client/internal/domain"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type Category string

const (
	CategoryPending    Category = "pending"
	CategoryInProgress Category = "in progress"
	CategoryComplete   Category = "complete"
	CategoryCancelled  Category = "cancelled"
)

// Tone is the presentation-free form of a status badge color.
type Tone string

const (
	ToneWarning  Tone = "warning"
	ToneInfo     Tone = "info"
	ToneProgress Tone = "progress"
	ToneSuccess  Tone = "success"
	ToneDanger   Tone = "danger"
	ToneNeutral  Tone = "neutral"
)

var orderLine = []domain.OrderStatus{
	domain.OrderPending,
	domain.OrderConfirmed,
	domain.OrderPreparing,
	domain.OrderReady,
	domain.OrderPickedUp,
	domain.OrderDelivered,
}

var deliveryLine = []domain.DeliveryStatus{
	domain.DeliveryPending,
	domain.DeliveryAssigned,
	domain.DeliveryPickedUp,
	domain.DeliveryInTransit,
	domain.DeliveryDelivered,
}

var orderTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderPending:   {domain.OrderConfirmed, domain.OrderCancelled},
	domain.OrderConfirmed: {domain.OrderPreparing, domain.OrderCancelled},
	domain.OrderPreparing: {domain.OrderReady, domain.OrderCancelled},
	domain.OrderReady:     {domain.OrderPickedUp},
	domain.OrderPickedUp:  {domain.OrderDelivered},
	domain.OrderDelivered: {},
	domain.OrderCancelled: {},
}

var deliveryTransitions = map[domain.DeliveryStatus][]domain.DeliveryStatus{
	domain.DeliveryPending:   {domain.DeliveryAssigned, domain.DeliveryCancelled},
	domain.DeliveryAssigned:  {domain.DeliveryPickedUp, domain.DeliveryCancelled},
	domain.DeliveryPickedUp:  {domain.DeliveryInTransit},
	domain.DeliveryInTransit: {domain.DeliveryDelivered},
	domain.DeliveryDelivered: {},
	domain.DeliveryCancelled: {},
}

// OrderRank is the position of status on the order progression line.
// CANCELLED and unknown statuses are off the line.
func OrderRank(status domain.OrderStatus) (int, bool) {
	for i, s := range orderLine {
		if s == status {
			return i, true
		}
	}
	return 0, false
}

func DeliveryRank(status domain.DeliveryStatus) (int, bool) {
	for i, s := range deliveryLine {
		if s == status {
			return i, true
		}
	}
	return 0, false
}

func CanTransitionOrder(from, to domain.OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func CanTransitionDelivery(from, to domain.DeliveryStatus) bool {
	for _, s := range deliveryTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NextOrderStatuses lists the statuses an order may move to from status.
func NextOrderStatuses(status domain.OrderStatus) []domain.OrderStatus {
	return append([]domain.OrderStatus(nil), orderTransitions[status]...)
}

func NextDeliveryStatuses(status domain.DeliveryStatus) []domain.DeliveryStatus {
	return append([]domain.DeliveryStatus(nil), deliveryTransitions[status]...)
}

func IsTerminalOrder(status domain.OrderStatus) bool {
	return status == domain.OrderDelivered || status == domain.OrderCancelled
}

func IsTerminalDelivery(status domain.DeliveryStatus) bool {
	return status == domain.DeliveryDelivered || status == domain.DeliveryCancelled
}
