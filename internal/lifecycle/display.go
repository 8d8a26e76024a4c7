package lifecycle

import "marketplace-client/internal/domain"

var statusLabels = map[string]string{
	"PENDING":    "Pending",
	"CONFIRMED":  "Confirmed",
	"PREPARING":  "Preparing",
	"READY":      "Ready",
	"ASSIGNED":   "Assigned",
	"PICKED_UP":  "Picked Up",
	"IN_TRANSIT": "In Transit",
	"DELIVERED":  "Delivered",
	"CANCELLED":  "Cancelled",
}

var orderETAs = map[domain.OrderStatus]string{
	domain.OrderPending:   "2-5 minutes",
	domain.OrderConfirmed: "15-25 minutes",
	domain.OrderPreparing: "10-20 minutes",
	domain.OrderReady:     "5-10 minutes",
	domain.OrderPickedUp:  "15-30 minutes",
}

var timelineLabels = map[domain.OrderStatus]string{
	domain.OrderPending:   "Order Placed",
	domain.OrderConfirmed: "Confirmed",
	domain.OrderPreparing: "Preparing",
	domain.OrderReady:     "Ready",
	domain.OrderPickedUp:  "Picked Up",
	domain.OrderDelivered: "Delivered",
}

// Label returns human text for an order or delivery status.
func Label(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

func OrderCategory(status domain.OrderStatus) Category {
	switch status {
	case domain.OrderPending:
		return CategoryPending
	case domain.OrderDelivered:
		return CategoryComplete
	case domain.OrderCancelled:
		return CategoryCancelled
	default:
		return CategoryInProgress
	}
}

func DeliveryCategory(status domain.DeliveryStatus) Category {
	switch status {
	case domain.DeliveryPending:
		return CategoryPending
	case domain.DeliveryDelivered:
		return CategoryComplete
	case domain.DeliveryCancelled:
		return CategoryCancelled
	default:
		return CategoryInProgress
	}
}

func OrderTone(status domain.OrderStatus) Tone {
	switch status {
	case domain.OrderPending:
		return ToneWarning
	case domain.OrderConfirmed, domain.OrderPreparing:
		return ToneInfo
	case domain.OrderReady, domain.OrderPickedUp:
		return ToneProgress
	case domain.OrderDelivered:
		return ToneSuccess
	case domain.OrderCancelled:
		return ToneDanger
	default:
		return ToneNeutral
	}
}

func DeliveryTone(status domain.DeliveryStatus) Tone {
	switch status {
	case domain.DeliveryPending:
		return ToneWarning
	case domain.DeliveryAssigned:
		return ToneInfo
	case domain.DeliveryPickedUp, domain.DeliveryInTransit:
		return ToneProgress
	case domain.DeliveryDelivered:
		return ToneSuccess
	case domain.DeliveryCancelled:
		return ToneDanger
	default:
		return ToneNeutral
	}
}

// ETA is the estimated wait shown to a customer. Empty once the order is
// delivered or cancelled.
func ETA(status domain.OrderStatus) string {
	return orderETAs[status]
}

type TimelineStep struct {
	Status    domain.OrderStatus `json:"status"`
	Label     string             `json:"label"`
	Completed bool               `json:"completed"`
	Current   bool               `json:"current"`
}

// OrderTimeline marks each step up to and including status as completed.
// A cancelled order has no completed steps.
func OrderTimeline(status domain.OrderStatus) []TimelineStep {
	rank, ok := OrderRank(status)
	steps := make([]TimelineStep, 0, len(orderLine))
	for i, s := range orderLine {
		steps = append(steps, TimelineStep{
			Status:    s,
			Label:     timelineLabels[s],
			Completed: ok && i <= rank,
			Current:   ok && i == rank,
		})
	}
	return steps
}
