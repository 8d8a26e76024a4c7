package store

import (
	"context"
	"fmt"

	"marketplace-client/internal/cart"
	"marketplace-client/internal/client"
	"marketplace-client/internal/domain"
	"marketplace-client/internal/lifecycle"
)

type OrderStore struct {
	api       OrderAPI
	publisher EventPublisher
	orders    *Container[domain.Order]
}

// NewOrderStore builds the store. publisher may be nil.
func NewOrderStore(api OrderAPI, publisher EventPublisher) *OrderStore {
	return &OrderStore{
		api:       api,
		publisher: publisher,
		orders:    NewContainer(func(o domain.Order) int64 { return o.ID }),
	}
}

func (s *OrderStore) Fetch(ctx context.Context, query client.OrderQuery) error {
	t := s.orders.Begin()
	orders, err := s.api.ListOrders(ctx, query)
	if err != nil {
		s.orders.Fail(t, client.Message(err, "Failed to fetch orders"))
		return err
	}
	s.orders.ReplaceAll(t, orders)
	return nil
}

func (s *OrderStore) FetchByID(ctx context.Context, id int64) error {
	t := s.orders.Begin()
	order, err := s.api.GetOrder(ctx, id)
	if err != nil {
		s.orders.Fail(t, client.Message(err, "Failed to fetch order"))
		return err
	}
	s.orders.SetCurrent(t, *order)
	return nil
}

// Create places an order, puts it first in the list and selects it.
func (s *OrderStore) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	t := s.orders.Begin()
	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		s.orders.Fail(t, client.Message(err, "Order creation failed"))
		return nil, err
	}
	created := *order
	s.orders.Update(t, func(items []domain.Order, _ *domain.Order) ([]domain.Order, *domain.Order) {
		return append([]domain.Order{created}, items...), &created
	})

	publish(ctx, s.publisher, domain.Event{
		Type:         domain.EventOrderPlaced,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Status:       string(order.Status),
	})
	return order, nil
}

// Checkout places an order for the cart contents and empties the cart once
// the backend accepts it. The delivery address falls back to the user's.
func (s *OrderStore) Checkout(ctx context.Context, c *cart.Cart, user *domain.User, paymentMethod string) (*domain.Order, error) {
	address := ""
	if user != nil {
		address = user.Address
	}
	req, err := c.CheckoutRequest(address, paymentMethod)
	if err != nil {
		return nil, err
	}

	order, err := s.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	c.Clear()
	return order, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if err := s.guard(id, status); err != nil {
		return nil, err
	}

	t := s.orders.Begin()
	order, err := s.api.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		s.orders.Fail(t, client.Message(err, "Failed to update order status"))
		return nil, err
	}
	s.orders.Replace(t, *order)

	publish(ctx, s.publisher, domain.Event{
		Type:         domain.EventOrderStatusChanged,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Status:       string(order.Status),
	})
	return order, nil
}

func (s *OrderStore) Cancel(ctx context.Context, id int64) (*domain.Order, error) {
	if err := s.guard(id, domain.OrderCancelled); err != nil {
		return nil, err
	}

	t := s.orders.Begin()
	order, err := s.api.CancelOrder(ctx, id)
	if err != nil {
		s.orders.Fail(t, client.Message(err, "Failed to cancel order"))
		return nil, err
	}
	s.orders.Replace(t, *order)

	publish(ctx, s.publisher, domain.Event{
		Type:         domain.EventOrderCancelled,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Status:       string(order.Status),
	})
	return order, nil
}

// guard rejects a move the transition table forbids. Orders not loaded yet
// are left for the backend to judge.
func (s *OrderStore) guard(id int64, to domain.OrderStatus) error {
	order, ok := s.orders.Find(id)
	if !ok || lifecycle.CanTransitionOrder(order.Status, to) {
		return nil
	}
	err := fmt.Errorf("order %d from %s to %s: %w", id, order.Status, to, lifecycle.ErrInvalidTransition)
	s.orders.SetError(fmt.Sprintf("Cannot change order from %s to %s", lifecycle.Label(string(order.Status)), lifecycle.Label(string(to))))
	return err
}

func (s *OrderStore) ClearCurrent() {
	s.orders.ClearCurrent()
}

func (s *OrderStore) ClearError() {
	s.orders.ClearError()
}

func (s *OrderStore) Orders() []domain.Order {
	return s.orders.Items()
}

func (s *OrderStore) Current() (domain.Order, bool) {
	return s.orders.Current()
}

func (s *OrderStore) Snapshot() State[domain.Order] {
	return s.orders.Snapshot()
}
