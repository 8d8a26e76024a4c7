package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"marketplace-client/internal/domain"
)

type OrderQuery struct {
	RestaurantID int64
	CustomerID   int64
	Status       domain.OrderStatus
}

func (q OrderQuery) values() url.Values {
	v := url.Values{}
	if q.RestaurantID > 0 {
		v.Set("restaurantId", strconv.FormatInt(q.RestaurantID, 10))
	}
	if q.CustomerID > 0 {
		v.Set("customerId", strconv.FormatInt(q.CustomerID, 10))
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	return v
}

type statusUpdate struct {
	Status string `json:"status"`
}

func (c *Client) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, call{
		op:       "CreateOrder",
		fallback: "Order creation failed",
		method:   http.MethodPost,
		path:     "/api/orders",
		body:     req,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, query OrderQuery) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, call{
		op:       "ListOrders",
		fallback: "Failed to fetch orders",
		method:   http.MethodGet,
		path:     "/api/orders",
		query:    query.values(),
	}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, call{
		op:       "GetOrder",
		fallback: "Failed to fetch order",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/orders/%d", id),
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, call{
		op:       "UpdateOrderStatus",
		fallback: "Failed to update order status",
		method:   http.MethodPut,
		path:     fmt.Sprintf("/api/orders/%d/status", id),
		body:     statusUpdate{Status: string(status)},
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, call{
		op:       "CancelOrder",
		fallback: "Failed to cancel order",
		method:   http.MethodPut,
		path:     fmt.Sprintf("/api/orders/%d/cancel", id),
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
