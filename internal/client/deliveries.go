package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"marketplace-client/internal/domain"
)

type DeliveryQuery struct {
	DeliveryPersonID int64
	Status           domain.DeliveryStatus
}

func (q DeliveryQuery) values() url.Values {
	v := url.Values{}
	if q.DeliveryPersonID > 0 {
		v.Set("deliveryPersonId", strconv.FormatInt(q.DeliveryPersonID, 10))
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	return v
}

func (c *Client) ListDeliveries(ctx context.Context, query DeliveryQuery) ([]domain.Delivery, error) {
	var deliveries []domain.Delivery
	err := c.do(ctx, call{
		op:       "ListDeliveries",
		fallback: "Failed to fetch deliveries",
		method:   http.MethodGet,
		path:     "/api/deliveries",
		query:    query.values(),
	}, &deliveries)
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (c *Client) GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error) {
	return c.delivery(ctx, call{
		op:       "GetDelivery",
		fallback: "Failed to fetch delivery",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/deliveries/%d", id),
	})
}

func (c *Client) TrackDelivery(ctx context.Context, trackingCode string) (*domain.Delivery, error) {
	return c.delivery(ctx, call{
		op:       "TrackDelivery",
		fallback: "Failed to track delivery",
		method:   http.MethodGet,
		path:     "/api/deliveries/track/" + url.PathEscape(trackingCode),
	})
}

func (c *Client) AcceptDelivery(ctx context.Context, id int64) (*domain.Delivery, error) {
	return c.delivery(ctx, call{
		op:       "AcceptDelivery",
		fallback: "Failed to accept delivery",
		method:   http.MethodPut,
		path:     fmt.Sprintf("/api/deliveries/%d/accept", id),
	})
}

func (c *Client) UpdateDeliveryStatus(ctx context.Context, id int64, status domain.DeliveryStatus) (*domain.Delivery, error) {
	return c.delivery(ctx, call{
		op:       "UpdateDeliveryStatus",
		fallback: "Failed to update delivery status",
		method:   http.MethodPut,
		path:     fmt.Sprintf("/api/deliveries/%d/status", id),
		body:     statusUpdate{Status: string(status)},
	})
}

func (c *Client) UpdateLocation(ctx context.Context, id int64, location domain.Location) (*domain.Delivery, error) {
	return c.delivery(ctx, call{
		op:       "UpdateLocation",
		fallback: "Failed to update location",
		method:   http.MethodPut,
		path:     fmt.Sprintf("/api/deliveries/%d/location", id),
		body:     location,
	})
}

func (c *Client) delivery(ctx context.Context, in call) (*domain.Delivery, error) {
	var delivery domain.Delivery
	if err := c.do(ctx, in, &delivery); err != nil {
		return nil, err
	}
	return &delivery, nil
}
