package store

import (
	"context"
	"log"
	"time"

	"marketplace-client/internal/client"
	"marketplace-client/internal/domain"
)

type RestaurantAPI interface {
	ListRestaurants(ctx context.Context, query client.RestaurantQuery) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	ListMenuItems(ctx context.Context, restaurantID int64) ([]domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, restaurantID int64, item domain.MenuItem) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, restaurantID, itemID int64, item domain.MenuItem) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, restaurantID, itemID int64) (int64, error)
}

type OrderAPI interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	ListOrders(ctx context.Context, query client.OrderQuery) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	CancelOrder(ctx context.Context, id int64) (*domain.Order, error)
}

type DeliveryAPI interface {
	ListDeliveries(ctx context.Context, query client.DeliveryQuery) ([]domain.Delivery, error)
	GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error)
	TrackDelivery(ctx context.Context, trackingCode string) (*domain.Delivery, error)
	AcceptDelivery(ctx context.Context, id int64) (*domain.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, id int64, status domain.DeliveryStatus) (*domain.Delivery, error)
	UpdateLocation(ctx context.Context, id int64, location domain.Location) (*domain.Delivery, error)
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type MenuCache interface {
	GetMenu(ctx context.Context, restaurantID int64) ([]domain.MenuItem, bool, error)
	SetMenu(ctx context.Context, restaurantID int64, items []domain.MenuItem) error
	InvalidateMenu(ctx context.Context, restaurantID int64) error
}

var (
	_ RestaurantAPI = (*client.Client)(nil)
	_ OrderAPI      = (*client.Client)(nil)
	_ DeliveryAPI   = (*client.Client)(nil)
	_ AuthAPI       = (*client.Client)(nil)
)

func publish(ctx context.Context, publisher EventPublisher, event domain.Event) {
	if publisher == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Printf("ERROR: Failed to publish %s event for order %d: %v", event.Type, event.OrderID, err)
	}
}
