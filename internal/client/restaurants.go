package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"marketplace-client/internal/domain"
)

type RestaurantQuery struct {
	Search     string
	Cuisine    string
	Rating     float64
	PriceRange string
	OwnerID    int64
}

func (q RestaurantQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Cuisine != "" {
		v.Set("cuisine", q.Cuisine)
	}
	if q.Rating > 0 {
		v.Set("rating", strconv.FormatFloat(q.Rating, 'f', -1, 64))
	}
	if q.PriceRange != "" {
		v.Set("priceRange", q.PriceRange)
	}
	if q.OwnerID > 0 {
		v.Set("ownerId", strconv.FormatInt(q.OwnerID, 10))
	}
	return v
}

func (c *Client) ListRestaurants(ctx context.Context, query RestaurantQuery) ([]domain.Restaurant, error) {
	var restaurants []domain.Restaurant
	err := c.do(ctx, call{
		op:       "ListRestaurants",
		fallback: "Failed to fetch restaurants",
		method:   http.MethodGet,
		path:     "/api/restaurants",
		query:    query.values(),
	}, &restaurants)
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (c *Client) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := c.do(ctx, call{
		op:       "GetRestaurant",
		fallback: "Failed to fetch restaurant",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/restaurants/%d", id),
	}, &restaurant)
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (c *Client) ListMenuItems(ctx context.Context, restaurantID int64) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := c.do(ctx, call{
		op:       "ListMenuItems",
		fallback: "Failed to fetch menu items",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/restaurants/%d/menu", restaurantID),
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, restaurantID int64, item domain.MenuItem) (*domain.MenuItem, error) {
	var created domain.MenuItem
	err := c.do(ctx, call{
		op:       "CreateMenuItem",
		fallback: "Failed to create menu item",
		method:   http.MethodPost,
		path:     fmt.Sprintf("/api/restaurants/%d/menu", restaurantID),
		body:     item,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, restaurantID, itemID int64, item domain.MenuItem) (*domain.MenuItem, error) {
	var updated domain.MenuItem
	err := c.do(ctx, call{
		op:       "UpdateMenuItem",
		fallback: "Failed to update menu item",
		method:   http.MethodPut,
		path:     fmt.Sprintf("/api/restaurants/%d/menu/%d", restaurantID, itemID),
		body:     item,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMenuItem returns the id of the removed item.
func (c *Client) DeleteMenuItem(ctx context.Context, restaurantID, itemID int64) (int64, error) {
	err := c.do(ctx, call{
		op:       "DeleteMenuItem",
		fallback: "Failed to delete menu item",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/api/restaurants/%d/menu/%d", restaurantID, itemID),
	}, nil)
	if err != nil {
		return 0, err
	}
	return itemID, nil
}
