package gateway_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"marketplace-client/internal/analytics"
	"marketplace-client/internal/cart"
	"marketplace-client/internal/client"
	"marketplace-client/internal/domain"
	"marketplace-client/internal/gateway"
	"marketplace-client/internal/routes"
	"marketplace-client/internal/session"
	"marketplace-client/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now = time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	customer   = domain.User{ID: 1, Role: domain.RoleCustomer, Email: "ann@example.com", Address: "12 Elm St"}
	owner      = domain.User{ID: 2, Role: domain.RoleRestaurant, Email: "luigi@example.com"}
	driver     = domain.User{ID: 3, Role: domain.RoleDelivery, Email: "dan@example.com"}
	admin      = domain.User{ID: 4, Role: domain.RoleAdmin, Email: "root@example.com"}
	pizzeria   = domain.Restaurant{ID: 4, Name: "Luigi's", Cuisine: "Italian", Approved: true, OwnerID: 2}
	margherita = domain.MenuItem{ID: 10, RestaurantID: 4, Name: "Margherita", Price: 12.50, Category: "Pizza", Available: true}
)

type fixture struct {
	gw        *gateway.Gateway
	handler   http.Handler
	tokenPath string
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// newFixture starts a fake backend and a gateway signed in as user, or
// anonymous when user is nil.
func newFixture(t *testing.T, user *domain.User, register func(r *mux.Router), opts ...gateway.Option) *fixture {
	t.Helper()

	r := mux.NewRouter()
	if register != nil {
		register(r)
	}
	backend := httptest.NewServer(r)
	t.Cleanup(backend.Close)

	tokenPath := filepath.Join(t.TempDir(), "token")
	sess := session.Session{}
	if user != nil {
		sess = session.New("tok-"+string(user.Role), *user)
	}

	c := client.New(client.Config{BaseURL: backend.URL}, backend.Client())
	opts = append([]gateway.Option{gateway.WithClock(func() time.Time { return now })}, opts...)
	gw := gateway.NewGateway(gateway.Config{PollInterval: 5 * time.Millisecond}, c, storage.NewFileTokenStore(tokenPath), sess, opts...)
	return &fixture{gw: gw, handler: gw.SetupRoutes(), tokenPath: tokenPath}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t, nil, nil)

	rr := f.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"marketplace-web"}`, rr.Body.String())
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name         string
		user         *domain.User
		method       string
		path         string
		wantStatus   int
		wantRedirect string
	}{
		{name: "anonymous cart goes to login", method: http.MethodGet, path: "/api/cart", wantStatus: http.StatusUnauthorized, wantRedirect: "/login"},
		{name: "customer cannot open analytics", user: &customer, method: http.MethodGet, path: "/api/admin/analytics", wantStatus: http.StatusForbidden, wantRedirect: "/"},
		{name: "driver cannot manage menu", user: &driver, method: http.MethodPost, path: "/api/menu/items", wantStatus: http.StatusForbidden, wantRedirect: "/"},
		{name: "signed in user cannot log in again", user: &owner, method: http.MethodPost, path: "/api/session/login", wantStatus: http.StatusForbidden, wantRedirect: "/restaurant/dashboard"},
		{name: "anonymous dashboard goes to login", method: http.MethodGet, path: "/api/dashboard", wantStatus: http.StatusUnauthorized, wantRedirect: "/login"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t, testCase.user, nil)

			rr := f.do(t, testCase.method, testCase.path, map[string]string{})

			assert.Equal(t, testCase.wantStatus, rr.Code)
			decision := decode[routes.Decision](t, rr)
			assert.False(t, decision.Allowed)
			assert.Equal(t, testCase.wantRedirect, decision.Redirect)
		})
	}
}

func TestLoginAndLogout(t *testing.T) {
	var authHeader string
	f := newFixture(t, nil, func(r *mux.Router) {
		r.HandleFunc("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
			respond(w, http.StatusOK, domain.AuthResponse{Token: "tok-ann", User: customer})
		}).Methods(http.MethodPost)
		r.HandleFunc("/api/orders", func(w http.ResponseWriter, req *http.Request) {
			authHeader = req.Header.Get("Authorization")
			assert.Equal(t, "1", req.URL.Query().Get("customerId"))
			respond(w, http.StatusOK, []domain.Order{
				{ID: 5, Status: domain.OrderPreparing},
				{ID: 6, Status: domain.OrderDelivered},
			})
		}).Methods(http.MethodGet)
	})

	rr := f.do(t, http.MethodPost, "/api/session/login", map[string]string{"email": "ann@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var view struct {
		Authenticated bool   `json:"authenticated"`
		Home          string `json:"home"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.True(t, view.Authenticated)
	assert.Equal(t, "/customer/dashboard", view.Home)

	saved, err := os.ReadFile(f.tokenPath)
	require.NoError(t, err)
	assert.Equal(t, "tok-ann", string(saved))

	rr = f.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Bearer tok-ann", authHeader)

	var dashboard struct {
		ActiveOrders []domain.Order `json:"activeOrders"`
		PastOrders   []domain.Order `json:"pastOrders"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dashboard))
	assert.Len(t, dashboard.ActiveOrders, 1)
	assert.Len(t, dashboard.PastOrders, 1)

	rr = f.do(t, http.MethodPost, "/api/session/logout", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, f.gw.Workspace().Client.Session().Anonymous())
	_, err = os.Stat(f.tokenPath)
	assert.True(t, os.IsNotExist(err))
}

func TestLogin_RejectedCredentials(t *testing.T) {
	f := newFixture(t, nil, func(r *mux.Router) {
		r.HandleFunc("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
			respond(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		}).Methods(http.MethodPost)
	})

	rr := f.do(t, http.MethodPost, "/api/session/login", map[string]string{"email": "ann@example.com", "password": "bad"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid credentials")
	assert.True(t, f.gw.Workspace().Client.Session().Anonymous())
}

func menuBackend(r *mux.Router) {
	r.HandleFunc("/api/restaurants/4", func(w http.ResponseWriter, req *http.Request) {
		respond(w, http.StatusOK, pizzeria)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/restaurants/4/menu", func(w http.ResponseWriter, req *http.Request) {
		respond(w, http.StatusOK, []domain.MenuItem{margherita})
	}).Methods(http.MethodGet)
}

func TestCartAndCheckout(t *testing.T) {
	var placed domain.CreateOrderRequest
	f := newFixture(t, &customer, func(r *mux.Router) {
		menuBackend(r)
		r.HandleFunc("/api/orders", func(w http.ResponseWriter, req *http.Request) {
			assert.NoError(t, json.NewDecoder(req.Body).Decode(&placed))
			respond(w, http.StatusCreated, domain.Order{
				ID:           77,
				RestaurantID: placed.RestaurantID,
				TotalAmount:  placed.TotalAmount,
				Status:       domain.OrderPending,
			})
		}).Methods(http.MethodPost)
	})

	rr := f.do(t, http.MethodPost, "/api/cart/items", map[string]any{"restaurantId": 4, "menuItemId": 10, "quantity": 2})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	snap := decode[cart.Snapshot](t, rr)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("29.99").Equal(snap.Total), snap.Total.String())

	rr = f.do(t, http.MethodPost, "/api/cart/checkout", map[string]string{"paymentMethod": "CASH"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	order := decode[domain.Order](t, rr)
	assert.Equal(t, int64(77), order.ID)
	assert.Equal(t, "12 Elm St", placed.DeliveryAddress)
	assert.Equal(t, "CASH", placed.PaymentMethod)
	assert.Equal(t, 29.99, placed.TotalAmount)

	rr = f.do(t, http.MethodGet, "/api/cart", nil)
	assert.Empty(t, decode[cart.Snapshot](t, rr).Items)

	rr = f.do(t, http.MethodPost, "/api/cart/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCart_UnknownMenuItem(t *testing.T) {
	f := newFixture(t, &customer, menuBackend)

	rr := f.do(t, http.MethodPost, "/api/cart/items", map[string]any{"restaurantId": 4, "menuItemId": 99})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCart_UnavailableMenuItem(t *testing.T) {
	soldOut := domain.MenuItem{ID: 11, RestaurantID: 4, Name: "Calzone", Price: 9, Available: false}
	f := newFixture(t, &customer, func(r *mux.Router) {
		r.HandleFunc("/api/restaurants/4", func(w http.ResponseWriter, req *http.Request) {
			respond(w, http.StatusOK, pizzeria)
		}).Methods(http.MethodGet)
		r.HandleFunc("/api/restaurants/4/menu", func(w http.ResponseWriter, req *http.Request) {
			respond(w, http.StatusOK, []domain.MenuItem{margherita, soldOut})
		}).Methods(http.MethodGet)
	})

	rr := f.do(t, http.MethodPost, "/api/cart/items", map[string]any{"restaurantId": 4, "menuItemId": 11})

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "Calzone is currently unavailable")
	assert.True(t, f.gw.Workspace().Cart.IsEmpty())
}

func TestCart_StaleMenuAfterFailedMenuFetch(t *testing.T) {
	sushi := domain.Restaurant{ID: 5, Name: "Sushi", Cuisine: "Japanese", Approved: true}
	salmon := domain.MenuItem{ID: 20, RestaurantID: 5, Name: "Salmon Nigiri", Price: 6, Available: true}
	var sushiMenuUp atomic.Bool
	f := newFixture(t, &customer, func(r *mux.Router) {
		menuBackend(r)
		r.HandleFunc("/api/restaurants/5", func(w http.ResponseWriter, req *http.Request) {
			respond(w, http.StatusOK, sushi)
		}).Methods(http.MethodGet)
		r.HandleFunc("/api/restaurants/5/menu", func(w http.ResponseWriter, req *http.Request) {
			if !sushiMenuUp.Load() {
				respond(w, http.StatusInternalServerError, map[string]string{"message": "menu service down"})
				return
			}
			respond(w, http.StatusOK, []domain.MenuItem{salmon})
		}).Methods(http.MethodGet)
	})

	rr := f.do(t, http.MethodGet, "/api/restaurants/4", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = f.do(t, http.MethodGet, "/api/restaurants/5", nil)
	require.Equal(t, http.StatusBadGateway, rr.Code)

	rr = f.do(t, http.MethodPost, "/api/cart/items", map[string]any{"restaurantId": 5, "menuItemId": 10})
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.True(t, f.gw.Workspace().Cart.IsEmpty())

	sushiMenuUp.Store(true)

	rr = f.do(t, http.MethodPost, "/api/cart/items", map[string]any{"restaurantId": 5, "menuItemId": 10})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.True(t, f.gw.Workspace().Cart.IsEmpty())

	rr = f.do(t, http.MethodPost, "/api/cart/items", map[string]any{"restaurantId": 5, "menuItemId": 20})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	snap := decode[cart.Snapshot](t, rr)
	require.NotNil(t, snap.Restaurant)
	assert.Equal(t, int64(5), snap.Restaurant.ID)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(20), snap.Items[0].ID)
}

func TestCart_AddedQuantitiesAccumulate(t *testing.T) {
	f := newFixture(t, &customer, menuBackend)

	rr := f.do(t, http.MethodPost, "/api/cart/items", map[string]any{"restaurantId": 4, "menuItemId": 10, "quantity": 2})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = f.do(t, http.MethodPost, "/api/cart/items", map[string]any{"restaurantId": 4, "menuItemId": 10, "quantity": 3})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = f.do(t, http.MethodPost, "/api/cart/items", map[string]any{"restaurantId": 4, "menuItemId": 10})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	snap := decode[cart.Snapshot](t, rr)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 6, snap.Items[0].Quantity)

	rr = f.do(t, http.MethodPost, "/api/cart/items", map[string]any{"restaurantId": 4, "menuItemId": 10, "quantity": -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCart_QuantityZeroRemovesItem(t *testing.T) {
	f := newFixture(t, &customer, menuBackend)

	rr := f.do(t, http.MethodPost, "/api/cart/items", map[string]any{"restaurantId": 4, "menuItemId": 10})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(t, http.MethodPut, "/api/cart/items/10", map[string]int{"quantity": 0})
	require.Equal(t, http.StatusOK, rr.Code)

	snap := decode[cart.Snapshot](t, rr)
	assert.Empty(t, snap.Items)
	assert.Nil(t, snap.Restaurant)
	assert.True(t, snap.Total.IsZero())
}

func restaurantBackend(status *domain.OrderStatus) func(r *mux.Router) {
	return func(r *mux.Router) {
		r.HandleFunc("/api/restaurants", func(w http.ResponseWriter, req *http.Request) {
			respond(w, http.StatusOK, []domain.Restaurant{pizzeria})
		}).Methods(http.MethodGet)
		r.HandleFunc("/api/orders", func(w http.ResponseWriter, req *http.Request) {
			respond(w, http.StatusOK, []domain.Order{
				{ID: 5, RestaurantID: 4, TotalAmount: 20, Status: *status, OrderTime: domain.Timestamp{Time: now.Add(-time.Hour)}},
			})
		}).Methods(http.MethodGet)
		r.HandleFunc("/api/orders/5/status", func(w http.ResponseWriter, req *http.Request) {
			var body map[string]string
			json.NewDecoder(req.Body).Decode(&body)
			*status = domain.OrderStatus(body["status"])
			respond(w, http.StatusOK, domain.Order{ID: 5, RestaurantID: 4, Status: *status})
		}).Methods(http.MethodPut)
	}
}

func TestRestaurantDashboardAndStatusUpdates(t *testing.T) {
	status := domain.OrderPending
	f := newFixture(t, &owner, restaurantBackend(&status))

	rr := f.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var dashboard struct {
		Restaurant   domain.Restaurant `json:"restaurant"`
		Incoming     []domain.Order    `json:"incoming"`
		OrdersToday  int               `json:"ordersToday"`
		RevenueToday decimal.Decimal   `json:"revenueToday"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dashboard))
	assert.Equal(t, int64(4), dashboard.Restaurant.ID)
	assert.Len(t, dashboard.Incoming, 1)
	assert.Equal(t, 1, dashboard.OrdersToday)
	assert.True(t, decimal.NewFromInt(20).Equal(dashboard.RevenueToday))

	rr = f.do(t, http.MethodPut, "/api/orders/5/status", map[string]string{"status": "DELIVERED"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "Cannot change order from Pending to Delivered")
	assert.Equal(t, domain.OrderPending, status)

	rr = f.do(t, http.MethodPut, "/api/orders/5/status", map[string]string{"status": "CONFIRMED"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, domain.OrderConfirmed, status)

	rr = f.do(t, http.MethodPut, "/api/orders/5/status", map[string]string{"status": "LOST"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMenuManager(t *testing.T) {
	var created domain.MenuItem
	deleted := false
	f := newFixture(t, &owner, func(r *mux.Router) {
		r.HandleFunc("/api/restaurants", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "2", req.URL.Query().Get("ownerId"))
			respond(w, http.StatusOK, []domain.Restaurant{pizzeria})
		}).Methods(http.MethodGet)
		r.HandleFunc("/api/restaurants/4/menu", func(w http.ResponseWriter, req *http.Request) {
			assert.NoError(t, json.NewDecoder(req.Body).Decode(&created))
			created.ID = 11
			respond(w, http.StatusCreated, created)
		}).Methods(http.MethodPost)
		r.HandleFunc("/api/restaurants/4/menu/11", func(w http.ResponseWriter, req *http.Request) {
			deleted = true
			respond(w, http.StatusOK, map[string]int64{"id": 11})
		}).Methods(http.MethodDelete)
	})

	rr := f.do(t, http.MethodPost, "/api/menu/items", domain.MenuItem{Name: "Calzone", Price: 7.5, Category: "Pizza"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, int64(4), created.RestaurantID)
	assert.Equal(t, int64(11), decode[domain.MenuItem](t, rr).ID)

	rr = f.do(t, http.MethodPost, "/api/menu/items", domain.MenuItem{Price: 7.5})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodDelete, "/api/menu/items/11", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, deleted)
}

func TestTrackOrder(t *testing.T) {
	f := newFixture(t, &customer, func(r *mux.Router) {
		r.HandleFunc("/api/orders/5", func(w http.ResponseWriter, req *http.Request) {
			respond(w, http.StatusOK, domain.Order{ID: 5, Status: domain.OrderPreparing})
		}).Methods(http.MethodGet)
	})

	rr := f.do(t, http.MethodGet, "/api/orders/5/track", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var view struct {
		Order    domain.Order `json:"order"`
		Label    string       `json:"label"`
		ETA      string       `json:"eta"`
		Timeline []struct {
			Completed bool `json:"completed"`
			Current   bool `json:"current"`
		} `json:"timeline"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "Preparing", view.Label)
	assert.NotEmpty(t, view.ETA)
	require.NotEmpty(t, view.Timeline)
	assert.True(t, view.Timeline[0].Completed)

	rr = f.do(t, http.MethodGet, "/api/orders/abc/track", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStreamOrder(t *testing.T) {
	f := newFixture(t, &customer, func(r *mux.Router) {
		r.HandleFunc("/api/orders/5", func(w http.ResponseWriter, req *http.Request) {
			respond(w, http.StatusOK, domain.Order{ID: 5, Status: domain.OrderReady})
		}).Methods(http.MethodGet)
	})
	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/orders/5/track/stream", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/x-ndjson", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	for i := 0; i < 2; i++ {
		require.True(t, scanner.Scan())
		var update struct {
			Order domain.Order `json:"order"`
			Label string       `json:"label"`
		}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &update))
		assert.Equal(t, int64(5), update.Order.ID)
		assert.Equal(t, "Ready", update.Label)
	}
}

func TestDeliveryFlow(t *testing.T) {
	f := newFixture(t, &driver, func(r *mux.Router) {
		r.HandleFunc("/api/deliveries", func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Query().Get("status") == string(domain.DeliveryPending) {
				respond(w, http.StatusOK, []domain.Delivery{{ID: 8, OrderID: 5, Status: domain.DeliveryPending}})
				return
			}
			delivered := domain.Timestamp{Time: now.Add(-2 * time.Hour)}
			respond(w, http.StatusOK, []domain.Delivery{
				{ID: 7, Status: domain.DeliveryDelivered, DeliveryFee: 4.5, DeliveredAt: &delivered},
			})
		}).Methods(http.MethodGet)
		r.HandleFunc("/api/deliveries/8/accept", func(w http.ResponseWriter, req *http.Request) {
			driverID := driver.ID
			respond(w, http.StatusOK, domain.Delivery{ID: 8, OrderID: 5, Status: domain.DeliveryAssigned, DeliveryPersonID: &driverID, TrackingCode: "TRK8"})
		}).Methods(http.MethodPut)
		r.HandleFunc("/api/deliveries/8/location", func(w http.ResponseWriter, req *http.Request) {
			var loc domain.Location
			json.NewDecoder(req.Body).Decode(&loc)
			respond(w, http.StatusOK, domain.Delivery{ID: 8, Status: domain.DeliveryAssigned, CurrentLatitude: &loc.Latitude, CurrentLongitude: &loc.Longitude})
		}).Methods(http.MethodPut)
		r.HandleFunc("/api/deliveries/8", func(w http.ResponseWriter, req *http.Request) {
			respond(w, http.StatusOK, domain.Delivery{ID: 8, Status: domain.DeliveryAssigned, TrackingCode: "TRK8"})
		}).Methods(http.MethodGet)
	}, gateway.WithQRGenerator(qrStub{}))

	rr := f.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var dashboard struct {
		Available []domain.Delivery  `json:"available"`
		Completed []domain.Delivery  `json:"completed"`
		Earnings  analytics.Earnings `json:"earnings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dashboard))
	assert.Len(t, dashboard.Available, 1)
	assert.Len(t, dashboard.Completed, 1)
	assert.Equal(t, 1, dashboard.Earnings.CompletedToday)
	assert.True(t, decimal.RequireFromString("4.5").Equal(dashboard.Earnings.Total))

	rr = f.do(t, http.MethodPut, "/api/deliveries/8/accept", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Empty(t, f.gw.Workspace().Deliveries.Available())

	rr = f.do(t, http.MethodPut, "/api/deliveries/8/status", map[string]string{"status": "DELIVERED"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = f.do(t, http.MethodPut, "/api/deliveries/8/location", domain.Location{Latitude: 51.5, Longitude: -0.12})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	loc, ok := f.gw.Workspace().Deliveries.CurrentLocation()
	require.True(t, ok)
	assert.Equal(t, 51.5, loc.Latitude)

	rr = f.do(t, http.MethodPut, "/api/deliveries/8/location", domain.Location{Latitude: 120})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodGet, "/api/deliveries/8/qrcode", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "qr:TRK8", rr.Body.String())
}

type qrStub struct{}

func (qrStub) Generate(code string) ([]byte, error) {
	return []byte("qr:" + code), nil
}

func TestDeliveryQRCode_DefaultGenerator(t *testing.T) {
	f := newFixture(t, &driver, func(r *mux.Router) {
		r.HandleFunc("/api/deliveries/8", func(w http.ResponseWriter, req *http.Request) {
			respond(w, http.StatusOK, domain.Delivery{ID: 8, Status: domain.DeliveryInTransit, TrackingCode: "TRK8"})
		}).Methods(http.MethodGet)
	})

	rr := f.do(t, http.MethodGet, "/api/deliveries/8/qrcode", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	_, err := png.Decode(bytes.NewReader(rr.Body.Bytes()))
	assert.NoError(t, err)
}

func adminBackend(r *mux.Router) {
	r.HandleFunc("/api/orders", func(w http.ResponseWriter, req *http.Request) {
		respond(w, http.StatusOK, []domain.Order{
			{ID: 1, RestaurantID: 4, TotalAmount: 60, Status: domain.OrderDelivered, OrderTime: domain.Timestamp{Time: now.Add(-time.Hour)}},
			{ID: 2, RestaurantID: 4, TotalAmount: 40, Status: domain.OrderPending, OrderTime: domain.Timestamp{Time: now.AddDate(0, 0, -2)}},
			{ID: 3, RestaurantID: 4, TotalAmount: 500, Status: domain.OrderDelivered, OrderTime: domain.Timestamp{Time: now.AddDate(0, 0, -40)}},
		})
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/restaurants", func(w http.ResponseWriter, req *http.Request) {
		respond(w, http.StatusOK, []domain.Restaurant{pizzeria, {ID: 9, Name: "New Place"}})
	}).Methods(http.MethodGet)
}

func TestAdminAnalytics(t *testing.T) {
	f := newFixture(t, &admin, adminBackend)

	rr := f.do(t, http.MethodGet, "/api/admin/analytics", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	report := decode[analytics.Report](t, rr)
	assert.Equal(t, analytics.Last7Days, report.Range)
	assert.Equal(t, 2, report.TotalOrders)
	assert.True(t, decimal.NewFromInt(100).Equal(report.Revenue.TotalRevenue))
	assert.True(t, decimal.NewFromInt(15).Equal(report.Revenue.PlatformFee))
	assert.True(t, decimal.NewFromInt(85).Equal(report.Revenue.RestaurantShare))

	rr = f.do(t, http.MethodGet, "/api/admin/analytics?range=all", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, decode[analytics.Report](t, rr).TotalOrders)

	rr = f.do(t, http.MethodGet, "/api/admin/analytics?range=decade", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var dashboard struct {
		Restaurants      int                 `json:"restaurants"`
		PendingApprovals []domain.Restaurant `json:"pendingApprovals"`
		OrdersToday      int                 `json:"ordersToday"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dashboard))
	assert.Equal(t, 2, dashboard.Restaurants)
	assert.Len(t, dashboard.PendingApprovals, 1)
	assert.Equal(t, 1, dashboard.OrdersToday)
}

func TestAdminSnapshots(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	f := newFixture(t, &admin, adminBackend, gateway.WithReports(storage.NewReportRepository(db)))

	mock.ExpectQuery("INSERT INTO analytics_reports").
		WithArgs("30days", 2, sqlmock.AnyArg(), sqlmock.AnyArg(), now, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	rr := f.do(t, http.MethodPost, "/api/admin/analytics/snapshots?range=30days", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var saved struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))
	assert.Equal(t, int64(9), saved.ID)

	mock.ExpectQuery("SELECT id, time_range").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "time_range", "total_orders", "total_revenue", "platform_fee", "generated_at", "payload"}))

	rr = f.do(t, http.MethodGet, "/api/admin/analytics/snapshots?limit=3", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `[]`, rr.Body.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminSnapshots_NoArchive(t *testing.T) {
	f := newFixture(t, &admin, adminBackend)

	rr := f.do(t, http.MethodGet, "/api/admin/analytics/snapshots", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestListRestaurants_HidesUnapprovedFromCustomers(t *testing.T) {
	f := newFixture(t, nil, func(r *mux.Router) {
		r.HandleFunc("/api/restaurants", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "Italian", req.URL.Query().Get("cuisine"))
			respond(w, http.StatusOK, []domain.Restaurant{pizzeria, {ID: 9, Name: "New Place", Cuisine: "Italian"}})
		}).Methods(http.MethodGet)
	})

	rr := f.do(t, http.MethodGet, "/api/restaurants?cuisine=Italian", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	restaurants := decode[[]domain.Restaurant](t, rr)
	require.Len(t, restaurants, 1)
	assert.Equal(t, int64(4), restaurants[0].ID)
}

func TestGetRestaurant_CategoryFilter(t *testing.T) {
	f := newFixture(t, nil, menuBackend)

	rr := f.do(t, http.MethodGet, "/api/restaurants/4?category=Desserts", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var view struct {
		Restaurant domain.Restaurant `json:"restaurant"`
		Categories []string          `json:"categories"`
		Menu       []domain.MenuItem `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "Luigi's", view.Restaurant.Name)
	assert.Equal(t, []string{"Pizza"}, view.Categories)
	assert.Empty(t, view.Menu)
}
