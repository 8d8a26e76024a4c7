package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"marketplace-client/internal/analytics"
	"marketplace-client/internal/cart"
	"marketplace-client/internal/client"
	"marketplace-client/internal/domain"
	"marketplace-client/internal/lifecycle"
	"marketplace-client/internal/routes"
	"marketplace-client/internal/session"
	"marketplace-client/internal/storage"
	"marketplace-client/internal/store"
	"marketplace-client/internal/tracking"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type Config struct {
	PollInterval time.Duration
	ReportLimit  int
}

// ReportArchive keeps generated analytics reports.
type ReportArchive interface {
	SaveReport(ctx context.Context, report analytics.Report) (int64, error)
	ListReports(ctx context.Context, limit int) ([]storage.ReportRecord, error)
}

var _ ReportArchive = (*storage.ReportRepository)(nil)

// Workspace is everything bound to one session: a client carrying its
// token and the stores built on that client.
type Workspace struct {
	Client      *client.Client
	Auth        *store.AuthStore
	Restaurants *store.RestaurantStore
	Orders      *store.OrderStore
	Deliveries  *store.DeliveryStore
	Cart        *cart.Cart
}

func (ws *Workspace) User() *domain.User {
	return ws.Client.Session().User
}

// Gateway serves the marketplace views for the signed-in user over JSON.
type Gateway struct {
	config    Config
	client    *client.Client
	tokens    session.TokenStore
	cache     store.MenuCache
	publisher store.EventPublisher
	reports   ReportArchive
	qr        tracking.QRGenerator
	now       func() time.Time

	mu sync.RWMutex
	ws *Workspace
}

type Option func(*Gateway)

func WithMenuCache(cache store.MenuCache) Option {
	return func(g *Gateway) { g.cache = cache }
}

func WithPublisher(publisher store.EventPublisher) Option {
	return func(g *Gateway) { g.publisher = publisher }
}

func WithReports(reports ReportArchive) Option {
	return func(g *Gateway) { g.reports = reports }
}

func WithQRGenerator(qr tracking.QRGenerator) Option {
	return func(g *Gateway) { g.qr = qr }
}

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// NewGateway starts with sess, usually the result of session.Init.
func NewGateway(config Config, c *client.Client, tokens session.TokenStore, sess session.Session, opts ...Option) *Gateway {
	if config.PollInterval <= 0 {
		config.PollInterval = tracking.DefaultInterval
	}
	if config.ReportLimit <= 0 {
		config.ReportLimit = 20
	}
	g := &Gateway{
		config: config,
		client: c,
		tokens: tokens,
		qr:     tracking.DefaultQRGenerator{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.ws = g.newWorkspace(sess, cart.New())
	return g
}

func (g *Gateway) newWorkspace(sess session.Session, c *cart.Cart) *Workspace {
	bound := g.client.WithSession(sess)
	auth := store.NewAuthStore(bound, g.tokens)
	auth.Restore(sess)
	return &Workspace{
		Client:      bound,
		Auth:        auth,
		Restaurants: store.NewRestaurantStore(bound, g.cache),
		Orders:      store.NewOrderStore(bound, g.publisher),
		Deliveries:  store.NewDeliveryStore(bound, g.publisher),
		Cart:        c,
	}
}

// Workspace returns the workspace of the current session.
func (g *Gateway) Workspace() *Workspace {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ws
}

// switchSession rebuilds the workspace for sess. The cart survives a
// sign-in but not a sign-out.
func (g *Gateway) switchSession(sess session.Session) *Workspace {
	g.mu.Lock()
	defer g.mu.Unlock()
	c := g.ws.Cart
	if sess.Anonymous() {
		c = cart.New()
	}
	g.ws = g.newWorkspace(sess, c)
	return g.ws
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "marketplace-web",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// guard only lets the request through when the signed-in user may open
// view. Denied requests get the redirect the view would take.
func (g *Gateway) guard(view routes.Route, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := routes.Resolve(g.Workspace().User(), string(view))
		if decision.Allowed {
			next(w, r)
			return
		}

		status := http.StatusForbidden
		if decision.Redirect == string(routes.RouteLogin) {
			status = http.StatusUnauthorized
		}
		log.Printf("ROUTE: %s %s denied, redirect to %s", r.Method, r.URL.Path, decision.Redirect)
		writeJSON(w, status, decision)
	}
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/session", g.GetSession).Methods("GET")
	api.HandleFunc("/session/login", g.guard(routes.RouteLogin, g.Login)).Methods("POST")
	api.HandleFunc("/session/register", g.guard(routes.RouteRegister, g.Register)).Methods("POST")
	api.HandleFunc("/session/logout", g.Logout).Methods("POST")

	api.HandleFunc("/restaurants", g.guard(routes.RouteRestaurants, g.ListRestaurants)).Methods("GET")
	api.HandleFunc("/restaurants/{id}", g.guard(routes.RouteRestaurantDetails, g.GetRestaurant)).Methods("GET")

	api.HandleFunc("/cart", g.guard(routes.RouteCart, g.GetCart)).Methods("GET")
	api.HandleFunc("/cart", g.guard(routes.RouteCart, g.ClearCart)).Methods("DELETE")
	api.HandleFunc("/cart/items", g.guard(routes.RouteCart, g.AddCartItem)).Methods("POST")
	api.HandleFunc("/cart/items/{itemId}", g.guard(routes.RouteCart, g.SetCartQuantity)).Methods("PUT")
	api.HandleFunc("/cart/items/{itemId}", g.guard(routes.RouteCart, g.RemoveCartItem)).Methods("DELETE")
	api.HandleFunc("/cart/checkout", g.guard(routes.RouteCart, g.Checkout)).Methods("POST")

	api.HandleFunc("/orders/{id}/track", g.guard(routes.RouteOrderTracking, g.TrackOrder)).Methods("GET")
	api.HandleFunc("/orders/{id}/track/stream", g.guard(routes.RouteOrderTracking, g.StreamOrder)).Methods("GET")
	api.HandleFunc("/orders/{id}/status", g.guard(routes.RouteRestaurantDashboard, g.UpdateOrderStatus)).Methods("PUT")
	api.HandleFunc("/orders/{id}/cancel", g.guard(routes.RouteCustomerDashboard, g.CancelOrder)).Methods("PUT")

	api.HandleFunc("/menu/items", g.guard(routes.RouteMenuManager, g.CreateMenuItem)).Methods("POST")
	api.HandleFunc("/menu/items/{itemId}", g.guard(routes.RouteMenuManager, g.UpdateMenuItem)).Methods("PUT")
	api.HandleFunc("/menu/items/{itemId}", g.guard(routes.RouteMenuManager, g.DeleteMenuItem)).Methods("DELETE")

	api.HandleFunc("/deliveries/track/{code}", g.TrackDelivery).Methods("GET")
	api.HandleFunc("/deliveries/{id}/accept", g.guard(routes.RouteDeliveryDashboard, g.AcceptDelivery)).Methods("PUT")
	api.HandleFunc("/deliveries/{id}/status", g.guard(routes.RouteDeliveryDashboard, g.UpdateDeliveryStatus)).Methods("PUT")
	api.HandleFunc("/deliveries/{id}/location", g.guard(routes.RouteDeliveryDashboard, g.UpdateLocation)).Methods("PUT")
	api.HandleFunc("/deliveries/{id}/qrcode", g.guard(routes.RouteDeliveryDashboard, g.DeliveryQRCode)).Methods("GET")

	api.HandleFunc("/dashboard", g.Dashboard).Methods("GET")

	api.HandleFunc("/admin/analytics", g.guard(routes.RouteAdminAnalytics, g.Analytics)).Methods("GET")
	api.HandleFunc("/admin/analytics/snapshots", g.guard(routes.RouteAdminAnalytics, g.SaveSnapshot)).Methods("POST")
	api.HandleFunc("/admin/analytics/snapshots", g.guard(routes.RouteAdminAnalytics, g.ListSnapshots)).Methods("GET")

	return r
}

// NewHandler wraps the routes with the CORS policy of the web app.
func NewHandler(g *Gateway, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(g.SetupRoutes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}

// writeFailure maps a store or client error to a response. message is the
// text the store recorded, if any.
func writeFailure(w http.ResponseWriter, err error, message string) {
	if message == "" {
		message = err.Error()
	}

	status := http.StatusBadGateway
	var failure *client.RequestFailure
	switch {
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, cart.ErrEmptyCart):
		status = http.StatusBadRequest
	case errors.As(err, &failure) && failure.StatusCode >= 400 && failure.StatusCode < 500:
		status = failure.StatusCode
	}
	log.Printf("ERROR: %s: %v", message, err)
	http.Error(w, message, status)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}
