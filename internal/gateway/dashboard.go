package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"marketplace-client/internal/analytics"
	"marketplace-client/internal/client"
	"marketplace-client/internal/domain"
	"marketplace-client/internal/lifecycle"
	"marketplace-client/internal/routes"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

func (g *Gateway) TrackDelivery(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	ws := g.Workspace()
	delivery, err := ws.Deliveries.Track(r.Context(), code)
	if err != nil {
		writeFailure(w, err, ws.Deliveries.Snapshot().Error)
		return
	}
	writeJSON(w, http.StatusOK, deliveryViewOf(*delivery))
}

type deliveryView struct {
	domain.Delivery
	Label        string                  `json:"label"`
	Tone         lifecycle.Tone          `json:"tone"`
	NextStatuses []domain.DeliveryStatus `json:"nextStatuses"`
}

func deliveryViewOf(d domain.Delivery) deliveryView {
	return deliveryView{
		Delivery:     d,
		Label:        lifecycle.Label(string(d.Status)),
		Tone:         lifecycle.DeliveryTone(d.Status),
		NextStatuses: lifecycle.NextDeliveryStatuses(d.Status),
	}
}

func (g *Gateway) AcceptDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Invalid delivery ID", http.StatusBadRequest)
		return
	}
	ws := g.Workspace()
	delivery, err := ws.Deliveries.Accept(r.Context(), id)
	if err != nil {
		writeFailure(w, err, ws.Deliveries.Snapshot().Error)
		return
	}
	writeJSON(w, http.StatusOK, deliveryViewOf(*delivery))
}

func (g *Gateway) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Invalid delivery ID", http.StatusBadRequest)
		return
	}
	var in statusRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	status := domain.DeliveryStatus(in.Status)
	if _, ranked := lifecycle.DeliveryRank(status); !ranked && status != domain.DeliveryCancelled {
		http.Error(w, "Unknown delivery status", http.StatusBadRequest)
		return
	}

	ws := g.Workspace()
	delivery, err := ws.Deliveries.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeFailure(w, err, ws.Deliveries.Snapshot().Error)
		return
	}
	writeJSON(w, http.StatusOK, deliveryViewOf(*delivery))
}

func (g *Gateway) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Invalid delivery ID", http.StatusBadRequest)
		return
	}
	var location domain.Location
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if location.Latitude < -90 || location.Latitude > 90 || location.Longitude < -180 || location.Longitude > 180 {
		http.Error(w, "Invalid coordinates", http.StatusBadRequest)
		return
	}

	ws := g.Workspace()
	ws.Deliveries.SetCurrentLocation(location)
	delivery, err := ws.Deliveries.UpdateLocation(r.Context(), id, location)
	if err != nil {
		writeFailure(w, err, ws.Deliveries.Snapshot().Error)
		return
	}
	writeJSON(w, http.StatusOK, deliveryViewOf(*delivery))
}

func (g *Gateway) DeliveryQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Invalid delivery ID", http.StatusBadRequest)
		return
	}
	ws := g.Workspace()
	if err := ws.Deliveries.FetchByID(r.Context(), id); err != nil {
		writeFailure(w, err, ws.Deliveries.Snapshot().Error)
		return
	}
	delivery, _ := ws.Deliveries.Current()
	if delivery.TrackingCode == "" {
		http.Error(w, "Delivery has no tracking code", http.StatusNotFound)
		return
	}

	png, err := g.qr.Generate(delivery.TrackingCode)
	if err != nil {
		writeFailure(w, err, "Failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

type customerDashboard struct {
	Role         domain.Role    `json:"role"`
	ActiveOrders []domain.Order `json:"activeOrders"`
	PastOrders   []domain.Order `json:"pastOrders"`
	CartItems    int            `json:"cartItems"`
}

type restaurantDashboard struct {
	Role         domain.Role       `json:"role"`
	Restaurant   domain.Restaurant `json:"restaurant"`
	Incoming     []domain.Order    `json:"incoming"`
	InKitchen    []domain.Order    `json:"inKitchen"`
	Ready        []domain.Order    `json:"ready"`
	OrdersToday  int               `json:"ordersToday"`
	RevenueToday decimal.Decimal   `json:"revenueToday"`
}

type deliveryDashboard struct {
	Role      domain.Role        `json:"role"`
	Available []deliveryView     `json:"available"`
	Active    []deliveryView     `json:"active"`
	Completed []deliveryView     `json:"completed"`
	Earnings  analytics.Earnings `json:"earnings"`
	Location  *domain.Location   `json:"currentLocation"`
}

type adminDashboard struct {
	Role             domain.Role                `json:"role"`
	Restaurants      int                        `json:"restaurants"`
	PendingApprovals []domain.Restaurant        `json:"pendingApprovals"`
	OrdersToday      int                        `json:"ordersToday"`
	RevenueToday     analytics.RevenueBreakdown `json:"revenueToday"`
	OrdersByStatus   map[domain.OrderStatus]int `json:"ordersByStatus"`
}

// Dashboard serves the landing view of the signed-in role.
func (g *Gateway) Dashboard(w http.ResponseWriter, r *http.Request) {
	ws := g.Workspace()
	user := ws.User()
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, routes.Decision{Redirect: string(routes.RouteLogin)})
		return
	}
	home := routes.Home(user.Role)
	if decision := routes.Resolve(user, home); !decision.Allowed {
		writeJSON(w, http.StatusForbidden, decision)
		return
	}

	switch user.Role {
	case domain.RoleCustomer:
		g.customerDashboard(w, r, ws, user)
	case domain.RoleRestaurant:
		g.restaurantDashboard(w, r, ws)
	case domain.RoleDelivery:
		g.deliveryDashboard(w, r, ws, user)
	case domain.RoleAdmin:
		g.adminDashboard(w, r, ws)
	default:
		writeJSON(w, http.StatusForbidden, routes.Decision{Redirect: string(routes.RouteHome)})
	}
}

func (g *Gateway) customerDashboard(w http.ResponseWriter, r *http.Request, ws *Workspace, user *domain.User) {
	if err := ws.Orders.Fetch(r.Context(), client.OrderQuery{CustomerID: user.ID}); err != nil {
		writeFailure(w, err, ws.Orders.Snapshot().Error)
		return
	}
	view := customerDashboard{
		Role:         user.Role,
		ActiveOrders: []domain.Order{},
		PastOrders:   []domain.Order{},
		CartItems:    ws.Cart.ItemCount(),
	}
	for _, order := range ws.Orders.Orders() {
		if lifecycle.IsActiveOrder(order.Status) {
			view.ActiveOrders = append(view.ActiveOrders, order)
		} else {
			view.PastOrders = append(view.PastOrders, order)
		}
	}
	writeJSON(w, http.StatusOK, view)
}

func (g *Gateway) restaurantDashboard(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	restaurant, ok := g.ownRestaurant(w, r, ws)
	if !ok {
		return
	}
	if err := ws.Orders.Fetch(r.Context(), client.OrderQuery{RestaurantID: restaurant.ID}); err != nil {
		writeFailure(w, err, ws.Orders.Snapshot().Error)
		return
	}

	orders := ws.Orders.Orders()
	today := analytics.Today(orders, g.now())
	view := restaurantDashboard{
		Role:         domain.RoleRestaurant,
		Restaurant:   restaurant,
		Incoming:     []domain.Order{},
		InKitchen:    []domain.Order{},
		Ready:        []domain.Order{},
		OrdersToday:  len(today),
		RevenueToday: analytics.TotalRevenue(today),
	}
	for _, order := range orders {
		switch {
		case lifecycle.AwaitingRestaurant(order.Status):
			view.Incoming = append(view.Incoming, order)
		case order.Status == domain.OrderReady:
			view.Ready = append(view.Ready, order)
		case lifecycle.InKitchen(order.Status):
			view.InKitchen = append(view.InKitchen, order)
		}
	}
	writeJSON(w, http.StatusOK, view)
}

func (g *Gateway) deliveryDashboard(w http.ResponseWriter, r *http.Request, ws *Workspace, user *domain.User) {
	if err := ws.Deliveries.Fetch(r.Context(), client.DeliveryQuery{DeliveryPersonID: user.ID}); err != nil {
		writeFailure(w, err, ws.Deliveries.Snapshot().Error)
		return
	}
	if err := ws.Deliveries.FetchAvailable(r.Context()); err != nil {
		writeFailure(w, err, ws.Deliveries.Snapshot().Error)
		return
	}

	mine := ws.Deliveries.Deliveries()
	view := deliveryDashboard{
		Role:      user.Role,
		Available: []deliveryView{},
		Active:    []deliveryView{},
		Completed: []deliveryView{},
		Earnings:  analytics.DriverEarningsToday(mine, g.now()),
	}
	for _, d := range ws.Deliveries.Available() {
		view.Available = append(view.Available, deliveryViewOf(d))
	}
	for _, d := range mine {
		if lifecycle.IsActiveDelivery(d.Status) {
			view.Active = append(view.Active, deliveryViewOf(d))
		} else if d.Status == domain.DeliveryDelivered {
			view.Completed = append(view.Completed, deliveryViewOf(d))
		}
	}
	if location, ok := ws.Deliveries.CurrentLocation(); ok {
		view.Location = &location
	}
	writeJSON(w, http.StatusOK, view)
}

func (g *Gateway) adminDashboard(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	orders, restaurants, ok := g.loadAll(w, r, ws)
	if !ok {
		return
	}

	today := analytics.Today(orders, g.now())
	view := adminDashboard{
		Role:             domain.RoleAdmin,
		Restaurants:      len(restaurants),
		PendingApprovals: []domain.Restaurant{},
		OrdersToday:      len(today),
		RevenueToday:     analytics.Breakdown(analytics.TotalRevenue(today)),
		OrdersByStatus:   analytics.OrdersByStatus(orders),
	}
	for _, restaurant := range restaurants {
		if !restaurant.Approved {
			view.PendingApprovals = append(view.PendingApprovals, restaurant)
		}
	}
	writeJSON(w, http.StatusOK, view)
}

func (g *Gateway) loadAll(w http.ResponseWriter, r *http.Request, ws *Workspace) ([]domain.Order, []domain.Restaurant, bool) {
	if err := ws.Orders.Fetch(r.Context(), client.OrderQuery{}); err != nil {
		writeFailure(w, err, ws.Orders.Snapshot().Error)
		return nil, nil, false
	}
	if err := ws.Restaurants.Fetch(r.Context(), client.RestaurantQuery{}); err != nil {
		writeFailure(w, err, ws.Restaurants.Snapshot().Error)
		return nil, nil, false
	}
	return ws.Orders.Orders(), ws.Restaurants.Restaurants(), true
}

func (g *Gateway) buildReport(w http.ResponseWriter, r *http.Request) (analytics.Report, bool) {
	timeRange, err := analytics.ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return analytics.Report{}, false
	}
	orders, restaurants, ok := g.loadAll(w, r, g.Workspace())
	if !ok {
		return analytics.Report{}, false
	}
	return analytics.BuildReport(orders, restaurants, timeRange, g.now()), true
}

func (g *Gateway) Analytics(w http.ResponseWriter, r *http.Request) {
	report, ok := g.buildReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

var errNoArchive = errors.New("report archive is not configured")

type snapshotResponse struct {
	ID     int64            `json:"id"`
	Report analytics.Report `json:"report"`
}

// SaveSnapshot archives the report for the requested range.
func (g *Gateway) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if g.reports == nil {
		http.Error(w, errNoArchive.Error(), http.StatusServiceUnavailable)
		return
	}
	report, ok := g.buildReport(w, r)
	if !ok {
		return
	}

	id, err := g.reports.SaveReport(r.Context(), report)
	if err != nil {
		writeFailure(w, err, "Failed to save report")
		return
	}
	writeJSON(w, http.StatusCreated, snapshotResponse{ID: id, Report: report})
}

func (g *Gateway) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	if g.reports == nil {
		http.Error(w, errNoArchive.Error(), http.StatusServiceUnavailable)
		return
	}
	limit := g.config.ReportLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := g.reports.ListReports(r.Context(), limit)
	if err != nil {
		writeFailure(w, err, "Failed to list reports")
		return
	}
	writeJSON(w, http.StatusOK, records)
}
