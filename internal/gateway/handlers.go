package gateway

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"marketplace-client/internal/client"
	"marketplace-client/internal/domain"
	"marketplace-client/internal/lifecycle"
	"marketplace-client/internal/routes"
	"marketplace-client/internal/store"
	"marketplace-client/internal/tracking"
)

type sessionView struct {
	User          *domain.User   `json:"user"`
	Authenticated bool           `json:"authenticated"`
	Home          string         `json:"home"`
	Routes        []routes.Route `json:"routes"`
}

func viewOf(ws *Workspace) sessionView {
	sess := ws.Client.Session()
	return sessionView{
		User:          sess.User,
		Authenticated: !sess.Anonymous(),
		Home:          routes.Home(sess.Role()),
		Routes:        routes.Allowed(sess.Role()),
	}
}

func (g *Gateway) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(g.Workspace()))
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (g *Gateway) Login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Email == "" || in.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	ws := g.Workspace()
	sess, err := ws.Auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeFailure(w, err, ws.Auth.Snapshot().Error)
		return
	}

	ws = g.switchSession(sess)
	log.Printf("SESSION: signed in user %d as %s", sess.User.ID, sess.Role())
	writeJSON(w, http.StatusOK, viewOf(ws))
}

func (g *Gateway) Register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.Email == "" || in.Password == "" || in.Name == "" {
		http.Error(w, "Name, email and password are required", http.StatusBadRequest)
		return
	}
	if in.Role == "" {
		in.Role = domain.RoleCustomer
	}

	ws := g.Workspace()
	user, err := ws.Auth.Register(r.Context(), in)
	if err != nil {
		writeFailure(w, err, ws.Auth.Snapshot().Error)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (g *Gateway) Logout(w http.ResponseWriter, r *http.Request) {
	ws := g.Workspace()
	if err := ws.Auth.Logout(r.Context()); err != nil {
		log.Printf("ERROR: Failed to clear session token: %v", err)
	}
	ws = g.switchSession(ws.Auth.Session())
	writeJSON(w, http.StatusOK, viewOf(ws))
}

func (g *Gateway) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	ws := g.Workspace()
	q := r.URL.Query()

	search := q.Get("search")
	cuisine := q.Get("cuisine")
	priceRange := q.Get("priceRange")
	update := store.FilterUpdate{Cuisine: &cuisine, PriceRange: &priceRange}
	rating := 0.0
	if raw := q.Get("rating"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "Invalid rating", http.StatusBadRequest)
			return
		}
		rating = parsed
	}
	update.Rating = &rating

	ws.Restaurants.SetSearchQuery(search)
	ws.Restaurants.SetFilters(update)

	if err := ws.Restaurants.Fetch(r.Context(), ws.Restaurants.Query()); err != nil {
		writeFailure(w, err, ws.Restaurants.Snapshot().Error)
		return
	}

	var role domain.Role
	if user := ws.User(); user != nil {
		role = user.Role
	}
	writeJSON(w, http.StatusOK, ws.Restaurants.Visible(role))
}

type restaurantView struct {
	Restaurant domain.Restaurant `json:"restaurant"`
	Categories []string          `json:"categories"`
	Menu       []domain.MenuItem `json:"menu"`
}

func (g *Gateway) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Invalid restaurant ID", http.StatusBadRequest)
		return
	}

	ws := g.Workspace()
	if err := ws.Restaurants.FetchByID(r.Context(), id); err != nil {
		writeFailure(w, err, ws.Restaurants.Snapshot().Error)
		return
	}
	if err := ws.Restaurants.FetchMenu(r.Context(), id); err != nil {
		writeFailure(w, err, ws.Restaurants.Snapshot().Error)
		return
	}

	restaurant, _ := ws.Restaurants.Current()
	writeJSON(w, http.StatusOK, restaurantView{
		Restaurant: restaurant,
		Categories: ws.Restaurants.Categories(),
		Menu:       ws.Restaurants.Menu(r.URL.Query().Get("category")),
	})
}

func (g *Gateway) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, g.Workspace().Cart.Snapshot())
}

type addItemRequest struct {
	RestaurantID int64 `json:"restaurantId"`
	MenuItemID   int64 `json:"menuItemId"`
	Quantity     int   `json:"quantity"`
}

// AddCartItem adds quantity units of a menu item, one when quantity is not
// set, on top of what the cart already holds. The restaurant and its menu
// are loaded first when the loaded ones belong to another restaurant.
func (g *Gateway) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var in addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if in.RestaurantID <= 0 || in.MenuItemID <= 0 {
		http.Error(w, "restaurantId and menuItemId are required", http.StatusBadRequest)
		return
	}
	if in.Quantity < 0 {
		http.Error(w, "Quantity cannot be negative", http.StatusBadRequest)
		return
	}

	ws := g.Workspace()
	restaurant, ok := ws.Restaurants.Current()
	if !ok || restaurant.ID != in.RestaurantID {
		if err := ws.Restaurants.FetchByID(r.Context(), in.RestaurantID); err != nil {
			writeFailure(w, err, ws.Restaurants.Snapshot().Error)
			return
		}
		restaurant, _ = ws.Restaurants.Current()
	}
	if menuOf, ok := ws.Restaurants.MenuRestaurantID(); !ok || menuOf != restaurant.ID {
		if err := ws.Restaurants.FetchMenu(r.Context(), restaurant.ID); err != nil {
			writeFailure(w, err, ws.Restaurants.Snapshot().Error)
			return
		}
	}

	item, ok := ws.Restaurants.MenuItem(in.MenuItemID)
	if !ok || (item.RestaurantID != 0 && item.RestaurantID != restaurant.ID) {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	if !item.Available {
		http.Error(w, item.Name+" is currently unavailable", http.StatusConflict)
		return
	}

	ws.Cart.AddItem(item, restaurant)
	if in.Quantity > 1 {
		ws.Cart.SetQuantity(item.ID, ws.Cart.Quantity(item.ID)+in.Quantity-1)
	}
	writeJSON(w, http.StatusOK, ws.Cart.Snapshot())
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (g *Gateway) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemId")
	if !ok {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	var in quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	ws := g.Workspace()
	ws.Cart.SetQuantity(id, in.Quantity)
	writeJSON(w, http.StatusOK, ws.Cart.Snapshot())
}

func (g *Gateway) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemId")
	if !ok {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	ws := g.Workspace()
	ws.Cart.RemoveItem(id)
	writeJSON(w, http.StatusOK, ws.Cart.Snapshot())
}

func (g *Gateway) ClearCart(w http.ResponseWriter, r *http.Request) {
	ws := g.Workspace()
	ws.Cart.Clear()
	writeJSON(w, http.StatusOK, ws.Cart.Snapshot())
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (g *Gateway) Checkout(w http.ResponseWriter, r *http.Request) {
	var in checkoutRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	ws := g.Workspace()
	order, err := ws.Orders.Checkout(r.Context(), ws.Cart, ws.User(), in.PaymentMethod)
	if err != nil {
		writeFailure(w, err, ws.Orders.Snapshot().Error)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

type trackView struct {
	Order    *domain.Order            `json:"order"`
	Label    string                   `json:"label,omitempty"`
	Tone     lifecycle.Tone           `json:"tone,omitempty"`
	ETA      string                   `json:"eta,omitempty"`
	Timeline []lifecycle.TimelineStep `json:"timeline,omitempty"`
	Loading  bool                     `json:"isLoading"`
	Error    string                   `json:"error,omitempty"`
}

func trackViewOf(state store.State[domain.Order]) trackView {
	view := trackView{Order: state.Current, Loading: state.Loading, Error: state.Error}
	if state.Current != nil {
		status := state.Current.Status
		view.Label = lifecycle.Label(string(status))
		view.Tone = lifecycle.OrderTone(status)
		view.ETA = lifecycle.ETA(status)
		view.Timeline = lifecycle.OrderTimeline(status)
	}
	return view
}

func (g *Gateway) TrackOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	ws := g.Workspace()
	if err := ws.Orders.FetchByID(r.Context(), id); err != nil {
		writeFailure(w, err, ws.Orders.Snapshot().Error)
		return
	}
	writeJSON(w, http.StatusOK, trackViewOf(ws.Orders.Snapshot()))
}

// StreamOrder writes one JSON line per poll until the caller goes away.
func (g *Gateway) StreamOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	orders := store.NewOrderStore(g.Workspace().Client, nil)
	poller := tracking.NewPoller(orders, g.config.PollInterval)

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)

	err := poller.Run(r.Context(), id, func(state store.State[domain.Order]) {
		if err := enc.Encode(trackViewOf(state)); err != nil {
			log.Printf("ERROR: Failed to write tracking update for order %d: %v", id, err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	})
	log.Printf("TRACKING: stream for order %d closed: %v", id, err)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (g *Gateway) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	var in statusRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	status := domain.OrderStatus(in.Status)
	if _, ranked := lifecycle.OrderRank(status); !ranked && status != domain.OrderCancelled {
		http.Error(w, "Unknown order status", http.StatusBadRequest)
		return
	}

	ws := g.Workspace()
	order, err := ws.Orders.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeFailure(w, err, ws.Orders.Snapshot().Error)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (g *Gateway) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	ws := g.Workspace()
	order, err := ws.Orders.Cancel(r.Context(), id)
	if err != nil {
		writeFailure(w, err, ws.Orders.Snapshot().Error)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// ownRestaurant finds the restaurant run by the signed-in owner.
func (g *Gateway) ownRestaurant(w http.ResponseWriter, r *http.Request, ws *Workspace) (domain.Restaurant, bool) {
	user := ws.User()
	if err := ws.Restaurants.Fetch(r.Context(), client.RestaurantQuery{OwnerID: user.ID}); err != nil {
		writeFailure(w, err, ws.Restaurants.Snapshot().Error)
		return domain.Restaurant{}, false
	}
	for _, restaurant := range ws.Restaurants.Restaurants() {
		if restaurant.OwnerID == user.ID {
			return restaurant, true
		}
	}
	http.Error(w, "No restaurant found for this account", http.StatusNotFound)
	return domain.Restaurant{}, false
}

func decodeMenuItem(w http.ResponseWriter, r *http.Request) (domain.MenuItem, bool) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return item, false
	}
	if item.Name == "" || item.Price < 0 {
		http.Error(w, "Menu item needs a name and a non-negative price", http.StatusBadRequest)
		return item, false
	}
	return item, true
}

func (g *Gateway) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	item, ok := decodeMenuItem(w, r)
	if !ok {
		return
	}
	ws := g.Workspace()
	restaurant, ok := g.ownRestaurant(w, r, ws)
	if !ok {
		return
	}

	item.RestaurantID = restaurant.ID
	created, err := ws.Restaurants.CreateMenuItem(r.Context(), restaurant.ID, item)
	if err != nil {
		writeFailure(w, err, ws.Restaurants.Snapshot().Error)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (g *Gateway) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemId")
	if !ok {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	item, ok := decodeMenuItem(w, r)
	if !ok {
		return
	}
	ws := g.Workspace()
	restaurant, ok := g.ownRestaurant(w, r, ws)
	if !ok {
		return
	}

	item.ID = id
	item.RestaurantID = restaurant.ID
	updated, err := ws.Restaurants.UpdateMenuItem(r.Context(), restaurant.ID, id, item)
	if err != nil {
		writeFailure(w, err, ws.Restaurants.Snapshot().Error)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (g *Gateway) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "itemId")
	if !ok {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	ws := g.Workspace()
	restaurant, ok := g.ownRestaurant(w, r, ws)
	if !ok {
		return
	}

	if err := ws.Restaurants.DeleteMenuItem(r.Context(), restaurant.ID, id); err != nil {
		writeFailure(w, err, ws.Restaurants.Snapshot().Error)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
