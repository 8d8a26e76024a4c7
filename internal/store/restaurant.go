package store

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"marketplace-client/internal/client"
	"marketplace-client/internal/domain"
)

type Filters struct {
	Cuisine    string  `json:"cuisine"`
	Rating     float64 `json:"rating"`
	PriceRange string  `json:"priceRange"`
}

// FilterUpdate carries the filter fields to change. Nil fields keep their
// current value.
type FilterUpdate struct {
	Cuisine    *string  `json:"cuisine"`
	Rating     *float64 `json:"rating"`
	PriceRange *string  `json:"priceRange"`
}

type RestaurantState struct {
	Restaurants []domain.Restaurant `json:"restaurants"`
	Current     *domain.Restaurant  `json:"currentRestaurant"`
	MenuItems   []domain.MenuItem   `json:"menuItems"`
	Loading     bool                `json:"isLoading"`
	Error       string              `json:"error,omitempty"`
	SearchQuery string              `json:"searchQuery"`
	Filters     Filters             `json:"filters"`
}

type RestaurantStore struct {
	api         RestaurantAPI
	cache       MenuCache
	restaurants *Container[domain.Restaurant]
	menu        *Container[domain.MenuItem]

	mu          sync.Mutex
	searchQuery string
	filters     Filters
	menuOwner   int64
}

// NewRestaurantStore builds the store. cache may be nil.
func NewRestaurantStore(api RestaurantAPI, cache MenuCache) *RestaurantStore {
	return &RestaurantStore{
		api:         api,
		cache:       cache,
		restaurants: NewContainer(func(r domain.Restaurant) int64 { return r.ID }),
		menu:        NewContainer(func(m domain.MenuItem) int64 { return m.ID }),
	}
}

func (s *RestaurantStore) Fetch(ctx context.Context, query client.RestaurantQuery) error {
	t := s.restaurants.Begin()
	restaurants, err := s.api.ListRestaurants(ctx, query)
	if err != nil {
		s.restaurants.Fail(t, client.Message(err, "Failed to fetch restaurants"))
		return err
	}
	s.restaurants.ReplaceAll(t, restaurants)
	return nil
}

func (s *RestaurantStore) FetchByID(ctx context.Context, id int64) error {
	t := s.restaurants.Begin()
	restaurant, err := s.api.GetRestaurant(ctx, id)
	if err != nil {
		s.restaurants.Fail(t, client.Message(err, "Failed to fetch restaurant"))
		return err
	}
	s.restaurants.SetCurrent(t, *restaurant)
	return nil
}

// FetchMenu serves the menu from the cache when present and fills the cache
// after a backend fetch. Cache failures only get logged.
func (s *RestaurantStore) FetchMenu(ctx context.Context, restaurantID int64) error {
	t := s.menu.Begin()

	if s.cache != nil {
		items, ok, err := s.cache.GetMenu(ctx, restaurantID)
		if err != nil {
			log.Printf("ERROR: Failed to read cached menu for restaurant %d: %v", restaurantID, err)
		} else if ok {
			s.replaceMenu(t, restaurantID, items)
			return nil
		}
	}

	items, err := s.api.ListMenuItems(ctx, restaurantID)
	if err != nil {
		s.menu.Fail(t, client.Message(err, "Failed to fetch menu items"))
		return err
	}
	s.replaceMenu(t, restaurantID, items)

	if s.cache != nil {
		if err := s.cache.SetMenu(ctx, restaurantID, items); err != nil {
			log.Printf("ERROR: Failed to cache menu for restaurant %d: %v", restaurantID, err)
		}
	}
	return nil
}

func (s *RestaurantStore) replaceMenu(t Ticket, restaurantID int64, items []domain.MenuItem) {
	if !s.menu.ReplaceAll(t, items) {
		return
	}
	s.mu.Lock()
	s.menuOwner = restaurantID
	s.mu.Unlock()
}

// MenuRestaurantID is the restaurant whose menu is loaded. A failed menu
// fetch keeps the previous menu and its owner.
func (s *RestaurantStore) MenuRestaurantID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menuOwner, s.menuOwner != 0
}

func (s *RestaurantStore) CreateMenuItem(ctx context.Context, restaurantID int64, item domain.MenuItem) (*domain.MenuItem, error) {
	t := s.menu.Begin()
	created, err := s.api.CreateMenuItem(ctx, restaurantID, item)
	if err != nil {
		s.menu.Fail(t, client.Message(err, "Failed to create menu item"))
		return nil, err
	}
	s.menu.Append(t, *created)
	s.invalidateMenu(ctx, restaurantID)
	return created, nil
}

func (s *RestaurantStore) UpdateMenuItem(ctx context.Context, restaurantID, itemID int64, item domain.MenuItem) (*domain.MenuItem, error) {
	t := s.menu.Begin()
	updated, err := s.api.UpdateMenuItem(ctx, restaurantID, itemID, item)
	if err != nil {
		s.menu.Fail(t, client.Message(err, "Failed to update menu item"))
		return nil, err
	}
	s.menu.Replace(t, *updated)
	s.invalidateMenu(ctx, restaurantID)
	return updated, nil
}

func (s *RestaurantStore) DeleteMenuItem(ctx context.Context, restaurantID, itemID int64) error {
	t := s.menu.Begin()
	deletedID, err := s.api.DeleteMenuItem(ctx, restaurantID, itemID)
	if err != nil {
		s.menu.Fail(t, client.Message(err, "Failed to delete menu item"))
		return err
	}
	s.menu.Remove(t, deletedID)
	s.invalidateMenu(ctx, restaurantID)
	return nil
}

func (s *RestaurantStore) invalidateMenu(ctx context.Context, restaurantID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMenu(ctx, restaurantID); err != nil {
		log.Printf("ERROR: Failed to invalidate menu cache for restaurant %d: %v", restaurantID, err)
	}
}

func (s *RestaurantStore) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

// SetFilters merges update into the current filters and returns the result.
func (s *RestaurantStore) SetFilters(update FilterUpdate) Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	if update.Cuisine != nil {
		s.filters.Cuisine = *update.Cuisine
	}
	if update.Rating != nil {
		s.filters.Rating = *update.Rating
	}
	if update.PriceRange != nil {
		s.filters.PriceRange = *update.PriceRange
	}
	return s.filters
}

// Query is the backend query for the current search and filters.
func (s *RestaurantStore) Query() client.RestaurantQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return client.RestaurantQuery{
		Search:     s.searchQuery,
		Cuisine:    s.filters.Cuisine,
		Rating:     s.filters.Rating,
		PriceRange: s.filters.PriceRange,
	}
}

// ClearCurrent drops the selected restaurant and its menu.
func (s *RestaurantStore) ClearCurrent() {
	s.restaurants.ClearCurrent()
	s.menu.Reset()
	s.mu.Lock()
	s.menuOwner = 0
	s.mu.Unlock()
}

func (s *RestaurantStore) ClearError() {
	s.restaurants.ClearError()
	s.menu.ClearError()
}

func (s *RestaurantStore) Current() (domain.Restaurant, bool) {
	return s.restaurants.Current()
}

func (s *RestaurantStore) Restaurants() []domain.Restaurant {
	return s.restaurants.Items()
}

func (s *RestaurantStore) MenuItem(id int64) (domain.MenuItem, bool) {
	return s.menu.Find(id)
}

// Menu returns the loaded menu, limited to category when it is not empty.
func (s *RestaurantStore) Menu(category string) []domain.MenuItem {
	items := s.menu.Items()
	if category == "" {
		return items
	}
	filtered := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Categories lists the distinct menu categories in sorted order.
func (s *RestaurantStore) Categories() []string {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, item := range s.menu.Items() {
		if item.Category == "" {
			continue
		}
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	sort.Strings(categories)
	return categories
}

// Visible applies the search text and filters to the loaded restaurants.
// Customers and anonymous visitors only see approved restaurants.
func (s *RestaurantStore) Visible(role domain.Role) []domain.Restaurant {
	s.mu.Lock()
	search := strings.ToLower(s.searchQuery)
	filters := s.filters
	s.mu.Unlock()

	approvedOnly := role == "" || role == domain.RoleCustomer
	visible := []domain.Restaurant{}
	for _, r := range s.restaurants.Items() {
		if approvedOnly && !r.Approved {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Name), search) &&
			!strings.Contains(strings.ToLower(r.Cuisine), search) {
			continue
		}
		if filters.Cuisine != "" && r.Cuisine != filters.Cuisine {
			continue
		}
		if filters.Rating > 0 && r.Rating < filters.Rating {
			continue
		}
		visible = append(visible, r)
	}
	return visible
}

func (s *RestaurantStore) Snapshot() RestaurantState {
	restaurants := s.restaurants.Snapshot()
	menu := s.menu.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	state := RestaurantState{
		Restaurants: restaurants.Items,
		Current:     restaurants.Current,
		MenuItems:   menu.Items,
		Loading:     restaurants.Loading || menu.Loading,
		Error:       restaurants.Error,
		SearchQuery: s.searchQuery,
		Filters:     s.filters,
	}
	if state.Error == "" {
		state.Error = menu.Error
	}
	return state
}
