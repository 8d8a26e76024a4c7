package routes

import (
	"strings"

	"marketplace-client/internal/domain"
)

type Route string

const (
	RouteHome                Route = "/"
	RouteRestaurants         Route = "/restaurants"
	RouteRestaurantDetails   Route = "/restaurants/:id"
	RouteLogin               Route = "/login"
	RouteRegister            Route = "/register"
	RouteCustomerDashboard   Route = "/customer/dashboard"
	RouteCart                Route = "/cart"
	RouteOrderTracking       Route = "/orders/:id/track"
	RouteRestaurantDashboard Route = "/restaurant/dashboard"
	RouteMenuManager         Route = "/restaurant/menu"
	RouteDeliveryDashboard   Route = "/delivery/dashboard"
	RouteAdminDashboard      Route = "/admin/dashboard"
	RouteAdminAnalytics      Route = "/admin/analytics"
)

type access int

const (
	public access = iota
	guestOnly
	protected
)

type rule struct {
	route  Route
	access access
	roles  []domain.Role
}

var table = []rule{
	{route: RouteHome, access: public},
	{route: RouteRestaurants, access: public},
	{route: RouteRestaurantDetails, access: public},
	{route: RouteLogin, access: guestOnly},
	{route: RouteRegister, access: guestOnly},
	{route: RouteCustomerDashboard, access: protected, roles: []domain.Role{domain.RoleCustomer}},
	{route: RouteCart, access: protected, roles: []domain.Role{domain.RoleCustomer}},
	{route: RouteOrderTracking, access: protected, roles: []domain.Role{domain.RoleCustomer}},
	{route: RouteRestaurantDashboard, access: protected, roles: []domain.Role{domain.RoleRestaurant}},
	{route: RouteMenuManager, access: protected, roles: []domain.Role{domain.RoleRestaurant}},
	{route: RouteDeliveryDashboard, access: protected, roles: []domain.Role{domain.RoleDelivery}},
	{route: RouteAdminDashboard, access: protected, roles: []domain.Role{domain.RoleAdmin}},
	{route: RouteAdminAnalytics, access: protected, roles: []domain.Role{domain.RoleAdmin}},
}

// Home is the dashboard a signed-in role lands on. Anonymous visitors and
// unknown roles land on "/".
func Home(role domain.Role) string {
	switch role {
	case domain.RoleCustomer:
		return string(RouteCustomerDashboard)
	case domain.RoleRestaurant:
		return string(RouteRestaurantDashboard)
	case domain.RoleDelivery:
		return string(RouteDeliveryDashboard)
	case domain.RoleAdmin:
		return string(RouteAdminDashboard)
	}
	return string(RouteHome)
}

// Allowed lists the routes role can view without being redirected. The
// empty role is an anonymous visitor.
func Allowed(role domain.Role) []Route {
	allowed := []Route{}
	for _, r := range table {
		if r.permits(role) {
			allowed = append(allowed, r.route)
		}
	}
	return allowed
}

type Decision struct {
	Route    Route  `json:"route,omitempty"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// Resolve decides whether user may view path. user is nil for an
// anonymous visitor. Unknown paths redirect to "/".
func Resolve(user *domain.User, path string) Decision {
	r, ok := match(path)
	if !ok {
		return Decision{Redirect: string(RouteHome)}
	}

	var role domain.Role
	if user != nil {
		role = user.Role
	}

	switch r.access {
	case guestOnly:
		if user != nil {
			return Decision{Route: r.route, Redirect: Home(role)}
		}
	case protected:
		if user == nil {
			return Decision{Route: r.route, Redirect: string(RouteLogin)}
		}
		if !r.hasRole(role) {
			return Decision{Route: r.route, Redirect: string(RouteHome)}
		}
	}
	return Decision{Route: r.route, Allowed: true}
}

// Match returns the route pattern that path belongs to.
func Match(path string) (Route, bool) {
	r, ok := match(path)
	return r.route, ok
}

func match(path string) (rule, bool) {
	path = "/" + strings.Trim(path, "/")
	parts := strings.Split(path, "/")
	for _, r := range table {
		pattern := strings.Split(string(r.route), "/")
		if len(pattern) != len(parts) {
			continue
		}
		matched := true
		for i := range pattern {
			if strings.HasPrefix(pattern[i], ":") {
				if parts[i] == "" {
					matched = false
					break
				}
				continue
			}
			if pattern[i] != parts[i] {
				matched = false
				break
			}
		}
		if matched {
			return r, true
		}
	}
	return rule{}, false
}

func (r rule) permits(role domain.Role) bool {
	switch r.access {
	case public:
		return true
	case guestOnly:
		return role == ""
	default:
		return role != "" && r.hasRole(role)
	}
}

func (r rule) hasRole(role domain.Role) bool {
	if len(r.roles) == 0 {
		return true
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}
