package analytics

import (
	"time"

	"marketplace-client/internal/domain"

	"github.com/shopspring/decimal"
)

// Report is the admin analytics view for one time range.
type Report struct {
	Range             TimeRange                  `json:"range"`
	GeneratedAt       time.Time                  `json:"generatedAt"`
	TotalOrders       int                        `json:"totalOrders"`
	Revenue           RevenueBreakdown           `json:"revenue"`
	AverageOrderValue decimal.Decimal            `json:"averageOrderValue"`
	OrdersByStatus    map[domain.OrderStatus]int `json:"ordersByStatus"`
	TopRestaurants    []RestaurantRevenue        `json:"topRestaurants"`
	RevenueByDay      []DayTotal                 `json:"revenueByDay"`
}

func BuildReport(orders []domain.Order, restaurants []domain.Restaurant, r TimeRange, now time.Time) Report {
	filtered := FilterByRange(orders, r, now)
	return Report{
		Range:             r,
		GeneratedAt:       now,
		TotalOrders:       len(filtered),
		Revenue:           Breakdown(TotalRevenue(filtered)),
		AverageOrderValue: AverageOrderValue(filtered),
		OrdersByStatus:    OrdersByStatus(filtered),
		TopRestaurants:    TopRestaurants(restaurants, filtered),
		RevenueByDay:      RevenueByDay(filtered, now.Location()),
	}
}
