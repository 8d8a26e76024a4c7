package analytics

import (
	"errors"
	"sort"
	"time"

	"marketplace-client/internal/domain"

	"github.com/shopspring/decimal"
)

var PlatformFeeRate = decimal.RequireFromString("0.15")

var ErrUnknownRange = errors.New("unknown time range")

type TimeRange string

const (
	Last24Hours TimeRange = "24hours"
	Last7Days   TimeRange = "7days"
	Last30Days  TimeRange = "30days"
	Last90Days  TimeRange = "90days"
	AllTime     TimeRange = "all"
)

const (
	DefaultRange      = Last7Days
	topRestaurantsMax = 5
	dayLayout         = "2006-01-02"
)

func ParseRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case "":
		return DefaultRange, nil
	case Last24Hours, Last7Days, Last30Days, Last90Days, AllTime:
		return TimeRange(s), nil
	}
	return "", ErrUnknownRange
}

// Cutoff returns the earliest included order time. ok is false for AllTime.
func (r TimeRange) Cutoff(now time.Time) (time.Time, bool) {
	switch r {
	case Last24Hours:
		return now.Add(-24 * time.Hour), true
	case Last7Days:
		return now.AddDate(0, 0, -7), true
	case Last30Days:
		return now.AddDate(0, 0, -30), true
	case Last90Days:
		return now.AddDate(0, 0, -90), true
	}
	return time.Time{}, false
}

type RevenueBreakdown struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PlatformFee     decimal.Decimal `json:"platformFee"`
	RestaurantShare decimal.Decimal `json:"restaurantShare"`
}

func Breakdown(totalRevenue decimal.Decimal) RevenueBreakdown {
	fee := totalRevenue.Mul(PlatformFeeRate)
	return RevenueBreakdown{
		TotalRevenue:    totalRevenue,
		PlatformFee:     fee,
		RestaurantShare: totalRevenue.Sub(fee),
	}
}

func TotalRevenue(orders []domain.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(decimal.NewFromFloat(o.TotalAmount))
	}
	return sum
}

func FilterByRange(orders []domain.Order, r TimeRange, now time.Time) []domain.Order {
	cutoff, ok := r.Cutoff(now)
	if !ok {
		return orders
	}
	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !o.OrderTime.Before(cutoff) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// Today keeps orders placed on the same calendar day as now, in now's location.
func Today(orders []domain.Order, now time.Time) []domain.Order {
	today := now.Format(dayLayout)
	filtered := make([]domain.Order, 0)
	for _, o := range orders {
		if o.OrderTime.In(now.Location()).Format(dayLayout) == today {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

func OrdersByStatus(orders []domain.Order) map[domain.OrderStatus]int {
	counts := make(map[domain.OrderStatus]int)
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

func AverageOrderValue(orders []domain.Order) decimal.Decimal {
	if len(orders) == 0 {
		return decimal.Zero
	}
	return TotalRevenue(orders).Div(decimal.NewFromInt(int64(len(orders))))
}

type RestaurantRevenue struct {
	RestaurantID int64           `json:"restaurantId"`
	Name         string          `json:"name"`
	OrderCount   int             `json:"orderCount"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TopRestaurants ranks restaurants by revenue over orders, highest first.
// Ties keep the order restaurants were given in.
func TopRestaurants(restaurants []domain.Restaurant, orders []domain.Order) []RestaurantRevenue {
	ranked := make([]RestaurantRevenue, 0, len(restaurants))
	for _, r := range restaurants {
		entry := RestaurantRevenue{RestaurantID: r.ID, Name: r.Name, Revenue: decimal.Zero}
		for _, o := range orders {
			if o.RestaurantID == r.ID {
				entry.OrderCount++
				entry.Revenue = entry.Revenue.Add(decimal.NewFromFloat(o.TotalAmount))
			}
		}
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
	})
	if len(ranked) > topRestaurantsMax {
		ranked = ranked[:topRestaurantsMax]
	}
	return ranked
}

type DayTotal struct {
	Day     string          `json:"day"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueByDay groups orders by calendar day in loc, oldest day first.
func RevenueByDay(orders []domain.Order, loc *time.Location) []DayTotal {
	byDay := make(map[string]*DayTotal)
	for _, o := range orders {
		day := o.OrderTime.In(loc).Format(dayLayout)
		total, ok := byDay[day]
		if !ok {
			total = &DayTotal{Day: day, Revenue: decimal.Zero}
			byDay[day] = total
		}
		total.Orders++
		total.Revenue = total.Revenue.Add(decimal.NewFromFloat(o.TotalAmount))
	}

	days := make([]DayTotal, 0, len(byDay))
	for _, total := range byDay {
		days = append(days, *total)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}

type Earnings struct {
	CompletedToday int             `json:"completedToday"`
	Total          decimal.Decimal `json:"total"`
}

// DriverEarningsToday sums delivery fees of deliveries completed on now's day.
func DriverEarningsToday(deliveries []domain.Delivery, now time.Time) Earnings {
	today := now.Format(dayLayout)
	earnings := Earnings{Total: decimal.Zero}
	for _, d := range deliveries {
		if d.Status != domain.DeliveryDelivered || d.DeliveredAt == nil {
			continue
		}
		if d.DeliveredAt.In(now.Location()).Format(dayLayout) != today {
			continue
		}
		earnings.CompletedToday++
		earnings.Total = earnings.Total.Add(decimal.NewFromFloat(d.DeliveryFee))
	}
	return earnings
}
