package cart

import (
	"errors"
	"sync"

	"marketplace-client/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	DefaultPaymentMethod   = "CARD"
	DefaultDeliveryAddress = "Default Address"
)

var (
	TaxRate            = decimal.RequireFromString("0.08")
	DefaultDeliveryFee = decimal.RequireFromString("2.99")

	ErrEmptyCart = errors.New("cart is empty")
)

type LineItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Snapshot is a point-in-time copy of the cart.
type Snapshot struct {
	Items       []LineItem         `json:"items"`
	Restaurant  *domain.Restaurant `json:"restaurant"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	Tax         decimal.Decimal    `json:"tax"`
	DeliveryFee decimal.Decimal    `json:"deliveryFee"`
	Total       decimal.Decimal    `json:"total"`
}

// Cart holds line items from a single restaurant. Totals are recomputed
// after every mutation. Safe for concurrent use.
type Cart struct {
	mu          sync.Mutex
	items       []LineItem
	restaurant  *domain.Restaurant
	deliveryFee decimal.Decimal
	tax         decimal.Decimal
	total       decimal.Decimal
}

func New() *Cart {
	return &Cart{deliveryFee: DefaultDeliveryFee}
}

func (c *Cart) AddItem(item domain.MenuItem, restaurant domain.Restaurant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 || c.restaurant == nil || c.restaurant.ID != restaurant.ID {
		c.items = nil
		r := restaurant
		c.restaurant = &r
	}

	if i := c.indexOf(item.ID); i >= 0 {
		c.items[i].Quantity++
	} else {
		c.items = append(c.items, LineItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    decimal.NewFromFloat(item.Price),
			Quantity: 1,
		})
	}

	c.recalculate()
}

func (c *Cart) RemoveItem(itemID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(itemID)
	c.recalculate()
}

func (c *Cart) SetQuantity(itemID int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.remove(itemID)
	} else if i := c.indexOf(itemID); i >= 0 {
		c.items[i].Quantity = quantity
	}
	c.recalculate()
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.restaurant = nil
	c.tax = decimal.Zero
	c.total = decimal.Zero
}

func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]LineItem(nil), c.items...)
}

// Quantity is the quantity of itemID in the cart, 0 when absent.
func (c *Cart) Quantity(itemID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(itemID); i >= 0 {
		return c.items[i].Quantity
	}
	return 0
}

func (c *Cart) Restaurant() (domain.Restaurant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.restaurant == nil {
		return domain.Restaurant{}, false
	}
	return *c.restaurant, true
}

func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotal()
}

func (c *Cart) Tax() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tax
}

func (c *Cart) DeliveryFee() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deliveryFee
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// ItemCount sums quantities across line items.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Items:       append([]LineItem{}, c.items...),
		Subtotal:    c.subtotal(),
		Tax:         c.tax,
		DeliveryFee: c.deliveryFee,
		Total:       c.total,
	}
	if c.restaurant != nil {
		r := *c.restaurant
		snap.Restaurant = &r
	}
	return snap
}

// CheckoutRequest builds the order payload for the current cart contents.
func (c *Cart) CheckoutRequest(deliveryAddress, paymentMethod string) (domain.CreateOrderRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 || c.restaurant == nil {
		return domain.CreateOrderRequest{}, ErrEmptyCart
	}
	if deliveryAddress == "" {
		deliveryAddress = DefaultDeliveryAddress
	}
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	items := make([]domain.OrderItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, domain.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price.InexactFloat64(),
		})
	}

	return domain.CreateOrderRequest{
		RestaurantID:    c.restaurant.ID,
		Items:           items,
		TotalAmount:     c.total.InexactFloat64(),
		DeliveryAddress: deliveryAddress,
		PaymentMethod:   paymentMethod,
	}, nil
}

func (c *Cart) indexOf(itemID int64) int {
	for i, item := range c.items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) remove(itemID int64) {
	if i := c.indexOf(itemID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	if len(c.items) == 0 {
		c.items = nil
		c.restaurant = nil
	}
}

func (c *Cart) subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

func (c *Cart) recalculate() {
	subtotal := c.subtotal()
	c.tax = subtotal.Mul(TaxRate)
	c.total = subtotal.Add(c.tax)
	if len(c.items) > 0 {
		c.total = c.total.Add(c.deliveryFee)
	}
}
