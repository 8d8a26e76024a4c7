package domain

type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleRestaurant Role = "RESTAURANT"
	RoleDelivery   Role = "DELIVERY"
	RoleAdmin      Role = "ADMIN"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderPickedUp  OrderStatus = "PICKED_UP"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryAssigned  DeliveryStatus = "ASSIGNED"
	DeliveryPickedUp  DeliveryStatus = "PICKED_UP"
	DeliveryInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryCancelled DeliveryStatus = "CANCELLED"
)

type User struct {
	ID        int64  `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	Address   string `json:"address,omitempty"`
}

type Restaurant struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Cuisine      string  `json:"cuisine"`
	Rating       float64 `json:"rating"`
	DeliveryTime int     `json:"deliveryTime"`
	DeliveryFee  float64 `json:"deliveryFee"`
	Address      string  `json:"address"`
	IsOpen       bool    `json:"isOpen"`
	Approved     bool    `json:"approved"`
	OwnerID      int64   `json:"ownerId"`
}

type MenuItem struct {
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurantId"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Available    bool    `json:"available"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

type OrderItem struct {
	MenuItemID int64   `json:"menuItemId"`
	Name       string  `json:"itemName,omitempty"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type Order struct {
	ID              int64       `json:"id"`
	RestaurantID    int64       `json:"restaurantId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          OrderStatus `json:"status"`
	OrderTime       Timestamp   `json:"orderTime"`
	DeliveryAddress string      `json:"deliveryAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
}

type Delivery struct {
	ID               int64          `json:"id"`
	OrderID          int64          `json:"orderId"`
	DeliveryPersonID *int64         `json:"deliveryPersonId"`
	Status           DeliveryStatus `json:"status"`
	PickupAddress    string         `json:"pickupAddress"`
	DeliveryAddress  string         `json:"deliveryAddress"`
	DeliveryFee      float64        `json:"deliveryFee"`
	TrackingCode     string         `json:"trackingCode"`
	DeliveredAt      *Timestamp     `json:"deliveredAt,omitempty"`
	CurrentLatitude  *float64       `json:"currentLatitude,omitempty"`
	CurrentLongitude *float64       `json:"currentLongitude,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateOrderRequest is the checkout payload built from a cart.
type CreateOrderRequest struct {
	RestaurantID    int64       `json:"restaurantId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	DeliveryAddress string      `json:"deliveryAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
