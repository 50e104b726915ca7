package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

const DefaultPaymentMethod = "card"

var validStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ValidStatuses lists accepted statuses in lifecycle order.
func ValidStatuses() []string {
	out := make([]string, len(validStatuses))
	for i, s := range validStatuses {
		out[i] = string(s)
	}
	return out
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, v := range validStatuses {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

type ShippingAddress struct {
	Name       string `json:"name,omitempty" firestore:"name,omitempty" bson:"name,omitempty"`
	Line1      string `json:"line1,omitempty" firestore:"line1,omitempty" bson:"line1,omitempty"`
	Line2      string `json:"line2,omitempty" firestore:"line2,omitempty" bson:"line2,omitempty"`
	City       string `json:"city,omitempty" firestore:"city,omitempty" bson:"city,omitempty"`
	State      string `json:"state,omitempty" firestore:"state,omitempty" bson:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty" firestore:"postalCode,omitempty" bson:"postal_code,omitempty"`
	Country    string `json:"country,omitempty" firestore:"country,omitempty" bson:"country,omitempty"`
	Phone      string `json:"phone,omitempty" firestore:"phone,omitempty" bson:"phone,omitempty"`
}

type Order struct {
	OrderID         string          `json:"orderId" firestore:"orderId" bson:"order_id"`
	Items           []CartEntry     `json:"items" firestore:"items" bson:"items"`
	TotalAmount     float64         `json:"totalAmount" firestore:"totalAmount" bson:"total_amount"`
	ShippingAddress ShippingAddress `json:"shippingAddress" firestore:"shippingAddress" bson:"shipping_address"`
	PaymentMethod   string          `json:"paymentMethod" firestore:"paymentMethod" bson:"payment_method"`
	Status          OrderStatus     `json:"status" firestore:"status" bson:"status"`
	CreatedAt       time.Time       `json:"createdAt" firestore:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" firestore:"updatedAt" bson:"updated_at"`
}

func (o Order) Clone() Order {
	o.Items = cloneEntries(o.Items)
	return o
}

type PlaceOrderParams struct {
	OrderID         string
	ShippingAddress *ShippingAddress
	PaymentMethod   string
	Now             time.Time
}

// PlaceOrder snapshots the cart into a pending order, appends it and
// clears the cart. The user is left untouched when the cart is empty.
func (u *User) PlaceOrder(p PlaceOrderParams) (Order, error) {
	if len(u.Cart) == 0 {
		return Order{}, ErrEmptyCart
	}

	order := Order{
		OrderID:       p.OrderID,
		Items:         cloneEntries(u.Cart),
		TotalAmount:   CartTotal(u.Cart),
		PaymentMethod: p.PaymentMethod,
		Status:        OrderStatusPending,
		CreatedAt:     p.Now,
		UpdatedAt:     p.Now,
	}
	if p.ShippingAddress != nil {
		order.ShippingAddress = *p.ShippingAddress
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = DefaultPaymentMethod
	}

	u.Orders = append(u.Orders, order)
	u.EmptyCart()
	return order.Clone(), nil
}

func (u *User) FindOrder(orderID string) (Order, error) {
	for _, o := range u.Orders {
		if o.OrderID == orderID {
			return o.Clone(), nil
		}
	}
	return Order{}, ErrOrderNotFound
}

// SetOrderStatus touches only status and updatedAt of the matching order.
func (u *User) SetOrderStatus(orderID string, status OrderStatus, now time.Time) (Order, error) {
	for i := range u.Orders {
		if u.Orders[i].OrderID == orderID {
			u.Orders[i].Status = status
			u.Orders[i].UpdatedAt = now
			return u.Orders[i].Clone(), nil
		}
	}
	return Order{}, ErrOrderNotFound
}
