package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutLine is a priced line item sent to the payment gateway.
type CheckoutLine struct {
	ProductID string
	Name      string
	Image     string
	Price     float64
	Quantity  int
}

// UnitAmountCents converts the unit price to minor units, rounding half away from zero.
func (l CheckoutLine) UnitAmountCents() int64 {
	return decimal.NewFromFloat(l.Price).Shift(2).Round(0).IntPart()
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type CheckoutSessionStatus struct {
	SessionID           string `json:"session_id"`
	Status              string `json:"status"`
	PaymentStatus       string `json:"payment_status"`
	PaymentIntentID     string `json:"payment_intent_id,omitempty"`
	PaymentIntentStatus string `json:"payment_intent_status,omitempty"`
	AmountTotal         int64  `json:"amount_total"`
	Currency            string `json:"currency,omitempty"`
}

type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

type OrderEvent struct {
	Type        OrderEventType `json:"type"`
	UserID      string         `json:"userId"`
	OrderID     string         `json:"orderId"`
	Status      OrderStatus    `json:"status"`
	TotalAmount float64        `json:"totalAmount"`
	OccurredAt  time.Time      `json:"occurredAt"`
}

func NewOrderEvent(t OrderEventType, userID string, o Order) OrderEvent {
	return OrderEvent{
		Type:        t,
		UserID:      userID,
		OrderID:     o.OrderID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		OccurredAt:  o.UpdatedAt,
	}
}
