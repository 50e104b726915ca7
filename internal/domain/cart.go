package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartEntry struct {
	CartItemID string     `json:"cartItemId" firestore:"cartItemId" bson:"cart_item_id"`
	ProductID  string     `json:"productId" firestore:"productId" bson:"product_id"`
	Name       string     `json:"name" firestore:"name" bson:"name"`
	Price      float64    `json:"price" firestore:"price" bson:"price"`
	Quantity   int        `json:"quantity" firestore:"quantity" bson:"quantity"`
	Image      string     `json:"image" firestore:"image" bson:"image"`
	AddedAt    time.Time  `json:"addedAt" firestore:"addedAt" bson:"added_at"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

// LineTotal is price × quantity in exact decimal arithmetic.
func (e CartEntry) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(e.Price).Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// CartTotal sums line totals and rounds to cents.
func CartTotal(entries []CartEntry) float64 {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.LineTotal())
	}
	return total.Round(2).InexactFloat64()
}

func (u *User) AddCartEntry(e CartEntry) {
	u.Cart = append(u.Cart, e)
}

func (u *User) findCartEntry(cartItemID string) int {
	for i := range u.Cart {
		if u.Cart[i].CartItemID == cartItemID {
			return i
		}
	}
	return -1
}

// SetCartQuantity changes only quantity and updatedAt of the matching entry.
func (u *User) SetCartQuantity(cartItemID string, quantity int, now time.Time) (CartEntry, error) {
	if quantity < 1 {
		return CartEntry{}, ErrInvalidQuantity
	}
	i := u.findCartEntry(cartItemID)
	if i < 0 {
		return CartEntry{}, ErrCartItemNotFound
	}
	u.Cart[i].Quantity = quantity
	u.Cart[i].UpdatedAt = &now
	return u.Cart[i], nil
}

func (u *User) RemoveCartEntry(cartItemID string) (CartEntry, error) {
	i := u.findCartEntry(cartItemID)
	if i < 0 {
		return CartEntry{}, ErrCartItemNotFound
	}
	removed := u.Cart[i]
	u.Cart = append(u.Cart[:i:i], u.Cart[i+1:]...)
	return removed, nil
}

func (u *User) EmptyCart() {
	u.Cart = []CartEntry{}
}
