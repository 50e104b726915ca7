package domain

// User is the per-customer document. Cart and orders live on it so a
// single transactional write can move the cart into a new order.
type User struct {
	ID      string      `json:"userId" firestore:"-" bson:"_id"`
	Email   string      `json:"email,omitempty" firestore:"email,omitempty" bson:"email,omitempty"`
	Name    string      `json:"name,omitempty" firestore:"name,omitempty" bson:"name,omitempty"`
	Cart    []CartEntry `json:"cart" firestore:"cart" bson:"cart"`
	Orders  []Order     `json:"orders" firestore:"orders" bson:"orders"`
	Version int64       `json:"-" firestore:"version" bson:"version"`
}

func NewUser(id string) *User {
	return &User{
		ID:     id,
		Cart:   []CartEntry{},
		Orders: []Order{},
	}
}

// Normalize replaces nil sequences with empty ones so they encode as [].
func (u *User) Normalize() {
	if u.Cart == nil {
		u.Cart = []CartEntry{}
	}
	if u.Orders == nil {
		u.Orders = []Order{}
	}
}

// Clone returns a deep copy; callers may mutate it freely.
func (u *User) Clone() *User {
	c := *u
	c.Cart = cloneEntries(u.Cart)
	c.Orders = make([]Order, len(u.Orders))
	for i, o := range u.Orders {
		c.Orders[i] = o.Clone()
	}
	return &c
}

func cloneEntries(entries []CartEntry) []CartEntry {
	out := make([]CartEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		if e.UpdatedAt != nil {
			t := *e.UpdatedAt
			out[i].UpdatedAt = &t
		}
	}
	return out
}
