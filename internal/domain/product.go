package domain

import "time"

// Product is a catalog document. Quantity is an informational stock count
// and is never decremented by orders.
type Product struct {
	ID          string    `json:"id" firestore:"productId" bson:"_id"`
	Name        string    `json:"name" firestore:"name" bson:"name"`
	Price       float64   `json:"price" firestore:"price" bson:"price"`
	Quantity    int       `json:"quantity" firestore:"quantity" bson:"quantity"`
	Image       string    `json:"image" firestore:"image" bson:"image"`
	Category    string    `json:"category" firestore:"category" bson:"category"`
	Description string    `json:"description" firestore:"description" bson:"description"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt" bson:"updated_at"`
}

// ProductPatch holds the fields of a partial update; nil means unchanged.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Quantity    *int
	Image       *string
	Category    *string
	Description *string
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Quantity == nil &&
		p.Image == nil && p.Category == nil && p.Description == nil
}

func (p ProductPatch) Apply(product *Product, now time.Time) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Quantity != nil {
		product.Quantity = *p.Quantity
	}
	if p.Image != nil {
		product.Image = *p.Image
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	product.UpdatedAt = now
}
