package repository

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrConflict        = errors.New("concurrent modification, retries exhausted")
)

// UserMutation edits a user in place inside a transactional
// read-modify-write. Returning an error aborts the write.
type UserMutation func(u *domain.User) error

type UserRepository interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	// UpdateUser applies fn to an existing user; ErrUserNotFound otherwise.
	UpdateUser(ctx context.Context, userID string, fn UserMutation) (*domain.User, error)
	// UpsertUser applies fn to the stored user or to a fresh empty one.
	UpsertUser(ctx context.Context, userID string, fn UserMutation) (*domain.User, error)
}

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, productID string, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}
