package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fjod/go_storefront/internal/domain"
)

type CartService struct {
	users *UserStore
	opts  options
}

func NewCartService(users *UserStore, opts ...Option) *CartService {
	return &CartService{
		users: users,
		opts:  buildOptions(opts),
	}
}

type AddItemInput struct {
	ProductID string
	Name      string
	Price     *float64
	Quantity  *int
	Image     string
}

func (s *CartService) GetCart(ctx context.Context, userID string) ([]domain.CartEntry, error) {
	u, err := s.users.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Cart, nil
}

func (s *CartService) CartLength(ctx context.Context, userID string) (int, error) {
	u, err := s.users.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(u.Cart), nil
}

// AddItem appends a new entry; the user document is created on first add.
// Adding the same product twice yields two independent entries.
func (s *CartService) AddItem(ctx context.Context, userID string, in AddItemInput) (domain.CartEntry, error) {
	productID := strings.TrimSpace(in.ProductID)
	name := strings.TrimSpace(in.Name)
	if productID == "" || name == "" || in.Price == nil {
		return domain.CartEntry{}, invalidInput("Product ID, name, and price are required")
	}
	if *in.Price < 0 {
		return domain.CartEntry{}, invalidInput("Price must be a non-negative number")
	}
	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if quantity < 1 {
		return domain.CartEntry{}, invalidInput("Quantity must be at least 1")
	}

	entry := domain.CartEntry{
		CartItemID: s.opts.newID(),
		ProductID:  productID,
		Name:       name,
		Price:      *in.Price,
		Quantity:   quantity,
		Image:      in.Image,
		AddedAt:    s.opts.now(),
	}

	err := s.users.upsert(ctx, userID, func(u *domain.User) error {
		u.AddCartEntry(entry)
		return nil
	})
	if err != nil {
		s.opts.logger.ErrorContext(ctx, "add cart item failed", slog.String("user_id", userID), slog.Any("error", err))
		return domain.CartEntry{}, err
	}
	return entry, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, cartItemID string, quantity int) (domain.CartEntry, error) {
	if quantity < 1 {
		return domain.CartEntry{}, invalidInput("Valid quantity is required")
	}

	var updated domain.CartEntry
	err := s.users.update(ctx, userID, func(u *domain.User) error {
		var err error
		updated, err = u.SetCartQuantity(cartItemID, quantity, s.opts.now())
		return err
	})
	if err != nil {
		return domain.CartEntry{}, err
	}
	return updated, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, cartItemID string) error {
	return s.users.update(ctx, userID, func(u *domain.User) error {
		_, err := u.RemoveCartEntry(cartItemID)
		return err
	})
}

func (s *CartService) EmptyCart(ctx context.Context, userID string) error {
	return s.users.update(ctx, userID, func(u *domain.User) error {
		u.EmptyCart()
		return nil
	})
}
