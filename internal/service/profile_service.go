package service

import (
	"context"

	"github.com/fjod/go_storefront/internal/domain"
)

// Profile is the read-only aggregate shown on the customer page.
type Profile struct {
	UserID    string
	Email     string
	Name      string
	Cart      []domain.CartEntry
	CartTotal float64
	Orders    []domain.Order
}

type ProfileService struct {
	users *UserStore
}

func NewProfileService(users *UserStore) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.users.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		UserID:    userID,
		Email:     u.Email,
		Name:      u.Name,
		Cart:      u.Cart,
		CartTotal: domain.CartTotal(u.Cart),
		Orders:    u.Orders,
	}, nil
}
