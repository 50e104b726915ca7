package cache

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
)

// UserCache stores read-only snapshots of user documents. Set must keep
// the copy with the highest Version when writes race.
type UserCache interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Set(ctx context.Context, userID string, user *domain.User) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// Noop is used when no Redis is configured; every Get is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string) (*domain.User, error) { return nil, ErrCacheMiss }
func (Noop) Set(context.Context, string, *domain.User) error { return nil }
func (Noop) Delete(context.Context, string) error { return nil }
