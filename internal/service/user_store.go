package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
	"golang.org/x/sync/singleflight"
)

const (
	loadTimeout    = 5 * time.Second
	refreshTimeout = time.Second
)

// UserStore is the single read and write path for user documents. All
// services holding the same UserStore share its cache fills. Users it
// returns are shared between concurrent callers and must be treated as
// read-only.
type UserStore struct {
	repo   repository.UserRepository
	cache  cache.UserCache
	sfg    singleflight.Group
	logger *slog.Logger
}

func NewUserStore(repo repository.UserRepository, c cache.UserCache, opts ...Option) *UserStore {
	if c == nil {
		c = cache.Noop{}
	}
	o := buildOptions(opts)
	return &UserStore{repo: repo, cache: c, logger: o.logger}
}

// load collapses concurrent misses for the same user into one store read.
// The shared read runs detached from any single caller, and each caller
// stops waiting when its own context ends.
func (s *UserStore) load(ctx context.Context, userID string) (*domain.User, error) {
	ch := s.sfg.DoChan(userID, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		u, err := s.cache.Get(ctx, userID)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "cache get failed", slog.String("user_id", userID), slog.Any("error", err))
		}

		u, err = s.repo.GetUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, userID, u); err != nil {
			s.logger.WarnContext(ctx, "cache set failed", slog.String("user_id", userID), slog.Any("error", err))
		}
		return u, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.User), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *UserStore) update(ctx context.Context, userID string, fn repository.UserMutation) error {
	u, err := s.repo.UpdateUser(ctx, userID, fn)
	if err != nil {
		return err
	}
	s.remember(ctx, userID, u)
	return nil
}

// upsert creates the user document when it does not exist yet.
func (s *UserStore) upsert(ctx context.Context, userID string, fn repository.UserMutation) error {
	u, err := s.repo.UpsertUser(ctx, userID, fn)
	if err != nil {
		return err
	}
	s.remember(ctx, userID, u)
	return nil
}

// remember writes the committed user through to the cache and detaches
// any in-flight load, which may have read an earlier version.
func (s *UserStore) remember(ctx context.Context, userID string, u *domain.User) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
	defer cancel()

	if err := s.cache.Set(ctx, userID, u); err != nil {
		s.logger.WarnContext(ctx, "cache refresh failed", slog.String("user_id", userID), slog.Any("error", err))
		if err := s.cache.Delete(ctx, userID); err != nil {
			s.logger.WarnContext(ctx, "cache invalidate failed", slog.String("user_id", userID), slog.Any("error", err))
		}
	}
	s.sfg.Forget(userID)
}
