package repository

import (
	"context"
	"sync"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
)

// MemoryStore keeps users and products in process memory. Every mutation
// runs under the write lock, which makes it linearizable per store.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*domain.User
	products map[string]domain.Product
	order    []string // product insertion order
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*domain.User),
		products: make(map[string]domain.Product),
		now:      time.Now,
	}
}

func (s *MemoryStore) GetUser(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u.Clone(), nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, userID string, fn UserMutation) (*domain.User, error) {
	return s.mutate(ctx, userID, false, fn)
}

func (s *MemoryStore) UpsertUser(ctx context.Context, userID string, fn UserMutation) (*domain.User, error) {
	return s.mutate(ctx, userID, true, fn)
}

func (s *MemoryStore) mutate(ctx context.Context, userID string, create bool, fn UserMutation) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var working *domain.User
	if stored, ok := s.users[userID]; ok {
		working = stored.Clone()
	} else if create {
		working = domain.NewUser(userID)
	} else {
		return nil, ErrUserNotFound
	}

	if err := fn(working); err != nil {
		return nil, err
	}
	working.Normalize()
	working.Version++
	s.users[userID] = working
	return working.Clone(), nil
}

// PutUser seeds a user document, replacing any existing one.
func (s *MemoryStore) PutUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := u.Clone()
	c.Normalize()
	s.users[u.ID] = c
}

func (s *MemoryStore) ListProducts(context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterProducts(func(domain.Product) bool { return true }), nil
}

func (s *MemoryStore) ListProductsByCategory(_ context.Context, category string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterProducts(func(p domain.Product) bool { return p.Category == category }), nil
}

func (s *MemoryStore) filterProducts(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(s.products))
	for _, id := range s.order {
		if p, ok := s.products[id]; ok && keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *MemoryStore) GetProduct(_ context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (s *MemoryStore) CreateProduct(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, productID string, patch domain.ProductPatch) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	patch.Apply(&p, s.now().UTC())
	s.products[productID] = p
	return &p, nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return ErrProductNotFound
	}
	delete(s.products, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
