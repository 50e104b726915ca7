package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/domain"
)

type mockCache struct {
	m       sync.RWMutex
	users   map[string]*domain.User
	err     error
	gets    int
	deletes int
}

func newMockCache() *mockCache {
	return &mockCache{users: make(map[string]*domain.User)}
}

func (m *mockCache) Get(_ context.Context, userID string) (*domain.User, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.gets++
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return u.Clone(), nil
}

func (m *mockCache) Set(_ context.Context, userID string, u *domain.User) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if cur, ok := m.users[userID]; ok && cur.Version >= u.Version {
		return nil
	}
	m.users[userID] = u.Clone()
	return nil
}

func (m *mockCache) Delete(_ context.Context, userID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.deletes++
	delete(m.users, userID)
	return m.err
}

func (m *mockCache) cached(userID string) bool {
	return m.peek(userID) != nil
}

func (m *mockCache) peek(userID string) *domain.User {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.users[userID]
}

type mockPublisher struct {
	m      sync.Mutex
	events []domain.OrderEvent
	err    error
}

func (p *mockPublisher) PublishOrderEvent(_ context.Context, e domain.OrderEvent) error {
	p.m.Lock()
	defer p.m.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *mockPublisher) published() []domain.OrderEvent {
	p.m.Lock()
	defer p.m.Unlock()
	return append([]domain.OrderEvent(nil), p.events...)
}

type mockGateway struct {
	lines   []domain.CheckoutLine
	session *domain.CheckoutSession
	status  *domain.CheckoutSessionStatus
	err     error
}

func (g *mockGateway) CreateCheckoutSession(_ context.Context, lines []domain.CheckoutLine) (*domain.CheckoutSession, error) {
	g.lines = lines
	return g.session, g.err
}

func (g *mockGateway) GetCheckoutSession(context.Context, string) (*domain.CheckoutSessionStatus, error) {
	return g.status, g.err
}

// fakeClock advances by one second on every reading.
type fakeClock struct {
	m   sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.m.Lock()
	defer c.m.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type sequentialIDs struct {
	m      sync.Mutex
	prefix string
	n      int
}

func (s *sequentialIDs) Next() string {
	s.m.Lock()
	defer s.m.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

func ptr[T any](v T) *T { return &v }
