package cartstore

import (
	"context"
	"sync"
	"time"

	"vitrine/internal/domain/model"
	repo "vitrine/internal/repository"
)

// LocalCartStore keeps carts in process memory, one per session.
// Entries untouched for longer than ttl are dropped lazily on access.
type LocalCartStore struct {
	mu    sync.RWMutex
	carts map[string]*model.Cart
	ttl   time.Duration
	now   func() time.Time
}

func NewLocalCartStore(ttl time.Duration) *LocalCartStore {
	return &LocalCartStore{
		carts: make(map[string]*model.Cart),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *LocalCartStore) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	s.mu.RLock()
	cart, ok := s.carts[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, repo.ErrNotFound
	}
	if s.ttl > 0 && s.now().Sub(cart.UpdatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.carts, sessionID)
		s.mu.Unlock()
		return nil, repo.ErrNotFound
	}

	// Copy so callers mutate their own view until Save.
	cp := *cart
	cp.Lines = append([]model.CartLine(nil), cart.Lines...)
	return &cp, nil
}

func (s *LocalCartStore) Save(ctx context.Context, cart *model.Cart) error {
	cp := *cart
	cp.Lines = append([]model.CartLine(nil), cart.Lines...)
	cp.UpdatedAt = s.now()

	s.mu.Lock()
	s.carts[cart.SessionID] = &cp
	s.mu.Unlock()
	return nil
}

func (s *LocalCartStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *LocalCartStore) Ping(ctx context.Context) bool {
	return true
}
