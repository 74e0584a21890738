package repository

import (
	"context"
	"errors"

	"vitrine/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// CartStore keeps one cart per browsing session. Implementations hold
// the whole cart as a unit; the ledger invariants live on model.Cart.
type CartStore interface {
	// Get returns the session's cart, or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	// Save stores the cart under its session id, overwriting.
	Save(ctx context.Context, cart *model.Cart) error
	// Delete drops the session's cart. Unknown sessions are a no-op.
	Delete(ctx context.Context, sessionID string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) bool
}
