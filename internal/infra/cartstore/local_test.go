package cartstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vitrine/internal/domain/model"
	repo "vitrine/internal/repository"
)

func TestLocalCartStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewLocalCartStore(time.Hour)

	_, err := s.Get(ctx, "s1")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	cart := model.NewCart("s1", "minhaloja", time.Now())
	cart.Add(model.Product{ID: "p1", Title: "Shirt", Price: 4990}, "M")
	assert.NoError(t, s.Save(ctx, cart))

	got, err := s.Get(ctx, "s1")
	assert.NoError(t, err)
	assert.Len(t, got.Lines, 1)
	assert.Equal(t, "minhaloja", got.Slug)

	assert.NoError(t, s.Delete(ctx, "s1"))
	_, err = s.Get(ctx, "s1")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestLocalCartStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewLocalCartStore(time.Hour)

	cart := model.NewCart("s1", "minhaloja", time.Now())
	cart.Add(model.Product{ID: "p1", Price: 4990}, "M")
	assert.NoError(t, s.Save(ctx, cart))

	first, _ := s.Get(ctx, "s1")
	first.Lines[0].Quantity = 99
	first.Add(model.Product{ID: "p2"}, "")

	// Mutations on a loaded cart stay invisible until Save.
	second, _ := s.Get(ctx, "s1")
	assert.Len(t, second.Lines, 1)
	assert.Equal(t, int64(1), second.Lines[0].Quantity)
}

func TestLocalCartStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewLocalCartStore(time.Minute)

	cart := model.NewCart("s1", "minhaloja", time.Now())
	cart.Add(model.Product{ID: "p1"}, "")
	assert.NoError(t, s.Save(ctx, cart))

	// Move the clock past the TTL.
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err := s.Get(ctx, "s1")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestLocalCartStore_DeleteUnknownIsNoop(t *testing.T) {
	s := NewLocalCartStore(time.Hour)
	assert.NoError(t, s.Delete(context.Background(), "ghost"))
	assert.True(t, s.Ping(context.Background()))
}
