package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"vitrine/internal/domain/model"
	repo "vitrine/internal/repository"
)

// CachedSource fronts a StorefrontSource with a TTL cache. Concurrent
// misses for the same identifier are collapsed with singleflight, and
// a circuit breaker keeps a flapping backend from being hammered.
// Unknown identifiers (ErrNotFound) are not cached.
type CachedSource struct {
	next repo.StorefrontSource
	ttl  time.Duration
	log  *logrus.Logger

	mu      sync.RWMutex
	entries map[string]cacheEntry

	sf singleflight.Group
	cb *gobreaker.CircuitBreaker
}

type cacheEntry struct {
	storefront model.Storefront
	fetchedAt  time.Time
}

func NewCachedSource(next repo.StorefrontSource, ttl time.Duration, log *logrus.Logger) *CachedSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "storefront-lookup",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// An unknown identifier is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || err == repo.ErrNotFound
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state change")
		},
	})

	return &CachedSource{
		next:    next,
		ttl:     ttl,
		log:     log,
		entries: make(map[string]cacheEntry),
		cb:      cb,
	}
}

func (c *CachedSource) Fetch(ctx context.Context, identifier string) (model.Storefront, error) {
	c.mu.RLock()
	entry, ok := c.entries[identifier]
	c.mu.RUnlock()

	if ok && time.Since(entry.fetchedAt) < c.ttl {
		return entry.storefront, nil
	}

	v, err, _ := c.sf.Do(identifier, func() (interface{}, error) {
		return c.cb.Execute(func() (interface{}, error) {
			sf, err := c.next.Fetch(ctx, identifier)
			if err != nil {
				// Stale data beats an outage for a read-only vitrine.
				if err != repo.ErrNotFound && ok {
					c.log.WithField("identifier", identifier).WithError(err).
						Warn("storefront fetch failed, serving stale cache")
					return entry.storefront, nil
				}
				return nil, err
			}

			c.mu.Lock()
			c.entries[identifier] = cacheEntry{storefront: sf, fetchedAt: time.Now()}
			c.mu.Unlock()
			return sf, nil
		})
	})
	if err != nil {
		return model.Storefront{}, err
	}
	return v.(model.Storefront), nil
}
