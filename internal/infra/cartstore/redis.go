package cartstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"vitrine/internal/domain/model"
	repo "vitrine/internal/repository"
)

const cartKeyPrefix = "vitrine:cart:"

// RedisCartStore keeps carts in Redis, JSON-encoded, one key per
// session, expiring with the session TTL. Lets the gateway restart
// without dropping open carts.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewRedisCartStore(addr string, ttl time.Duration, log *logrus.Logger) (*RedisCartStore, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		// Plain "host:port" is accepted too.
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}
	}

	return &RedisCartStore{
		client: redis.NewClient(opts),
		ttl:    ttl,
		log:    log,
	}, nil
}

func (s *RedisCartStore) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get cart")
	}

	var cart model.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		// A corrupt entry is unrecoverable; treat as absent.
		s.log.WithField("session", sessionID).WithError(err).Warn("dropping undecodable cart")
		s.client.Del(ctx, cartKeyPrefix+sessionID)
		return nil, repo.ErrNotFound
	}
	return &cart, nil
}

func (s *RedisCartStore) Save(ctx context.Context, cart *model.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := s.client.Set(ctx, cartKeyPrefix+cart.SessionID, data, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set cart")
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return errors.Wrap(err, "redis del cart")
	}
	return nil
}

func (s *RedisCartStore) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err() == nil
}
