// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix = "cart:session:"
	cartIndexKey  = "cart:sessions"
)

// cartStore persists session carts. Take must be atomic so that of a
// concurrent checkout and expiry sweep, exactly one ends up holding
// the cart.
type cartStore interface {
	Read(ctx context.Context, sessionID string) (*SessionCart, error)
	Write(ctx context.Context, sessionCart *SessionCart, ttl time.Duration) error
	Take(ctx context.Context, sessionID string) (*SessionCart, error)
	Delete(ctx context.Context, sessionID string) error
	Sessions(ctx context.Context) ([]string, error)
}

// redisCartStore keeps carts as JSON values with a TTL plus an index
// set of active sessions for the reaper to sweep.
type redisCartStore struct {
	client *redis.Client
}

func newRedisCartStore(client *redis.Client) *redisCartStore {
	return &redisCartStore{client: client}
}

func (r *redisCartStore) Read(ctx context.Context, sessionID string) (*SessionCart, error) {
	cartData, err := r.client.Get(ctx, cartKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	return decodeCart(cartData)
}

// Take removes the cart and returns it. GETDEL is a single Redis
// command, so a concurrent Take of the same session sees nothing.
func (r *redisCartStore) Take(ctx context.Context, sessionID string) (*SessionCart, error) {
	cartData, err := r.client.GetDel(ctx, cartKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		r.client.SRem(ctx, cartIndexKey, sessionID)
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to take cart: %w", err)
	}

	r.client.SRem(ctx, cartIndexKey, sessionID)
	return decodeCart(cartData)
}

func (r *redisCartStore) Write(ctx context.Context, sessionCart *SessionCart, ttl time.Duration) error {
	cartData, err := json.Marshal(sessionCart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, cartKeyPrefix+sessionCart.SessionID, cartData, ttl)
	pipe.SAdd(ctx, cartIndexKey, sessionCart.SessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

func (r *redisCartStore) Delete(ctx context.Context, sessionID string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, cartKeyPrefix+sessionID)
	pipe.SRem(ctx, cartIndexKey, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (r *redisCartStore) Sessions(ctx context.Context) ([]string, error) {
	return r.client.SMembers(ctx, cartIndexKey).Result()
}

func decodeCart(cartData string) (*SessionCart, error) {
	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(cartData), &sessionCart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &sessionCart, nil
}
