// Package session keeps per-browsing-session state in Redis: the shopping
// cart and the pending-verification marker issued at seller registration.
// Both are keyed by an opaque session id carried in a cookie, never by user
// identity, since neither survives past the session.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

func cartKey(cartID string) string   { return "cart:" + cartID }
func regKey(sessionID string) string { return "reg:pending:" + sessionID }

// Store implements the cart and pending-registration session state on Redis.
type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// AddToCart increments the quantity for listingID; the hash is created on
// first add. Quantities only grow through this path.
func (s *Store) AddToCart(ctx context.Context, cartID, listingID string, qty int64) error {
	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, cartKey(cartID), listingID, qty)
	pipe.Expire(ctx, cartKey(cartID), 7*24*time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

// CartItems returns the listing id → quantity mapping; empty map when the
// cart does not exist.
func (s *Store) CartItems(ctx context.Context, cartID string) (map[string]int64, error) {
	data, err := s.rdb.HGetAll(ctx, cartKey(cartID)).Result()
	if err != nil {
		return nil, err
	}
	items := make(map[string]int64, len(data))
	for id, raw := range data {
		qty, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || qty <= 0 {
			continue
		}
		items[id] = qty
	}
	return items, nil
}

// ClearCart deletes the whole cart hash.
func (s *Store) ClearCart(ctx context.Context, cartID string) error {
	return s.rdb.Del(ctx, cartKey(cartID)).Err()
}

// SetPendingRegistration stores the email awaiting OTP verification under the
// registration session id.
func (s *Store) SetPendingRegistration(ctx context.Context, sessionID, email string, ttl time.Duration) error {
	return s.rdb.Set(ctx, regKey(sessionID), email, ttl).Err()
}

// PendingRegistration returns the email for the marker, or "" when no marker
// exists (expired, cleared, or never created).
func (s *Store) PendingRegistration(ctx context.Context, sessionID string) (string, error) {
	email, err := s.rdb.Get(ctx, regKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

// ClearPendingRegistration removes the marker after successful verification.
func (s *Store) ClearPendingRegistration(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, regKey(sessionID)).Err()
}
