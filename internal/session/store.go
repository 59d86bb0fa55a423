// Package session implements the server-side session store backed by
// redis. Tokens are opaque uuids handed to clients in a cookie; the
// payload lives under session:<token> with a sliding TTL, so deleting the
// key is a full logout and an untouched session lapses after the expiry
// window.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/expense-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

const keyPrefix = "session:"

// Data is the payload stored for an authenticated caller
type Data struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// Store manages sessions in redis
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a session store with the given sliding expiry
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create starts a new session and returns its token
func (s *Store) Create(ctx context.Context, data Data) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get loads a session and refreshes its TTL (sliding expiry)
func (s *Store) Get(ctx context.Context, token string) (*Data, error) {
	payload, err := s.rdb.GetEx(ctx, keyPrefix+token, s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Update rewrites the payload of an existing session keeping a fresh TTL
func (s *Store) Update(ctx context.Context, token string, data Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+token, payload, s.ttl).Err()
}

// Delete removes a session
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

// TTL returns the configured sliding expiry window
func (s *Store) TTL() time.Duration {
	return s.ttl
}
