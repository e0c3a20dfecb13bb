package sessions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a token was never issued, already consumed
// or has expired out of Redis.
var ErrNotFound = errors.New("sessions: token not found")

// Store keeps refresh and password-reset tokens in Redis. Only the SHA-256
// of a token is stored, so a dump of the keyspace cannot be replayed.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// HashToken returns the hex SHA-256 of a token, the form used as key suffix.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *Store) SaveRefresh(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshKey(token), userID, ttl).Err()
}

// ConsumeRefresh returns the user id behind a refresh token and deletes it
// in the same round trip, so a token can only ever be redeemed once.
func (s *Store) ConsumeRefresh(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, refreshKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *Store) RevokeRefresh(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKey(token)).Err()
}

func (s *Store) SaveReset(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, resetKey(token), userID, ttl).Err()
}

func (s *Store) ConsumeReset(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, resetKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func refreshKey(token string) string { return "session:refresh:" + HashToken(token) }
func resetKey(token string) string   { return "session:reset:" + HashToken(token) }
