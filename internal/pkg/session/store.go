package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is the per-login record kept in redis, keyed by the token's JTI.
// It is advisory: logout removes it, and the auth middleware removes it when
// it finds the subject deleted or deactivated. JWTs themselves stay valid
// until expiry.
type Entry struct {
	UsuarioID int64     `json:"usuarioId"`
	Tipo      string    `json:"tipo"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists session entries in redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store whose entries live as long as the tokens
// they accompany.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(jti string) string {
	return "registro:sessao:" + jti
}

// Create records a session for a freshly issued token.
func (s *Store) Create(ctx context.Context, jti string, usuarioID int64, tipo string) error {
	entry := Entry{
		UsuarioID: usuarioID,
		Tipo:      tipo,
		CreatedAt: time.Now(),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode session entry: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(jti), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get returns the session entry for a JTI, or nil when none exists.
func (s *Store) Get(ctx context.Context, jti string) (*Entry, error) {
	payload, err := s.client.Get(ctx, sessionKey(jti)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode session entry: %w", err)
	}
	return &entry, nil
}

// Destroy removes a session entry. Removing a missing entry is not an error.
func (s *Store) Destroy(ctx context.Context, jti string) error {
	if err := s.client.Del(ctx, sessionKey(jti)).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
