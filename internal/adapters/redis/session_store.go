// Package redis provides Redis-backed session and flash stores.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/ports"
)

const (
	// DefaultSessionTTL is how long a session lives after its last write.
	DefaultSessionTTL = 24 * time.Hour
	// DefaultKeyPrefix namespaces session and flash keys.
	DefaultKeyPrefix = "straycare:"
)

var (
	_ ports.SessionStore = (*SessionStore)(nil)
	_ ports.FlashStore   = (*FlashStore)(nil)
)

// StoreOptions configures the Redis session and flash stores.
type StoreOptions struct {
	Client redis.UniversalClient
	Prefix string        // defaults to DefaultKeyPrefix
	TTL    time.Duration // defaults to DefaultSessionTTL
}

func (o StoreOptions) normalized() StoreOptions {
	if o.Prefix == "" {
		o.Prefix = DefaultKeyPrefix
	}
	if o.TTL <= 0 {
		o.TTL = DefaultSessionTTL
	}
	return o
}

// SessionStore keeps one JSON document per session token under "<prefix>sess:<token>".
// Expiry is enforced by Redis; each Set resets the TTL.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(opts StoreOptions) *SessionStore {
	opts = opts.normalized()
	return &SessionStore{client: opts.Client, prefix: opts.Prefix + "sess:", ttl: opts.TTL}
}

func (s *SessionStore) key(token string) string { return s.prefix + token }

// Get loads the session for token. Unknown or expired tokens yield ports.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, token string) (domainauth.Session, error) {
	if token == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ports.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	sess.Token = token
	return sess, nil
}

// Set writes the session and refreshes its TTL.
func (s *SessionStore) Set(ctx context.Context, sess domainauth.Session) error {
	if sess.Token == "" {
		return errors.New("session token cannot be empty")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.Token), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Destroy removes the session. Destroying an unknown token is not an error.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
