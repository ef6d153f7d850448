package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
)

// FlashStore keeps one Redis list per (token, kind) under "<prefix>flash:<kind>:<token>".
// Lists share the session TTL so abandoned messages expire with the session.
type FlashStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewFlashStore creates a Redis-backed flash store.
func NewFlashStore(opts StoreOptions) *FlashStore {
	opts = opts.normalized()
	return &FlashStore{client: opts.Client, prefix: opts.Prefix + "flash:", ttl: opts.TTL}
}

func (f *FlashStore) key(token string, kind domainauth.FlashKind) string {
	return f.prefix + string(kind) + ":" + token
}

// Push appends msg to the queue for kind.
func (f *FlashStore) Push(ctx context.Context, token string, kind domainauth.FlashKind, msg string) error {
	if token == "" {
		return errors.New("flash token cannot be empty")
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown flash kind %q", kind)
	}

	key := f.key(token, kind)
	_, err := f.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, msg)
		pipe.Expire(ctx, key, f.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis push flash: %w", err)
	}
	return nil
}

// DrainAll reads and clears the queue in one MULTI/EXEC so concurrent
// requests for the same token never both see a message.
func (f *FlashStore) DrainAll(ctx context.Context, token string, kind domainauth.FlashKind) ([]string, error) {
	if token == "" || !kind.Valid() {
		return nil, nil
	}

	key := f.key(token, kind)
	var lrange *redis.StringSliceCmd
	_, err := f.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis drain flash: %w", err)
	}
	msgs := lrange.Val()
	if len(msgs) == 0 {
		return nil, nil
	}
	return msgs, nil
}
