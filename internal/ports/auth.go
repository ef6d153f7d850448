package ports

// Package ports defines interfaces (hexagonal ports) for session, flash and sign-in behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
)

// ErrSessionNotFound is returned by SessionStore.Get when the token is unknown or expired.
// Callers treat it as an anonymous visitor; any other error means the store is unavailable.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists server-side sessions keyed by the opaque cookie token.
// Every Set refreshes the store-level expiry.
type SessionStore interface {
	Get(ctx context.Context, token string) (domainauth.Session, error)
	Set(ctx context.Context, sess domainauth.Session) error
	Destroy(ctx context.Context, token string) error
}

// FlashStore keeps per-token FIFO queues of one-shot messages.
type FlashStore interface {
	Push(ctx context.Context, token string, kind domainauth.FlashKind, msg string) error
	// DrainAll returns all queued messages of kind in push order and empties the queue atomically.
	DrainAll(ctx context.Context, token string, kind domainauth.FlashKind) ([]string, error)
}

// BeginInput carries inputs for initiating a federated sign-in.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes a sign-in flow against an external IdP.
type AuthProvider interface {
	// Begin returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)
	// Exchange verifies state and nonce and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// RoleMapper maps provider groups to an application role.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password []byte) (string, error)
	Compare(hash string, password []byte) error
}
