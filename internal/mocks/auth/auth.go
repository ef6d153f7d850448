package auth

// Package auth contains hand-written in-memory doubles for the session, flash and IdP ports.
// They are safe for concurrent use and need no codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/ports"
)

var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.FlashStore   = (*MemoryFlashStore)(nil)
)

// MockAuthProvider simulates an IdP with deterministic state and nonce values.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	AuthURL     string
	DefaultUser domainauth.Identity

	mu        sync.Mutex
	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider that signs everyone in as a member of "ngo-staff".
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultUser: domainauth.Identity{
			Subject: "mock-subject-1",
			Name:    "Mock Rescue",
			Email:   "ops@mock-rescue.example",
			Groups:  []string{"ngo-staff"},
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.mu.Lock()
	m.callCount++
	n := m.callCount
	m.mu.Unlock()

	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	return authURL, fmt.Sprintf("state-%d", n), fmt.Sprintf("nonce-%d", n), nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	if in.Code == "" {
		return domainauth.Identity{}, errors.New("authorization code is required")
	}
	user := m.DefaultUser
	user.ExpiresAt = time.Now().Add(time.Hour)
	return user, nil
}

// MemorySessionStore is an in-memory SessionStore. Setting Err makes every call fail with it,
// which stands in for an unreachable backend.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
	Err      error
}

// NewMemorySessionStore creates an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Get(_ context.Context, token string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return domainauth.Session{}, m.Err
	}
	sess, ok := m.sessions[token]
	if !ok || token == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Set(_ context.Context, sess domainauth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if sess.Token == "" {
		return errors.New("session token cannot be empty")
	}
	m.sessions[sess.Token] = sess
	return nil
}

func (m *MemorySessionStore) Destroy(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.sessions, token)
	return nil
}

// Len reports how many sessions are stored.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

type flashKey struct {
	token string
	kind  domainauth.FlashKind
}

// MemoryFlashStore is an in-memory FlashStore. Setting Err makes every call fail with it.
type MemoryFlashStore struct {
	mu     sync.Mutex
	queues map[flashKey][]string
	Err    error
}

// NewMemoryFlashStore creates an empty store.
func NewMemoryFlashStore() *MemoryFlashStore {
	return &MemoryFlashStore{queues: make(map[flashKey][]string)}
}

func (m *MemoryFlashStore) Push(_ context.Context, token string, kind domainauth.FlashKind, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if token == "" || !kind.Valid() {
		return fmt.Errorf("invalid flash push (token=%q kind=%q)", token, kind)
	}
	k := flashKey{token, kind}
	m.queues[k] = append(m.queues[k], msg)
	return nil
}

func (m *MemoryFlashStore) DrainAll(_ context.Context, token string, kind domainauth.FlashKind) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	k := flashKey{token, kind}
	msgs := m.queues[k]
	delete(m.queues, k)
	return msgs, nil
}

// Pending returns queued messages without draining them.
func (m *MemoryFlashStore) Pending(token string, kind domainauth.FlashKind) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queues[flashKey{token, kind}]...)
}
