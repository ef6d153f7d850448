package devauth

// Package devauth stands in for an identity provider during local development,
// so the SSO buttons and callback work without a real IdP.

import (
	"context"
	"crypto/rand"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/ports"
)

const defaultCallbackPath = "/auth/callback"

// ErrUnknownState is returned when Exchange sees a state it never issued,
// or one that was already used.
var ErrUnknownState = errors.New("dev auth: unknown or reused state")

// Config controls the identity the provider signs in as.
type Config struct {
	Email        string // required
	Name         string
	Groups       []string
	CallbackPath string // defaults to /auth/callback
	Now          func() time.Time
}

// Provider implements ports.AuthProvider by redirecting straight back to the
// callback. Every Begin issues a single-use state bound to its nonce.
type Provider struct {
	identity domainauth.Identity
	callback string
	now      func() time.Time

	mu      sync.Mutex
	pending map[string]string // state -> nonce
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	email := strings.TrimSpace(cfg.Email)
	if email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	callback := cfg.CallbackPath
	if callback == "" {
		callback = defaultCallbackPath
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Provider{
		identity: domainauth.Identity{
			Subject: "dev:" + email,
			Name:    strings.TrimSpace(cfg.Name),
			Email:   email,
			Groups:  append([]string(nil), cfg.Groups...),
		},
		callback: callback,
		now:      now,
		pending:  make(map[string]string),
	}, nil
}

// Begin returns the local callback URL with a fresh state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, nonce := rand.Text(), rand.Text()

	p.mu.Lock()
	p.pending[state] = nonce
	p.mu.Unlock()

	q := url.Values{"code": {"dev"}, "state": {state}}
	return p.callback + "?" + q.Encode(), state, nonce, nil
}

// Exchange consumes the state and returns the configured identity.
func (p *Provider) Exchange(_ context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	p.mu.Lock()
	nonce, ok := p.pending[in.State]
	delete(p.pending, in.State)
	p.mu.Unlock()

	if !ok || nonce != in.Nonce {
		return domainauth.Identity{}, ErrUnknownState
	}
	id := p.identity
	id.Groups = append([]string(nil), p.identity.Groups...)
	id.ExpiresAt = p.now().Add(8 * time.Hour)
	return id, nil
}
