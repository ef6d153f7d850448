package devauth

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/straycare/straycare/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_RequiresEmail(t *testing.T) {
	_, err := NewProvider(Config{Email: "  "})
	require.Error(t, err)
}

func TestProvider_BeginAndExchange(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prov, err := NewProvider(Config{
		Email:  "sso@straycare.dev",
		Name:   "Dev SSO Shelter",
		Groups: []string{"ngo"},
		Now:    func() time.Time { return fixed },
	})
	require.NoError(t, err)
	ctx := context.Background()

	authURL, state, nonce, err := prov.Begin(ctx, ports.BeginInput{RedirectURL: "/"})
	require.NoError(t, err)
	require.NotEmpty(t, state)
	require.NotEmpty(t, nonce)

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, "/auth/callback", u.Path)
	assert.Equal(t, state, u.Query().Get("state"))
	assert.Equal(t, "dev", u.Query().Get("code"))

	tests := []struct {
		name    string
		in      ports.ExchangeInput
		wantErr error
	}{
		{name: "wrong nonce burns the state", in: ports.ExchangeInput{Code: "dev", State: state, Nonce: "other"}, wantErr: ErrUnknownState},
		{name: "reuse after burn", in: ports.ExchangeInput{Code: "dev", State: state, Nonce: nonce}, wantErr: ErrUnknownState},
		{name: "never issued", in: ports.ExchangeInput{Code: "dev", State: "forged", Nonce: nonce}, wantErr: ErrUnknownState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := prov.Exchange(ctx, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, state, nonce, err = prov.Begin(ctx, ports.BeginInput{})
	require.NoError(t, err)
	id, err := prov.Exchange(ctx, ports.ExchangeInput{Code: "dev", State: state, Nonce: nonce})
	require.NoError(t, err)
	assert.Equal(t, "dev:sso@straycare.dev", id.Subject)
	assert.Equal(t, "Dev SSO Shelter", id.Name)
	assert.Equal(t, []string{"ngo"}, id.Groups)
	assert.Equal(t, fixed.Add(8*time.Hour), id.ExpiresAt)

	_, err = prov.Exchange(ctx, ports.ExchangeInput{Code: "dev", State: state, Nonce: nonce})
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestProvider_CustomCallback(t *testing.T) {
	prov, err := NewProvider(Config{Email: "a@b.dev", CallbackPath: "/sso/return"})
	require.NoError(t, err)
	authURL, _, _, err := prov.Begin(context.Background(), ports.BeginInput{})
	require.NoError(t, err)
	u, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, "/sso/return", u.Path)
}
