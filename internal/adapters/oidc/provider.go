// Package oidc implements federated sign-in for NGO staff against an OpenID Connect provider.
package oidc

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/ports"
	"golang.org/x/oauth2"
)

var _ ports.AuthProvider = (*Provider)(nil)

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	// Issuer is the issuer URL or its discovery document URL.
	Issuer string
	// GroupsClaim names the claim carrying group membership; defaults to "groups".
	GroupsClaim string
	HTTPClient  *http.Client
}

// Provider implements ports.AuthProvider with go-oidc and oauth2.
type Provider struct {
	config      *oauth2.Config
	httpClient  *http.Client
	provider    *gooidc.Provider
	verifier    *gooidc.IDTokenVerifier
	groupsClaim string
}

// NewProvider runs discovery against the issuer and returns a ready Provider.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	switch {
	case cfg.ClientID == "":
		return nil, errors.New("client ID is required")
	case cfg.ClientSecret == "":
		return nil, errors.New("client secret is required")
	case cfg.RedirectURL == "":
		return nil, errors.New("redirect URL is required")
	case cfg.Issuer == "":
		return nil, errors.New("issuer is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	groupsClaim := cfg.GroupsClaim
	if groupsClaim == "" {
		groupsClaim = "groups"
	}
	scopes := strings.Fields(cfg.Scope)
	if !slices.Contains(scopes, gooidc.ScopeOpenID) {
		scopes = append([]string{gooidc.ScopeOpenID}, scopes...)
	}

	ctx = gooidc.ClientContext(ctx, httpClient)
	op, err := gooidc.NewProvider(ctx, normalizeIssuer(cfg.Issuer))
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     op.Endpoint(),
		},
		httpClient:  httpClient,
		provider:    op,
		verifier:    op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		groupsClaim: groupsClaim,
	}, nil
}

func normalizeIssuer(raw string) string {
	s := strings.TrimSuffix(raw, "/")
	s = strings.TrimSuffix(s, "/.well-known/openid-configuration")
	return s
}

// Begin builds the authorization URL with a fresh state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomToken(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomToken(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	authURL := p.config.AuthCodeURL(state, gooidc.Nonce(nonce))
	return authURL, state, nonce, nil
}

// Exchange trades the code for tokens, verifies the ID token and nonce, and maps claims.
// UserInfo fills in anything the ID token left out.
func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	switch {
	case in.Code == "":
		return domainauth.Identity{}, errors.New("authorization code is required")
	case in.State == "":
		return domainauth.Identity{}, errors.New("state is required")
	case in.Nonce == "":
		return domainauth.Identity{}, errors.New("nonce is required")
	}

	ctx = gooidc.ClientContext(ctx, p.httpClient)
	tok, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("exchange code: %w", err)
	}

	rawID, ok := tok.Extra("id_token").(string)
	if !ok || rawID == "" {
		return domainauth.Identity{}, errors.New("missing id_token in token response")
	}
	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("verify id_token: %w", err)
	}
	if idTok.Nonce != in.Nonce {
		return domainauth.Identity{}, errors.New("invalid nonce")
	}

	var raw map[string]any
	if err := idTok.Claims(&raw); err != nil {
		return domainauth.Identity{}, fmt.Errorf("parse id_token claims: %w", err)
	}
	id := p.identityFromClaims(raw)
	id.ExpiresAt = idTok.Expiry

	if id.Email == "" || id.Name == "" || len(id.Groups) == 0 {
		ui, uiErr := p.provider.UserInfo(ctx, oauth2.StaticTokenSource(tok))
		if uiErr != nil {
			return domainauth.Identity{}, fmt.Errorf("fetch user info: %w", uiErr)
		}
		var uiClaims map[string]any
		if err := ui.Claims(&uiClaims); err != nil {
			return domainauth.Identity{}, fmt.Errorf("decode user info: %w", err)
		}
		fillMissing(&id, p.identityFromClaims(uiClaims))
	}
	if id.Subject == "" {
		return domainauth.Identity{}, errors.New("identity has no subject")
	}
	return id, nil
}

func (p *Provider) identityFromClaims(c map[string]any) domainauth.Identity {
	return domainauth.Identity{
		Subject: stringClaim(c, "sub"),
		Name:    firstNonEmpty(stringClaim(c, "name"), stringClaim(c, "preferred_username")),
		Email:   stringClaim(c, "email"),
		Groups:  stringsClaim(c, p.groupsClaim),
	}
}

func fillMissing(dst *domainauth.Identity, src domainauth.Identity) {
	if dst.Subject == "" {
		dst.Subject = src.Subject
	}
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.Email == "" {
		dst.Email = src.Email
	}
	if len(dst.Groups) == 0 {
		dst.Groups = src.Groups
	}
}

func stringClaim(c map[string]any, key string) string {
	s, _ := c[key].(string)
	return s
}

// stringsClaim accepts both a JSON array and a single string.
func stringsClaim(c map[string]any, key string) []string {
	switch v := c[key].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// randomToken returns a URL-safe random string of exactly length characters.
func randomToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:length], nil
}
