package httpx

import (
	"context"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
)

// identityKey is an unexported context key type to avoid collisions across packages.
type identityKey struct{}

// viewKey carries the render-facing copy of the identity.
type viewKey struct{}

// sessionTokenKey carries the raw cookie token for handlers that write the session or flash.
type sessionTokenKey struct{}

// WithIdentity returns a child context that carries the resolved identity.
func WithIdentity(ctx context.Context, id *domainauth.IdentityContext) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by ResolveIdentity.
// A request that never passed the resolver yields an anonymous identity, never nil.
func IdentityFromContext(ctx context.Context) *domainauth.IdentityContext {
	if id, ok := ctx.Value(identityKey{}).(*domainauth.IdentityContext); ok && id != nil {
		return id
	}
	return &domainauth.IdentityContext{}
}

func withSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenKey{}, token)
}

// SessionTokenFromContext returns the caller's session token, or "" when they have none.
func SessionTokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(sessionTokenKey{}).(string)
	return tok
}
