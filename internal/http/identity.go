package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/ports"
	"go.opentelemetry.io/otel/trace"
)

// ResolverOptions configures ResolveIdentity.
type ResolverOptions struct {
	Sessions ports.SessionStore // required
	Flashes  ports.FlashStore   // required
	Cookie   CookieConfig
	Logger   *slog.Logger
}

// ResolveIdentity returns a middleware that classifies every request into an
// IdentityContext before any route-specific logic runs.
//
// A missing cookie or an unknown/expired session yields an anonymous identity.
// Both flash queues for the cookie token are drained exactly once, even for
// anonymous callers. Store failures are answered with a 500 and never downgraded
// to anonymous.
func ResolveIdentity(opts ResolverOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := opts.Cookie.Token(r)
			id, err := resolve(ctx, opts, token)
			if err != nil {
				trace.SpanFromContext(ctx).RecordError(err)
				logger.ErrorContext(ctx, "identity resolution failed",
					slog.String("path", r.URL.Path),
					slog.Any("error", err),
				)
				http.Error(w, msgSomethingWrong, http.StatusInternalServerError)
				return
			}
			annotateIdentity(ctx, id)
			ctx = WithIdentity(ctx, id)
			if token != "" {
				ctx = withSessionToken(ctx, token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolve(ctx context.Context, opts ResolverOptions, token string) (*domainauth.IdentityContext, error) {
	id := &domainauth.IdentityContext{}
	if token == "" {
		return id, nil
	}

	sess, err := opts.Sessions.Get(ctx, token)
	switch {
	case errors.Is(err, ports.ErrSessionNotFound):
	case err != nil:
		return nil, fmt.Errorf("load session: %w", err)
	case sess.Authenticated():
		id.CurrentUserID = sess.UserID
		id.CurrentUserKind = sess.UserKind
		id.UserName = sess.UserName
	}

	if id.FlashSuccess, err = opts.Flashes.DrainAll(ctx, token, domainauth.FlashSuccess); err != nil {
		return nil, fmt.Errorf("drain success flash: %w", err)
	}
	if id.FlashError, err = opts.Flashes.DrainAll(ctx, token, domainauth.FlashError); err != nil {
		return nil, fmt.Errorf("drain error flash: %w", err)
	}
	return id, nil
}
