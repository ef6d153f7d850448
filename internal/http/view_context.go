package httpx

import (
	"context"
	"net/http"
	"slices"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
)

// ViewContext is the identity as templates see it: a value copy of the
// resolved IdentityContext exposed to every page as .View.
type ViewContext struct {
	CurrentUserID   string
	CurrentUserKind domainauth.Role
	UserName        string
	FlashSuccess    []string
	FlashError      []string
}

// IsAuthenticated reports whether a user is signed in.
func (v ViewContext) IsAuthenticated() bool { return v.CurrentUserID != "" }

// IsNGO reports whether the signed-in user is an NGO.
func (v ViewContext) IsNGO() bool {
	return v.IsAuthenticated() && v.CurrentUserKind == domainauth.RoleNGO
}

// IsLocal reports whether the signed-in user is a member of the public.
func (v ViewContext) IsLocal() bool {
	return v.IsAuthenticated() && v.CurrentUserKind == domainauth.RoleLocal
}

// HasFlash reports whether any one-shot message is pending display.
func (v ViewContext) HasFlash() bool { return len(v.FlashSuccess) > 0 || len(v.FlashError) > 0 }

func newViewContext(id *domainauth.IdentityContext) ViewContext {
	return ViewContext{
		CurrentUserID:   id.CurrentUserID,
		CurrentUserKind: id.CurrentUserKind,
		UserName:        id.UserName,
		FlashSuccess:    slices.Clone(id.FlashSuccess),
		FlashError:      slices.Clone(id.FlashError),
	}
}

// PropagateView copies the resolved identity into the render context. Mount it
// right after ResolveIdentity so denials and handlers alike can render with it.
func PropagateView() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := newViewContext(IdentityFromContext(r.Context()))
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), viewKey{}, v)))
		})
	}
}

// ViewFromContext returns the propagated view, or the zero (anonymous) view.
func ViewFromContext(ctx context.Context) ViewContext {
	v, _ := ctx.Value(viewKey{}).(ViewContext)
	return v
}
