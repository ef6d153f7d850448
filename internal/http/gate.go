package httpx

import (
	"net/http"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
)

// Outcome is the result of a single guard.
type Outcome int

const (
	Pass Outcome = iota
	DenyRedirect
	DenyForbidden
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case DenyRedirect:
		return "redirect"
	case DenyForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Decision is what a guard chain concluded for a request.
type Decision struct {
	Outcome  Outcome
	Location string // DenyRedirect
	Message  string // DenyForbidden
}

// Allowed reports whether the handler may run.
func (d Decision) Allowed() bool { return d.Outcome == Pass }

// Guard is one authorization predicate. The set of variants is closed.
type Guard interface {
	check(id *domainauth.IdentityContext) Decision
}

// RequireAuthenticated passes iff the caller is signed in, and otherwise
// redirects to LoginPath with 303 See Other.
type RequireAuthenticated struct {
	LoginPath string
}

func (g RequireAuthenticated) check(id *domainauth.IdentityContext) Decision {
	if id.Authenticated() {
		return Decision{Outcome: Pass}
	}
	loc := g.LoginPath
	if loc == "" {
		loc = DefaultLoginPath
	}
	return Decision{Outcome: DenyRedirect, Location: loc}
}

// RequireRole passes iff the caller's kind is a recognized role equal to Role.
// Unrecognized kinds, and guards built with an unrecognized Role, always deny.
type RequireRole struct {
	Role    domainauth.Role
	Message string
}

func (g RequireRole) check(id *domainauth.IdentityContext) Decision {
	kind := id.CurrentUserKind
	if g.Role.Valid() && kind.Valid() && kind == g.Role {
		return Decision{Outcome: Pass}
	}
	msg := g.Message
	if msg == "" {
		msg = http.StatusText(http.StatusForbidden)
	}
	return Decision{Outcome: DenyForbidden, Message: msg}
}

// Role guards used by the route table.
//
//nolint:gochecknoglobals // immutable guard values
var (
	RequireLocal = RequireRole{Role: domainauth.RoleLocal, Message: msgOnlyLocal}
	RequireNGO   = RequireRole{Role: domainauth.RoleNGO, Message: msgOnlyNGO}
)

// Evaluate applies guards left to right; the first denial ends the chain.
// A nil identity is evaluated as anonymous.
func Evaluate(id *domainauth.IdentityContext, guards ...Guard) Decision {
	if id == nil {
		id = &domainauth.IdentityContext{}
	}
	for _, g := range guards {
		if d := g.check(id); !d.Allowed() {
			return d
		}
	}
	return Decision{Outcome: Pass}
}

// Gate returns a middleware that evaluates guards against the resolved identity.
// On denial the response is written here and next never runs.
func Gate(guards ...Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Evaluate(IdentityFromContext(r.Context()), guards...)
			if !d.Allowed() {
				noteDenial(r.Context(), d.Outcome)
				annotateDenial(r.Context(), d)
			}
			switch d.Outcome {
			case Pass:
				next.ServeHTTP(w, r)
			case DenyRedirect:
				http.Redirect(w, r, d.Location, http.StatusSeeOther)
			default:
				writeForbidden(w, d.Message)
			}
		})
	}
}

func writeForbidden(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(msg))
}
