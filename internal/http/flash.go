package httpx

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/ports"
)

// Flasher queues one-shot messages for the caller's next request.
type Flasher struct {
	Store  ports.FlashStore
	Cookie CookieConfig
	// NewToken mints anonymous session tokens; defaults to uuid.NewString.
	NewToken func() string
}

// Push queues msg under kind. A caller without a session token gets a fresh
// anonymous one (cookie set on w) so the message survives the redirect.
func (f *Flasher) Push(w http.ResponseWriter, r *http.Request, kind domainauth.FlashKind, msg string) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown flash kind %q", kind)
	}
	token := SessionTokenFromContext(r.Context())
	if token == "" {
		token = f.Cookie.Token(r)
	}
	if token == "" {
		token = f.newToken()
		f.Cookie.SetSession(w, r, token)
	}
	if err := f.Store.Push(r.Context(), token, kind, msg); err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	return nil
}

// PushTo queues msg for an explicit token, e.g. one just issued by login.
func (f *Flasher) PushTo(r *http.Request, token string, kind domainauth.FlashKind, msg string) error {
	if err := f.Store.Push(r.Context(), token, kind, msg); err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	return nil
}

func (f *Flasher) newToken() string {
	if f.NewToken != nil {
		return f.NewToken()
	}
	return uuid.NewString()
}
