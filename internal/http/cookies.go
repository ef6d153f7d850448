package httpx

import (
	"net/http"
	"strings"
	"time"
)

// CookieConfig describes how the session cookie is written.
type CookieConfig struct {
	Name   string
	Domain string
	// Secure forces the Secure attribute. When false it is still set for TLS or
	// X-Forwarded-Proto: https requests.
	Secure bool
	TTL    time.Duration
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultSessionCookie
	}
	return c.Name
}

func (c CookieConfig) ttl() time.Duration {
	if c.TTL <= 0 {
		return 24 * time.Hour
	}
	return c.TTL
}

func (c CookieConfig) secure(r *http.Request) bool {
	return c.Secure || r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// Token returns the session token carried by the request, or "".
func (c CookieConfig) Token(r *http.Request) string {
	ck, err := r.Cookie(c.name())
	if err != nil {
		return ""
	}
	return ck.Value
}

// SetSession writes the session cookie for token.
func (c CookieConfig) SetSession(w http.ResponseWriter, r *http.Request, token string) {
	c.set(w, r, c.name(), token, int(c.ttl().Seconds()))
}

// ClearSession expires the session cookie on the client.
func (c CookieConfig) ClearSession(w http.ResponseWriter, r *http.Request) {
	c.clear(w, r, c.name())
}

func (c CookieConfig) set(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clear mirrors the attributes used when setting so browsers match the cookie.
func (c CookieConfig) clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
