package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// SecureCookies forces the Secure cookie attribute even behind plain-HTTP proxies.
	SecureCookies bool `env:"APP_SECURE_COOKIES" envDefault:"false"`

	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT"    envDefault:"10s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.CookieDomain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(h.CookieDomain)), ".")
	if h.ReadHeaderTimeout <= 0 {
		h.ReadHeaderTimeout = 5 * time.Second
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
}

// Validate rejects a cookie domain browsers would refuse or share across sites.
func (h *HTTPConfig) Validate() error {
	if h.CookieDomain == "" || h.CookieDomain == "localhost" {
		return nil
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(h.CookieDomain); err != nil {
		return fmt.Errorf("APP_COOKIE_DOMAIN %q is not a registrable domain: %w", h.CookieDomain, err)
	}
	return nil
}

// SessionConfig controls the server-side session and its cookie.
type SessionConfig struct {
	// TTL is how long a session (and its flash queues) lives after the last write.
	TTL time.Duration `env:"TTL" envDefault:"24h"`

	CookieName string `env:"COOKIE_NAME" envDefault:"straycare.sid"`

	// KeyPrefix namespaces every Redis key the app writes.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"straycare:"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL < time.Minute {
		s.TTL = 24 * time.Hour
	}
	s.CookieName = strings.TrimSpace(s.CookieName)
	if s.CookieName == "" {
		s.CookieName = "straycare.sid"
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "straycare:"
	}
}
