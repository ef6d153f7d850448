package auth

// Package auth contains domain-level types for authentication, sessions and request identity.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// The string form is what we persist in sessions and the users table.
type Role string

const (
	// RoleLocal is a member of the public: reports strays and requests adoptions.
	RoleLocal Role = "LOCAL"
	// RoleNGO is an organization managing treated animals, adoption posts and ads.
	RoleNGO Role = "NGO"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RoleLocal || r == RoleNGO
}

// ParseRole maps a route or form value ("local", "NGO", ...) to a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// Slug is the lowercase form used in URLs (/auth/login/local, /auth/login/ngo).
func (r Role) Slug() string { return strings.ToLower(string(r)) }

// Session is the server-side record persisted for a browser.
// Token is the opaque identifier carried by the session cookie.
// An empty UserID always means anonymous, whatever the other fields hold.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id,omitempty"`
	UserKind Role   `json:"user_kind,omitempty"`
	UserName string `json:"user_name,omitempty"`
}

// Authenticated reports whether the session represents a signed-in principal.
func (s Session) Authenticated() bool { return s.UserID != "" }

// FlashKind selects one of the two one-shot message queues.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Valid reports whether k is a known flash queue.
func (k FlashKind) Valid() bool { return k == FlashSuccess || k == FlashError }

// IdentityContext is the per-request, read-only snapshot of the caller.
// It is built once by the resolver and never persisted.
type IdentityContext struct {
	CurrentUserID   string
	CurrentUserKind Role
	UserName        string
	FlashSuccess    []string
	FlashError      []string
}

// Authenticated reports whether the request carries a signed-in principal.
func (c *IdentityContext) Authenticated() bool {
	return c != nil && c.CurrentUserID != ""
}

// Identity represents a principal returned by an external IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	Subject   string
	Name      string
	Email     string
	Groups    []string
	ExpiresAt time.Time
}
