package model

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
	apperrors "github.com/straycare/straycare/internal/errors"
)

const (
	maxUserNameLen   = 120
	minPasswordLen   = 8
	maxPasswordBytes = 72 // bcrypt ignores anything beyond 72 bytes
	maxShortFieldLen = 255
	maxLongFieldLen  = 4000
	defaultListLimit = 50
	maxListLimit     = 200
)

// User is a registered account. Kind fixes which role the account signs in as.
type User struct {
	ID           string          `json:"id"         db:"id"`
	Kind         domainauth.Role `json:"kind"       db:"kind"`
	Name         string          `json:"name"       db:"name"`
	Email        string          `json:"email"      db:"email"`
	PasswordHash string          `json:"-"          db:"password_hash"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// RegisterUserRequest carries the registration form.
type RegisterUserRequest struct {
	Kind     domainauth.Role
	Name     string
	Email    string
	Password string
}

// Validate normalizes and validates the registration request.
func (r *RegisterUserRequest) Validate() error {
	if !r.Kind.Valid() {
		return apperrors.ValidationField("kind", "account type must be LOCAL or NGO")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return apperrors.ValidationField("name", "name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxUserNameLen {
		return apperrors.ValidationField("name", "name cannot exceed 120 characters")
	}
	email, err := NormalizeEmail(r.Email)
	if err != nil {
		return err
	}
	r.Email = email
	if len(r.Password) < minPasswordLen {
		return apperrors.ValidationField("password", "password must be at least 8 characters")
	}
	if len(r.Password) > maxPasswordBytes {
		return apperrors.ValidationField("password", "password cannot exceed 72 bytes")
	}
	return nil
}

// CreateUserRequest is what the repository persists; the password is already hashed.
type CreateUserRequest struct {
	Kind         domainauth.Role
	Name         string
	Email        string
	PasswordHash string
}

// NormalizeEmail lowercases and validates an e-mail address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", apperrors.ValidationField("email", "email is required and cannot be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperrors.ValidationField("email", "email must be a valid address")
	}
	return email, nil
}

// clampLimit keeps list sizes within sane bounds.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func requireText(field, value string, maxLen int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", apperrors.ValidationField(field, field+" is required and cannot be empty")
	}
	if utf8.RuneCountInString(v) > maxLen {
		return "", apperrors.ValidationField(field, field+" is too long")
	}
	return v, nil
}
