package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/straycare/straycare/internal/core"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/domain/model"
	apperrors "github.com/straycare/straycare/internal/errors"
	"github.com/straycare/straycare/internal/ports"
)

// ErrFederationDisabled is returned by the federated sign-in methods when no IdP is configured.
var ErrFederationDisabled = errors.New("federated sign-in is not configured")

const invalidCredentialsMsg = "Invalid email or password."

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    core.UserRepository
	Sessions ports.SessionStore
	Hasher   ports.PasswordHasher
	// Provider and Roles are optional; without them federated sign-in is disabled.
	Provider ports.AuthProvider
	Roles    ports.RoleMapper
	Logger   *slog.Logger
	// NewToken mints session tokens; defaults to random UUIDs.
	NewToken func() string
}

// AuthService owns every write to the session store: registration, password login,
// federated login and logout.
type AuthService struct {
	users    core.UserRepository
	sessions ports.SessionStore
	hasher   ports.PasswordHasher
	provider ports.AuthProvider
	roles    ports.RoleMapper
	logger   *slog.Logger
	newToken func() string
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	newToken := opts.NewToken
	if newToken == nil {
		newToken = NewSessionToken
	}
	return &AuthService{
		users:    opts.Users,
		sessions: opts.Sessions,
		hasher:   opts.Hasher,
		provider: opts.Provider,
		roles:    opts.Roles,
		logger:   opts.Logger,
		newToken: newToken,
	}
}

// NewSessionToken returns a fresh opaque session token.
func NewSessionToken() string { return uuid.NewString() }

func (s *AuthService) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// FederationEnabled reports whether an IdP is wired.
func (s *AuthService) FederationEnabled() bool { return s.provider != nil && s.roles != nil }

// Register creates an account and signs it in. PriorToken, when set, is the caller's
// current (usually anonymous) session token and is destroyed once the new one exists.
func (s *AuthService) Register(ctx context.Context, req model.RegisterUserRequest, priorToken string) (domainauth.Session, error) {
	if err := req.Validate(); err != nil {
		return domainauth.Session{}, err
	}
	hash, err := s.hasher.Hash([]byte(req.Password))
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, &model.CreateUserRequest{
		Kind:         req.Kind,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return domainauth.Session{}, err
	}
	s.log().InfoContext(ctx, "user registered", "user_id", user.ID, "kind", user.Kind)
	return s.startSession(ctx, user, priorToken)
}

// LoginInput carries a password login attempt for one role.
type LoginInput struct {
	Kind       domainauth.Role
	Email      string
	Password   string
	PriorToken string
}

// Login verifies credentials for an account of the requested kind and starts a session.
// Unknown email, wrong password and wrong kind all yield the same Unauthorized error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (domainauth.Session, error) {
	if !in.Kind.Valid() {
		return domainauth.Session{}, apperrors.Validation("Unknown account type.")
	}
	email, err := model.NormalizeEmail(in.Email)
	if err != nil || in.Password == "" {
		return domainauth.Session{}, apperrors.Unauthorized(invalidCredentialsMsg)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if apperrors.IsNotFound(err) {
		return domainauth.Session{}, apperrors.Unauthorized(invalidCredentialsMsg)
	}
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("lookup user: %w", err)
	}
	if user.Kind != in.Kind || user.PasswordHash == "" {
		return domainauth.Session{}, apperrors.Unauthorized(invalidCredentialsMsg)
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(in.Password)); err != nil {
		s.log().InfoContext(ctx, "login rejected", "user_id", user.ID, "error", err)
		return domainauth.Session{}, apperrors.Unauthorized(invalidCredentialsMsg)
	}
	return s.startSession(ctx, user, in.PriorToken)
}

// Logout destroys the session. An empty token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// BeginLoginResult contains the result of beginning a federated login.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginFederatedLogin returns the IdP URL plus the state and nonce the caller must keep.
func (s *AuthService) BeginFederatedLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if !s.FederationEnabled() {
		return nil, ErrFederationDisabled
	}
	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a federated login.
type CompleteLoginInput struct {
	Code       string
	State      string
	Nonce      string
	PriorToken string
}

// CompleteFederatedLogin exchanges the code, links or provisions the account by email,
// and starts a session. New accounts take their kind from the role mapper; existing
// accounts keep the kind they were registered with.
func (s *AuthService) CompleteFederatedLogin(ctx context.Context, in CompleteLoginInput) (domainauth.Session, error) {
	if !s.FederationEnabled() {
		return domainauth.Session{}, ErrFederationDisabled
	}
	if in.Code == "" || in.State == "" || in.Nonce == "" {
		return domainauth.Session{}, apperrors.Unauthorized("Sign-in could not be completed.")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{Code: in.Code, State: in.State, Nonce: in.Nonce})
	if err != nil {
		s.log().WarnContext(ctx, "authorization code exchange failed", "error", err)
		unauthorized := apperrors.Unauthorized("Sign-in could not be completed.")
		unauthorized.Cause = err
		return domainauth.Session{}, unauthorized
	}
	email, err := model.NormalizeEmail(identity.Email)
	if err != nil {
		return domainauth.Session{}, apperrors.Unauthorized("Your identity provider did not share a usable email address.")
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case apperrors.IsNotFound(err):
		user, err = s.users.Create(ctx, &model.CreateUserRequest{
			Kind:  s.roles.Map(identity.Groups),
			Name:  displayName(identity),
			Email: email,
		})
		if err != nil {
			return domainauth.Session{}, fmt.Errorf("provision user: %w", err)
		}
		s.log().InfoContext(ctx, "user provisioned from identity provider", "user_id", user.ID, "kind", user.Kind)
	case err != nil:
		return domainauth.Session{}, fmt.Errorf("lookup user: %w", err)
	}
	return s.startSession(ctx, user, in.PriorToken)
}

func displayName(id domainauth.Identity) string {
	if name := strings.TrimSpace(id.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(id.Email, "@")
	return local
}

// startSession always mints a new token so a pre-login token can never become authenticated.
func (s *AuthService) startSession(ctx context.Context, user *model.User, priorToken string) (domainauth.Session, error) {
	sess := domainauth.Session{
		Token:    s.newToken(),
		UserID:   user.ID,
		UserKind: user.Kind,
		UserName: user.Name,
	}
	if err := s.sessions.Set(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	if priorToken != "" && priorToken != sess.Token {
		if err := s.sessions.Destroy(ctx, priorToken); err != nil {
			s.log().WarnContext(ctx, "failed to destroy prior session", "error", err)
		}
	}
	return sess, nil
}
