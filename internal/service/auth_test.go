package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/straycare/straycare/internal/adapters/authroles"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/domain/model"
	apperrors "github.com/straycare/straycare/internal/errors"
	"github.com/straycare/straycare/internal/mocks"
	authmocks "github.com/straycare/straycare/internal/mocks/auth"
	"github.com/straycare/straycare/internal/ports"
	"github.com/straycare/straycare/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	svc      *AuthService
	users    *mocks.MockUserRepository
	sessions *authmocks.MemorySessionStore
	provider *authmocks.MockAuthProvider
	hasher   *security.Hasher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &authFixture{
		users:    mocks.NewMockUserRepository(ctrl),
		sessions: authmocks.NewMemorySessionStore(),
		provider: authmocks.NewMockAuthProvider(),
		hasher:   security.NewHasher(bcrypt.MinCost),
	}
	n := 0
	f.svc = NewAuthService(AuthServiceOptions{
		Users:    f.users,
		Sessions: f.sessions,
		Hasher:   f.hasher,
		Provider: f.provider,
		Roles:    authroles.GroupMapper{NGOGroup: "ngo-staff"},
		NewToken: func() string { n++; return fmt.Sprintf("tok-%d", n) },
	})
	return f
}

func (f *authFixture) user(t *testing.T, kind domainauth.Role, password string) *model.User {
	t.Helper()
	hash, err := f.hasher.Hash([]byte(password))
	require.NoError(t, err)
	return &model.User{ID: "u-1", Kind: kind, Name: "Ana", Email: "ana@example.com", PasswordHash: hash}
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *model.CreateUserRequest) (*model.User, error) {
			assert.Equal(t, "ana@example.com", req.Email)
			assert.Equal(t, domainauth.RoleLocal, req.Kind)
			assert.NoError(t, f.hasher.Compare(req.PasswordHash, []byte("password123")))
			return &model.User{ID: "u-1", Kind: req.Kind, Name: req.Name, Email: req.Email}, nil
		})

	sess, err := f.svc.Register(ctx, model.RegisterUserRequest{
		Kind: domainauth.RoleLocal, Name: "Ana", Email: "Ana@Example.com", Password: "password123",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, domainauth.Session{Token: "tok-1", UserID: "u-1", UserKind: domainauth.RoleLocal, UserName: "Ana"}, sess)

	stored, err := f.sessions.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, sess, stored)
}

func TestAuthService_Register_ValidationAndConflict(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, model.RegisterUserRequest{Kind: domainauth.RoleNGO, Name: "x", Email: "bad", Password: "password123"}, "")
	assert.True(t, apperrors.IsValidation(err))

	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperrors.Conflict("An account with this email already exists."))
	_, err = f.svc.Register(ctx, model.RegisterUserRequest{Kind: domainauth.RoleNGO, Name: "x", Email: "a@b.io", Password: "password123"}, "")
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, 0, f.sessions.Len())
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := f.user(t, domainauth.RoleNGO, "password123")

	require.NoError(t, f.sessions.Set(ctx, domainauth.Session{Token: "anon"}))
	f.users.EXPECT().GetByEmail(gomock.Any(), "ana@example.com").Return(u, nil)

	sess, err := f.svc.Login(ctx, LoginInput{Kind: domainauth.RoleNGO, Email: " ANA@example.com", Password: "password123", PriorToken: "anon"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, domainauth.RoleNGO, sess.UserKind)

	_, err = f.sessions.Get(ctx, "anon")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound, "the pre-login token must not survive")
}

func TestAuthService_Login_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *authFixture, t *testing.T)
		in    LoginInput
	}{
		{
			name: "unknown email",
			setup: func(f *authFixture, _ *testing.T) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, apperrors.NotFound("Resource not found"))
			},
			in: LoginInput{Kind: domainauth.RoleLocal, Email: "x@y.io", Password: "pw"},
		},
		{
			name: "wrong password",
			setup: func(f *authFixture, t *testing.T) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(f.user(t, domainauth.RoleLocal, "password123"), nil)
			},
			in: LoginInput{Kind: domainauth.RoleLocal, Email: "ana@example.com", Password: "nope"},
		},
		{
			name: "wrong kind",
			setup: func(f *authFixture, t *testing.T) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(f.user(t, domainauth.RoleLocal, "password123"), nil)
			},
			in: LoginInput{Kind: domainauth.RoleNGO, Email: "ana@example.com", Password: "password123"},
		},
		{
			name:  "empty password",
			setup: func(*authFixture, *testing.T) {},
			in:    LoginInput{Kind: domainauth.RoleNGO, Email: "ana@example.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			tt.setup(f, t)
			_, err := f.svc.Login(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, apperrors.IsUnauthorized(err))
			assert.Equal(t, invalidCredentialsMsg, apperrors.UserMessage(err, ""))
			assert.Equal(t, 0, f.sessions.Len())
		})
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(f.user(t, domainauth.RoleLocal, "password123"), nil)
	f.sessions.Err = errors.New("redis down")

	_, err := f.svc.Login(context.Background(), LoginInput{Kind: domainauth.RoleLocal, Email: "ana@example.com", Password: "password123"})
	require.Error(t, err)
	assert.False(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	require.NoError(t, f.sessions.Set(ctx, domainauth.Session{Token: "t", UserID: "u", UserKind: domainauth.RoleLocal}))

	require.NoError(t, f.svc.Logout(ctx, "t"))
	assert.Equal(t, 0, f.sessions.Len())
	require.NoError(t, f.svc.Logout(ctx, ""))
}

func TestAuthService_Federated_ProvisionsNGO(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	begin, err := f.svc.BeginFederatedLogin(ctx, "http://localhost/auth/callback")
	require.NoError(t, err)
	assert.Equal(t, "state-1", begin.State)

	f.users.EXPECT().GetByEmail(gomock.Any(), "ops@mock-rescue.example").Return(nil, apperrors.NotFound("Resource not found"))
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *model.CreateUserRequest) (*model.User, error) {
			assert.Equal(t, domainauth.RoleNGO, req.Kind)
			assert.Empty(t, req.PasswordHash)
			return &model.User{ID: "u-9", Kind: req.Kind, Name: req.Name, Email: req.Email}, nil
		})

	sess, err := f.svc.CompleteFederatedLogin(ctx, CompleteLoginInput{Code: "c", State: begin.State, Nonce: begin.Nonce})
	require.NoError(t, err)
	assert.Equal(t, "u-9", sess.UserID)
	assert.Equal(t, domainauth.RoleNGO, sess.UserKind)
	assert.Equal(t, "Mock Rescue", sess.UserName)
}

func TestAuthService_Federated_ExistingAccountKeepsKind(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(
		&model.User{ID: "u-2", Kind: domainauth.RoleLocal, Name: "Ana", Email: "ops@mock-rescue.example"}, nil)

	sess, err := f.svc.CompleteFederatedLogin(context.Background(), CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleLocal, sess.UserKind)
}

func TestAuthService_Federated_Disabled(t *testing.T) {
	svc := NewAuthService(AuthServiceOptions{Sessions: authmocks.NewMemorySessionStore()})
	assert.False(t, svc.FederationEnabled())

	_, err := svc.BeginFederatedLogin(context.Background(), "http://x")
	assert.ErrorIs(t, err, ErrFederationDisabled)
	_, err = svc.CompleteFederatedLogin(context.Background(), CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	assert.ErrorIs(t, err, ErrFederationDisabled)
}

func TestAuthService_Federated_ExchangeFailureIsUnauthorized(t *testing.T) {
	f := newAuthFixture(t)
	replayed := errors.New("unknown or already used state")
	f.provider.ExchangeFunc = func(context.Context, ports.ExchangeInput) (domainauth.Identity, error) {
		return domainauth.Identity{}, replayed
	}

	_, err := f.svc.CompleteFederatedLogin(context.Background(), CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, apperrors.GetCode(err))
	assert.Equal(t, "Sign-in could not be completed.", apperrors.UserMessage(err, ""))
	assert.ErrorIs(t, err, replayed)
	assert.Zero(t, f.sessions.Len())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Paws", displayName(domainauth.Identity{Name: " Paws ", Email: "x@y.io"}))
	assert.Equal(t, "ops", displayName(domainauth.Identity{Email: "ops@paws.example"}))
}
