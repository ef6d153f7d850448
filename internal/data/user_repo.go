package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/straycare/straycare/internal/core"
	"github.com/straycare/straycare/internal/data/pgxutil"
	"github.com/straycare/straycare/internal/domain/model"
	apperrors "github.com/straycare/straycare/internal/errors"
)

var _ core.UserRepository = (*UserRepo)(nil)

const userColumns = `id, kind, name, email, password_hash, created_at`

// UserRepo provides database operations for accounts.
type UserRepo struct {
	DB    *sql.DB
	Clock TimeProvider
}

// NewUserRepo creates a UserRepo using the system clock.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, Clock: RealTimeProvider{}}
}

// Create inserts an account. A duplicate email maps to a conflict error.
func (r *UserRepo) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("create user request is required")
	}
	u, err := pgxutil.QueryOne[model.User](ctx, r.DB, `
		INSERT INTO users (kind, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		req.Kind, req.Name, req.Email, req.PasswordHash, nowOrReal(r.Clock).Now(),
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return u, nil
}

// GetByID retrieves an account by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := pgxutil.QueryOne[model.User](ctx, r.DB, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return u, nil
}

// GetByEmail retrieves an account by its normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := pgxutil.QueryOne[model.User](ctx, r.DB, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return u, nil
}
