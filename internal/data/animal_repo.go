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

var _ core.AnimalRepository = (*AnimalRepo)(nil)

const animalColumns = `id, ngo_id, name, species, location, treatment, treated_at, created_at`

// AnimalRepo provides database operations for treated-animal records.
type AnimalRepo struct {
	DB    *sql.DB
	Clock TimeProvider
}

// NewAnimalRepo creates an AnimalRepo using the system clock.
func NewAnimalRepo(db *sql.DB) *AnimalRepo {
	return &AnimalRepo{DB: db, Clock: RealTimeProvider{}}
}

// Create inserts a treated-animal record.
func (r *AnimalRepo) Create(ctx context.Context, req *model.CreateTreatedAnimalRequest) (*model.TreatedAnimal, error) {
	if req == nil {
		return nil, errors.New("create treated animal request is required")
	}
	a, err := pgxutil.QueryOne[model.TreatedAnimal](ctx, r.DB, `
		INSERT INTO treated_animals (ngo_id, name, species, location, treatment, treated_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+animalColumns,
		req.NGOID, req.Name, req.Species, req.Location, req.Treatment, req.TreatedAt, nowOrReal(r.Clock).Now(),
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return a, nil
}

// List returns records newest first, optionally for one NGO.
func (r *AnimalRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.TreatedAnimal, error) {
	opts = opts.Normalize()
	out, err := pgxutil.QueryAll[model.TreatedAnimal](ctx, r.DB, `
		SELECT `+animalColumns+` FROM treated_animals
		WHERE ($1 = '' OR ngo_id::text = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		opts.OwnerID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}
