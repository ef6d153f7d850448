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

var _ core.AdRepository = (*AdRepo)(nil)

const adColumns = `id, ngo_id, title, body, image_url, created_at`

// AdRepo provides database operations for NGO ads.
type AdRepo struct {
	DB    *sql.DB
	Clock TimeProvider
}

// NewAdRepo creates an AdRepo using the system clock.
func NewAdRepo(db *sql.DB) *AdRepo {
	return &AdRepo{DB: db, Clock: RealTimeProvider{}}
}

// Create inserts an ad.
func (r *AdRepo) Create(ctx context.Context, req *model.CreateAdRequest) (*model.Ad, error) {
	if req == nil {
		return nil, errors.New("create ad request is required")
	}
	ad, err := pgxutil.QueryOne[model.Ad](ctx, r.DB, `
		INSERT INTO ads (ngo_id, title, body, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+adColumns,
		req.NGOID, req.Title, req.Body, req.ImageURLPtr(), nowOrReal(r.Clock).Now(),
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return ad, nil
}

// List returns ads newest first, optionally for one NGO.
func (r *AdRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.Ad, error) {
	opts = opts.Normalize()
	out, err := pgxutil.QueryAll[model.Ad](ctx, r.DB, `
		SELECT `+adColumns+` FROM ads
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
