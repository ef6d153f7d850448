package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/straycare/straycare/internal/core"
	"github.com/straycare/straycare/internal/data/pgxutil"
	"github.com/straycare/straycare/internal/domain/model"
	apperrors "github.com/straycare/straycare/internal/errors"
)

var _ core.AdoptionRepository = (*AdoptionRepo)(nil)

const (
	postColumns    = `id, ngo_id, animal_name, species, description, status, created_at`
	requestColumns = `id, post_id, user_id, message, created_at`

	requestDetailSelect = `
		SELECT r.id, r.post_id, r.user_id, r.message, r.created_at,
		       p.animal_name, u.name AS requester_name
		FROM adoption_requests r
		JOIN adoption_posts p ON p.id = r.post_id
		JOIN users u ON u.id = r.user_id`
)

// AdoptionRepo provides database operations for adoption posts and requests.
type AdoptionRepo struct {
	DB    *sql.DB
	Clock TimeProvider
}

// NewAdoptionRepo creates an AdoptionRepo using the system clock.
func NewAdoptionRepo(db *sql.DB) *AdoptionRepo {
	return &AdoptionRepo{DB: db, Clock: RealTimeProvider{}}
}

// CreatePost inserts an open adoption post.
func (r *AdoptionRepo) CreatePost(ctx context.Context, req *model.CreateAdoptionPostRequest) (*model.AdoptionPost, error) {
	if req == nil {
		return nil, errors.New("create adoption post request is required")
	}
	p, err := pgxutil.QueryOne[model.AdoptionPost](ctx, r.DB, `
		INSERT INTO adoption_posts (ngo_id, animal_name, species, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+postColumns,
		req.NGOID, req.AnimalName, req.Species, req.Description, model.AdoptionStatusOpen, nowOrReal(r.Clock).Now(),
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return p, nil
}

// GetPost retrieves an adoption post by id.
func (r *AdoptionRepo) GetPost(ctx context.Context, id string) (*model.AdoptionPost, error) {
	p, err := pgxutil.QueryOne[model.AdoptionPost](ctx, r.DB, `SELECT `+postColumns+` FROM adoption_posts WHERE id = $1`, id)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return p, nil
}

// ListPosts returns posts newest first, filtered by owner and status when set.
func (r *AdoptionRepo) ListPosts(ctx context.Context, opts model.AdoptionPostListOptions) ([]*model.AdoptionPost, error) {
	lo := opts.Normalize()
	out, err := pgxutil.QueryAll[model.AdoptionPost](ctx, r.DB, `
		SELECT `+postColumns+` FROM adoption_posts
		WHERE ($1 = '' OR ngo_id::text = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		lo.OwnerID, string(opts.Status), lo.Limit, lo.Offset,
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// MarkAdopted closes an open post owned by ngoID.
func (r *AdoptionRepo) MarkAdopted(ctx context.Context, id, ngoID string) (bool, error) {
	var updated bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `
			UPDATE adoption_posts SET status = $3
			WHERE id = $1 AND ngo_id = $2 AND status = $4`,
			id, ngoID, model.AdoptionStatusAdopted, model.AdoptionStatusOpen,
		)
		if err != nil {
			return err
		}
		updated = tag.RowsAffected() == 1
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return updated, nil
}

// CreateRequest records a request against an open post. The post row is locked so a
// concurrent MarkAdopted cannot slip in between the status check and the insert.
func (r *AdoptionRepo) CreateRequest(ctx context.Context, req *model.CreateAdoptionRequest) (*model.AdoptionRequest, error) {
	if req == nil {
		return nil, errors.New("create adoption request is required")
	}
	var out model.AdoptionRequest
	err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		var status model.AdoptionStatus
		if err := tx.QueryRow(ctx,
			`SELECT status FROM adoption_posts WHERE id = $1 FOR UPDATE`, req.PostID,
		).Scan(&status); err != nil {
			return err
		}
		if status != model.AdoptionStatusOpen {
			return apperrors.Conflict("This animal has already been adopted.")
		}
		var err error
		out, err = pgxutil.CollectOne[model.AdoptionRequest](ctx, tx, `
			INSERT INTO adoption_requests (post_id, user_id, message, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING `+requestColumns,
			req.PostID, req.UserID, req.Message, nowOrReal(r.Clock).Now(),
		)
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListRequestsByUser returns a user's requests, newest first.
func (r *AdoptionRepo) ListRequestsByUser(ctx context.Context, userID string, opts model.ListOptions) ([]*model.AdoptionRequestDetail, error) {
	opts = opts.Normalize()
	out, err := pgxutil.QueryAll[model.AdoptionRequestDetail](ctx, r.DB,
		requestDetailSelect+`
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// ListRequestsForNGO returns requests made against the NGO's posts, newest first.
func (r *AdoptionRepo) ListRequestsForNGO(ctx context.Context, ngoID string, opts model.ListOptions) ([]*model.AdoptionRequestDetail, error) {
	opts = opts.Normalize()
	out, err := pgxutil.QueryAll[model.AdoptionRequestDetail](ctx, r.DB,
		requestDetailSelect+`
		WHERE p.ngo_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`,
		ngoID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}
