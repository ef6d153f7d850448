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

var _ core.ReportRepository = (*ReportRepo)(nil)

const reportColumns = `id, reporter_id, location, description, condition, created_at`

// ReportRepo provides database operations for stray reports.
type ReportRepo struct {
	DB    *sql.DB
	Clock TimeProvider
}

// NewReportRepo creates a ReportRepo using the system clock.
func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{DB: db, Clock: RealTimeProvider{}}
}

// Create inserts a stray report. The request must already be validated.
func (r *ReportRepo) Create(ctx context.Context, req *model.CreateStrayReportRequest) (*model.StrayReport, error) {
	if req == nil {
		return nil, errors.New("create stray report request is required")
	}
	rep, err := pgxutil.QueryOne[model.StrayReport](ctx, r.DB, `
		INSERT INTO stray_reports (reporter_id, location, description, condition, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+reportColumns,
		req.ReporterID, req.Location, req.Description, req.Condition, nowOrReal(r.Clock).Now(),
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return rep, nil
}

// List returns reports newest first, optionally for one reporter.
func (r *ReportRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.StrayReport, error) {
	opts = opts.Normalize()
	out, err := pgxutil.QueryAll[model.StrayReport](ctx, r.DB, `
		SELECT `+reportColumns+` FROM stray_reports
		WHERE ($1 = '' OR reporter_id::text = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		opts.OwnerID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}
