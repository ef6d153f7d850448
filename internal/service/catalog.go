package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/straycare/straycare/internal/core"
	"github.com/straycare/straycare/internal/domain/model"
	apperrors "github.com/straycare/straycare/internal/errors"
)

// AnimalService manages treated-animal records.
type AnimalService struct {
	repo core.AnimalRepository
}

// NewAnimalService constructs a new AnimalService.
func NewAnimalService(repo core.AnimalRepository) *AnimalService {
	return &AnimalService{repo: repo}
}

// Create validates and stores a record for the calling NGO.
func (s *AnimalService) Create(ctx context.Context, req model.CreateTreatedAnimalRequest) (*model.TreatedAnimal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &req)
}

// List returns records newest first.
func (s *AnimalService) List(ctx context.Context, opts model.ListOptions) ([]*model.TreatedAnimal, error) {
	return s.repo.List(ctx, opts.Normalize())
}

// AdService manages NGO ads.
type AdService struct {
	repo core.AdRepository
}

// NewAdService constructs a new AdService.
func NewAdService(repo core.AdRepository) *AdService {
	return &AdService{repo: repo}
}

// Create validates and stores an ad.
func (s *AdService) Create(ctx context.Context, req model.CreateAdRequest) (*model.Ad, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &req)
}

// List returns ads newest first.
func (s *AdService) List(ctx context.Context, opts model.ListOptions) ([]*model.Ad, error) {
	return s.repo.List(ctx, opts.Normalize())
}

// ReportService manages stray reports.
type ReportService struct {
	repo core.ReportRepository
}

// NewReportService constructs a new ReportService.
func NewReportService(repo core.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// Create validates and stores a report.
func (s *ReportService) Create(ctx context.Context, req model.CreateStrayReportRequest) (*model.StrayReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &req)
}

// ListByReporter returns one user's reports.
func (s *ReportService) ListByReporter(ctx context.Context, reporterID string, opts model.ListOptions) ([]*model.StrayReport, error) {
	opts.OwnerID = reporterID
	return s.repo.List(ctx, opts.Normalize())
}

// ListRecent returns the newest reports from everyone.
func (s *ReportService) ListRecent(ctx context.Context, opts model.ListOptions) ([]*model.StrayReport, error) {
	opts.OwnerID = ""
	return s.repo.List(ctx, opts.Normalize())
}

// AdoptionService manages adoption posts and requests.
type AdoptionService struct {
	repo core.AdoptionRepository
}

// NewAdoptionService constructs a new AdoptionService.
func NewAdoptionService(repo core.AdoptionRepository) *AdoptionService {
	return &AdoptionService{repo: repo}
}

// Post validates and stores a new open adoption post.
func (s *AdoptionService) Post(ctx context.Context, req model.CreateAdoptionPostRequest) (*model.AdoptionPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreatePost(ctx, &req)
}

// Get returns one post. Malformed ids are reported as not found.
func (s *AdoptionService) Get(ctx context.Context, id string) (*model.AdoptionPost, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFound("Adoption post not found.")
	}
	return s.repo.GetPost(ctx, id)
}

// ListOpen returns posts still looking for a home.
func (s *AdoptionService) ListOpen(ctx context.Context, opts model.ListOptions) ([]*model.AdoptionPost, error) {
	return s.repo.ListPosts(ctx, model.AdoptionPostListOptions{ListOptions: opts.Normalize(), Status: model.AdoptionStatusOpen})
}

// ListByNGO returns every post an NGO has published.
func (s *AdoptionService) ListByNGO(ctx context.Context, ngoID string, opts model.ListOptions) ([]*model.AdoptionPost, error) {
	opts.OwnerID = ngoID
	return s.repo.ListPosts(ctx, model.AdoptionPostListOptions{ListOptions: opts.Normalize()})
}

// Request records a user's interest in an open post.
func (s *AdoptionService) Request(ctx context.Context, req model.CreateAdoptionRequest) (*model.AdoptionRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	post, err := s.Get(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if !post.Open() {
		return nil, apperrors.Conflict("This animal has already been adopted.")
	}
	return s.repo.CreateRequest(ctx, &req)
}

// MarkAdopted closes a post owned by ngoID.
func (s *AdoptionService) MarkAdopted(ctx context.Context, postID, ngoID string) error {
	if _, err := uuid.Parse(postID); err != nil {
		return apperrors.NotFound("Adoption post not found.")
	}
	ok, err := s.repo.MarkAdopted(ctx, postID, ngoID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("Adoption post not found or already adopted.")
	}
	return nil
}

// RequestsByUser lists a user's adoption requests.
func (s *AdoptionService) RequestsByUser(ctx context.Context, userID string, opts model.ListOptions) ([]*model.AdoptionRequestDetail, error) {
	return s.repo.ListRequestsByUser(ctx, userID, opts.Normalize())
}

// RequestsForNGO lists requests against an NGO's posts.
func (s *AdoptionService) RequestsForNGO(ctx context.Context, ngoID string, opts model.ListOptions) ([]*model.AdoptionRequestDetail, error) {
	return s.repo.ListRequestsForNGO(ctx, ngoID, opts.Normalize())
}
