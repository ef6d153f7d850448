package core

import (
	"context"

	"github.com/straycare/straycare/internal/domain/model"
)

// Repository ports consumed by internal/service. Implementations live in internal/data.
// Errors are mapped through errors.MapDBError, so callers can branch on AppError codes.

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// AnimalRepository persists treated-animal records.
type AnimalRepository interface {
	Create(ctx context.Context, req *model.CreateTreatedAnimalRequest) (*model.TreatedAnimal, error)
	List(ctx context.Context, opts model.ListOptions) ([]*model.TreatedAnimal, error)
}

// AdRepository persists NGO ads.
type AdRepository interface {
	Create(ctx context.Context, req *model.CreateAdRequest) (*model.Ad, error)
	List(ctx context.Context, opts model.ListOptions) ([]*model.Ad, error)
}

// AdoptionRepository persists adoption posts and the requests made against them.
type AdoptionRepository interface {
	CreatePost(ctx context.Context, req *model.CreateAdoptionPostRequest) (*model.AdoptionPost, error)
	GetPost(ctx context.Context, id string) (*model.AdoptionPost, error)
	ListPosts(ctx context.Context, opts model.AdoptionPostListOptions) ([]*model.AdoptionPost, error)
	// MarkAdopted flips an open post owned by ngoID to adopted; it reports false when
	// no such open post exists.
	MarkAdopted(ctx context.Context, id, ngoID string) (bool, error)

	CreateRequest(ctx context.Context, req *model.CreateAdoptionRequest) (*model.AdoptionRequest, error)
	ListRequestsByUser(ctx context.Context, userID string, opts model.ListOptions) ([]*model.AdoptionRequestDetail, error)
	ListRequestsForNGO(ctx context.Context, ngoID string, opts model.ListOptions) ([]*model.AdoptionRequestDetail, error)
}

// ReportRepository persists stray sightings.
type ReportRepository interface {
	Create(ctx context.Context, req *model.CreateStrayReportRequest) (*model.StrayReport, error)
	// List returns reports newest first; opts.OwnerID narrows to one reporter.
	List(ctx context.Context, opts model.ListOptions) ([]*model.StrayReport, error)
}
