package service

import (
	"context"
	"testing"

	"github.com/straycare/straycare/internal/domain/model"
	apperrors "github.com/straycare/straycare/internal/errors"
	"github.com/straycare/straycare/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const postID = "7f1c2a52-3c0e-4b8e-9a51-0d5c2f1b9e11"

func TestAdoptionService_Request(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAdoptionRepository(ctrl)
	svc := NewAdoptionService(repo)
	ctx := context.Background()

	repo.EXPECT().GetPost(gomock.Any(), postID).Return(&model.AdoptionPost{ID: postID, Status: model.AdoptionStatusOpen}, nil)
	repo.EXPECT().CreateRequest(gomock.Any(), &model.CreateAdoptionRequest{PostID: postID, UserID: "u1", Message: "hi"}).
		Return(&model.AdoptionRequest{ID: "r1", PostID: postID, UserID: "u1"}, nil)

	got, err := svc.Request(ctx, model.CreateAdoptionRequest{PostID: postID, UserID: "u1", Message: " hi "})
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
}

func TestAdoptionService_Request_ClosedPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAdoptionRepository(ctrl)
	svc := NewAdoptionService(repo)

	repo.EXPECT().GetPost(gomock.Any(), postID).Return(&model.AdoptionPost{ID: postID, Status: model.AdoptionStatusAdopted}, nil)

	_, err := svc.Request(context.Background(), model.CreateAdoptionRequest{PostID: postID, UserID: "u1"})
	assert.True(t, apperrors.IsConflict(err))
}

func TestAdoptionService_MalformedIDsAreNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewAdoptionService(mocks.NewMockAdoptionRepository(ctrl))
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-uuid")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Request(ctx, model.CreateAdoptionRequest{PostID: "../etc", UserID: "u1"})
	assert.True(t, apperrors.IsNotFound(err))

	assert.True(t, apperrors.IsNotFound(svc.MarkAdopted(ctx, "nope", "n1")))
}

func TestAdoptionService_MarkAdopted(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAdoptionRepository(ctrl)
	svc := NewAdoptionService(repo)

	repo.EXPECT().MarkAdopted(gomock.Any(), postID, "ngo-1").Return(true, nil)
	require.NoError(t, svc.MarkAdopted(context.Background(), postID, "ngo-1"))

	repo.EXPECT().MarkAdopted(gomock.Any(), postID, "ngo-2").Return(false, nil)
	assert.True(t, apperrors.IsNotFound(svc.MarkAdopted(context.Background(), postID, "ngo-2")))
}

func TestAdoptionService_ListOpenFiltersStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAdoptionRepository(ctrl)

	repo.EXPECT().ListPosts(gomock.Any(), model.AdoptionPostListOptions{
		ListOptions: model.ListOptions{Limit: 50},
		Status:      model.AdoptionStatusOpen,
	}).Return(nil, nil)

	_, err := NewAdoptionService(repo).ListOpen(context.Background(), model.ListOptions{})
	require.NoError(t, err)
}

func TestReportService(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReportRepository(ctrl)
	svc := NewReportService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateStrayReportRequest{ReporterID: "u1", Location: "x", Description: "y", Condition: "bad"})
	assert.True(t, apperrors.IsValidation(err))

	repo.EXPECT().List(gomock.Any(), model.ListOptions{Limit: 50, OwnerID: "u1"}).Return([]*model.StrayReport{{ID: "r1"}}, nil)
	reps, err := svc.ListByReporter(ctx, "u1", model.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, reps, 1)
}

func TestAnimalAndAdServices_Validate(t *testing.T) {
	ctrl := gomock.NewController(t)
	animals := mocks.NewMockAnimalRepository(ctrl)
	ads := mocks.NewMockAdRepository(ctrl)
	ctx := context.Background()

	_, err := NewAnimalService(animals).Create(ctx, model.CreateTreatedAnimalRequest{NGOID: "n1"})
	assert.True(t, apperrors.IsValidation(err))
	_, err = NewAdService(ads).Create(ctx, model.CreateAdRequest{NGOID: "n1", Title: "t"})
	assert.True(t, apperrors.IsValidation(err))

	ads.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.Ad{ID: "a1"}, nil)
	ad, err := NewAdService(ads).Create(ctx, model.CreateAdRequest{NGOID: "n1", Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, "a1", ad.ID)
}
