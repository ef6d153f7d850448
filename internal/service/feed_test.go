package service

import (
	"context"
	"errors"
	"testing"

	"github.com/straycare/straycare/internal/domain/model"
	"github.com/straycare/straycare/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type feedFixture struct {
	feed      *FeedService
	animals   *mocks.MockAnimalRepository
	ads       *mocks.MockAdRepository
	adoptions *mocks.MockAdoptionRepository
	reports   *mocks.MockReportRepository
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &feedFixture{
		animals:   mocks.NewMockAnimalRepository(ctrl),
		ads:       mocks.NewMockAdRepository(ctrl),
		adoptions: mocks.NewMockAdoptionRepository(ctrl),
		reports:   mocks.NewMockReportRepository(ctrl),
	}
	f.feed = NewFeedService(FeedServiceOptions{
		Animals:   NewAnimalService(f.animals),
		Ads:       NewAdService(f.ads),
		Adoptions: NewAdoptionService(f.adoptions),
		Reports:   NewReportService(f.reports),
	})
	return f
}

func TestFeedService_Home(t *testing.T) {
	f := newFeedFixture(t)
	f.animals.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*model.TreatedAnimal{{Name: "Rex"}}, nil)
	f.ads.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*model.Ad{{Title: "Drive"}}, nil)

	feed, err := f.feed.Home(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Rex", feed.Animals[0].Name)
	assert.Equal(t, "Drive", feed.Ads[0].Title)
}

func TestFeedService_Home_SectionFailure(t *testing.T) {
	f := newFeedFixture(t)
	boom := errors.New("db down")
	f.animals.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, boom)
	f.ads.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := f.feed.Home(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load animals")
}

func TestFeedService_ForLocal(t *testing.T) {
	f := newFeedFixture(t)
	f.reports.EXPECT().List(gomock.Any(), model.ListOptions{Limit: 50, OwnerID: "u1"}).Return([]*model.StrayReport{{ID: "r1"}}, nil)
	f.adoptions.EXPECT().ListRequestsByUser(gomock.Any(), "u1", gomock.Any()).Return([]*model.AdoptionRequestDetail{{AnimalName: "Bella"}}, nil)

	d, err := f.feed.ForLocal(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, d.Reports, 1)
	assert.Equal(t, "Bella", d.Requests[0].AnimalName)
}

func TestFeedService_ForNGO(t *testing.T) {
	f := newFeedFixture(t)
	own := model.ListOptions{Limit: 50, OwnerID: "n1"}
	f.animals.EXPECT().List(gomock.Any(), own).Return(nil, nil)
	f.ads.EXPECT().List(gomock.Any(), own).Return(nil, nil)
	f.adoptions.EXPECT().ListPosts(gomock.Any(), model.AdoptionPostListOptions{ListOptions: own}).Return([]*model.AdoptionPost{{ID: "p1"}}, nil)
	f.adoptions.EXPECT().ListRequestsForNGO(gomock.Any(), "n1", gomock.Any()).Return(nil, nil)
	f.reports.EXPECT().List(gomock.Any(), model.ListOptions{Limit: 20}).Return([]*model.StrayReport{{ID: "r1"}}, nil)

	d, err := f.feed.ForNGO(context.Background(), "n1")
	require.NoError(t, err)
	assert.Len(t, d.Posts, 1)
	assert.Len(t, d.RecentReports, 1)
}
