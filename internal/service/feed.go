package service

import (
	"context"
	"fmt"

	"github.com/straycare/straycare/internal/domain/model"
	"golang.org/x/sync/errgroup"
)

// FeedServiceOptions groups the services the page feeds read from.
type FeedServiceOptions struct {
	Animals   *AnimalService
	Ads       *AdService
	Adoptions *AdoptionService
	Reports   *ReportService
}

// FeedService assembles the multi-source pages (home, dashboards) by fetching
// their sections concurrently. The first failing section cancels the rest.
type FeedService struct {
	animals   *AnimalService
	ads       *AdService
	adoptions *AdoptionService
	reports   *ReportService
}

// NewFeedService constructs a new FeedService.
func NewFeedService(opts FeedServiceOptions) *FeedService {
	return &FeedService{animals: opts.Animals, ads: opts.Ads, adoptions: opts.Adoptions, reports: opts.Reports}
}

// HomeFeed is what the landing page shows.
type HomeFeed struct {
	Animals []*model.TreatedAnimal
	Ads     []*model.Ad
}

// Home fetches treated animals and ads.
func (s *FeedService) Home(ctx context.Context) (*HomeFeed, error) {
	var feed HomeFeed
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		feed.Animals, err = s.animals.List(gctx, model.ListOptions{})
		return wrapSection("animals", err)
	})
	g.Go(func() (err error) {
		feed.Ads, err = s.ads.List(gctx, model.ListOptions{})
		return wrapSection("ads", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &feed, nil
}

// LocalDashboard is a public user's own activity.
type LocalDashboard struct {
	Reports  []*model.StrayReport
	Requests []*model.AdoptionRequestDetail
}

// ForLocal fetches a LOCAL user's reports and adoption requests.
func (s *FeedService) ForLocal(ctx context.Context, userID string) (*LocalDashboard, error) {
	var d LocalDashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Reports, err = s.reports.ListByReporter(gctx, userID, model.ListOptions{})
		return wrapSection("reports", err)
	})
	g.Go(func() (err error) {
		d.Requests, err = s.adoptions.RequestsByUser(gctx, userID, model.ListOptions{})
		return wrapSection("adoption requests", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// NGODashboard is an NGO's management overview.
type NGODashboard struct {
	Animals       []*model.TreatedAnimal
	Ads           []*model.Ad
	Posts         []*model.AdoptionPost
	Requests      []*model.AdoptionRequestDetail
	RecentReports []*model.StrayReport
}

// ForNGO fetches everything the NGO management page lists.
func (s *FeedService) ForNGO(ctx context.Context, ngoID string) (*NGODashboard, error) {
	var d NGODashboard
	own := model.ListOptions{OwnerID: ngoID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Animals, err = s.animals.List(gctx, own)
		return wrapSection("animals", err)
	})
	g.Go(func() (err error) {
		d.Ads, err = s.ads.List(gctx, own)
		return wrapSection("ads", err)
	})
	g.Go(func() (err error) {
		d.Posts, err = s.adoptions.ListByNGO(gctx, ngoID, model.ListOptions{})
		return wrapSection("adoption posts", err)
	})
	g.Go(func() (err error) {
		d.Requests, err = s.adoptions.RequestsForNGO(gctx, ngoID, model.ListOptions{})
		return wrapSection("adoption requests", err)
	})
	g.Go(func() (err error) {
		d.RecentReports, err = s.reports.ListRecent(gctx, model.ListOptions{Limit: 20})
		return wrapSection("reports", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func wrapSection(section string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", section, err)
}
