// Package devseed populates a development database with demo accounts and content.
package devseed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/straycare/straycare/internal/core"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/domain/model"
	apperrors "github.com/straycare/straycare/internal/errors"
	"github.com/straycare/straycare/internal/ports"
	"github.com/straycare/straycare/internal/service"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "straycare-dev"

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Users     core.UserRepository
	Hasher    ports.PasswordHasher
	Animals   *service.AnimalService
	Ads       *service.AdService
	Adoptions *service.AdoptionService
	Now       func() time.Time
}

type demoUser struct {
	Kind  domainauth.Role
	Name  string
	Email string
}

func demoUsers() []demoUser {
	return []demoUser{
		{Kind: domainauth.RoleLocal, Name: "Dev Local", Email: "local@straycare.dev"},
		{Kind: domainauth.RoleNGO, Name: "Dev Shelter", Email: "ngo@straycare.dev"},
	}
}

// Run creates the demo accounts if missing. Content for the demo NGO is only
// seeded when its account is created, so repeated runs do not duplicate it.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	failures := 0
	for _, u := range demoUsers() {
		user, created, err := ensureUser(ctx, svcs, u)
		if err != nil {
			logger.ErrorContext(ctx, "failed to seed user", "email", u.Email, "error", err)
			failures++
			continue
		}
		msg := "user already exists"
		if created {
			msg = "created user"
		}
		logger.InfoContext(ctx, msg, "email", u.Email, "kind", u.Kind)

		if created && u.Kind == domainauth.RoleNGO {
			failures += seedNGOContent(ctx, svcs, user.ID, logger)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func ensureUser(ctx context.Context, svcs Services, u demoUser) (*model.User, bool, error) {
	existing, err := svcs.Users.GetByEmail(ctx, u.Email)
	if err == nil {
		return existing, false, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, false, err
	}

	hash, err := svcs.Hasher.Hash([]byte(DemoPassword))
	if err != nil {
		return nil, false, err
	}
	user, err := svcs.Users.Create(ctx, &model.CreateUserRequest{
		Kind:         u.Kind,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			// Created concurrently by another instance.
			return nil, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}

func seedNGOContent(ctx context.Context, svcs Services, ngoID string, logger *slog.Logger) int {
	now := time.Now
	if svcs.Now != nil {
		now = svcs.Now
	}
	failures := 0
	record := func(what string, err error) {
		if err != nil {
			logger.ErrorContext(ctx, "failed to seed "+what, "error", err)
			failures++
			return
		}
		logger.InfoContext(ctx, "created "+what)
	}

	_, err := svcs.Animals.Create(ctx, model.CreateTreatedAnimalRequest{
		NGOID:     ngoID,
		Name:      "Biscuit",
		Species:   "dog",
		Location:  "Market Street",
		Treatment: "Vaccinated and dewormed",
		TreatedAt: now().AddDate(0, 0, -3),
	})
	record("treated animal", err)

	_, err = svcs.Adoptions.Post(ctx, model.CreateAdoptionPostRequest{
		NGOID:       ngoID,
		AnimalName:  "Whiskers",
		Species:     "cat",
		Description: "Calm two-year-old, litter trained, looking for a quiet home.",
	})
	record("adoption post", err)

	_, err = svcs.Ads.Create(ctx, model.CreateAdRequest{
		NGOID: ngoID,
		Title: "Weekend vaccination drive",
		Body:  "Free rabies shots for community dogs this Saturday at the shelter.",
	})
	record("ad", err)

	return failures
}
