// Package mocks provides gomock doubles for the repository ports in internal/core.
//
// To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	users := mocks.NewMockUserRepository(ctrl)
//	users.EXPECT().GetByEmail(gomock.Any(), "a@b.c").Return(user, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/straycare/straycare/internal/core UserRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=animal_repository_mock.go github.com/straycare/straycare/internal/core AnimalRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ad_repository_mock.go github.com/straycare/straycare/internal/core AdRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=adoption_repository_mock.go github.com/straycare/straycare/internal/core AdoptionRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=report_repository_mock.go github.com/straycare/straycare/internal/core ReportRepository
