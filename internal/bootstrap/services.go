package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/straycare/straycare/config"
	redisadapter "github.com/straycare/straycare/internal/adapters/redis"
	"github.com/straycare/straycare/internal/data"
	httpx "github.com/straycare/straycare/internal/http"
	"github.com/straycare/straycare/internal/ports"
	"github.com/straycare/straycare/internal/service"
)

// ServiceContainer holds all application services and the stores the
// request middleware reads from.
type ServiceContainer struct {
	Auth      *service.AuthService
	Feed      *service.FeedService
	Animals   *service.AnimalService
	Ads       *service.AdService
	Adoptions *service.AdoptionService
	Reports   *service.ReportService
	Sessions  ports.SessionStore
	Flashes   ports.FlashStore
	Readiness []httpx.ReadinessCheck
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Users     *data.UserRepo
	Animals   *data.AnimalRepo
	Ads       *data.AdRepo
	Adoptions *data.AdoptionRepo
	Reports   *data.ReportRepo
}

func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Users:     data.NewUserRepo(db),
		Animals:   data.NewAnimalRepo(db),
		Ads:       data.NewAdRepo(db),
		Adoptions: data.NewAdoptionRepo(db),
		Reports:   data.NewReportRepo(db),
	}
}

// NewServices wires repositories, stores and services.
func NewServices(ctx context.Context, deps *ServiceDeps) ServiceContainer {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}
	repos := buildRepositories(deps.DB)

	storeOpts := redisadapter.StoreOptions{
		Client: deps.RedisClient,
		Prefix: cfg.Session.KeyPrefix,
		TTL:    cfg.Session.TTL,
	}
	sessions := redisadapter.NewSessionStore(storeOpts)

	animals := service.NewAnimalService(repos.Animals)
	ads := service.NewAdService(repos.Ads)
	adoptions := service.NewAdoptionService(repos.Adoptions)
	reports := service.NewReportService(repos.Reports)

	return ServiceContainer{
		Auth: BuildAuthService(ctx, AuthConfig{
			Auth:     cfg.Auth,
			IsDev:    cfg.IsDev,
			Users:    repos.Users,
			Sessions: sessions,
			Logger:   deps.Logger,
		}),
		Feed: service.NewFeedService(service.FeedServiceOptions{
			Animals:   animals,
			Ads:       ads,
			Adoptions: adoptions,
			Reports:   reports,
		}),
		Animals:   animals,
		Ads:       ads,
		Adoptions: adoptions,
		Reports:   reports,
		Sessions:  sessions,
		Flashes:   redisadapter.NewFlashStore(storeOpts),
		Readiness: readinessChecks(deps.DB, deps.RedisClient),
	}
}

// readinessChecks probes the backends the request path cannot work without.
func readinessChecks(db *sql.DB, client redis.UniversalClient) []httpx.ReadinessCheck {
	var checks []httpx.ReadinessCheck
	if db != nil {
		checks = append(checks, httpx.ReadinessCheck{Name: "postgres", Check: db.PingContext})
	}
	if client != nil {
		checks = append(checks, httpx.ReadinessCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	}
	return checks
}

// ServiceOrchestrationConfig contains what RunServicesWithShutdown needs.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown serves HTTP until SIGINT/SIGTERM or a server failure,
// then shuts the server down gracefully.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server, errCh, err := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	return waitForShutdown(shutdownConfig{
		server:  server,
		errCh:   errCh,
		timeout: cfg.Config.HTTP.ShutdownTimeout,
		logger:  logger,
	})
}

type shutdownConfig struct {
	server  *http.Server
	errCh   <-chan error
	timeout time.Duration
	logger  *slog.Logger
}

func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return fmt.Errorf("http server: %w", err)
	}
}

func gracefulStop(cfg shutdownConfig) error {
	return ShutdownHTTPServer(ShutdownConfig{
		Context: context.Background(),
		Server:  cfg.server,
		Timeout: cfg.timeout,
		Logger:  cfg.logger,
	})
}
