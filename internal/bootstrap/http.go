package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/straycare/straycare"
	"github.com/straycare/straycare/config"
	httpx "github.com/straycare/straycare/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown and a channel that
// receives the error if the listener stops unexpectedly.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, <-chan error, error) {
	if cfg == nil {
		return nil, nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler, err := buildHTTPHandler(httpHandlerConfig{
		Logger:   logger,
		Services: cfg.Services,
		App:      appCfg,
	})
	if err != nil {
		return nil, nil, err
	}

	server, errCh := startServer(logger, handler, appCfg.HTTP)
	return server, errCh, nil
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services ServiceContainer
	App      *config.AppConfig
}

// assetFS returns the template and static trees: from disk in dev mode so
// edits show up without a rebuild, embedded otherwise.
func assetFS(isDev bool) (templates, static fs.FS, err error) {
	if isDev {
		return os.DirFS(httpx.TemplatePathFromRoot), os.DirFS(httpx.StaticPathFromRoot), nil
	}
	templates, err = fs.Sub(straycare.TemplateFS, httpx.TemplatePathFromRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("embedded templates: %w", err)
	}
	static, err = fs.Sub(straycare.StaticFS, httpx.StaticPathFromRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("embedded static files: %w", err)
	}
	return templates, static, nil
}

func buildHTTPHandler(cfg httpHandlerConfig) (http.Handler, error) {
	templates, static, err := assetFS(cfg.App.IsDev)
	if err != nil {
		return nil, err
	}
	renderer, err := httpx.NewTemplateRenderer(httpx.TemplateRendererConfig{
		TemplateFS: templates,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	cookie := httpx.CookieConfig{
		Name:   cfg.App.Session.CookieName,
		Domain: cfg.App.HTTP.CookieDomain,
		Secure: cfg.App.HTTP.SecureCookies,
		TTL:    cfg.App.Session.TTL,
	}
	svc := cfg.Services
	handlers := &httpx.Handlers{
		Auth:      svc.Auth,
		Feed:      svc.Feed,
		Animals:   svc.Animals,
		Ads:       svc.Ads,
		Adoptions: svc.Adoptions,
		Reports:   svc.Reports,
		Renderer:  renderer,
		Flash:     &httpx.Flasher{Store: svc.Flashes, Cookie: cookie},
		Cookie:    cookie,
		Logger:    cfg.Logger,
	}

	return httpx.NewRouter(httpx.RouterOptions{
		Handlers:  handlers,
		Sessions:  svc.Sessions,
		Flashes:   svc.Flashes,
		StaticFS:  static,
		LoginPath: cfg.App.Auth.LoginPath,
		Logger:    cfg.Logger,

		Readiness:   svc.Readiness,
		Metrics:     httpx.NewMetrics(nil),
		MetricsPath: cfg.App.Telemetry.MetricsPath,
	}), nil
}

func startServer(logger *slog.Logger, handler http.Handler, cfg config.HTTPConfig) (*http.Server, <-chan error) {
	addr := cfg.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", listenAddr(server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return server, errCh
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Timeout time.Duration // defaults to 10s
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}
	shutdownCtx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}

// listenAddr reports the host:port the server will bind, for startup logs.
func listenAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" {
		host = "0.0.0.0"
	}
	return net.JoinHostPort(host, port)
}
