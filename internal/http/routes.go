package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/straycare/straycare/internal/ports"
	"go.opentelemetry.io/otel/trace"
)

// RouterOptions holds everything the HTTP router needs.
type RouterOptions struct {
	Handlers  *Handlers
	Sessions  ports.SessionStore
	Flashes   ports.FlashStore
	StaticFS  fs.FS  // optional; /static/* is not mounted when nil
	LoginPath string // defaults to /auth/login/local
	Logger    *slog.Logger

	// Metrics instruments every request when set; MetricsPath is where
	// the registry is served and is skipped when empty.
	Metrics     *Metrics
	MetricsPath string
	// Readiness backs /readyz; with no checks it always answers ok.
	Readiness []ReadinessCheck
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// NewRouter builds the application router. Every page route runs behind
// ResolveIdentity and PropagateView; guarded groups add a Gate after them.
func NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := opts.Handlers

	r := chi.NewRouter()
	r.Use(Recover(logger), middleware.RequestID, middleware.RealIP, middleware.GetHead, Tracing(opts.TracerProvider))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Instrument)
	}
	r.Use(Logging(logger))

	r.Get("/healthz", healthHandler)
	r.Head("/healthz", healthHandler)
	ready := readyHandler(opts.Readiness, 0, logger)
	r.Get("/readyz", ready)
	r.Head("/readyz", ready)
	if opts.StaticFS != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(opts.StaticFS))))
	}
	if opts.Metrics != nil && opts.MetricsPath != "" {
		r.Method(http.MethodGet, opts.MetricsPath, opts.Metrics.Handler())
	}

	authenticated := RequireAuthenticated{LoginPath: opts.LoginPath}

	r.Group(func(r chi.Router) {
		r.Use(
			ResolveIdentity(ResolverOptions{
				Sessions: opts.Sessions,
				Flashes:  opts.Flashes,
				Cookie:   h.Cookie,
				Logger:   logger,
			}),
			PropagateView(),
		)
		pageFallbacks(r, h)

		r.Get("/", h.Home)
		r.Get("/ads", h.AdsList)
		r.Get("/adoption", h.AdoptionList)
		r.Get("/adoption/{id}", h.AdoptionDetail)
		registerAuthRoutes(r, h)

		r.With(Gate(authenticated)).Get("/dashboard", h.Dashboard)

		r.Group(func(r chi.Router) {
			r.Use(Gate(authenticated, RequireLocal))
			r.Get("/report/new", h.ReportForm)
			r.Post("/report", h.CreateReport)
			r.Get("/report/mine", h.MyReports)
			r.Post("/adopt/{id}", h.Adopt)
		})

		r.Route("/ngo", func(r chi.Router) {
			r.Use(Gate(authenticated, RequireNGO))
			pageFallbacks(r, h)
			r.Get("/", h.NGOHome)
			r.Post("/animals", h.CreateAnimal)
			r.Post("/adoptions", h.CreateAdoptionPost)
			r.Post("/adoptions/{id}/adopted", h.MarkAdopted)
			r.Post("/ads", h.CreateAd)
		})
	})

	return r
}

func registerAuthRoutes(r chi.Router, h *Handlers) {
	r.Route("/auth", func(r chi.Router) {
		pageFallbacks(r, h)
		r.Get("/login/sso", h.SSOLogin)
		r.Get("/callback", h.SSOCallback)
		r.Get("/login/{kind}", h.LoginForm)
		r.Post("/login/{kind}", h.Login)
		r.Get("/register/{kind}", h.RegisterForm)
		r.Post("/register/{kind}", h.Register)
		r.Get("/logout", h.Logout)
		r.Post("/logout", h.Logout)
	})
}

// pageFallbacks renders 404 and 405 as pages. Inside a group chi wraps them in
// the group's middleware; sub-routers need their own since they are mounted
// after the group's handlers are set.
func pageFallbacks(r chi.Router, h *Handlers) {
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)
}
