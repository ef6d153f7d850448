package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/straycare/straycare/internal/domain/auth"
	apperrors "github.com/straycare/straycare/internal/errors"
	"github.com/straycare/straycare/internal/service"
)

const maxFormBytes = 1 << 20

// Handlers serves the server-rendered pages. Every field except Logger is required.
type Handlers struct {
	Auth      *service.AuthService
	Feed      *service.FeedService
	Animals   *service.AnimalService
	Ads       *service.AdService
	Adoptions *service.AdoptionService
	Reports   *service.ReportService
	Renderer  *TemplateRenderer
	Flash     *Flasher
	Cookie    CookieConfig
	Logger    *slog.Logger
}

func (h *Handlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// render writes a page, falling back to a plain 500 if the template fails.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	if err := h.Renderer.Render(w, r, spec); err != nil {
		h.logger().ErrorContext(r.Context(), "render failed",
			slog.String("page", spec.Page),
			slog.Any("error", err),
		)
		http.Error(w, msgSomethingWrong, http.StatusInternalServerError)
	}
}

type errorPage struct {
	Message string
}

// renderError renders the error page with the caller's view context.
func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render(w, r, PageSpec{
		Page:   PageError,
		Title:  http.StatusText(status),
		Status: status,
		Data:   errorPage{Message: msg},
	})
}

// serverError logs err and renders the generic 500 page.
func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	h.renderError(w, r, http.StatusInternalServerError, msgSomethingWrong)
}

// failOrError renders not-found errors as 404 and everything else as 500.
func (h *Handlers) failOrError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.IsNotFound(err) {
		h.renderError(w, r, http.StatusNotFound, apperrors.UserMessage(err, "Not found."))
		return
	}
	h.serverError(w, r, err)
}

// failForm turns user-facing errors into an error flash and a redirect back to
// the form; anything else is a 500.
func (h *Handlers) failForm(w http.ResponseWriter, r *http.Request, err error, back string) {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeConflict, apperrors.ErrCodeUnauthorized,
		apperrors.ErrCodeForbidden, apperrors.ErrCodeNotFound, apperrors.ErrCodeForeignKey:
		h.flash(w, r, domainauth.FlashError, apperrors.UserMessage(err, msgSomethingWrong))
		redirect(w, r, back)
	default:
		h.serverError(w, r, err)
	}
}

// flash queues a message; a store failure is logged, not surfaced.
func (h *Handlers) flash(w http.ResponseWriter, r *http.Request, kind domainauth.FlashKind, msg string) {
	if err := h.Flash.Push(w, r, kind, msg); err != nil {
		h.logger().WarnContext(r.Context(), "flash push failed", slog.Any("error", err))
	}
}

// parseForm bounds the body size before parsing.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	return r.ParseForm()
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// NotFound renders the 404 page.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Page not found.")
}

// MethodNotAllowed renders the 405 page.
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusMethodNotAllowed, "That action is not available here.")
}
