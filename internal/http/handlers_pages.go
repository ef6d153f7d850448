package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/domain/model"
	apperrors "github.com/straycare/straycare/internal/errors"
)

// Home shows treated animals and ads.
// GET /.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	feed, err := h.Feed.Home(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, PageSpec{Page: PageHome, Title: "StrayCare", Data: feed})
}

// AdsList shows every NGO ad.
// GET /ads.
func (h *Handlers) AdsList(w http.ResponseWriter, r *http.Request) {
	ads, err := h.Ads.List(r.Context(), model.ListOptions{})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, PageSpec{Page: PageAds, Title: "Ads", Data: ads})
}

// AdoptionList shows posts still open for adoption.
// GET /adoption.
func (h *Handlers) AdoptionList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Adoptions.ListOpen(r.Context(), model.ListOptions{})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, PageSpec{Page: PageAdoptions, Title: "Adopt", Data: posts})
}

type adoptionPage struct {
	Post       *model.AdoptionPost
	CanRequest bool
}

// AdoptionDetail shows one post.
// GET /adoption/{id}.
func (h *Handlers) AdoptionDetail(w http.ResponseWriter, r *http.Request) {
	post, err := h.Adoptions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.failOrError(w, r, err)
		return
	}
	view := ViewFromContext(r.Context())
	h.render(w, r, PageSpec{
		Page:  PageAdoption,
		Title: post.AnimalName,
		Data:  adoptionPage{Post: post, CanRequest: post.Open() && !view.IsNGO()},
	})
}

// Adopt records the caller's adoption request.
// POST /adopt/{id}.
func (h *Handlers) Adopt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := parseForm(w, r); err != nil {
		h.serverError(w, r, err)
		return
	}
	_, err := h.Adoptions.Request(r.Context(), model.CreateAdoptionRequest{
		PostID:  id,
		UserID:  IdentityFromContext(r.Context()).CurrentUserID,
		Message: r.PostFormValue("message"),
	})
	if apperrors.IsNotFound(err) {
		h.failOrError(w, r, err)
		return
	}
	if err != nil {
		h.failForm(w, r, err, "/adoption/"+id)
		return
	}
	h.flash(w, r, domainauth.FlashSuccess, "Your adoption request has been sent.")
	redirect(w, r, "/dashboard")
}

type reportFormPage struct {
	Conditions []model.StrayCondition
}

// ReportForm renders the stray report form.
// GET /report/new.
func (h *Handlers) ReportForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageSpec{
		Page:  PageReportForm,
		Title: "Report a stray",
		Data: reportFormPage{Conditions: []model.StrayCondition{
			model.StrayConditionHealthy, model.StrayConditionInjured, model.StrayConditionCritical,
		}},
	})
}

// CreateReport files a stray report. Backend failures are reported as an error
// flash rather than a 500 so the reporter can retry from the form.
// POST /report.
func (h *Handlers) CreateReport(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.serverError(w, r, err)
		return
	}
	_, err := h.Reports.Create(r.Context(), model.CreateStrayReportRequest{
		ReporterID:  IdentityFromContext(r.Context()).CurrentUserID,
		Location:    r.PostFormValue("location"),
		Description: r.PostFormValue("description"),
		Condition:   r.PostFormValue("condition"),
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "report failed", slog.Any("error", err))
		h.flash(w, r, domainauth.FlashError, apperrors.UserMessage(err, "Report failed."))
		redirect(w, r, "/report/new")
		return
	}
	h.flash(w, r, domainauth.FlashSuccess, "Thank you! Your report has been submitted.")
	redirect(w, r, "/report/mine")
}

// MyReports lists the caller's reports.
// GET /report/mine.
func (h *Handlers) MyReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Reports.ListByReporter(r.Context(), IdentityFromContext(r.Context()).CurrentUserID, model.ListOptions{})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, PageSpec{Page: PageReports, Title: "My reports", Data: reports})
}

// Dashboard shows a LOCAL user's activity; NGOs are sent to their management page.
// GET /dashboard.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	id := IdentityFromContext(r.Context())
	if id.CurrentUserKind == domainauth.RoleNGO {
		redirect(w, r, "/ngo")
		return
	}
	dash, err := h.Feed.ForLocal(r.Context(), id.CurrentUserID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, PageSpec{Page: PageDashboard, Title: "Dashboard", Data: dash})
}
