package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
	"github.com/straycare/straycare/internal/domain/model"
	apperrors "github.com/straycare/straycare/internal/errors"
)

const ngoHome = "/ngo"

// NGOHome is the NGO management overview.
// GET /ngo.
func (h *Handlers) NGOHome(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Feed.ForNGO(r.Context(), IdentityFromContext(r.Context()).CurrentUserID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, PageSpec{Page: PageNGO, Title: "Manage", Data: dash})
}

// CreateAnimal records a treated animal.
// POST /ngo/animals.
func (h *Handlers) CreateAnimal(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.serverError(w, r, err)
		return
	}
	req := model.CreateTreatedAnimalRequest{
		NGOID:     IdentityFromContext(r.Context()).CurrentUserID,
		Name:      r.PostFormValue("name"),
		Species:   r.PostFormValue("species"),
		Location:  r.PostFormValue("location"),
		Treatment: r.PostFormValue("treatment"),
	}
	if v := r.PostFormValue("treated_at"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			h.failForm(w, r, apperrors.ValidationField("treated_at", "treated_at must be a date (YYYY-MM-DD)"), ngoHome)
			return
		}
		req.TreatedAt = t
	}
	if _, err := h.Animals.Create(r.Context(), req); err != nil {
		h.failForm(w, r, err, ngoHome)
		return
	}
	h.flash(w, r, domainauth.FlashSuccess, "Treated animal recorded.")
	redirect(w, r, ngoHome)
}

// CreateAdoptionPost lists an animal for adoption.
// POST /ngo/adoptions.
func (h *Handlers) CreateAdoptionPost(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.serverError(w, r, err)
		return
	}
	_, err := h.Adoptions.Post(r.Context(), model.CreateAdoptionPostRequest{
		NGOID:       IdentityFromContext(r.Context()).CurrentUserID,
		AnimalName:  r.PostFormValue("animal_name"),
		Species:     r.PostFormValue("species"),
		Description: r.PostFormValue("description"),
	})
	if err != nil {
		h.failForm(w, r, err, ngoHome)
		return
	}
	h.flash(w, r, domainauth.FlashSuccess, "Adoption post published.")
	redirect(w, r, ngoHome)
}

// CreateAd publishes an ad.
// POST /ngo/ads.
func (h *Handlers) CreateAd(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.serverError(w, r, err)
		return
	}
	_, err := h.Ads.Create(r.Context(), model.CreateAdRequest{
		NGOID:    IdentityFromContext(r.Context()).CurrentUserID,
		Title:    r.PostFormValue("title"),
		Body:     r.PostFormValue("body"),
		ImageURL: r.PostFormValue("image_url"),
	})
	if err != nil {
		h.failForm(w, r, err, ngoHome)
		return
	}
	h.flash(w, r, domainauth.FlashSuccess, "Ad published.")
	redirect(w, r, ngoHome)
}

// MarkAdopted closes one of the caller's adoption posts.
// POST /ngo/adoptions/{id}/adopted.
func (h *Handlers) MarkAdopted(w http.ResponseWriter, r *http.Request) {
	err := h.Adoptions.MarkAdopted(r.Context(), chi.URLParam(r, "id"), IdentityFromContext(r.Context()).CurrentUserID)
	if err != nil {
		h.failForm(w, r, err, ngoHome)
		return
	}
	h.flash(w, r, domainauth.FlashSuccess, "Marked as adopted.")
	redirect(w, r, ngoHome)
}
