package model

import (
	"net/url"
	"strings"
	"time"

	apperrors "github.com/straycare/straycare/internal/errors"
)

// Ad is an NGO announcement shown on the home page and the ads listing.
type Ad struct {
	ID        string    `json:"id"                  db:"id"`
	NGOID     string    `json:"ngo_id"              db:"ngo_id"`
	Title     string    `json:"title"               db:"title"`
	Body      string    `json:"body"                db:"body"`
	ImageURL  *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"created_at"          db:"created_at"`
}

// CreateAdRequest carries the NGO form for a new ad.
type CreateAdRequest struct {
	NGOID    string
	Title    string
	Body     string
	ImageURL string
}

// Validate normalizes and validates the request.
func (r *CreateAdRequest) Validate() error {
	var err error
	if r.NGOID, err = requireText("ngo_id", r.NGOID, maxShortFieldLen); err != nil {
		return err
	}
	if r.Title, err = requireText("title", r.Title, maxShortFieldLen); err != nil {
		return err
	}
	if r.Body, err = requireText("body", r.Body, maxLongFieldLen); err != nil {
		return err
	}
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	if r.ImageURL == "" {
		return nil
	}
	u, perr := url.Parse(r.ImageURL)
	if perr != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.ValidationField("image_url", "image_url must be a valid URL")
	}
	return nil
}

// ImageURLPtr returns nil for an empty image URL so the column stays NULL.
func (r *CreateAdRequest) ImageURLPtr() *string {
	if r.ImageURL == "" {
		return nil
	}
	v := r.ImageURL
	return &v
}
