package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// AdoptionStatus tracks whether a listed animal is still looking for a home.
type AdoptionStatus string

const (
	AdoptionStatusOpen    AdoptionStatus = "open"
	AdoptionStatusAdopted AdoptionStatus = "adopted"
)

// Valid reports whether the status is supported.
func (s AdoptionStatus) Valid() bool {
	return s == AdoptionStatusOpen || s == AdoptionStatusAdopted
}

// AdoptionPost is an NGO listing for an animal available for adoption.
type AdoptionPost struct {
	ID          string         `json:"id"          db:"id"`
	NGOID       string         `json:"ngo_id"      db:"ngo_id"`
	AnimalName  string         `json:"animal_name" db:"animal_name"`
	Species     string         `json:"species"     db:"species"`
	Description string         `json:"description" db:"description"`
	Status      AdoptionStatus `json:"status"      db:"status"`
	CreatedAt   time.Time      `json:"created_at"  db:"created_at"`
}

// Open reports whether the post still accepts adoption requests.
func (p AdoptionPost) Open() bool { return p.Status == AdoptionStatusOpen }

// CreateAdoptionPostRequest carries the NGO form for a new adoption post.
type CreateAdoptionPostRequest struct {
	NGOID       string
	AnimalName  string
	Species     string
	Description string
}

// Validate normalizes and validates the request.
func (r *CreateAdoptionPostRequest) Validate() error {
	var err error
	if r.NGOID, err = requireText("ngo_id", r.NGOID, maxShortFieldLen); err != nil {
		return err
	}
	if r.AnimalName, err = requireText("animal_name", r.AnimalName, maxShortFieldLen); err != nil {
		return err
	}
	if r.Species, err = requireText("species", r.Species, maxShortFieldLen); err != nil {
		return err
	}
	if r.Description, err = requireText("description", r.Description, maxLongFieldLen); err != nil {
		return err
	}
	return nil
}

// AdoptionRequest records a LOCAL user's interest in an adoption post.
type AdoptionRequest struct {
	ID        string    `json:"id"         db:"id"`
	PostID    string    `json:"post_id"    db:"post_id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	Message   string    `json:"message"    db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateAdoptionRequest carries the adopt form.
type CreateAdoptionRequest struct {
	PostID  string
	UserID  string
	Message string
}

// Validate normalizes and validates the request. The message is optional.
func (r *CreateAdoptionRequest) Validate() error {
	var err error
	if r.PostID, err = requireText("post_id", r.PostID, maxShortFieldLen); err != nil {
		return err
	}
	if r.UserID, err = requireText("user_id", r.UserID, maxShortFieldLen); err != nil {
		return err
	}
	r.Message = strings.TrimSpace(r.Message)
	if utf8.RuneCountInString(r.Message) > maxLongFieldLen {
		r.Message = string([]rune(r.Message)[:maxLongFieldLen])
	}
	return nil
}

// AdoptionRequestDetail joins a request with the names the dashboards display.
type AdoptionRequestDetail struct {
	AdoptionRequest
	AnimalName    string `json:"animal_name"    db:"animal_name"`
	RequesterName string `json:"requester_name" db:"requester_name"`
}

// AdoptionPostListOptions filters adoption post listings.
type AdoptionPostListOptions struct {
	ListOptions
	Status AdoptionStatus // empty lists every status
}
