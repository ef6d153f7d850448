package model

import "time"

// TreatedAnimal is a record an NGO keeps for an animal it has treated.
type TreatedAnimal struct {
	ID        string    `json:"id"         db:"id"`
	NGOID     string    `json:"ngo_id"     db:"ngo_id"`
	Name      string    `json:"name"       db:"name"`
	Species   string    `json:"species"    db:"species"`
	Location  string    `json:"location"   db:"location"`
	Treatment string    `json:"treatment"  db:"treatment"`
	TreatedAt time.Time `json:"treated_at" db:"treated_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateTreatedAnimalRequest carries the NGO form for a new treated-animal record.
type CreateTreatedAnimalRequest struct {
	NGOID     string
	Name      string
	Species   string
	Location  string
	Treatment string
	TreatedAt time.Time
}

// Validate normalizes and validates the request.
func (r *CreateTreatedAnimalRequest) Validate() error {
	var err error
	if r.NGOID, err = requireText("ngo_id", r.NGOID, maxShortFieldLen); err != nil {
		return err
	}
	if r.Name, err = requireText("name", r.Name, maxShortFieldLen); err != nil {
		return err
	}
	if r.Species, err = requireText("species", r.Species, maxShortFieldLen); err != nil {
		return err
	}
	if r.Location, err = requireText("location", r.Location, maxShortFieldLen); err != nil {
		return err
	}
	if r.Treatment, err = requireText("treatment", r.Treatment, maxLongFieldLen); err != nil {
		return err
	}
	if r.TreatedAt.IsZero() {
		r.TreatedAt = time.Now().UTC()
	}
	return nil
}

// ListOptions pages through a listing, optionally scoped to one owner.
type ListOptions struct {
	Limit   int
	Offset  int
	OwnerID string // NGO or reporter id; empty lists everything
}

// Normalize clamps limit/offset.
func (o ListOptions) Normalize() ListOptions {
	o.Limit = clampLimit(o.Limit)
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
