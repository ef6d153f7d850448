package model

import (
	"strings"
	"time"

	apperrors "github.com/straycare/straycare/internal/errors"
)

// StrayCondition is the reporter's assessment of the animal.
type StrayCondition string

const (
	StrayConditionHealthy  StrayCondition = "healthy"
	StrayConditionInjured  StrayCondition = "injured"
	StrayConditionCritical StrayCondition = "critical"
)

// ParseStrayCondition normalizes a form value and reports whether it is supported.
func ParseStrayCondition(v string) (StrayCondition, bool) {
	c := StrayCondition(strings.ToLower(strings.TrimSpace(v)))
	switch c {
	case StrayConditionHealthy, StrayConditionInjured, StrayConditionCritical:
		return c, true
	default:
		return "", false
	}
}

// StrayReport is a sighting filed by a LOCAL user.
type StrayReport struct {
	ID          string         `json:"id"          db:"id"`
	ReporterID  string         `json:"reporter_id" db:"reporter_id"`
	Location    string         `json:"location"    db:"location"`
	Description string         `json:"description" db:"description"`
	Condition   StrayCondition `json:"condition"   db:"condition"`
	CreatedAt   time.Time      `json:"created_at"  db:"created_at"`
}

// CreateStrayReportRequest carries the report form.
type CreateStrayReportRequest struct {
	ReporterID  string
	Location    string
	Description string
	Condition   string
}

// Validate normalizes and validates the request.
func (r *CreateStrayReportRequest) Validate() error {
	var err error
	if r.ReporterID, err = requireText("reporter_id", r.ReporterID, maxShortFieldLen); err != nil {
		return err
	}
	if r.Location, err = requireText("location", r.Location, maxShortFieldLen); err != nil {
		return err
	}
	if r.Description, err = requireText("description", r.Description, maxLongFieldLen); err != nil {
		return err
	}
	c, ok := ParseStrayCondition(r.Condition)
	if !ok {
		return apperrors.ValidationField("condition", "condition must be one of: healthy, injured, critical")
	}
	r.Condition = string(c)
	return nil
}
