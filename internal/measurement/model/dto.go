// Package model provides domain models and DTOs for measurement module.
package model

import (
	"time"

	"github.com/google/uuid"
)

// CreateMeasurementRequest represents the request to record a measurement.
// TeamID, when supplied, is honored verbatim; otherwise the team context is
// inferred from the athlete's roster at Date.
type CreateMeasurementRequest struct {
	UserID      uuid.UUID  `json:"user_id" binding:"required"`
	Metric      string     `json:"metric" binding:"required"`
	Value       float64    `json:"value"`
	Units       string     `json:"units"`
	Date        time.Time  `json:"date" binding:"required"`
	TeamID      *uuid.UUID `json:"team_id"`
	Season      *string    `json:"season"`
	SubmittedBy uuid.UUID  `json:"submitted_by" binding:"required"`
}

// VerifyMeasurementRequest represents the request to verify a measurement.
type VerifyMeasurementRequest struct {
	VerifiedBy uuid.UUID `json:"verified_by" binding:"required"`
}

// Filter narrows a measurement listing. OrganizationID is the tenant scope;
// a listing that targets neither an organization, a team set, nor a single
// athlete fails closed to an empty result.
type Filter struct {
	OrganizationID uuid.UUID
	TeamIDs        []uuid.UUID
	UserID         uuid.UUID
	Metric         string
	From           *time.Time
	To             *time.Time
	Verified       *bool
	NoTeam         bool
	Limit          int
	Offset         int
}

// Targeted reports whether the filter names a specific team set or athlete,
// which scopes the query without an explicit organization.
func (f *Filter) Targeted() bool {
	return len(f.TeamIDs) > 0 || f.UserID != uuid.Nil
}

// TeamRef is a team attached to a measurement view: either the stored
// attribution or, for rows without direct context, a roster match at the
// measurement date.
type TeamRef struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Season *string   `json:"season,omitempty"`
}

// MeasurementResponse represents a measurement in API responses. Teams
// carries attribution context aggregated into a list, so a measurement never
// fans out into duplicate rows.
type MeasurementResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	TeamID          *uuid.UUID `json:"team_id,omitempty"`
	Season          *string    `json:"season,omitempty"`
	TeamContextAuto bool       `json:"team_context_auto"`
	Metric          string     `json:"metric"`
	Value           float64    `json:"value"`
	Units           string     `json:"units"`
	Date            time.Time  `json:"date"`
	Age             *int       `json:"age,omitempty"`
	IsVerified      bool       `json:"is_verified"`
	SubmittedBy     uuid.UUID  `json:"submitted_by"`
	VerifiedBy      *uuid.UUID `json:"verified_by,omitempty"`
	Teams           []TeamRef  `json:"teams"`
}

// MeasurementsResponse represents a filtered measurement listing.
type MeasurementsResponse struct {
	Measurements []MeasurementResponse `json:"measurements"`
	Total        int                   `json:"total"`
}
