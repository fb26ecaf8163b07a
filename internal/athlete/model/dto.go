// Package model provides domain models and DTOs for athlete module.
package model

import (
	"time"

	"github.com/google/uuid"
)

// CreateAthleteRequest represents the request to create an athlete.
type CreateAthleteRequest struct {
	FirstName      string     `json:"first_name" binding:"required"`
	LastName       string     `json:"last_name" binding:"required"`
	Email          string     `json:"email"`
	Gender         string     `json:"gender"`
	BirthDate      *time.Time `json:"birth_date"`
	BirthYear      *int       `json:"birth_year"`
	GraduationYear *int       `json:"graduation_year"`
	HeightInches   *int       `json:"height_inches"`
	WeightPounds   *int       `json:"weight_pounds"`
	School         string     `json:"school"`
	// OrganizationID, when set, also enrolls the athlete in the organization
	// with the athlete role.
	OrganizationID uuid.UUID `json:"organization_id"`
}

// Filter narrows an athlete listing. OrganizationID is the tenant scope;
// listings without it fail closed to an empty result.
type Filter struct {
	OrganizationID uuid.UUID
	TeamIDs        []uuid.UUID
	NoTeam         bool
	BirthYearMin   *int
	BirthYearMax   *int
	NameSearch     string
}

// AthleteResponse represents an athlete in API responses.
type AthleteResponse struct {
	ID             uuid.UUID  `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	BirthYear      *int       `json:"birth_year,omitempty"`
	GraduationYear *int       `json:"graduation_year,omitempty"`
	HeightInches   *int       `json:"height_inches,omitempty"`
	WeightPounds   *int       `json:"weight_pounds,omitempty"`
	School         string     `json:"school,omitempty"`
}

// AthletesResponse represents a filtered athlete listing.
type AthletesResponse struct {
	Athletes []AthleteResponse `json:"athletes"`
	Total    int               `json:"total"`
}

// NewAthleteResponse converts an Athlete row into its API representation.
func NewAthleteResponse(a *Athlete) AthleteResponse {
	return AthleteResponse{
		ID:             a.ID,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Email:          a.Email,
		Gender:         a.Gender,
		BirthDate:      a.BirthDate,
		BirthYear:      a.BirthYear,
		GraduationYear: a.GraduationYear,
		HeightInches:   a.HeightInches,
		WeightPounds:   a.WeightPounds,
		School:         a.School,
	}
}
