// Package model provides domain models and DTOs for team module.
package model

import (
	"time"

	"github.com/google/uuid"
)

// CreateTeamRequest represents the request to create a team.
type CreateTeamRequest struct {
	OrganizationID uuid.UUID `json:"organization_id" binding:"required"`
	Name           string    `json:"name" binding:"required"`
	Level          int       `json:"level"`
}

// ArchiveTeamRequest represents the request to archive a team.
type ArchiveTeamRequest struct {
	ArchiveDate time.Time `json:"archive_date" binding:"required"`
	Season      string    `json:"season" binding:"required"`
}

// TeamResponse represents a team in API responses.
type TeamResponse struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	Name           string     `json:"name"`
	Level          int        `json:"level"`
	Season         *string    `json:"season,omitempty"`
	IsArchived     bool       `json:"is_archived"`
	ArchivedAt     *time.Time `json:"archived_at,omitempty"`
}

// TeamsResponse represents a list of teams.
type TeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
	Total int            `json:"total"`
}

// NewTeamResponse converts a Team row into its API representation.
func NewTeamResponse(t *Team) TeamResponse {
	return TeamResponse{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		Name:           t.Name,
		Level:          t.Level,
		Season:         t.Season,
		IsArchived:     t.IsArchived,
		ArchivedAt:     t.ArchivedAt,
	}
}
