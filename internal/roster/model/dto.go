// Package model provides domain models and DTOs for roster module.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ChangeMembershipRequest represents the request to add or remove a team membership.
type ChangeMembershipRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	TeamID uuid.UUID `json:"team_id" binding:"required"`
}

// MembershipResponse represents a membership interval in API responses.
type MembershipResponse struct {
	ID       uuid.UUID  `json:"id"`
	UserID   uuid.UUID  `json:"user_id"`
	TeamID   uuid.UUID  `json:"team_id"`
	JoinedAt time.Time  `json:"joined_at"`
	LeftAt   *time.Time `json:"left_at,omitempty"`
	IsActive bool       `json:"is_active"`
	Season   *string    `json:"season,omitempty"`
}

// MembershipsResponse represents a list of membership intervals.
type MembershipsResponse struct {
	Memberships []MembershipResponse `json:"memberships"`
	Total       int                  `json:"total"`
}

// RosterEntry is one current member of a team, with athlete identity
// joined in for display.
type RosterEntry struct {
	UserID    uuid.UUID `gorm:"column:user_id"    json:"user_id"`
	FirstName string    `gorm:"column:first_name" json:"first_name"`
	LastName  string    `gorm:"column:last_name"  json:"last_name"`
	JoinedAt  time.Time `gorm:"column:joined_at"  json:"joined_at"`
}

// RosterResponse represents the current roster of a team.
type RosterResponse struct {
	TeamID  uuid.UUID     `json:"team_id"`
	Members []RosterEntry `json:"members"`
	Total   int           `json:"total"`
}

// NewMembershipResponse converts a Membership row into its API representation.
func NewMembershipResponse(m *Membership) MembershipResponse {
	return MembershipResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		TeamID:   m.TeamID,
		JoinedAt: m.JoinedAt,
		LeftAt:   m.LeftAt,
		IsActive: m.IsActive,
		Season:   m.Season,
	}
}
