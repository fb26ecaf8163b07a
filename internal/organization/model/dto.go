// Package model provides domain models and DTOs for organization module.
package model

import "github.com/google/uuid"

// CreateOrganizationRequest represents the request to create an organization.
type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

// OrganizationResponse represents an organization in API responses.
type OrganizationResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UpsertMemberRequest represents the request to add or re-role an organization member.
type UpsertMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   Role      `json:"role" binding:"required"`
}

// MemberResponse represents an organization member in API responses.
type MemberResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Role           Role      `json:"role"`
}

// MembersResponse represents the list of members of an organization.
type MembersResponse struct {
	Members []MemberResponse `json:"members"`
	Total   int              `json:"total"`
}
