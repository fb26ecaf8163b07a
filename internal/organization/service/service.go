// Package service provides business logic layer for organization module.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/perftrack/perftrack/internal/organization/model"
	"github.com/perftrack/perftrack/internal/organization/repository"
)

// Service defines the interface for organization business logic operations.
type Service interface {
	// CreateOrganization creates a new organization.
	CreateOrganization(ctx context.Context, req *model.CreateOrganizationRequest) (*model.OrganizationResponse, error)

	// GetOrganization returns an organization by id.
	GetOrganization(ctx context.Context, id uuid.UUID) (*model.OrganizationResponse, error)

	// UpsertMember assigns a role to a user within an organization,
	// replacing any previous role.
	UpsertMember(ctx context.Context, orgID uuid.UUID, req *model.UpsertMemberRequest) (*model.MemberResponse, error)

	// RemoveMember removes a user from an organization.
	RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error

	// ListMembers returns all members of an organization.
	ListMembers(ctx context.Context, orgID uuid.UUID) (*model.MembersResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new organization service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// CreateOrganization creates a new organization.
func (s *service) CreateOrganization(
	ctx context.Context,
	req *model.CreateOrganizationRequest,
) (*model.OrganizationResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrInvalidOrganizationName
	}

	org, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("organization created", "organization_id", org.ID, "name", org.Name)
	return &model.OrganizationResponse{ID: org.ID, Name: org.Name}, nil
}

// GetOrganization returns an organization by id.
func (s *service) GetOrganization(ctx context.Context, id uuid.UUID) (*model.OrganizationResponse, error) {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.OrganizationResponse{ID: org.ID, Name: org.Name}, nil
}

// UpsertMember assigns a role to a user within an organization.
func (s *service) UpsertMember(
	ctx context.Context,
	orgID uuid.UUID,
	req *model.UpsertMemberRequest,
) (*model.MemberResponse, error) {
	if !req.Role.Valid() {
		return nil, model.ErrInvalidRole
	}

	// Target organization must exist; a missing org is a NotFound, not a silent upsert.
	if _, err := s.repo.GetByID(ctx, orgID); err != nil {
		return nil, err
	}

	membership, err := s.repo.UpsertMember(ctx, orgID, req.UserID, req.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("organization member upserted",
		"organization_id", orgID, "user_id", req.UserID, "role", req.Role)

	return &model.MemberResponse{
		UserID:         membership.UserID,
		OrganizationID: membership.OrganizationID,
		Role:           membership.Role,
	}, nil
}

// RemoveMember removes a user from an organization.
func (s *service) RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error {
	return s.repo.RemoveMember(ctx, orgID, userID)
}

// ListMembers returns all members of an organization.
func (s *service) ListMembers(ctx context.Context, orgID uuid.UUID) (*model.MembersResponse, error) {
	if _, err := s.repo.GetByID(ctx, orgID); err != nil {
		return nil, err
	}

	memberships, err := s.repo.ListMembers(ctx, orgID)
	if err != nil {
		return nil, err
	}

	members := make([]model.MemberResponse, 0, len(memberships))
	for _, m := range memberships {
		members = append(members, model.MemberResponse{
			UserID:         m.UserID,
			OrganizationID: m.OrganizationID,
			Role:           m.Role,
		})
	}

	return &model.MembersResponse{Members: members, Total: len(members)}, nil
}
