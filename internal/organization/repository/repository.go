// Package repository provides data access layer for organization module.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perftrack/perftrack/internal/organization/model"
)

// Repository defines the interface for organization data access operations.
type Repository interface {
	// Create creates a new organization.
	Create(ctx context.Context, name string) (*model.Organization, error)

	// GetByID finds an organization by id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)

	// GetByName finds an organization by name.
	GetByName(ctx context.Context, name string) (*model.Organization, error)

	// UpsertMember sets the role for a (user, organization) pair,
	// replacing any existing role rather than adding a second row.
	UpsertMember(ctx context.Context, orgID, userID uuid.UUID, role model.Role) (*model.OrgMembership, error)

	// RemoveMember deletes the membership row for a (user, organization) pair.
	RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error

	// ListMembers returns all memberships of an organization.
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]model.OrgMembership, error)

	// MemberRole returns the membership row for a (user, organization) pair.
	MemberRole(ctx context.Context, orgID, userID uuid.UUID) (*model.OrgMembership, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new organization repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// isNameConflict reports whether err is a uniqueness violation on the
// organization name constraint specifically. Other unique indexes must
// not be reported as a name conflict.
func isNameConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	// Postgres reports the violated index by name; SQLite reports the column list.
	return strings.Contains(msg, "idx_organizations_name") ||
		strings.Contains(msg, "organizations.name")
}

// Create creates a new organization.
func (r *repository) Create(ctx context.Context, name string) (*model.Organization, error) {
	org := &model.Organization{Name: name}

	err := r.db.WithContext(ctx).Create(org).Error
	if err != nil {
		if isNameConflict(err) {
			return nil, model.ErrOrganizationExists
		}
		r.logger.Errorw("Create organization database error", "name", name, "error", err)
		return nil, err
	}

	return org, nil
}

// GetByID finds an organization by id.
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&org).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrOrganizationNotFound
		}
		r.logger.Errorw("GetByID database error", "organization_id", id, "error", err)
		return nil, err
	}

	return &org, nil
}

// GetByName finds an organization by name.
func (r *repository) GetByName(ctx context.Context, name string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&org).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrOrganizationNotFound
		}
		r.logger.Errorw("GetByName database error", "name", name, "error", err)
		return nil, err
	}

	return &org, nil
}

// UpsertMember sets the role for a (user, organization) pair.
func (r *repository) UpsertMember(
	ctx context.Context,
	orgID, userID uuid.UUID,
	role model.Role,
) (*model.OrgMembership, error) {
	var membership model.OrgMembership

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Where("organization_id = ? AND user_id = ?", orgID, userID).
			First(&membership).Error

		switch {
		case findErr == nil:
			if membership.Role == role {
				return nil
			}
			membership.Role = role
			return tx.Model(&membership).Update("role", role).Error
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			membership = model.OrgMembership{
				OrganizationID: orgID,
				UserID:         userID,
				Role:           role,
			}
			return tx.Create(&membership).Error
		default:
			return findErr
		}
	})

	if err != nil {
		r.logger.Errorw("UpsertMember database error",
			"organization_id", orgID, "user_id", userID, "error", err)
		return nil, err
	}

	return &membership, nil
}

// RemoveMember deletes the membership row for a (user, organization) pair.
func (r *repository) RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&model.OrgMembership{})

	if result.Error != nil {
		r.logger.Errorw("RemoveMember database error",
			"organization_id", orgID, "user_id", userID, "error", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrOrgMembershipNotFound
	}

	return nil
}

// ListMembers returns all memberships of an organization.
func (r *repository) ListMembers(ctx context.Context, orgID uuid.UUID) ([]model.OrgMembership, error) {
	var memberships []model.OrgMembership
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&memberships).Error

	if err != nil {
		r.logger.Errorw("ListMembers database error", "organization_id", orgID, "error", err)
		return nil, err
	}

	return memberships, nil
}

// MemberRole returns the membership row for a (user, organization) pair.
func (r *repository) MemberRole(ctx context.Context, orgID, userID uuid.UUID) (*model.OrgMembership, error) {
	var membership model.OrgMembership
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrOrgMembershipNotFound
		}
		return nil, err
	}

	return &membership, nil
}
