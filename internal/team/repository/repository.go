// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perftrack/perftrack/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create creates a new team.
	Create(ctx context.Context, orgID uuid.UUID, name string, level int) (*model.Team, error)

	// GetByID finds a team by id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error)

	// ListByOrganization returns all teams of an organization,
	// optionally including archived ones.
	ListByOrganization(ctx context.Context, orgID uuid.UUID, includeArchived bool) ([]model.Team, error)

	// MarkArchived sets the archive flags on a team row.
	MarkArchived(ctx context.Context, id uuid.UUID, archivedAt time.Time, season string) error

	// ClearArchived resets the archive flags on a team row.
	ClearArchived(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// isNameConflict reports whether err is a uniqueness violation on the
// (organization, name) constraint specifically, so that unrelated unique
// indexes are not misreported as a name conflict.
func isNameConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	// Postgres reports the violated index by name; SQLite reports the column list.
	return strings.Contains(msg, "idx_teams_org_name") ||
		strings.Contains(msg, "teams.organization_id, teams.name")
}

// Create creates a new team.
func (r *repository) Create(ctx context.Context, orgID uuid.UUID, name string, level int) (*model.Team, error) {
	team := &model.Team{
		OrganizationID: orgID,
		Name:           name,
		Level:          level,
	}

	err := r.db.WithContext(ctx).Create(team).Error
	if err != nil {
		if isNameConflict(err) {
			return nil, model.ErrTeamNameTaken
		}
		r.logger.Errorw("Create team database error",
			"organization_id", orgID, "name", name, "error", err)
		return nil, err
	}

	return team, nil
}

// GetByID finds a team by id.
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrTeamNotFound
		}
		r.logger.Errorw("GetByID database error", "team_id", id, "error", err)
		return nil, err
	}

	return &team, nil
}

// ListByOrganization returns all teams of an organization.
func (r *repository) ListByOrganization(
	ctx context.Context,
	orgID uuid.UUID,
	includeArchived bool,
) ([]model.Team, error) {
	query := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID)

	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}

	var teams []model.Team
	err := query.Order("name ASC").Find(&teams).Error
	if err != nil {
		r.logger.Errorw("ListByOrganization database error",
			"organization_id", orgID, "error", err)
		return nil, err
	}

	return teams, nil
}

// MarkArchived sets the archive flags on a team row.
func (r *repository) MarkArchived(
	ctx context.Context,
	id uuid.UUID,
	archivedAt time.Time,
	season string,
) error {
	result := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("id = ? AND is_archived = ?", id, false).
		Updates(map[string]interface{}{
			"is_archived": true,
			"archived_at": archivedAt,
			"season":      season,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		r.logger.Errorw("MarkArchived database error", "team_id", id, "error", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrTeamArchived
	}

	return nil
}

// ClearArchived resets the archive flags on a team row.
// Memberships are deliberately left untouched.
func (r *repository) ClearArchived(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_archived": false,
			"archived_at": nil,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		r.logger.Errorw("ClearArchived database error", "team_id", id, "error", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrTeamNotFound
	}

	return nil
}
