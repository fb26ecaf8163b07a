// Package repository provides data access layer for athlete module.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perftrack/perftrack/internal/athlete/model"
)

// Repository defines the interface for athlete data access operations.
type Repository interface {
	// Create inserts a new athlete row.
	Create(ctx context.Context, athlete *model.Athlete) error

	// GetByID finds an athlete by id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Athlete, error)

	// List returns athletes matching the filter. The filter's organization
	// scope must already be validated by the caller; an unscoped call here
	// returns an empty slice.
	List(ctx context.Context, filter *model.Filter) ([]model.Athlete, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new athlete repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new athlete row.
func (r *repository) Create(ctx context.Context, athlete *model.Athlete) error {
	if err := r.db.WithContext(ctx).Create(athlete).Error; err != nil {
		r.logger.Errorw("Create athlete database error", "error", err)
		return err
	}
	return nil
}

// GetByID finds an athlete by id.
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Athlete, error) {
	var athlete model.Athlete
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&athlete).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAthleteNotFound
		}
		r.logger.Errorw("GetByID database error", "user_id", id, "error", err)
		return nil, err
	}

	return &athlete, nil
}

// List returns athletes matching the filter.
//
// Organization scope and team filters are existence checks rather than
// joins, so an athlete holding several memberships still comes back as a
// single row.
func (r *repository) List(ctx context.Context, filter *model.Filter) ([]model.Athlete, error) {
	if filter.OrganizationID == uuid.Nil {
		// Fail closed: no tenant scope, no rows.
		return []model.Athlete{}, nil
	}

	query := r.db.WithContext(ctx).
		Model(&model.Athlete{}).
		Where(`EXISTS (
			SELECT 1 FROM org_memberships om
			WHERE om.user_id = users.id AND om.organization_id = ?
		)`, filter.OrganizationID)

	if len(filter.TeamIDs) > 0 {
		query = query.Where(`EXISTS (
			SELECT 1 FROM memberships m
			WHERE m.user_id = users.id AND m.team_id IN ? AND m.is_active = ?
		)`, filter.TeamIDs, true)
	}

	if filter.NoTeam {
		query = query.Where(`NOT EXISTS (
			SELECT 1 FROM memberships m
			JOIN teams t ON t.id = m.team_id
			WHERE m.user_id = users.id AND m.is_active = ? AND t.is_archived = ?
		)`, true, false)
	}

	if filter.BirthYearMin != nil {
		query = query.Where("users.birth_year >= ?", *filter.BirthYearMin)
	}
	if filter.BirthYearMax != nil {
		query = query.Where("users.birth_year <= ?", *filter.BirthYearMax)
	}

	if search := strings.TrimSpace(filter.NameSearch); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?",
			pattern, pattern)
	}

	var athletes []model.Athlete
	err := query.
		Order("users.last_name ASC, users.first_name ASC").
		Find(&athletes).Error

	if err != nil {
		r.logger.Errorw("List athletes database error",
			"organization_id", filter.OrganizationID, "error", err)
		return nil, err
	}

	return athletes, nil
}
