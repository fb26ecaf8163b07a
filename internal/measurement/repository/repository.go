// Package repository provides data access layer for measurement module,
// including the filtered listing composer.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perftrack/perftrack/internal/measurement/model"
	rosterModel "github.com/perftrack/perftrack/internal/roster/model"
	teamModel "github.com/perftrack/perftrack/internal/team/model"
)

// Repository defines the interface for measurement data access operations.
type Repository interface {
	// Create inserts a new measurement row.
	Create(ctx context.Context, measurement *model.Measurement) error

	// GetByID finds a measurement by id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Measurement, error)

	// List returns measurements matching the filter, newest first.
	List(ctx context.Context, filter *model.Filter) ([]model.Measurement, error)

	// Verify marks a measurement verified.
	Verify(ctx context.Context, id, verifiedBy uuid.UUID) error

	// ListAmbiguous returns org-scoped measurements that were recorded
	// without team context while two or more memberships covered their date.
	ListAmbiguous(ctx context.Context, orgID uuid.UUID) ([]model.Measurement, error)

	// TeamsByIDs loads teams for attaching attribution context to views.
	TeamsByIDs(ctx context.Context, ids []uuid.UUID) ([]teamModel.Team, error)

	// MembershipsOfUsers loads all membership intervals for a set of users,
	// for at-date roster matching of legacy rows.
	MembershipsOfUsers(ctx context.Context, userIDs []uuid.UUID) ([]rosterModel.Membership, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new measurement repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a new measurement row.
func (r *repository) Create(ctx context.Context, measurement *model.Measurement) error {
	if err := r.db.WithContext(ctx).Create(measurement).Error; err != nil {
		r.logger.Errorw("Create measurement database error",
			"user_id", measurement.UserID, "metric", measurement.Metric, "error", err)
		return err
	}
	return nil
}

// GetByID finds a measurement by id.
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Measurement, error) {
	var measurement model.Measurement
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&measurement).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrMeasurementNotFound
		}
		r.logger.Errorw("GetByID database error", "measurement_id", id, "error", err)
		return nil, err
	}

	return &measurement, nil
}

// List returns measurements matching the filter, newest first.
//
// The team filter runs both attribution paths in one predicate: the stored
// team_id is authoritative where present, and rows without direct context
// fall back to a correlated at-date membership check, so legacy and newly
// attributed data are queried uniformly.
func (r *repository) List(ctx context.Context, filter *model.Filter) ([]model.Measurement, error) {
	query := r.db.WithContext(ctx).Model(&model.Measurement{})

	if filter.OrganizationID != uuid.Nil {
		// Existence check rather than a join: an athlete in several
		// organizations must not multiply rows.
		query = query.Where(`EXISTS (
			SELECT 1 FROM org_memberships om
			WHERE om.user_id = measurements.user_id AND om.organization_id = ?
		)`, filter.OrganizationID)
	}

	if len(filter.TeamIDs) > 0 {
		query = query.Where(`(
			measurements.team_id IN ?
			OR (measurements.team_id IS NULL AND EXISTS (
				SELECT 1 FROM memberships m
				WHERE m.user_id = measurements.user_id
				  AND m.team_id IN ?
				  AND m.joined_at <= measurements.date
				  AND (m.left_at IS NULL OR m.left_at >= measurements.date)
			))
		)`, filter.TeamIDs, filter.TeamIDs)
	}

	if filter.UserID != uuid.Nil {
		query = query.Where("measurements.user_id = ?", filter.UserID)
	}

	if filter.Metric != "" {
		query = query.Where("measurements.metric = ?", filter.Metric)
	}

	if filter.From != nil {
		query = query.Where("measurements.date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("measurements.date <= ?", *filter.To)
	}

	if filter.Verified != nil {
		query = query.Where("measurements.is_verified = ?", *filter.Verified)
	}

	if filter.NoTeam {
		query = query.Where("measurements.team_id IS NULL")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var measurements []model.Measurement
	err := query.
		Order("measurements.date DESC, measurements.created_at DESC").
		Find(&measurements).Error

	if err != nil {
		r.logger.Errorw("List measurements database error", "error", err)
		return nil, err
	}

	return measurements, nil
}

// Verify marks a measurement verified.
func (r *repository) Verify(ctx context.Context, id, verifiedBy uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Measurement{}).
		Where("id = ? AND is_verified = ?", id, false).
		Updates(map[string]interface{}{
			"is_verified": true,
			"verified_by": verifiedBy,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		r.logger.Errorw("Verify database error", "measurement_id", id, "error", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrMeasurementNotFound
	}

	return nil
}

// ListAmbiguous returns org-scoped measurements flagged for manual review:
// no stored team context, inference declined, and at least two memberships
// covering the measurement date.
func (r *repository) ListAmbiguous(ctx context.Context, orgID uuid.UUID) ([]model.Measurement, error) {
	var measurements []model.Measurement
	err := r.db.WithContext(ctx).
		Model(&model.Measurement{}).
		Where("measurements.team_id IS NULL AND measurements.team_context_auto = ?", false).
		Where(`EXISTS (
			SELECT 1 FROM org_memberships om
			WHERE om.user_id = measurements.user_id AND om.organization_id = ?
		)`, orgID).
		Where(`(
			SELECT COUNT(*) FROM memberships m
			WHERE m.user_id = measurements.user_id
			  AND m.joined_at <= measurements.date
			  AND (m.left_at IS NULL OR m.left_at >= measurements.date)
		) >= 2`).
		Order("measurements.date DESC, measurements.created_at DESC").
		Find(&measurements).Error

	if err != nil {
		r.logger.Errorw("ListAmbiguous database error", "organization_id", orgID, "error", err)
		return nil, err
	}

	return measurements, nil
}

// TeamsByIDs loads teams for attaching attribution context to views.
func (r *repository) TeamsByIDs(ctx context.Context, ids []uuid.UUID) ([]teamModel.Team, error) {
	if len(ids) == 0 {
		return []teamModel.Team{}, nil
	}

	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&teams).Error

	if err != nil {
		r.logger.Errorw("TeamsByIDs database error", "error", err)
		return nil, err
	}

	return teams, nil
}

// MembershipsOfUsers loads all membership intervals for a set of users.
func (r *repository) MembershipsOfUsers(
	ctx context.Context,
	userIDs []uuid.UUID,
) ([]rosterModel.Membership, error) {
	if len(userIDs) == 0 {
		return []rosterModel.Membership{}, nil
	}

	var memberships []rosterModel.Membership
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&memberships).Error

	if err != nil {
		r.logger.Errorw("MembershipsOfUsers database error", "error", err)
		return nil, err
	}

	return memberships, nil
}
