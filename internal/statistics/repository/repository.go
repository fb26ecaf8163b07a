// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perftrack/perftrack/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetDashboardSummary returns organization-wide counts.
	GetDashboardSummary(ctx context.Context, orgID uuid.UUID) (*model.DashboardSummary, error)

	// GetTeamStatistics returns per-team aggregates for an organization.
	GetTeamStatistics(ctx context.Context, orgID uuid.UUID) ([]model.TeamStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetDashboardSummary returns organization-wide counts.
// All measurement aggregates are scoped through the athlete's organization
// membership so another tenant's rows can never be counted.
func (r *repository) GetDashboardSummary(ctx context.Context, orgID uuid.UUID) (*model.DashboardSummary, error) {
	summary := &model.DashboardSummary{Metrics: []model.MetricCount{}}

	var athleteCount int64
	err := r.db.WithContext(ctx).
		Table("org_memberships").
		Where("organization_id = ? AND role = ?", orgID, "athlete").
		Count(&athleteCount).Error
	if err != nil {
		r.logger.Errorw("GetDashboardSummary athlete count error", "organization_id", orgID, "error", err)
		return nil, err
	}
	summary.Athletes = int(athleteCount)

	var teamCounts struct {
		Total    int64 `gorm:"column:total"`
		Archived int64 `gorm:"column:archived"`
	}
	err = r.db.WithContext(ctx).
		Table("teams").
		Select(`
			COUNT(*) as total,
			SUM(CASE WHEN is_archived THEN 1 ELSE 0 END) as archived
		`).
		Where("organization_id = ?", orgID).
		Scan(&teamCounts).Error
	if err != nil {
		r.logger.Errorw("GetDashboardSummary team count error", "organization_id", orgID, "error", err)
		return nil, err
	}
	summary.Teams = int(teamCounts.Total)
	summary.ArchivedTeams = int(teamCounts.Archived)

	var measurementCounts struct {
		Total        int64 `gorm:"column:total"`
		Verified     int64 `gorm:"column:verified"`
		Auto         int64 `gorm:"column:auto_attributed"`
		Unattributed int64 `gorm:"column:unattributed"`
	}
	err = r.db.WithContext(ctx).
		Table("measurements").
		Select(`
			COUNT(*) as total,
			SUM(CASE WHEN is_verified THEN 1 ELSE 0 END) as verified,
			SUM(CASE WHEN team_context_auto THEN 1 ELSE 0 END) as auto_attributed,
			SUM(CASE WHEN team_id IS NULL THEN 1 ELSE 0 END) as unattributed
		`).
		Where(`EXISTS (
			SELECT 1 FROM org_memberships om
			WHERE om.user_id = measurements.user_id AND om.organization_id = ?
		)`, orgID).
		Scan(&measurementCounts).Error
	if err != nil {
		r.logger.Errorw("GetDashboardSummary measurement count error", "organization_id", orgID, "error", err)
		return nil, err
	}
	summary.Measurements = int(measurementCounts.Total)
	summary.VerifiedMeasurements = int(measurementCounts.Verified)
	summary.AutoAttributed = int(measurementCounts.Auto)
	summary.Unattributed = int(measurementCounts.Unattributed)

	var metrics []model.MetricCount
	err = r.db.WithContext(ctx).
		Table("measurements").
		Select("measurements.metric, COUNT(*) as count").
		Where(`EXISTS (
			SELECT 1 FROM org_memberships om
			WHERE om.user_id = measurements.user_id AND om.organization_id = ?
		)`, orgID).
		Group("measurements.metric").
		Order("count DESC, measurements.metric ASC").
		Scan(&metrics).Error
	if err != nil {
		r.logger.Errorw("GetDashboardSummary metric count error", "organization_id", orgID, "error", err)
		return nil, err
	}
	if metrics != nil {
		summary.Metrics = metrics
	}

	return summary, nil
}

// GetTeamStatistics returns per-team aggregates for an organization.
func (r *repository) GetTeamStatistics(ctx context.Context, orgID uuid.UUID) ([]model.TeamStatistics, error) {
	var stats []model.TeamStatistics

	err := r.db.WithContext(ctx).
		Table("teams").
		Select(`
			teams.id as team_id,
			teams.name,
			teams.is_archived,
			COALESCE((
				SELECT COUNT(*) FROM memberships m
				WHERE m.team_id = teams.id AND m.is_active = TRUE
			), 0) as athlete_count,
			COALESCE((
				SELECT COUNT(*) FROM measurements ms
				WHERE ms.team_id = teams.id
			), 0) as measurement_count
		`).
		Where("teams.organization_id = ?", orgID).
		Order("teams.name ASC").
		Scan(&stats).Error

	if err != nil {
		r.logger.Errorw("GetTeamStatistics database error", "organization_id", orgID, "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.TeamStatistics{}
	}

	return stats, nil
}
