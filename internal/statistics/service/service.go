// Package service provides business logic layer for statistics module.
//
// Every operation here is an aggregate, cross-athlete read, so each one
// requires an explicit organization scope. A missing scope returns a
// zero-valued result rather than falling back to a global aggregate.
package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/perftrack/perftrack/internal/statistics/model"
	"github.com/perftrack/perftrack/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetDashboardSummary returns organization-wide counts.
	GetDashboardSummary(ctx context.Context, orgID uuid.UUID) (*model.DashboardResponse, error)

	// GetTeamStatistics returns per-team aggregates for an organization.
	GetTeamStatistics(ctx context.Context, orgID uuid.UUID) (*model.TeamStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// GetDashboardSummary returns organization-wide counts.
func (s *service) GetDashboardSummary(ctx context.Context, orgID uuid.UUID) (*model.DashboardResponse, error) {
	if orgID == uuid.Nil {
		s.logger.Warnw("dashboard summary requested without organization scope, returning empty result")
		return &model.DashboardResponse{
			Summary: model.DashboardSummary{Metrics: []model.MetricCount{}},
		}, nil
	}

	summary, err := s.repo.GetDashboardSummary(ctx, orgID)
	if err != nil {
		s.logger.Errorw("GetDashboardSummary failed", "organization_id", orgID, "error", err)
		return nil, err
	}

	return &model.DashboardResponse{OrganizationID: orgID, Summary: *summary}, nil
}

// GetTeamStatistics returns per-team aggregates for an organization.
func (s *service) GetTeamStatistics(ctx context.Context, orgID uuid.UUID) (*model.TeamStatisticsResponse, error) {
	if orgID == uuid.Nil {
		s.logger.Warnw("team statistics requested without organization scope, returning empty result")
		return &model.TeamStatisticsResponse{Teams: []model.TeamStatistics{}, Total: 0}, nil
	}

	stats, err := s.repo.GetTeamStatistics(ctx, orgID)
	if err != nil {
		s.logger.Errorw("GetTeamStatistics failed", "organization_id", orgID, "error", err)
		return nil, err
	}

	return &model.TeamStatisticsResponse{
		OrganizationID: orgID,
		Teams:          stats,
		Total:          len(stats),
	}, nil
}
