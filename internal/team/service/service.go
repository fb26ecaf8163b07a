// Package service provides business logic layer for team module.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	orgRepo "github.com/perftrack/perftrack/internal/organization/repository"
	rosterRepo "github.com/perftrack/perftrack/internal/roster/repository"
	"github.com/perftrack/perftrack/internal/team/model"
	"github.com/perftrack/perftrack/internal/team/repository"
)

// Service defines the interface for team business logic operations,
// including the team lifecycle transitions.
type Service interface {
	// CreateTeam creates a new team in an organization.
	CreateTeam(ctx context.Context, req *model.CreateTeamRequest) (*model.TeamResponse, error)

	// GetTeam returns a team by id.
	GetTeam(ctx context.Context, id uuid.UUID) (*model.TeamResponse, error)

	// ListTeams returns teams of an organization.
	ListTeams(ctx context.Context, orgID uuid.UUID, includeArchived bool) (*model.TeamsResponse, error)

	// Archive marks a team archived and closes all of its active memberships
	// in a single transaction.
	Archive(ctx context.Context, teamID uuid.UUID, req *model.ArchiveTeamRequest) (*model.TeamResponse, error)

	// Unarchive clears the archive flags. It never reopens memberships:
	// athletes must be re-added explicitly so stale rosters cannot leak back
	// into present-day analytics.
	Unarchive(ctx context.Context, teamID uuid.UUID) (*model.TeamResponse, error)
}

type service struct {
	repo   repository.Repository
	roster rosterRepo.Repository
	orgs   orgRepo.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(
	repo repository.Repository,
	roster rosterRepo.Repository,
	orgs orgRepo.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:   repo,
		roster: roster,
		orgs:   orgs,
		db:     db,
		logger: logger,
	}
}

// CreateTeam creates a new team in an organization.
func (s *service) CreateTeam(ctx context.Context, req *model.CreateTeamRequest) (*model.TeamResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrInvalidTeamName
	}

	level := req.Level
	if level == 0 {
		level = 3 // intermediate baseline
	}
	if level < model.LevelElite || level > model.LevelBeginner {
		return nil, model.ErrInvalidLevel
	}

	if _, err := s.orgs.GetByID(ctx, req.OrganizationID); err != nil {
		return nil, err
	}

	team, err := s.repo.Create(ctx, req.OrganizationID, name, level)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team created",
		"team_id", team.ID, "organization_id", team.OrganizationID, "name", team.Name)

	resp := model.NewTeamResponse(team)
	return &resp, nil
}

// GetTeam returns a team by id.
func (s *service) GetTeam(ctx context.Context, id uuid.UUID) (*model.TeamResponse, error) {
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := model.NewTeamResponse(team)
	return &resp, nil
}

// ListTeams returns teams of an organization.
func (s *service) ListTeams(
	ctx context.Context,
	orgID uuid.UUID,
	includeArchived bool,
) (*model.TeamsResponse, error) {
	if _, err := s.orgs.GetByID(ctx, orgID); err != nil {
		return nil, err
	}

	teams, err := s.repo.ListByOrganization(ctx, orgID, includeArchived)
	if err != nil {
		return nil, err
	}

	resp := &model.TeamsResponse{Teams: make([]model.TeamResponse, 0, len(teams))}
	for i := range teams {
		resp.Teams = append(resp.Teams, model.NewTeamResponse(&teams[i]))
	}
	resp.Total = len(resp.Teams)
	return resp, nil
}

// Archive marks a team archived and closes all of its active memberships.
// Both effects commit atomically: a failure rolls back the team flags and
// the membership closures together.
func (s *service) Archive(
	ctx context.Context,
	teamID uuid.UUID,
	req *model.ArchiveTeamRequest,
) (*model.TeamResponse, error) {
	if req.ArchiveDate.IsZero() {
		return nil, model.ErrInvalidArchiveDate
	}

	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.IsArchived {
		return nil, model.ErrTeamArchived
	}

	var closed int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txTeams := repository.New(tx, s.logger)
		txRoster := rosterRepo.New(tx, s.logger)

		if markErr := txTeams.MarkArchived(ctx, teamID, req.ArchiveDate, req.Season); markErr != nil {
			return markErr
		}

		var closeErr error
		closed, closeErr = txRoster.CloseAllForTeam(ctx, teamID, req.ArchiveDate, req.Season)
		return closeErr
	})

	if err != nil {
		return nil, err
	}

	s.logger.Infow("team archived",
		"team_id", teamID, "season", req.Season,
		"archive_date", req.ArchiveDate, "closed_memberships", closed)

	archived, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	resp := model.NewTeamResponse(archived)
	return &resp, nil
}

// Unarchive clears the archive flags without touching memberships.
func (s *service) Unarchive(ctx context.Context, teamID uuid.UUID) (*model.TeamResponse, error) {
	if _, err := s.repo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	if err := s.repo.ClearArchived(ctx, teamID); err != nil {
		return nil, err
	}

	s.logger.Infow("team unarchived", "team_id", teamID)

	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	resp := model.NewTeamResponse(team)
	return &resp, nil
}
