// Package service provides business logic layer for roster module.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	athleteRepo "github.com/perftrack/perftrack/internal/athlete/repository"
	"github.com/perftrack/perftrack/internal/roster/model"
	"github.com/perftrack/perftrack/internal/roster/repository"
	teamModel "github.com/perftrack/perftrack/internal/team/model"
	teamRepo "github.com/perftrack/perftrack/internal/team/repository"
)

// Service defines the interface for roster business logic operations.
type Service interface {
	// AddMembership puts an athlete on a team. Idempotent: an existing active
	// membership is returned unchanged, and a closed one is reactivated
	// instead of duplicated.
	AddMembership(ctx context.Context, req *model.ChangeMembershipRequest) (*model.MembershipResponse, error)

	// RemoveMembership closes the active membership for a (user, team) pair.
	// Removing a membership that is not active is a no-op, not an error.
	RemoveMembership(ctx context.Context, req *model.ChangeMembershipRequest) error

	// ActiveMembershipsAt returns the memberships covering a date, for
	// point-in-time attribution queries.
	ActiveMembershipsAt(ctx context.Context, userID uuid.UUID, date time.Time) (*model.MembershipsResponse, error)

	// ActiveTeamsOf returns the teams an athlete is on today.
	ActiveTeamsOf(ctx context.Context, userID uuid.UUID) (*teamModel.TeamsResponse, error)

	// TeamRoster returns the current members of a team.
	TeamRoster(ctx context.Context, teamID uuid.UUID) (*model.RosterResponse, error)

	// MembershipHistory returns all membership intervals of an athlete.
	MembershipHistory(ctx context.Context, userID uuid.UUID) (*model.MembershipsResponse, error)
}

type service struct {
	repo     repository.Repository
	teams    teamRepo.Repository
	athletes athleteRepo.Repository
	db       *gorm.DB
	logger   *zap.SugaredLogger
}

// New creates a new roster service instance.
func New(
	repo repository.Repository,
	teams teamRepo.Repository,
	athletes athleteRepo.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:     repo,
		teams:    teams,
		athletes: athletes,
		db:       db,
		logger:   logger,
	}
}

// AddMembership puts an athlete on a team.
func (s *service) AddMembership(
	ctx context.Context,
	req *model.ChangeMembershipRequest,
) (*model.MembershipResponse, error) {
	team, err := s.teams.GetByID(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	if team.IsArchived {
		return nil, teamModel.ErrTeamArchived
	}

	if _, err := s.athletes.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	// The find/reactivate/create decision runs inside one transaction so two
	// concurrent calls cannot both end up with an active row for the pair;
	// the partial unique index on active rows backs this up at the store level.
	var membership *model.Membership
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		active, findErr := txRepo.FindActive(ctx, req.UserID, req.TeamID)
		if findErr == nil {
			membership = active
			return nil
		}
		if !errors.Is(findErr, model.ErrMembershipNotFound) {
			return findErr
		}

		now := time.Now()

		closed, findErr := txRepo.FindLatestInactive(ctx, req.UserID, req.TeamID)
		if findErr == nil {
			reopened, reErr := txRepo.Reactivate(ctx, closed.ID, now)
			if reErr != nil {
				return reErr
			}
			membership = reopened
			return nil
		}
		if !errors.Is(findErr, model.ErrMembershipNotFound) {
			return findErr
		}

		fresh := &model.Membership{
			UserID:   req.UserID,
			TeamID:   req.TeamID,
			JoinedAt: now,
			IsActive: true,
		}
		if createErr := txRepo.Create(ctx, fresh); createErr != nil {
			return createErr
		}
		membership = fresh
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Infow("membership added",
		"user_id", req.UserID, "team_id", req.TeamID, "membership_id", membership.ID)

	resp := model.NewMembershipResponse(membership)
	return &resp, nil
}

// RemoveMembership closes the active membership for a (user, team) pair.
func (s *service) RemoveMembership(ctx context.Context, req *model.ChangeMembershipRequest) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		active, findErr := txRepo.FindActive(ctx, req.UserID, req.TeamID)
		if errors.Is(findErr, model.ErrMembershipNotFound) {
			// Nothing to close.
			return nil
		}
		if findErr != nil {
			return findErr
		}

		return txRepo.Close(ctx, active.ID, time.Now())
	})

	if err != nil {
		return err
	}

	s.logger.Infow("membership removed", "user_id", req.UserID, "team_id", req.TeamID)
	return nil
}

// ActiveMembershipsAt returns the memberships covering a date.
func (s *service) ActiveMembershipsAt(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) (*model.MembershipsResponse, error) {
	memberships, err := s.repo.ActiveAt(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	return newMembershipsResponse(memberships), nil
}

// ActiveTeamsOf returns the teams an athlete is on today.
func (s *service) ActiveTeamsOf(ctx context.Context, userID uuid.UUID) (*teamModel.TeamsResponse, error) {
	teams, err := s.repo.ActiveTeamsOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &teamModel.TeamsResponse{Teams: make([]teamModel.TeamResponse, 0, len(teams))}
	for i := range teams {
		resp.Teams = append(resp.Teams, teamModel.NewTeamResponse(&teams[i]))
	}
	resp.Total = len(resp.Teams)
	return resp, nil
}

// TeamRoster returns the current members of a team.
func (s *service) TeamRoster(ctx context.Context, teamID uuid.UUID) (*model.RosterResponse, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	entries, err := s.repo.TeamRoster(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &model.RosterResponse{
		TeamID:  teamID,
		Members: entries,
		Total:   len(entries),
	}, nil
}

// MembershipHistory returns all membership intervals of an athlete.
func (s *service) MembershipHistory(ctx context.Context, userID uuid.UUID) (*model.MembershipsResponse, error) {
	memberships, err := s.repo.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	return newMembershipsResponse(memberships), nil
}

func newMembershipsResponse(memberships []model.Membership) *model.MembershipsResponse {
	resp := &model.MembershipsResponse{
		Memberships: make([]model.MembershipResponse, 0, len(memberships)),
	}
	for i := range memberships {
		resp.Memberships = append(resp.Memberships, model.NewMembershipResponse(&memberships[i]))
	}
	resp.Total = len(resp.Memberships)
	return resp
}
