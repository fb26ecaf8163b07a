// Package repository provides data access layer for roster module.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perftrack/perftrack/internal/roster/model"
	teamModel "github.com/perftrack/perftrack/internal/team/model"
)

// Repository defines the interface for roster data access operations.
type Repository interface {
	// FindActive returns the currently active membership for a (user, team) pair.
	FindActive(ctx context.Context, userID, teamID uuid.UUID) (*model.Membership, error)

	// FindLatestInactive returns the most recently closed membership for a
	// (user, team) pair, if any.
	FindLatestInactive(ctx context.Context, userID, teamID uuid.UUID) (*model.Membership, error)

	// Create inserts a new membership row.
	Create(ctx context.Context, membership *model.Membership) error

	// Reactivate reopens a closed membership row with a fresh join date.
	Reactivate(ctx context.Context, id uuid.UUID, joinedAt time.Time) (*model.Membership, error)

	// Close closes a membership row.
	Close(ctx context.Context, id uuid.UUID, leftAt time.Time) error

	// CloseAllForTeam closes every active membership on a team, stamping the
	// given season. Returns the number of closed rows.
	CloseAllForTeam(ctx context.Context, teamID uuid.UUID, leftAt time.Time, season string) (int64, error)

	// ActiveAt returns all memberships of a user whose interval covers the
	// given date, regardless of the team's present-day archive flag.
	ActiveAt(ctx context.Context, userID uuid.UUID, date time.Time) ([]model.Membership, error)

	// ActiveTeamsOf returns the teams a user is on today. Archived teams are
	// excluded from this current-roster view.
	ActiveTeamsOf(ctx context.Context, userID uuid.UUID) ([]teamModel.Team, error)

	// TeamRoster returns the current members of a team with athlete identity.
	TeamRoster(ctx context.Context, teamID uuid.UUID) ([]model.RosterEntry, error)

	// History returns all membership intervals of a user, newest first.
	History(ctx context.Context, userID uuid.UUID) ([]model.Membership, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new roster repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// FindActive returns the currently active membership for a (user, team) pair.
func (r *repository) FindActive(ctx context.Context, userID, teamID uuid.UUID) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ? AND is_active = ?", userID, teamID, true).
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrMembershipNotFound
		}
		r.logger.Errorw("FindActive database error",
			"user_id", userID, "team_id", teamID, "error", err)
		return nil, err
	}

	return &membership, nil
}

// FindLatestInactive returns the most recently closed membership for a (user, team) pair.
func (r *repository) FindLatestInactive(
	ctx context.Context,
	userID, teamID uuid.UUID,
) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ? AND is_active = ?", userID, teamID, false).
		Order("left_at DESC").
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrMembershipNotFound
		}
		r.logger.Errorw("FindLatestInactive database error",
			"user_id", userID, "team_id", teamID, "error", err)
		return nil, err
	}

	return &membership, nil
}

// Create inserts a new membership row.
func (r *repository) Create(ctx context.Context, membership *model.Membership) error {
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		r.logger.Errorw("Create membership database error",
			"user_id", membership.UserID, "team_id", membership.TeamID, "error", err)
		return err
	}
	return nil
}

// Reactivate reopens a closed membership row with a fresh join date.
// The season stamped at closure described the finished interval, so it is cleared.
func (r *repository) Reactivate(
	ctx context.Context,
	id uuid.UUID,
	joinedAt time.Time,
) (*model.Membership, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"joined_at":  joinedAt,
			"left_at":    nil,
			"is_active":  true,
			"season":     nil,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Errorw("Reactivate database error", "membership_id", id, "error", result.Error)
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, model.ErrMembershipNotFound
	}

	var membership model.Membership
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&membership).Error; err != nil {
		return nil, err
	}

	return &membership, nil
}

// Close closes a membership row.
func (r *repository) Close(ctx context.Context, id uuid.UUID, leftAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"left_at":    leftAt,
			"is_active":  false,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Errorw("Close database error", "membership_id", id, "error", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrMembershipNotFound
	}

	return nil
}

// CloseAllForTeam closes every active membership on a team.
func (r *repository) CloseAllForTeam(
	ctx context.Context,
	teamID uuid.UUID,
	leftAt time.Time,
	season string,
) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("team_id = ? AND is_active = ?", teamID, true).
		Updates(map[string]interface{}{
			"left_at":    leftAt,
			"is_active":  false,
			"season":     season,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Errorw("CloseAllForTeam database error", "team_id", teamID, "error", result.Error)
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// ActiveAt returns all memberships of a user whose interval covers the given date.
// The team's present-day archive flag is deliberately not consulted here:
// point-in-time correctness must not depend on what later happened to the team.
func (r *repository) ActiveAt(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND joined_at <= ? AND (left_at IS NULL OR left_at >= ?)",
			userID, date, date).
		Order("joined_at ASC").
		Find(&memberships).Error

	if err != nil {
		r.logger.Errorw("ActiveAt database error",
			"user_id", userID, "date", date, "error", err)
		return nil, err
	}

	return memberships, nil
}

// ActiveTeamsOf returns the teams a user is on today, excluding archived teams.
func (r *repository) ActiveTeamsOf(ctx context.Context, userID uuid.UUID) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Joins("JOIN memberships ON memberships.team_id = teams.id").
		Where("memberships.user_id = ? AND memberships.is_active = ? AND teams.is_archived = ?",
			userID, true, false).
		Order("teams.name ASC").
		Find(&teams).Error

	if err != nil {
		r.logger.Errorw("ActiveTeamsOf database error", "user_id", userID, "error", err)
		return nil, err
	}

	return teams, nil
}

// TeamRoster returns the current members of a team with athlete identity.
func (r *repository) TeamRoster(ctx context.Context, teamID uuid.UUID) ([]model.RosterEntry, error) {
	var entries []model.RosterEntry
	err := r.db.WithContext(ctx).
		Table("memberships").
		Select("memberships.user_id, users.first_name, users.last_name, memberships.joined_at").
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("memberships.team_id = ? AND memberships.is_active = ?", teamID, true).
		Order("users.last_name ASC, users.first_name ASC").
		Scan(&entries).Error

	if err != nil {
		r.logger.Errorw("TeamRoster database error", "team_id", teamID, "error", err)
		return nil, err
	}

	if entries == nil {
		entries = []model.RosterEntry{}
	}

	return entries, nil
}

// History returns all membership intervals of a user, newest first.
func (r *repository) History(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&memberships).Error

	if err != nil {
		r.logger.Errorw("History database error", "user_id", userID, "error", err)
		return nil, err
	}

	return memberships, nil
}
