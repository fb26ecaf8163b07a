// Package service provides business logic layer for measurement module,
// including team attribution at creation time.
package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	athleteRepo "github.com/perftrack/perftrack/internal/athlete/repository"
	"github.com/perftrack/perftrack/internal/measurement/model"
	"github.com/perftrack/perftrack/internal/measurement/repository"
	rosterModel "github.com/perftrack/perftrack/internal/roster/model"
	rosterRepo "github.com/perftrack/perftrack/internal/roster/repository"
	teamModel "github.com/perftrack/perftrack/internal/team/model"
	teamRepo "github.com/perftrack/perftrack/internal/team/repository"
)

// Service defines the interface for measurement business logic operations.
type Service interface {
	// CreateMeasurement records a measurement, resolving its team context
	// once, at creation time.
	CreateMeasurement(ctx context.Context, req *model.CreateMeasurementRequest) (*model.MeasurementResponse, error)

	// GetMeasurement returns a measurement by id.
	GetMeasurement(ctx context.Context, id uuid.UUID) (*model.MeasurementResponse, error)

	// ListMeasurements returns measurements matching the filter. A filter
	// with no tenant scope and no targeted team/athlete fails closed.
	ListMeasurements(ctx context.Context, filter *model.Filter) (*model.MeasurementsResponse, error)

	// VerifyMeasurement marks a measurement verified.
	VerifyMeasurement(ctx context.Context, id uuid.UUID, req *model.VerifyMeasurementRequest) (*model.MeasurementResponse, error)

	// AmbiguousMeasurements surfaces org-scoped measurements whose team
	// context could not be inferred because of overlapping memberships.
	AmbiguousMeasurements(ctx context.Context, orgID uuid.UUID) (*model.MeasurementsResponse, error)
}

type service struct {
	repo     repository.Repository
	roster   rosterRepo.Repository
	teams    teamRepo.Repository
	athletes athleteRepo.Repository
	db       *gorm.DB
	logger   *zap.SugaredLogger
}

// New creates a new measurement service instance.
func New(
	repo repository.Repository,
	roster rosterRepo.Repository,
	teams teamRepo.Repository,
	athletes athleteRepo.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:     repo,
		roster:   roster,
		teams:    teams,
		athletes: athletes,
		db:       db,
		logger:   logger,
	}
}

// CreateMeasurement records a measurement, resolving its team context once.
//
// A roster change racing a concurrent submission can attribute against
// either roster state; each operation is one transaction and no
// cross-request lock is taken. That is an accepted trade-off, not a defect.
func (s *service) CreateMeasurement(
	ctx context.Context,
	req *model.CreateMeasurementRequest,
) (*model.MeasurementResponse, error) {
	if req.Metric == "" {
		return nil, model.ErrInvalidMetric
	}
	if req.Date.IsZero() {
		return nil, model.ErrInvalidDate
	}

	athlete, err := s.athletes.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	measurement := &model.Measurement{
		UserID:      req.UserID,
		Metric:      req.Metric,
		Value:       req.Value,
		Units:       req.Units,
		Date:        req.Date,
		Age:         athlete.AgeAt(req.Date),
		SubmittedBy: req.SubmittedBy,
	}
	if measurement.Units == "" {
		measurement.Units = model.DefaultUnits[req.Metric]
	}

	if req.TeamID != nil {
		// Explicit attribution is honored verbatim and never overwritten
		// by inference.
		if _, err := s.teams.GetByID(ctx, *req.TeamID); err != nil {
			return nil, err
		}
		measurement.TeamID = req.TeamID
		measurement.Season = req.Season
		measurement.TeamContextAuto = false
	} else {
		active, err := s.roster.ActiveAt(ctx, req.UserID, req.Date)
		if err != nil {
			return nil, err
		}

		switch len(active) {
		case 0:
			// No roster context at the date; the row is recorded without one.
		case 1:
			teamID := active[0].TeamID
			measurement.TeamID = &teamID
			measurement.Season = active[0].Season
			measurement.TeamContextAuto = true
		default:
			// Ambiguous: two or more concurrent memberships. The resolver
			// does not guess; the row stays unattributed for manual review.
			s.logger.Infow("ambiguous team context, measurement left unattributed",
				"user_id", req.UserID, "date", req.Date, "memberships", len(active))
		}
	}

	if err := s.repo.Create(ctx, measurement); err != nil {
		return nil, err
	}

	s.logger.Infow("measurement recorded",
		"measurement_id", measurement.ID, "user_id", measurement.UserID,
		"metric", measurement.Metric, "team_context_auto", measurement.TeamContextAuto)

	return s.toResponse(ctx, measurement)
}

// GetMeasurement returns a measurement by id.
func (s *service) GetMeasurement(ctx context.Context, id uuid.UUID) (*model.MeasurementResponse, error) {
	measurement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, measurement)
}

// ListMeasurements returns measurements matching the filter.
func (s *service) ListMeasurements(
	ctx context.Context,
	filter *model.Filter,
) (*model.MeasurementsResponse, error) {
	if filter.OrganizationID == uuid.Nil && !filter.Targeted() {
		// Missing tenant scope is "nothing to show", never "show everything".
		s.logger.Warnw("measurement listing without tenant scope, returning empty result")
		return &model.MeasurementsResponse{Measurements: []model.MeasurementResponse{}, Total: 0}, nil
	}

	measurements, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.toListResponse(ctx, measurements)
}

// VerifyMeasurement marks a measurement verified.
func (s *service) VerifyMeasurement(
	ctx context.Context,
	id uuid.UUID,
	req *model.VerifyMeasurementRequest,
) (*model.MeasurementResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsVerified {
		return nil, model.ErrAlreadyVerified
	}

	if err := s.repo.Verify(ctx, id, req.VerifiedBy); err != nil {
		return nil, err
	}

	verified, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, verified)
}

// AmbiguousMeasurements surfaces measurements flagged for manual review.
func (s *service) AmbiguousMeasurements(
	ctx context.Context,
	orgID uuid.UUID,
) (*model.MeasurementsResponse, error) {
	if orgID == uuid.Nil {
		s.logger.Warnw("ambiguous-measurement listing without organization scope, returning empty result")
		return &model.MeasurementsResponse{Measurements: []model.MeasurementResponse{}, Total: 0}, nil
	}

	measurements, err := s.repo.ListAmbiguous(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return s.toListResponse(ctx, measurements)
}

func (s *service) toResponse(ctx context.Context, m *model.Measurement) (*model.MeasurementResponse, error) {
	resp, err := s.toListResponse(ctx, []model.Measurement{*m})
	if err != nil {
		return nil, err
	}
	return &resp.Measurements[0], nil
}

// toListResponse assembles measurement views with team context aggregated
// into a list per measurement. Directly attributed rows carry their stored
// team; rows without direct context carry the teams whose membership
// interval covered the measurement date.
func (s *service) toListResponse(
	ctx context.Context,
	measurements []model.Measurement,
) (*model.MeasurementsResponse, error) {
	directTeamIDs := make([]uuid.UUID, 0, len(measurements))
	legacyUserIDs := make([]uuid.UUID, 0)
	seenTeams := make(map[uuid.UUID]bool)
	seenUsers := make(map[uuid.UUID]bool)

	for i := range measurements {
		m := &measurements[i]
		if m.TeamID != nil {
			if !seenTeams[*m.TeamID] {
				seenTeams[*m.TeamID] = true
				directTeamIDs = append(directTeamIDs, *m.TeamID)
			}
		} else if !seenUsers[m.UserID] {
			seenUsers[m.UserID] = true
			legacyUserIDs = append(legacyUserIDs, m.UserID)
		}
	}

	memberships, err := s.repo.MembershipsOfUsers(ctx, legacyUserIDs)
	if err != nil {
		return nil, err
	}

	membershipsByUser := make(map[uuid.UUID][]rosterModel.Membership)
	for _, m := range memberships {
		membershipsByUser[m.UserID] = append(membershipsByUser[m.UserID], m)
		if !seenTeams[m.TeamID] {
			seenTeams[m.TeamID] = true
			directTeamIDs = append(directTeamIDs, m.TeamID)
		}
	}

	teams, err := s.repo.TeamsByIDs(ctx, directTeamIDs)
	if err != nil {
		return nil, err
	}

	teamsByID := make(map[uuid.UUID]teamModel.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}

	resp := &model.MeasurementsResponse{
		Measurements: make([]model.MeasurementResponse, 0, len(measurements)),
	}

	for i := range measurements {
		m := &measurements[i]
		view := model.MeasurementResponse{
			ID:              m.ID,
			UserID:          m.UserID,
			TeamID:          m.TeamID,
			Season:          m.Season,
			TeamContextAuto: m.TeamContextAuto,
			Metric:          m.Metric,
			Value:           m.Value,
			Units:           m.Units,
			Date:            m.Date,
			Age:             m.Age,
			IsVerified:      m.IsVerified,
			SubmittedBy:     m.SubmittedBy,
			VerifiedBy:      m.VerifiedBy,
			Teams:           []model.TeamRef{},
		}

		if m.TeamID != nil {
			if t, ok := teamsByID[*m.TeamID]; ok {
				view.Teams = append(view.Teams, model.TeamRef{ID: t.ID, Name: t.Name, Season: m.Season})
			}
		} else {
			for _, membership := range membershipsByUser[m.UserID] {
				if !membership.CoversDate(m.Date) {
					continue
				}
				if t, ok := teamsByID[membership.TeamID]; ok {
					view.Teams = append(view.Teams, model.TeamRef{
						ID:     t.ID,
						Name:   t.Name,
						Season: membership.Season,
					})
				}
			}
		}

		resp.Measurements = append(resp.Measurements, view)
	}

	resp.Total = len(resp.Measurements)
	return resp, nil
}
