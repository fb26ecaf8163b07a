// Package service provides business logic layer for athlete module.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perftrack/perftrack/internal/athlete/model"
	"github.com/perftrack/perftrack/internal/athlete/repository"
	orgModel "github.com/perftrack/perftrack/internal/organization/model"
	orgRepo "github.com/perftrack/perftrack/internal/organization/repository"
)

// Service defines the interface for athlete business logic operations.
type Service interface {
	// CreateAthlete creates an athlete and optionally enrolls it in an
	// organization with the athlete role.
	CreateAthlete(ctx context.Context, req *model.CreateAthleteRequest) (*model.AthleteResponse, error)

	// GetAthlete returns an athlete by id.
	GetAthlete(ctx context.Context, id uuid.UUID) (*model.AthleteResponse, error)

	// ListAthletes returns athletes matching the filter. Listings without an
	// organization scope return an empty result, never a cross-tenant scan.
	ListAthletes(ctx context.Context, filter *model.Filter) (*model.AthletesResponse, error)
}

type service struct {
	repo   repository.Repository
	orgs   orgRepo.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new athlete service instance.
func New(
	repo repository.Repository,
	orgs orgRepo.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{repo: repo, orgs: orgs, db: db, logger: logger}
}

// CreateAthlete creates an athlete and optionally enrolls it in an organization.
func (s *service) CreateAthlete(
	ctx context.Context,
	req *model.CreateAthleteRequest,
) (*model.AthleteResponse, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, model.ErrInvalidAthleteName
	}

	if req.OrganizationID != uuid.Nil {
		if _, err := s.orgs.GetByID(ctx, req.OrganizationID); err != nil {
			return nil, err
		}
	}

	athlete := &model.Athlete{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          req.Email,
		Gender:         req.Gender,
		BirthDate:      req.BirthDate,
		BirthYear:      req.BirthYear,
		GraduationYear: req.GraduationYear,
		HeightInches:   req.HeightInches,
		WeightPounds:   req.WeightPounds,
		School:         req.School,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		if createErr := txRepo.Create(ctx, athlete); createErr != nil {
			return createErr
		}

		if req.OrganizationID != uuid.Nil {
			txOrgs := orgRepo.New(tx, s.logger)
			_, upsertErr := txOrgs.UpsertMember(ctx, req.OrganizationID, athlete.ID, orgModel.RoleAthlete)
			return upsertErr
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Infow("athlete created",
		"user_id", athlete.ID, "organization_id", req.OrganizationID)

	resp := model.NewAthleteResponse(athlete)
	return &resp, nil
}

// GetAthlete returns an athlete by id.
func (s *service) GetAthlete(ctx context.Context, id uuid.UUID) (*model.AthleteResponse, error) {
	athlete, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := model.NewAthleteResponse(athlete)
	return &resp, nil
}

// ListAthletes returns athletes matching the filter.
func (s *service) ListAthletes(ctx context.Context, filter *model.Filter) (*model.AthletesResponse, error) {
	if filter.BirthYearMin != nil && filter.BirthYearMax != nil &&
		*filter.BirthYearMin > *filter.BirthYearMax {
		return nil, model.ErrInvalidBirthYearRange
	}

	if filter.OrganizationID == uuid.Nil {
		// Missing tenant scope is "nothing to show", never "show everything".
		s.logger.Warnw("athlete listing without organization scope, returning empty result")
		return &model.AthletesResponse{Athletes: []model.AthleteResponse{}, Total: 0}, nil
	}

	athletes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &model.AthletesResponse{Athletes: make([]model.AthleteResponse, 0, len(athletes))}
	for i := range athletes {
		resp.Athletes = append(resp.Athletes, model.NewAthleteResponse(&athletes[i]))
	}
	resp.Total = len(resp.Athletes)
	return resp, nil
}
