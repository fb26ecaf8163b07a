// Package handler provides HTTP handlers for athlete endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	athleteModel "github.com/perftrack/perftrack/internal/athlete/model"
	"github.com/perftrack/perftrack/internal/athlete/service"
	orgModel "github.com/perftrack/perftrack/internal/organization/model"
)

// Handler handles HTTP requests for athlete endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new athlete handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateAthlete handles POST /athletes request.
func (h *Handler) CreateAthlete(c *gin.Context) {
	var req athleteModel.CreateAthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateAthlete(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, athleteModel.ErrInvalidAthleteName):
			errorResponse(c, "INVALID_REQUEST", "first_name and last_name are required", http.StatusBadRequest)
		case errors.Is(err, orgModel.ErrOrganizationNotFound):
			notFoundResponse(c, "organization not found")
		default:
			h.logger.Errorw("error creating athlete", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetAthlete handles GET /athletes/:id request.
func (h *Handler) GetAthlete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid athlete id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetAthlete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, athleteModel.ErrAthleteNotFound) {
			notFoundResponse(c, "athlete not found")
			return
		}
		h.logger.Errorw("error getting athlete", "user_id", id, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListAthletes handles GET /athletes request.
func (h *Handler) ListAthletes(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListAthletes(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, athleteModel.ErrInvalidBirthYearRange) {
			errorResponse(c, "INVALID_REQUEST", "birth year range is inverted", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error listing athletes", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// parseFilter maps query parameters onto an athlete filter. A malformed
// parameter writes an error response and returns ok=false.
func parseFilter(c *gin.Context) (*athleteModel.Filter, bool) {
	filter := &athleteModel.Filter{
		NameSearch: c.Query("search"),
		NoTeam:     c.Query("no_team") == "true",
	}

	if raw := c.Query("organization_id"); raw != "" {
		orgID, err := uuid.Parse(raw)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "invalid organization_id", http.StatusBadRequest)
			return nil, false
		}
		filter.OrganizationID = orgID
	}

	for _, raw := range c.QueryArray("team_id") {
		teamID, err := uuid.Parse(raw)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "invalid team_id", http.StatusBadRequest)
			return nil, false
		}
		filter.TeamIDs = append(filter.TeamIDs, teamID)
	}

	if raw := c.Query("birth_year_min"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "invalid birth_year_min", http.StatusBadRequest)
			return nil, false
		}
		filter.BirthYearMin = &year
	}

	if raw := c.Query("birth_year_max"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "invalid birth_year_max", http.StatusBadRequest)
			return nil, false
		}
		filter.BirthYearMax = &year
	}

	return filter, true
}
