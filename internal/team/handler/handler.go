// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	orgModel "github.com/perftrack/perftrack/internal/organization/model"
	teamModel "github.com/perftrack/perftrack/internal/team/model"
	"github.com/perftrack/perftrack/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateTeam handles POST /teams request.
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrTeamNameTaken):
			errorResponse(c, "TEAM_NAME_TAKEN", "team name already taken in organization", http.StatusConflict)
		case errors.Is(err, teamModel.ErrInvalidTeamName):
			errorResponse(c, "INVALID_REQUEST", "name is required", http.StatusBadRequest)
		case errors.Is(err, teamModel.ErrInvalidLevel):
			errorResponse(c, "INVALID_REQUEST", "level must be between 1 and 5", http.StatusBadRequest)
		case errors.Is(err, orgModel.ErrOrganizationNotFound):
			notFoundResponse(c, "organization not found")
		default:
			h.logger.Errorw("error creating team", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetTeam handles GET /teams/:id request.
func (h *Handler) GetTeam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid team id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetTeam(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			notFoundResponse(c, "team not found")
			return
		}
		h.logger.Errorw("error getting team", "team_id", id, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListTeams handles GET /teams request.
func (h *Handler) ListTeams(c *gin.Context) {
	orgID, err := uuid.Parse(c.Query("organization_id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "organization_id parameter is required", http.StatusBadRequest)
		return
	}

	includeArchived := c.Query("include_archived") == "true"

	resp, err := h.service.ListTeams(c.Request.Context(), orgID, includeArchived)
	if err != nil {
		if errors.Is(err, orgModel.ErrOrganizationNotFound) {
			notFoundResponse(c, "organization not found")
			return
		}
		h.logger.Errorw("error listing teams", "organization_id", orgID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ArchiveTeam handles POST /teams/:id/archive request.
func (h *Handler) ArchiveTeam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid team id", http.StatusBadRequest)
		return
	}

	var req teamModel.ArchiveTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Archive(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrTeamNotFound):
			notFoundResponse(c, "team not found")
		case errors.Is(err, teamModel.ErrTeamArchived):
			errorResponse(c, "TEAM_ARCHIVED", "team is already archived", http.StatusConflict)
		case errors.Is(err, teamModel.ErrInvalidArchiveDate):
			errorResponse(c, "INVALID_REQUEST", "archive_date is required", http.StatusBadRequest)
		default:
			h.logger.Errorw("error archiving team", "team_id", id, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UnarchiveTeam handles POST /teams/:id/unarchive request.
func (h *Handler) UnarchiveTeam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid team id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Unarchive(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			notFoundResponse(c, "team not found")
			return
		}
		h.logger.Errorw("error unarchiving team", "team_id", id, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
