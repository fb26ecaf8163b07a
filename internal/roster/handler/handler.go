// Package handler provides HTTP handlers for roster endpoints.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	athleteModel "github.com/perftrack/perftrack/internal/athlete/model"
	rosterModel "github.com/perftrack/perftrack/internal/roster/model"
	"github.com/perftrack/perftrack/internal/roster/service"
	teamModel "github.com/perftrack/perftrack/internal/team/model"
)

// Handler handles HTTP requests for roster endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new roster handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// AddMembership handles POST /memberships request.
func (h *Handler) AddMembership(c *gin.Context) {
	var req rosterModel.ChangeMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.AddMembership(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrTeamNotFound):
			notFoundResponse(c, "team not found")
		case errors.Is(err, athleteModel.ErrAthleteNotFound):
			notFoundResponse(c, "athlete not found")
		case errors.Is(err, teamModel.ErrTeamArchived):
			errorResponse(c, "TEAM_ARCHIVED", "cannot add membership to an archived team", http.StatusConflict)
		default:
			h.logger.Errorw("error adding membership", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// RemoveMembership handles DELETE /memberships request.
func (h *Handler) RemoveMembership(c *gin.Context) {
	var req rosterModel.ChangeMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveMembership(c.Request.Context(), &req); err != nil {
		h.logger.Errorw("error removing membership", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

// ActiveMembershipsAt handles GET /athletes/:id/memberships/at request.
func (h *Handler) ActiveMembershipsAt(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid athlete id", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.RFC3339, c.Query("date"))
	if err != nil {
		// Date-only form is accepted too.
		date, err = time.Parse("2006-01-02", c.Query("date"))
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "date parameter is required (RFC3339 or YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
	}

	resp, err := h.service.ActiveMembershipsAt(c.Request.Context(), userID, date)
	if err != nil {
		h.logger.Errorw("error listing memberships at date", "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ActiveTeams handles GET /athletes/:id/teams request.
func (h *Handler) ActiveTeams(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid athlete id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ActiveTeamsOf(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("error listing active teams", "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MembershipHistory handles GET /athletes/:id/memberships request.
func (h *Handler) MembershipHistory(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid athlete id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.MembershipHistory(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("error listing membership history", "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TeamRoster handles GET /teams/:id/roster request.
func (h *Handler) TeamRoster(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid team id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.TeamRoster(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			notFoundResponse(c, "team not found")
			return
		}
		h.logger.Errorw("error listing team roster", "team_id", teamID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
