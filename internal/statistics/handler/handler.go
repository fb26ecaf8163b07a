// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/perftrack/perftrack/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetDashboard handles GET /statistics/dashboard request.
func (h *Handler) GetDashboard(c *gin.Context) {
	orgID, ok := parseOrgID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetDashboardSummary(c.Request.Context(), orgID)
	if err != nil {
		h.logger.Errorw("error getting dashboard summary", "organization_id", orgID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTeamStatistics handles GET /statistics/teams request.
func (h *Handler) GetTeamStatistics(c *gin.Context) {
	orgID, ok := parseOrgID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetTeamStatistics(c.Request.Context(), orgID)
	if err != nil {
		h.logger.Errorw("error getting team statistics", "organization_id", orgID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// parseOrgID reads the organization_id query parameter. An absent parameter
// yields the nil UUID, which the service layer answers with empty totals.
func parseOrgID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("organization_id")
	if raw == "" {
		return uuid.Nil, true
	}
	orgID, err := uuid.Parse(raw)
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid organization_id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return orgID, true
}
