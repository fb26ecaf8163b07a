// Package handler provides HTTP handlers for measurement endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	athleteModel "github.com/perftrack/perftrack/internal/athlete/model"
	measurementModel "github.com/perftrack/perftrack/internal/measurement/model"
	"github.com/perftrack/perftrack/internal/measurement/service"
	teamModel "github.com/perftrack/perftrack/internal/team/model"
)

// Handler handles HTTP requests for measurement endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new measurement handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateMeasurement handles POST /measurements request.
func (h *Handler) CreateMeasurement(c *gin.Context) {
	var req measurementModel.CreateMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateMeasurement(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, measurementModel.ErrInvalidMetric):
			errorResponse(c, "INVALID_REQUEST", "metric is required", http.StatusBadRequest)
		case errors.Is(err, measurementModel.ErrInvalidDate):
			errorResponse(c, "INVALID_REQUEST", "measurement date is required", http.StatusBadRequest)
		case errors.Is(err, athleteModel.ErrAthleteNotFound):
			notFoundResponse(c, "athlete not found")
		case errors.Is(err, teamModel.ErrTeamNotFound):
			notFoundResponse(c, "team not found")
		default:
			h.logger.Errorw("error creating measurement", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetMeasurement handles GET /measurements/:id request.
func (h *Handler) GetMeasurement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid measurement id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetMeasurement(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, measurementModel.ErrMeasurementNotFound) {
			notFoundResponse(c, "measurement not found")
			return
		}
		h.logger.Errorw("error getting measurement", "measurement_id", id, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMeasurements handles GET /measurements request.
func (h *Handler) ListMeasurements(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListMeasurements(c.Request.Context(), filter)
	if err != nil {
		h.logger.Errorw("error listing measurements", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyMeasurement handles POST /measurements/:id/verify request.
func (h *Handler) VerifyMeasurement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid measurement id", http.StatusBadRequest)
		return
	}

	var req measurementModel.VerifyMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.VerifyMeasurement(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, measurementModel.ErrMeasurementNotFound):
			notFoundResponse(c, "measurement not found")
		case errors.Is(err, measurementModel.ErrAlreadyVerified):
			errorResponse(c, "ALREADY_VERIFIED", "measurement already verified", http.StatusConflict)
		default:
			h.logger.Errorw("error verifying measurement", "measurement_id", id, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListAmbiguous handles GET /measurements/ambiguous request.
func (h *Handler) ListAmbiguous(c *gin.Context) {
	var orgID uuid.UUID
	if raw := c.Query("organization_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "invalid organization_id", http.StatusBadRequest)
			return
		}
		orgID = parsed
	}

	resp, err := h.service.AmbiguousMeasurements(c.Request.Context(), orgID)
	if err != nil {
		h.logger.Errorw("error listing ambiguous measurements", "organization_id", orgID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// parseFilter maps query parameters onto a measurement filter. A malformed
// parameter writes an error response and returns ok=false.
func parseFilter(c *gin.Context) (*measurementModel.Filter, bool) {
	filter := &measurementModel.Filter{
		Metric: c.Query("metric"),
		NoTeam: c.Query("no_team") == "true",
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

	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "invalid user_id", http.StatusBadRequest)
			return nil, false
		}
		filter.UserID = userID
	}

	if raw := c.Query("from"); raw != "" {
		from, ok := parseDate(c, "from", raw)
		if !ok {
			return nil, false
		}
		filter.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, ok := parseDate(c, "to", raw)
		if !ok {
			return nil, false
		}
		filter.To = &to
	}

	if raw := c.Query("verified"); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "invalid verified flag", http.StatusBadRequest)
			return nil, false
		}
		filter.Verified = &verified
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			errorResponse(c, "INVALID_REQUEST", "invalid limit", http.StatusBadRequest)
			return nil, false
		}
		filter.Limit = limit
	}

	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			errorResponse(c, "INVALID_REQUEST", "invalid offset", http.StatusBadRequest)
			return nil, false
		}
		filter.Offset = offset
	}

	return filter, true
}

func parseDate(c *gin.Context, name, raw string) (time.Time, bool) {
	date, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "invalid "+name+" date", http.StatusBadRequest)
			return time.Time{}, false
		}
	}
	return date, true
}
