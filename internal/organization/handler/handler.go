// Package handler provides HTTP handlers for organization endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	orgModel "github.com/perftrack/perftrack/internal/organization/model"
	"github.com/perftrack/perftrack/internal/organization/service"
)

// Handler handles HTTP requests for organization endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new organization handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateOrganization handles POST /organizations request.
func (h *Handler) CreateOrganization(c *gin.Context) {
	var req orgModel.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateOrganization(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, orgModel.ErrOrganizationExists) {
			errorResponse(c, "ORGANIZATION_EXISTS", "organization name already exists", http.StatusConflict)
			return
		}
		if errors.Is(err, orgModel.ErrInvalidOrganizationName) {
			errorResponse(c, "INVALID_REQUEST", "name is required", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error creating organization", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetOrganization handles GET /organizations/:id request.
func (h *Handler) GetOrganization(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid organization id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetOrganization(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, orgModel.ErrOrganizationNotFound) {
			notFoundResponse(c, "organization not found")
			return
		}
		h.logger.Errorw("error getting organization", "organization_id", id, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpsertMember handles PUT /organizations/:id/members request.
func (h *Handler) UpsertMember(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid organization id", http.StatusBadRequest)
		return
	}

	var req orgModel.UpsertMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpsertMember(c.Request.Context(), orgID, &req)
	if err != nil {
		if errors.Is(err, orgModel.ErrOrganizationNotFound) {
			notFoundResponse(c, "organization not found")
			return
		}
		if errors.Is(err, orgModel.ErrInvalidRole) {
			errorResponse(c, "INVALID_REQUEST", "role must be athlete, coach or admin", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error upserting member", "organization_id", orgID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RemoveMember handles DELETE /organizations/:id/members/:userId request.
func (h *Handler) RemoveMember(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid organization id", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), orgID, userID); err != nil {
		if errors.Is(err, orgModel.ErrOrgMembershipNotFound) {
			notFoundResponse(c, "organization membership not found")
			return
		}
		h.logger.Errorw("error removing member",
			"organization_id", orgID, "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMembers handles GET /organizations/:id/members request.
func (h *Handler) ListMembers(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid organization id", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ListMembers(c.Request.Context(), orgID)
	if err != nil {
		if errors.Is(err, orgModel.ErrOrganizationNotFound) {
			notFoundResponse(c, "organization not found")
			return
		}
		h.logger.Errorw("error listing members", "organization_id", orgID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
