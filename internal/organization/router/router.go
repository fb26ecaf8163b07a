// Package router provides organization module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perftrack/perftrack/internal/organization/handler"
	"github.com/perftrack/perftrack/internal/organization/repository"
	"github.com/perftrack/perftrack/internal/organization/service"
)

// RegisterRoutes registers organization module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.POST("/organizations", h.CreateOrganization)
	r.GET("/organizations/:id", h.GetOrganization)
	r.PUT("/organizations/:id/members", h.UpsertMember)
	r.DELETE("/organizations/:id/members/:userId", h.RemoveMember)
	r.GET("/organizations/:id/members", h.ListMembers)
}
