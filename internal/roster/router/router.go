// Package router provides roster module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	athleteRepo "github.com/perftrack/perftrack/internal/athlete/repository"
	"github.com/perftrack/perftrack/internal/roster/handler"
	"github.com/perftrack/perftrack/internal/roster/repository"
	"github.com/perftrack/perftrack/internal/roster/service"
	teamRepo "github.com/perftrack/perftrack/internal/team/repository"
)

// RegisterRoutes registers roster module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, teamRepo.New(db, logger), athleteRepo.New(db, logger), db, logger)
	h := handler.New(svc, logger)

	r.POST("/memberships", h.AddMembership)
	r.DELETE("/memberships", h.RemoveMembership)
	r.GET("/athletes/:id/memberships", h.MembershipHistory)
	r.GET("/athletes/:id/memberships/at", h.ActiveMembershipsAt)
	r.GET("/athletes/:id/teams", h.ActiveTeams)
	r.GET("/teams/:id/roster", h.TeamRoster)
}
