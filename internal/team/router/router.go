// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	orgRepo "github.com/perftrack/perftrack/internal/organization/repository"
	rosterRepo "github.com/perftrack/perftrack/internal/roster/repository"
	"github.com/perftrack/perftrack/internal/team/handler"
	"github.com/perftrack/perftrack/internal/team/repository"
	"github.com/perftrack/perftrack/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, rosterRepo.New(db, logger), orgRepo.New(db, logger), db, logger)
	h := handler.New(svc, logger)

	r.POST("/teams", h.CreateTeam)
	r.GET("/teams", h.ListTeams)
	r.GET("/teams/:id", h.GetTeam)
	r.POST("/teams/:id/archive", h.ArchiveTeam)
	r.POST("/teams/:id/unarchive", h.UnarchiveTeam)
}
