// Package router provides athlete module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/perftrack/perftrack/internal/athlete/handler"
	"github.com/perftrack/perftrack/internal/athlete/repository"
	"github.com/perftrack/perftrack/internal/athlete/service"
	orgRepo "github.com/perftrack/perftrack/internal/organization/repository"
)

// RegisterRoutes registers athlete module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, orgRepo.New(db, logger), db, logger)
	h := handler.New(svc, logger)

	r.POST("/athletes", h.CreateAthlete)
	r.GET("/athletes", h.ListAthletes)
	r.GET("/athletes/:id", h.GetAthlete)
}
