// Package router provides measurement module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	athleteRepo "github.com/perftrack/perftrack/internal/athlete/repository"
	"github.com/perftrack/perftrack/internal/measurement/handler"
	"github.com/perftrack/perftrack/internal/measurement/repository"
	"github.com/perftrack/perftrack/internal/measurement/service"
	rosterRepo "github.com/perftrack/perftrack/internal/roster/repository"
	teamRepo "github.com/perftrack/perftrack/internal/team/repository"
)

// RegisterRoutes registers measurement module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(
		repo,
		rosterRepo.New(db, logger),
		teamRepo.New(db, logger),
		athleteRepo.New(db, logger),
		db,
		logger,
	)
	h := handler.New(svc, logger)

	r.POST("/measurements", h.CreateMeasurement)
	r.GET("/measurements", h.ListMeasurements)
	r.GET("/measurements/ambiguous", h.ListAmbiguous)
	r.GET("/measurements/:id", h.GetMeasurement)
	r.POST("/measurements/:id/verify", h.VerifyMeasurement)
}
