package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	athleteModel "github.com/perftrack/perftrack/internal/athlete/model"
	measurementModel "github.com/perftrack/perftrack/internal/measurement/model"
	orgModel "github.com/perftrack/perftrack/internal/organization/model"
	rosterModel "github.com/perftrack/perftrack/internal/roster/model"
	"github.com/perftrack/perftrack/internal/statistics/repository"
	teamModel "github.com/perftrack/perftrack/internal/team/model"
)

func setupService(t *testing.T) (Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&orgModel.Organization{},
		&orgModel.OrgMembership{},
		&athleteModel.Athlete{},
		&teamModel.Team{},
		&rosterModel.Membership{},
		&measurementModel.Measurement{},
	)
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	return New(repository.New(db, logger), logger), db
}

func seedOrganization(t *testing.T, db *gorm.DB) uuid.UUID {
	org := &orgModel.Organization{Name: "Riverside Athletics"}
	require.NoError(t, db.Create(org).Error)
	return org.ID
}

func seedAthlete(t *testing.T, db *gorm.DB, orgID uuid.UUID) uuid.UUID {
	athlete := &athleteModel.Athlete{FirstName: "Jordan", LastName: "Lee"}
	require.NoError(t, db.Create(athlete).Error)
	require.NoError(t, db.Create(&orgModel.OrgMembership{
		OrganizationID: orgID, UserID: athlete.ID, Role: orgModel.RoleAthlete,
	}).Error)
	return athlete.ID
}

func TestService_GetDashboardSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("no organization scope returns empty summary", func(t *testing.T) {
		svc, db := setupService(t)
		orgID := seedOrganization(t, db)
		seedAthlete(t, db, orgID)

		resp, err := svc.GetDashboardSummary(ctx, uuid.Nil)

		require.NoError(t, err)
		assert.Zero(t, resp.Summary.Athletes)
		assert.Zero(t, resp.Summary.Measurements)
		assert.Empty(t, resp.Summary.Metrics)
	})

	t.Run("aggregates counts for one tenant only", func(t *testing.T) {
		svc, db := setupService(t)
		orgID := seedOrganization(t, db)

		userID := seedAthlete(t, db, orgID)
		seedAthlete(t, db, orgID)

		team := &teamModel.Team{OrganizationID: orgID, Name: "U15 Girls", Level: 3}
		require.NoError(t, db.Create(team).Error)
		now := time.Now()
		archived := &teamModel.Team{
			OrganizationID: orgID, Name: "Old Squad", Level: 3,
			IsArchived: true, ArchivedAt: &now,
		}
		require.NoError(t, db.Create(archived).Error)

		verifier := uuid.New()
		require.NoError(t, db.Create(&measurementModel.Measurement{
			UserID: userID, TeamID: &team.ID, TeamContextAuto: true,
			Metric: measurementModel.MetricFly10Time, Value: 1.45, Units: "s",
			Date: now, IsVerified: true, SubmittedBy: uuid.New(), VerifiedBy: &verifier,
		}).Error)
		require.NoError(t, db.Create(&measurementModel.Measurement{
			UserID: userID,
			Metric: measurementModel.MetricVerticalJump, Value: 24.5, Units: "in",
			Date: now, SubmittedBy: uuid.New(),
		}).Error)

		// Another tenant's data must not bleed in.
		otherOrg := &orgModel.Organization{Name: "Lakeside Club"}
		require.NoError(t, db.Create(otherOrg).Error)
		outsider := seedAthlete(t, db, otherOrg.ID)
		require.NoError(t, db.Create(&measurementModel.Measurement{
			UserID: outsider,
			Metric: measurementModel.MetricFly10Time, Value: 1.6, Units: "s",
			Date: now, SubmittedBy: uuid.New(),
		}).Error)

		resp, err := svc.GetDashboardSummary(ctx, orgID)

		require.NoError(t, err)
		assert.Equal(t, orgID, resp.OrganizationID)
		assert.Equal(t, 2, resp.Summary.Athletes)
		assert.Equal(t, 2, resp.Summary.Teams)
		assert.Equal(t, 1, resp.Summary.ArchivedTeams)
		assert.Equal(t, 2, resp.Summary.Measurements)
		assert.Equal(t, 1, resp.Summary.VerifiedMeasurements)
		assert.Equal(t, 1, resp.Summary.AutoAttributed)
		assert.Equal(t, 1, resp.Summary.Unattributed)
		assert.Len(t, resp.Summary.Metrics, 2)
	})
}

func TestService_GetTeamStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("no organization scope returns empty result", func(t *testing.T) {
		svc, _ := setupService(t)

		resp, err := svc.GetTeamStatistics(ctx, uuid.Nil)

		require.NoError(t, err)
		assert.Zero(t, resp.Total)
		assert.Empty(t, resp.Teams)
	})

	t.Run("per-team aggregates", func(t *testing.T) {
		svc, db := setupService(t)
		orgID := seedOrganization(t, db)
		userID := seedAthlete(t, db, orgID)

		team := &teamModel.Team{OrganizationID: orgID, Name: "U15 Girls", Level: 3}
		require.NoError(t, db.Create(team).Error)
		empty := &teamModel.Team{OrganizationID: orgID, Name: "U17 Boys", Level: 3}
		require.NoError(t, db.Create(empty).Error)

		require.NoError(t, db.Create(&rosterModel.Membership{
			UserID: userID, TeamID: team.ID, JoinedAt: time.Now(), IsActive: true,
		}).Error)
		require.NoError(t, db.Create(&measurementModel.Measurement{
			UserID: userID, TeamID: &team.ID, TeamContextAuto: true,
			Metric: measurementModel.MetricFly10Time, Value: 1.45, Units: "s",
			Date: time.Now(), SubmittedBy: uuid.New(),
		}).Error)

		resp, err := svc.GetTeamStatistics(ctx, orgID)

		require.NoError(t, err)
		require.Equal(t, 2, resp.Total)
		assert.Equal(t, "U15 Girls", resp.Teams[0].Name)
		assert.Equal(t, 1, resp.Teams[0].AthleteCount)
		assert.Equal(t, 1, resp.Teams[0].MeasurementCount)
		assert.Equal(t, "U17 Boys", resp.Teams[1].Name)
		assert.Zero(t, resp.Teams[1].AthleteCount)
		assert.Zero(t, resp.Teams[1].MeasurementCount)
	})
}
