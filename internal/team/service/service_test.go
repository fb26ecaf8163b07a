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

	orgModel "github.com/perftrack/perftrack/internal/organization/model"
	orgRepo "github.com/perftrack/perftrack/internal/organization/repository"
	rosterModel "github.com/perftrack/perftrack/internal/roster/model"
	rosterRepo "github.com/perftrack/perftrack/internal/roster/repository"
	"github.com/perftrack/perftrack/internal/team/model"
	"github.com/perftrack/perftrack/internal/team/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&orgModel.Organization{}, &model.Team{}, &rosterModel.Membership{})
	require.NoError(t, err)

	return db
}

func setupService(t *testing.T) (Service, *gorm.DB) {
	db := setupTestDB(t)
	logger := zap.NewNop().Sugar()
	svc := New(
		repository.New(db, logger),
		rosterRepo.New(db, logger),
		orgRepo.New(db, logger),
		db,
		logger,
	)
	return svc, db
}

func createOrg(t *testing.T, db *gorm.DB) uuid.UUID {
	org := &orgModel.Organization{Name: "Riverside Athletics " + uuid.NewString()}
	require.NoError(t, db.Create(org).Error)
	return org.ID
}

func TestService_CreateTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, db := setupService(t)
		orgID := createOrg(t, db)

		resp, err := svc.CreateTeam(ctx, &model.CreateTeamRequest{
			OrganizationID: orgID, Name: "U15 Girls", Level: 2,
		})

		require.NoError(t, err)
		assert.Equal(t, "U15 Girls", resp.Name)
		assert.Equal(t, 2, resp.Level)
	})

	t.Run("defaults to intermediate level", func(t *testing.T) {
		svc, db := setupService(t)
		orgID := createOrg(t, db)

		resp, err := svc.CreateTeam(ctx, &model.CreateTeamRequest{
			OrganizationID: orgID, Name: "U15 Girls",
		})

		require.NoError(t, err)
		assert.Equal(t, 3, resp.Level)
	})

	t.Run("level out of range", func(t *testing.T) {
		svc, db := setupService(t)
		orgID := createOrg(t, db)

		resp, err := svc.CreateTeam(ctx, &model.CreateTeamRequest{
			OrganizationID: orgID, Name: "U15 Girls", Level: 6,
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, model.ErrInvalidLevel)
	})

	t.Run("blank name", func(t *testing.T) {
		svc, db := setupService(t)
		orgID := createOrg(t, db)

		resp, err := svc.CreateTeam(ctx, &model.CreateTeamRequest{
			OrganizationID: orgID, Name: "   ",
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, model.ErrInvalidTeamName)
	})

	t.Run("unknown organization", func(t *testing.T) {
		svc, _ := setupService(t)

		resp, err := svc.CreateTeam(ctx, &model.CreateTeamRequest{
			OrganizationID: uuid.New(), Name: "U15 Girls",
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, orgModel.ErrOrganizationNotFound)
	})
}

func TestService_Archive(t *testing.T) {
	ctx := context.Background()

	t.Run("archives team and closes all active memberships", func(t *testing.T) {
		svc, db := setupService(t)
		orgID := createOrg(t, db)

		team, err := svc.CreateTeam(ctx, &model.CreateTeamRequest{OrganizationID: orgID, Name: "U15 Girls"})
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			require.NoError(t, db.Create(&rosterModel.Membership{
				UserID: uuid.New(), TeamID: team.ID,
				JoinedAt: time.Now().AddDate(0, -6, 0), IsActive: true,
			}).Error)
		}

		archiveDate := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
		resp, err := svc.Archive(ctx, team.ID, &model.ArchiveTeamRequest{
			ArchiveDate: archiveDate, Season: "2024-2025",
		})

		require.NoError(t, err)
		assert.True(t, resp.IsArchived)
		require.NotNil(t, resp.Season)
		assert.Equal(t, "2024-2025", *resp.Season)

		var open int64
		db.Model(&rosterModel.Membership{}).
			Where("team_id = ? AND is_active = ?", team.ID, true).Count(&open)
		assert.Zero(t, open)

		var rows []rosterModel.Membership
		require.NoError(t, db.Where("team_id = ?", team.ID).Find(&rows).Error)
		for _, row := range rows {
			require.NotNil(t, row.LeftAt)
			assert.True(t, row.LeftAt.Equal(archiveDate))
			require.NotNil(t, row.Season)
			assert.Equal(t, "2024-2025", *row.Season)
		}
	})

	t.Run("archiving twice is rejected", func(t *testing.T) {
		svc, db := setupService(t)
		orgID := createOrg(t, db)

		team, err := svc.CreateTeam(ctx, &model.CreateTeamRequest{OrganizationID: orgID, Name: "U15 Girls"})
		require.NoError(t, err)

		req := &model.ArchiveTeamRequest{ArchiveDate: time.Now(), Season: "2024-2025"}
		_, err = svc.Archive(ctx, team.ID, req)
		require.NoError(t, err)

		resp, err := svc.Archive(ctx, team.ID, req)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, model.ErrTeamArchived)
	})

	t.Run("zero archive date", func(t *testing.T) {
		svc, db := setupService(t)
		orgID := createOrg(t, db)

		team, err := svc.CreateTeam(ctx, &model.CreateTeamRequest{OrganizationID: orgID, Name: "U15 Girls"})
		require.NoError(t, err)

		resp, err := svc.Archive(ctx, team.ID, &model.ArchiveTeamRequest{Season: "2024-2025"})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, model.ErrInvalidArchiveDate)
	})
}

func TestService_Unarchive(t *testing.T) {
	ctx := context.Background()

	t.Run("restores team but never resurrects memberships", func(t *testing.T) {
		svc, db := setupService(t)
		orgID := createOrg(t, db)

		team, err := svc.CreateTeam(ctx, &model.CreateTeamRequest{OrganizationID: orgID, Name: "U15 Girls"})
		require.NoError(t, err)

		userID := uuid.New()
		require.NoError(t, db.Create(&rosterModel.Membership{
			UserID: userID, TeamID: team.ID,
			JoinedAt: time.Now().AddDate(0, -6, 0), IsActive: true,
		}).Error)

		_, err = svc.Archive(ctx, team.ID, &model.ArchiveTeamRequest{
			ArchiveDate: time.Now(), Season: "2024-2025",
		})
		require.NoError(t, err)

		resp, err := svc.Unarchive(ctx, team.ID)

		require.NoError(t, err)
		assert.False(t, resp.IsArchived)
		assert.Nil(t, resp.ArchivedAt)

		var row rosterModel.Membership
		require.NoError(t, db.Where("user_id = ? AND team_id = ?", userID, team.ID).First(&row).Error)
		assert.False(t, row.IsActive)
		assert.NotNil(t, row.LeftAt)
	})

	t.Run("unknown team", func(t *testing.T) {
		svc, _ := setupService(t)

		resp, err := svc.Unarchive(ctx, uuid.New())

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, model.ErrTeamNotFound)
	})
}
