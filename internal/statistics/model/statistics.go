// Package model provides domain models and DTOs for statistics module.
package model

import "github.com/google/uuid"

// MetricCount is the number of measurements recorded for one metric.
type MetricCount struct {
	Metric string `gorm:"column:metric" json:"metric"`
	Count  int    `gorm:"column:count"  json:"count"`
}

// DashboardSummary aggregates an organization's data for the dashboard.
type DashboardSummary struct {
	Athletes             int           `json:"athletes"`
	Teams                int           `json:"teams"`
	ArchivedTeams        int           `json:"archived_teams"`
	Measurements         int           `json:"measurements"`
	VerifiedMeasurements int           `json:"verified_measurements"`
	AutoAttributed       int           `json:"auto_attributed"`
	Unattributed         int           `json:"unattributed"`
	Metrics              []MetricCount `json:"metrics"`
}

// DashboardResponse wraps the dashboard summary.
type DashboardResponse struct {
	OrganizationID uuid.UUID        `json:"organization_id"`
	Summary        DashboardSummary `json:"summary"`
}

// TeamStatistics aggregates measurement activity for one team.
type TeamStatistics struct {
	TeamID           uuid.UUID `gorm:"column:team_id"           json:"team_id"`
	Name             string    `gorm:"column:name"              json:"name"`
	IsArchived       bool      `gorm:"column:is_archived"       json:"is_archived"`
	AthleteCount     int       `gorm:"column:athlete_count"     json:"athlete_count"`
	MeasurementCount int       `gorm:"column:measurement_count" json:"measurement_count"`
}

// TeamStatisticsResponse wraps per-team statistics for an organization.
type TeamStatisticsResponse struct {
	OrganizationID uuid.UUID        `json:"organization_id"`
	Teams          []TeamStatistics `json:"teams"`
	Total          int              `json:"total"`
}
