package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Competitive level bounds. Level 1 is elite, level 5 is beginner.
const (
	LevelElite    = 1
	LevelBeginner = 5
)

// Team represents a team entity scoped to one organization.
// Matches the teams table schema.
type Team struct {
	ID             uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"                                                  json:"id"`
	OrganizationID uuid.UUID  `gorm:"column:organization_id;type:uuid;not null;uniqueIndex:idx_teams_org_name"        json:"organization_id"`
	Name           string     `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_teams_org_name"           json:"name"`
	Level          int        `gorm:"column:level;type:smallint;not null;default:3"                                   json:"level"`
	Season         *string    `gorm:"column:season;type:varchar(64)"                                                  json:"season,omitempty"`
	IsArchived     bool       `gorm:"column:is_archived;type:boolean;not null;default:false;index:idx_teams_archived" json:"is_archived"`
	ArchivedAt     *time.Time `gorm:"column:archived_at;type:timestamptz"                                            json:"archived_at,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now()"                       json:"-"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                       json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeCreate assigns a UUID before inserting.
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}
