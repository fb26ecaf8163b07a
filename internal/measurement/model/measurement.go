package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Known performance metrics.
const (
	MetricFly10Time    = "FLY10_TIME"
	MetricVerticalJump = "VERTICAL_JUMP"
	MetricAgility505   = "AGILITY_505"
	MetricRSI          = "RSI"
	MetricTTest        = "T_TEST"
)

// DefaultUnits maps known metrics to their measurement units.
var DefaultUnits = map[string]string{
	MetricFly10Time:    "s",
	MetricVerticalJump: "in",
	MetricAgility505:   "s",
	MetricRSI:          "",
	MetricTTest:        "s",
}

// Measurement is one recorded performance value for an athlete.
// Team attribution is computed once at creation time and never revisited;
// later roster corrections do not rewrite stored rows.
type Measurement struct {
	ID              uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"                                     json:"id"`
	UserID          uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_measurements_user"      json:"user_id"`
	TeamID          *uuid.UUID `gorm:"column:team_id;type:uuid;index:idx_measurements_team"               json:"team_id,omitempty"`
	Season          *string    `gorm:"column:season;type:varchar(64)"                                     json:"season,omitempty"`
	TeamContextAuto bool       `gorm:"column:team_context_auto;type:boolean;not null;default:false"       json:"team_context_auto"`
	Metric          string     `gorm:"column:metric;type:varchar(64);not null;index:idx_measurements_metric" json:"metric"`
	Value           float64    `gorm:"column:value;type:double precision;not null"                        json:"value"`
	Units           string     `gorm:"column:units;type:varchar(16)"                                      json:"units"`
	Date            time.Time  `gorm:"column:date;type:timestamptz;not null;index:idx_measurements_date"  json:"date"`
	Age             *int       `gorm:"column:age;type:int"                                                json:"age,omitempty"`
	IsVerified      bool       `gorm:"column:is_verified;type:boolean;not null;default:false"             json:"is_verified"`
	SubmittedBy     uuid.UUID  `gorm:"column:submitted_by;type:uuid;not null"                             json:"submitted_by"`
	VerifiedBy      *uuid.UUID `gorm:"column:verified_by;type:uuid"                                       json:"verified_by,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now()"          json:"-"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;type:timestamptz;not null;default:now()"          json:"-"`
}

// TableName specifies the table name for GORM.
func (Measurement) TableName() string {
	return "measurements"
}

// BeforeCreate assigns a UUID before inserting.
func (m *Measurement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (m *Measurement) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}
