package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership is one interval during which an athlete belonged to a team.
// A (user, team) pair may accumulate many historical rows, but at most one
// of them is active at a time; that is enforced by a partial unique index
// on active rows plus a check-and-write inside a transaction.
type Membership struct {
	ID        uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"                                            json:"id"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_memberships_user"              json:"user_id"`
	TeamID    uuid.UUID  `gorm:"column:team_id;type:uuid;not null;index:idx_memberships_team"              json:"team_id"`
	JoinedAt  time.Time  `gorm:"column:joined_at;type:timestamptz;not null"                                json:"joined_at"`
	LeftAt    *time.Time `gorm:"column:left_at;type:timestamptz"                                           json:"left_at,omitempty"`
	IsActive  bool       `gorm:"column:is_active;type:boolean;not null;default:true"                       json:"is_active"`
	Season    *string    `gorm:"column:season;type:varchar(64)"                                            json:"season,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now()"                 json:"-"`
	UpdatedAt time.Time  `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                 json:"-"`
}

// TableName specifies the table name for GORM.
func (Membership) TableName() string {
	return "memberships"
}

// BeforeCreate assigns a UUID before inserting.
func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (m *Membership) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}

// CoversDate reports whether the membership interval contains the given date.
func (m *Membership) CoversDate(date time.Time) bool {
	if m.JoinedAt.After(date) {
		return false
	}
	return m.LeftAt == nil || !m.LeftAt.Before(date)
}
