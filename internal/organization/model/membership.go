package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the role a user holds inside an organization.
type Role string

// Organization roles.
const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known organization roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAthlete, RoleCoach, RoleAdmin:
		return true
	}
	return false
}

// OrgMembership links a user to an organization with a single role.
// A (user, organization) pair holds at most one row; assigning a new
// role replaces the existing one.
type OrgMembership struct {
	ID             uuid.UUID `gorm:"primaryKey;column:id;type:uuid"                                              json:"id"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_org_memberships_user_org"  json:"user_id"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;type:uuid;not null;uniqueIndex:idx_org_memberships_user_org;index:idx_org_memberships_org" json:"organization_id"`
	Role           Role      `gorm:"column:role;type:varchar(32);not null"                                       json:"role"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"                   json:"-"`
	UpdatedAt      time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                   json:"-"`
}

// TableName specifies the table name for GORM.
func (OrgMembership) TableName() string {
	return "org_memberships"
}

// BeforeCreate assigns a UUID before inserting.
func (m *OrgMembership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (m *OrgMembership) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}
