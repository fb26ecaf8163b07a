package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization represents a tenant boundary in the system.
// Matches the organizations table schema.
type Organization struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"                                       json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_organizations_name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"            json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"            json:"-"`
}

// TableName specifies the table name for GORM.
func (Organization) TableName() string {
	return "organizations"
}

// BeforeCreate assigns a UUID before inserting.
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (o *Organization) BeforeUpdate(tx *gorm.DB) error {
	o.UpdatedAt = time.Now()
	return nil
}
