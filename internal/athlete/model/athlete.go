package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Athlete represents a user with the athlete role.
// Matches the users table schema; profile fields mirror roster imports
// (birth date/year, graduation year, body metrics, school).
type Athlete struct {
	ID             uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"                                      json:"id"`
	FirstName      string     `gorm:"column:first_name;type:varchar(128);not null"                        json:"first_name"`
	LastName       string     `gorm:"column:last_name;type:varchar(128);not null"                         json:"last_name"`
	Email          string     `gorm:"column:email;type:varchar(255);index:idx_users_email"                json:"email,omitempty"`
	Gender         string     `gorm:"column:gender;type:varchar(32)"                                      json:"gender,omitempty"`
	BirthDate      *time.Time `gorm:"column:birth_date;type:date"                                         json:"birth_date,omitempty"`
	BirthYear      *int       `gorm:"column:birth_year;type:int;index:idx_users_birth_year"               json:"birth_year,omitempty"`
	GraduationYear *int       `gorm:"column:graduation_year;type:int"                                     json:"graduation_year,omitempty"`
	HeightInches   *int       `gorm:"column:height_inches;type:int"                                       json:"height_inches,omitempty"`
	WeightPounds   *int       `gorm:"column:weight_pounds;type:int"                                       json:"weight_pounds,omitempty"`
	School         string     `gorm:"column:school;type:varchar(255)"                                     json:"school,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now()"           json:"-"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;type:timestamptz;not null;default:now()"           json:"-"`
}

// TableName specifies the table name for GORM.
func (Athlete) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID before inserting.
func (a *Athlete) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (a *Athlete) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}

// AgeAt derives the athlete's age at the given date. When the full birth
// date is known the naive year difference is corrected by one if the date
// falls before that year's birthday anniversary. With only a birth year on
// file the naive difference is the best available answer. Returns nil when
// neither field is set.
func (a *Athlete) AgeAt(date time.Time) *int {
	if a.BirthDate != nil {
		age := date.Year() - a.BirthDate.Year()
		anniversary := time.Date(date.Year(), a.BirthDate.Month(), a.BirthDate.Day(),
			0, 0, 0, 0, time.UTC)
		if date.Before(anniversary) {
			age--
		}
		if age < 0 {
			age = 0
		}
		return &age
	}

	if a.BirthYear != nil {
		age := date.Year() - *a.BirthYear
		if age < 0 {
			age = 0
		}
		return &age
	}

	return nil
}
