package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Profile is a relational snapshot of the latest parsed resume, refreshed
// on every upload.
type Profile struct {
	UserID      string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	FullName    string `gorm:"column:full_name;type:text" json:"full_name"`
	Email       string `gorm:"column:email;type:text" json:"email"`
	PhoneNumber string `gorm:"column:phone_number;type:text" json:"phone_number"`
	Summary     string `gorm:"column:summary;type:text" json:"summary"`

	Skills   pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`
	Keywords pq.StringArray `gorm:"column:keywords;type:text[]" json:"keywords"`

	// JSONB (raw JSON, shape follows whatever the parser produced)
	Experience datatypes.JSON `gorm:"column:experience;type:jsonb" json:"experience"`
	Education  datatypes.JSON `gorm:"column:education;type:jsonb" json:"education"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
