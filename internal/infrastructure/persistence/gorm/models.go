// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModel represents the GORM model for published recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null;index"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(50);index;not null"`
	PrepTime    int       `gorm:"column:prep_time;default:1"`
	Servings    int       `gorm:"default:1"`

	Ingredients StringSlice `gorm:"type:json"`
	Steps       StringSlice `gorm:"type:json"`
	Images      StringSlice `gorm:"type:json"`

	Slug        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	AuthorEmail string `gorm:"type:varchar(255)"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// DraftModel represents the GORM model for wizard drafts.
// Drafts carry partially filled recipe data plus the wizard step
// the author last saved from.
type DraftModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title       string    `gorm:"type:varchar(255)"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(50)"`
	PrepTime    int       `gorm:"column:prep_time;default:0"`
	Servings    int       `gorm:"default:0"`

	Ingredients StringSlice `gorm:"type:json"`
	Steps       StringSlice `gorm:"type:json"`
	Images      StringSlice `gorm:"type:json"`

	CurrentStep int    `gorm:"default:1"`
	AuthorEmail string `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

// UserModel represents the GORM model for admin users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	DisplayName  string    `gorm:"type:varchar(255)"`
	Email        string    `gorm:"type:varchar(255)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for DraftModel
func (d *DraftModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (RecipeModel) TableName() string {
	return "recipes"
}

func (DraftModel) TableName() string {
	return "drafts"
}

func (UserModel) TableName() string {
	return "users"
}
