package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Tagset represents a named collection of tags, optionally flagged for harvesting
type Tagset struct {
	ID          uint   `gorm:"primaryKey"                  yaml:"id"`
	Title       string `gorm:"type:varchar(255);not null"   yaml:"title"`
	Description string `gorm:"type:text"                   yaml:"description,omitempty"`
	Harvest     bool   `gorm:"not null;default:false;index" yaml:"harvest"`

	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

type TagsetInput struct {
	Title       string `validate:"required"`
	Description string
	Harvest     bool
}

func (in TagsetInput) Normalize() TagsetInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func (in TagsetInput) Validate() error {
	return validateStruct(in.Normalize())
}

func (in TagsetInput) Apply(tagset *Tagset) {
	in = in.Normalize()

	tagset.Title = in.Title
	tagset.Description = in.Description
	tagset.Harvest = in.Harvest
}

func (ts *Tagset) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(ts.Title) == "" {
		return NewValidationError("title", "can't be blank")
	}
	return nil
}

// TagsetAssignment links a tag to a tagset
type TagsetAssignment struct {
	ID       uint `gorm:"primaryKey"`
	TagID    uint `gorm:"not null;uniqueIndex:idx_tagset_assignment_pair"`
	TagsetID uint `gorm:"not null;uniqueIndex:idx_tagset_assignment_pair"`

	CreatedAt time.Time

	// Relationships
	Tag    Tag    `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
	Tagset Tagset `gorm:"foreignKey:TagsetID;references:ID;constraint:OnDelete:CASCADE"`
}
