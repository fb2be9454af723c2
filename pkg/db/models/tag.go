package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Tag represents a named label that can be attached to images and grouped into tagsets
type Tag struct {
	ID       uint   `gorm:"primaryKey"                       yaml:"id"`
	Name     string `gorm:"type:varchar(255);not null;index" yaml:"name"`
	StaffTag bool   `gorm:"not null;default:false"           yaml:"staff_tag"`

	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// TagInput holds the only externally settable fields of a Tag
type TagInput struct {
	Name     string `validate:"required"`
	StaffTag bool
}

// Validate rejects missing and whitespace-only names
func (in TagInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name", "can't be blank")
	}
	return validateStruct(in)
}

// Apply copies the input onto the tag. The name is stored exactly as given.
func (in TagInput) Apply(tag *Tag) {
	tag.Name = in.Name
	tag.StaffTag = in.StaffTag
}

// Validate checks the persisted invariants of a tag
func (t *Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return NewValidationError("name", "can't be blank")
	}
	return nil
}

// BeforeSave rejects invalid tags on every create and update
func (t *Tag) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}
