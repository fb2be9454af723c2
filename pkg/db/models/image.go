package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Image represents a harvested or uploaded image that tags can be attached to
type Image struct {
	ID          uint   `gorm:"primaryKey"                   yaml:"id"`
	URL         string `gorm:"type:varchar(512);not null;uniqueIndex" yaml:"url"`
	Description string `gorm:"type:text"                    yaml:"description,omitempty"`

	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

type ImageInput struct {
	URL         string `validate:"required,url"`
	Description string
}

func (in ImageInput) Normalize() ImageInput {
	in.URL = strings.TrimSpace(in.URL)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func (in ImageInput) Validate() error {
	return validateStruct(in.Normalize())
}

func (in ImageInput) Apply(image *Image) {
	in = in.Normalize()

	image.URL = in.URL
	image.Description = in.Description
}

func (i *Image) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(i.URL) == "" {
		return NewValidationError("url", "can't be blank")
	}
	return nil
}

// Tagging links a tag to an image
type Tagging struct {
	ID      uint `gorm:"primaryKey"`
	TagID   uint `gorm:"not null;uniqueIndex:idx_tagging_pair"`
	ImageID uint `gorm:"not null;uniqueIndex:idx_tagging_pair"`

	CreatedAt time.Time

	// Relationships
	Tag   Tag   `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
	Image Image `gorm:"foreignKey:ImageID;references:ID;constraint:OnDelete:CASCADE"`
}
