package store

import (
	"context"

	"github.com/mwantia/lentil/pkg/db/models"
)

// MetadataStore defines the interface for database operations
type MetadataStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Tag operations
	CreateTag(ctx context.Context, input models.TagInput) (*models.Tag, error)
	GetTag(ctx context.Context, id uint) (*models.Tag, error)
	ListTags(ctx context.Context, limit, offset int) ([]models.Tag, error)
	UpdateTag(ctx context.Context, id uint, input models.TagInput) (*models.Tag, error)
	DeleteTag(ctx context.Context, id uint) error
	GetTagImages(ctx context.Context, tagID uint) ([]models.Image, error)
	GetTagTagsets(ctx context.Context, tagID uint) ([]models.Tagset, error)
	ListHarvestableTags(ctx context.Context) ([]models.Tag, error)

	// Tagset operations
	CreateTagset(ctx context.Context, input models.TagsetInput) (*models.Tagset, error)
	GetTagset(ctx context.Context, id uint) (*models.Tagset, error)
	ListTagsets(ctx context.Context) ([]models.Tagset, error)
	UpdateTagset(ctx context.Context, id uint, input models.TagsetInput) (*models.Tagset, error)
	DeleteTagset(ctx context.Context, id uint) error
	AssignTag(ctx context.Context, tagsetID, tagID uint) error
	UnassignTag(ctx context.Context, tagsetID, tagID uint) error
	GetTagsetTags(ctx context.Context, tagsetID uint) ([]models.Tag, error)

	// Image operations
	CreateImage(ctx context.Context, input models.ImageInput) (*models.Image, error)
	GetImage(ctx context.Context, id uint) (*models.Image, error)
	ListImages(ctx context.Context, limit, offset int) ([]models.Image, error)
	DeleteImage(ctx context.Context, id uint) error
	TagImage(ctx context.Context, imageID, tagID uint) error
	UntagImage(ctx context.Context, imageID, tagID uint) error
	GetImageTags(ctx context.Context, imageID uint) ([]models.Tag, error)
}
