package store

import (
	"context"

	"github.com/mwantia/lentil/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Image operations

func (s *GormStore) CreateImage(ctx context.Context, input models.ImageInput) (*models.Image, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var image models.Image
	input.Apply(&image)

	if err := s.db.WithContext(ctx).Create(&image).Error; err != nil {
		return nil, wrap(err, "create image")
	}
	return &image, nil
}

func (s *GormStore) GetImage(ctx context.Context, id uint) (*models.Image, error) {
	var image models.Image
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&image).Error
	if err != nil {
		return nil, wrap(err, "get image %d", id)
	}
	return &image, nil
}

func (s *GormStore) ListImages(ctx context.Context, limit, offset int) ([]models.Image, error) {
	var images []models.Image
	query := paginate(s.db.WithContext(ctx).Order("id"), limit, offset)

	if err := query.Find(&images).Error; err != nil {
		return nil, wrap(err, "list images")
	}
	return images, nil
}

func (s *GormStore) DeleteImage(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", id).Delete(&models.Tagging{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Image{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return wrap(err, "delete image %d", id)
}

// TagImage attaches the tag to the image. Tagging an already tagged image is a no-op.
func (s *GormStore) TagImage(ctx context.Context, imageID, tagID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Image{}, imageID); err != nil {
			return err
		}
		if err := exists(tx, &models.Tag{}, tagID); err != nil {
			return err
		}

		tagging := models.Tagging{
			TagID:   tagID,
			ImageID: imageID,
		}
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&tagging).Error
	})
	return wrap(err, "tag image %d with tag %d", imageID, tagID)
}

func (s *GormStore) UntagImage(ctx context.Context, imageID, tagID uint) error {
	err := s.db.WithContext(ctx).
		Where("image_id = ? AND tag_id = ?", imageID, tagID).
		Delete(&models.Tagging{}).Error
	return wrap(err, "untag image %d from tag %d", imageID, tagID)
}

func (s *GormStore) GetImageTags(ctx context.Context, imageID uint) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := s.db.WithContext(ctx).
		Joins("JOIN taggings ON taggings.tag_id = tags.id").
		Where("taggings.image_id = ?", imageID).
		Order("taggings.id").
		Find(&tags).Error
	if err != nil {
		return nil, wrap(err, "get tags of image %d", imageID)
	}
	return tags, nil
}
