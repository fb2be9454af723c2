package store

import (
	"context"

	"github.com/mwantia/lentil/pkg/db/models"
	"gorm.io/gorm"
)

// Tag operations

func (s *GormStore) CreateTag(ctx context.Context, input models.TagInput) (*models.Tag, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var tag models.Tag
	input.Apply(&tag)

	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, wrap(err, "create tag")
	}
	return &tag, nil
}

func (s *GormStore) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error
	if err != nil {
		return nil, wrap(err, "get tag %d", id)
	}
	return &tag, nil
}

func (s *GormStore) ListTags(ctx context.Context, limit, offset int) ([]models.Tag, error) {
	var tags []models.Tag
	query := paginate(s.db.WithContext(ctx).Order("id"), limit, offset)

	if err := query.Find(&tags).Error; err != nil {
		return nil, wrap(err, "list tags")
	}
	return tags, nil
}

func (s *GormStore) UpdateTag(ctx context.Context, id uint, input models.TagInput) (*models.Tag, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var tag models.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&tag).Error; err != nil {
			return err
		}

		input.Apply(&tag)
		return tx.Save(&tag).Error
	})
	if err != nil {
		return nil, wrap(err, "update tag %d", id)
	}
	return &tag, nil
}

// DeleteTag removes the tag together with its taggings and tagset assignments.
// Images and tagsets are left untouched.
func (s *GormStore) DeleteTag(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.Tagging{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&models.TagsetAssignment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Tag{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return wrap(err, "delete tag %d", id)
}

func (s *GormStore) GetTagImages(ctx context.Context, tagID uint) ([]models.Image, error) {
	images := []models.Image{}
	err := s.db.WithContext(ctx).
		Joins("JOIN taggings ON taggings.image_id = images.id").
		Where("taggings.tag_id = ?", tagID).
		Order("taggings.id").
		Find(&images).Error
	if err != nil {
		return nil, wrap(err, "get images of tag %d", tagID)
	}
	return images, nil
}

func (s *GormStore) GetTagTagsets(ctx context.Context, tagID uint) ([]models.Tagset, error) {
	tagsets := []models.Tagset{}
	err := s.db.WithContext(ctx).
		Joins("JOIN tagset_assignments ON tagset_assignments.tagset_id = tagsets.id").
		Where("tagset_assignments.tag_id = ?", tagID).
		Order("tagset_assignments.id").
		Find(&tagsets).Error
	if err != nil {
		return nil, wrap(err, "get tagsets of tag %d", tagID)
	}
	return tagsets, nil
}

// ListHarvestableTags returns every tag assigned to at least one tagset flagged for harvesting.
// The tagset filter is applied as a subquery so a tag in several such tagsets is returned once.
func (s *GormStore) ListHarvestableTags(ctx context.Context) ([]models.Tag, error) {
	harvestable := s.db.
		Model(&models.TagsetAssignment{}).
		Select("tagset_assignments.tag_id").
		Joins("JOIN tagsets ON tagsets.id = tagset_assignments.tagset_id").
		Where("tagsets.harvest = ?", true)

	tags := []models.Tag{}
	err := s.db.WithContext(ctx).
		Where("id IN (?)", harvestable).
		Order("id").
		Find(&tags).Error
	if err != nil {
		return nil, wrap(err, "list harvestable tags")
	}
	return tags, nil
}
