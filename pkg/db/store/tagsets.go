package store

import (
	"context"

	"github.com/mwantia/lentil/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tagset operations

func (s *GormStore) CreateTagset(ctx context.Context, input models.TagsetInput) (*models.Tagset, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var tagset models.Tagset
	input.Apply(&tagset)

	if err := s.db.WithContext(ctx).Create(&tagset).Error; err != nil {
		return nil, wrap(err, "create tagset")
	}
	return &tagset, nil
}

func (s *GormStore) GetTagset(ctx context.Context, id uint) (*models.Tagset, error) {
	var tagset models.Tagset
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&tagset).Error
	if err != nil {
		return nil, wrap(err, "get tagset %d", id)
	}
	return &tagset, nil
}

func (s *GormStore) ListTagsets(ctx context.Context) ([]models.Tagset, error) {
	var tagsets []models.Tagset
	if err := s.db.WithContext(ctx).Order("id").Find(&tagsets).Error; err != nil {
		return nil, wrap(err, "list tagsets")
	}
	return tagsets, nil
}

func (s *GormStore) UpdateTagset(ctx context.Context, id uint, input models.TagsetInput) (*models.Tagset, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var tagset models.Tagset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&tagset).Error; err != nil {
			return err
		}

		input.Apply(&tagset)
		return tx.Save(&tagset).Error
	})
	if err != nil {
		return nil, wrap(err, "update tagset %d", id)
	}
	return &tagset, nil
}

// DeleteTagset removes the tagset and its assignments, but never the tags themselves.
func (s *GormStore) DeleteTagset(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tagset_id = ?", id).Delete(&models.TagsetAssignment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Tagset{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return wrap(err, "delete tagset %d", id)
}

// AssignTag adds the tag to the tagset. Assigning an already assigned tag is a no-op.
func (s *GormStore) AssignTag(ctx context.Context, tagsetID, tagID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Tagset{}, tagsetID); err != nil {
			return err
		}
		if err := exists(tx, &models.Tag{}, tagID); err != nil {
			return err
		}

		assignment := models.TagsetAssignment{
			TagID:    tagID,
			TagsetID: tagsetID,
		}
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&assignment).Error
	})
	return wrap(err, "assign tag %d to tagset %d", tagID, tagsetID)
}

func (s *GormStore) UnassignTag(ctx context.Context, tagsetID, tagID uint) error {
	err := s.db.WithContext(ctx).
		Where("tagset_id = ? AND tag_id = ?", tagsetID, tagID).
		Delete(&models.TagsetAssignment{}).Error
	return wrap(err, "unassign tag %d from tagset %d", tagID, tagsetID)
}

func (s *GormStore) GetTagsetTags(ctx context.Context, tagsetID uint) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := s.db.WithContext(ctx).
		Joins("JOIN tagset_assignments ON tagset_assignments.tag_id = tags.id").
		Where("tagset_assignments.tagset_id = ?", tagsetID).
		Order("tagset_assignments.id").
		Find(&tags).Error
	if err != nil {
		return nil, wrap(err, "get tags of tagset %d", tagsetID)
	}
	return tags, nil
}

// exists returns gorm.ErrRecordNotFound when no row of the model has the given id
func exists(tx *gorm.DB, model any, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
