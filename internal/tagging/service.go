// Package tagging exposes the tag accessor used by the CLI and the agent:
// validated tag creation, the image and tagset relations of a tag and the
// set of tags that are due for harvesting.
package tagging

import (
	"context"
	"fmt"

	"github.com/mwantia/lentil/pkg/db/models"
	"github.com/mwantia/lentil/pkg/db/store"
	"github.com/mwantia/lentil/pkg/log"
)

// Store is the subset of store.MetadataStore the service depends on
type Store interface {
	CreateTag(ctx context.Context, input models.TagInput) (*models.Tag, error)
	GetTag(ctx context.Context, id uint) (*models.Tag, error)
	GetTagImages(ctx context.Context, tagID uint) ([]models.Image, error)
	GetTagTagsets(ctx context.Context, tagID uint) ([]models.Tagset, error)
	ListHarvestableTags(ctx context.Context) ([]models.Tag, error)
}

// Service can be constructed with NewService or resolved from a fabric
// service container, which injects both fields.
type Service struct {
	Store Store             `fabric:"inject"`
	Log   log.LoggerService `fabric:"logger:tagging"`
}

func NewService(s Store, l log.LoggerService) *Service {
	return &Service{
		Store: s,
		Log:   l,
	}
}

// Create persists a new tag. A blank name fails with *models.ValidationError
// and nothing is written.
func (s *Service) Create(ctx context.Context, name string, staffTag bool) (*models.Tag, error) {
	tag, err := s.Store.CreateTag(ctx, models.TagInput{
		Name:     name,
		StaffTag: staffTag,
	})
	if err != nil {
		if models.IsValidationError(err) {
			s.Log.Debug("Rejected tag '%s': %v", name, err)
		}
		return nil, err
	}

	s.Log.Info("Created tag '%s' (id: %d, staff: %t)", tag.Name, tag.ID, tag.StaffTag)
	return tag, nil
}

// Images returns the images tagged with the tag, in tagging order
func (s *Service) Images(ctx context.Context, tagID uint) ([]models.Image, error) {
	if _, err := s.Store.GetTag(ctx, tagID); err != nil {
		return nil, err
	}

	images, err := s.Store.GetTagImages(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []models.Image{}
	}
	return images, nil
}

// Tagsets returns the tagsets the tag is assigned to, in assignment order
func (s *Service) Tagsets(ctx context.Context, tagID uint) ([]models.Tagset, error) {
	if _, err := s.Store.GetTag(ctx, tagID); err != nil {
		return nil, err
	}

	tagsets, err := s.Store.GetTagTagsets(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tagsets == nil {
		tagsets = []models.Tagset{}
	}
	return tagsets, nil
}

// HarvestableTags returns every tag that belongs to at least one tagset flagged
// for harvesting. Each tag is returned once.
func (s *Service) HarvestableTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.Store.ListHarvestableTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list harvestable tags: %w", err)
	}

	unique := UniqueTags(tags)
	if len(unique) != len(tags) {
		s.Log.Warn("Harvestable query returned %d duplicate tags", len(tags)-len(unique))
	}
	return unique, nil
}

// UniqueTags removes repeated tags by id, keeping the first occurrence and the original order
func UniqueTags(tags []models.Tag) []models.Tag {
	seen := make(map[uint]struct{}, len(tags))
	unique := make([]models.Tag, 0, len(tags))

	for _, tag := range tags {
		if _, ok := seen[tag.ID]; ok {
			continue
		}
		seen[tag.ID] = struct{}{}
		unique = append(unique, tag)
	}
	return unique
}

var _ Store = (store.MetadataStore)(nil)
