package tagging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	config "github.com/mwantia/lentil/internal/config/server"
	"github.com/mwantia/lentil/pkg/db/models"
	"github.com/mwantia/lentil/pkg/db/store"
	"github.com/mwantia/lentil/pkg/log"
)

// --- Mock Store ---

// mockStore implements Store for testing.
type mockStore struct {
	createTagFn           func(ctx context.Context, input models.TagInput) (*models.Tag, error)
	getTagFn              func(ctx context.Context, id uint) (*models.Tag, error)
	getTagImagesFn        func(ctx context.Context, tagID uint) ([]models.Image, error)
	getTagTagsetsFn       func(ctx context.Context, tagID uint) ([]models.Tagset, error)
	listHarvestableTagsFn func(ctx context.Context) ([]models.Tag, error)
}

func (m *mockStore) CreateTag(ctx context.Context, input models.TagInput) (*models.Tag, error) {
	if m.createTagFn != nil {
		return m.createTagFn(ctx, input)
	}
	return &models.Tag{ID: 1, Name: input.Name, StaffTag: input.StaffTag}, nil
}

func (m *mockStore) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	if m.getTagFn != nil {
		return m.getTagFn(ctx, id)
	}
	return nil, fmt.Errorf("get tag %d: %w", id, store.ErrNotFound)
}

func (m *mockStore) GetTagImages(ctx context.Context, tagID uint) ([]models.Image, error) {
	if m.getTagImagesFn != nil {
		return m.getTagImagesFn(ctx, tagID)
	}
	return nil, nil
}

func (m *mockStore) GetTagTagsets(ctx context.Context, tagID uint) ([]models.Tagset, error) {
	if m.getTagTagsetsFn != nil {
		return m.getTagTagsetsFn(ctx, tagID)
	}
	return nil, nil
}

func (m *mockStore) ListHarvestableTags(ctx context.Context) ([]models.Tag, error) {
	if m.listHarvestableTagsFn != nil {
		return m.listHarvestableTagsFn(ctx)
	}
	return nil, nil
}

// --- Test Helpers ---

func newTestService(s Store) (*Service, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := config.GetServerDefault().Log
	cfg.Level = "DEBUG"
	cfg.NoColor = true

	return NewService(s, log.NewLoggerServiceWithWriter("test", cfg, &buf)), &buf
}

func existingTag(id uint) func(ctx context.Context, tagID uint) (*models.Tag, error) {
	return func(ctx context.Context, tagID uint) (*models.Tag, error) {
		if tagID != id {
			return nil, store.ErrNotFound
		}
		return &models.Tag{ID: id, Name: "sunset"}, nil
	}
}

// --- Create Tests ---

func TestCreate_Success(t *testing.T) {
	var received models.TagInput
	svc, buf := newTestService(&mockStore{
		createTagFn: func(ctx context.Context, input models.TagInput) (*models.Tag, error) {
			received = input
			return &models.Tag{ID: 5, Name: input.Name, StaffTag: input.StaffTag}, nil
		},
	})

	tag, err := svc.Create(context.Background(), "sunset", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.Name != "sunset" || !received.StaffTag {
		t.Errorf("unexpected input passed to store: %+v", received)
	}
	if tag.ID != 5 {
		t.Errorf("expected id 5, got %d", tag.ID)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Created tag 'sunset'")) {
		t.Errorf("expected creation to be logged, got %q", buf.String())
	}
}

func TestCreate_ValidationError(t *testing.T) {
	svc, _ := newTestService(&mockStore{
		createTagFn: func(ctx context.Context, input models.TagInput) (*models.Tag, error) {
			return nil, input.Validate()
		},
	})

	tag, err := svc.Create(context.Background(), "", false)
	if tag != nil {
		t.Errorf("expected nil tag, got %+v", tag)
	}

	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *models.ValidationError, got %T: %v", err, err)
	}
}

// --- Relation Tests ---

func TestImages_NoImagesIsEmpty(t *testing.T) {
	svc, _ := newTestService(&mockStore{getTagFn: existingTag(1)})

	images, err := svc.Images(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if images == nil || len(images) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", images)
	}
}

func TestImages_MissingTag(t *testing.T) {
	called := false
	svc, _ := newTestService(&mockStore{
		getTagImagesFn: func(ctx context.Context, tagID uint) ([]models.Image, error) {
			called = true
			return nil, nil
		},
	})

	_, err := svc.Images(context.Background(), 9)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if called {
		t.Error("expected relation query to be skipped for a missing tag")
	}
}

func TestTagsets_ReturnsStoreOrder(t *testing.T) {
	svc, _ := newTestService(&mockStore{
		getTagFn: existingTag(1),
		getTagTagsetsFn: func(ctx context.Context, tagID uint) ([]models.Tagset, error) {
			return []models.Tagset{{ID: 3, Title: "B"}, {ID: 1, Title: "A", Harvest: true}}, nil
		},
	})

	tagsets, err := svc.Tagsets(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tagsets) != 2 || tagsets[0].ID != 3 || tagsets[1].ID != 1 {
		t.Errorf("unexpected tagsets %+v", tagsets)
	}
}

// --- Harvestable Tests ---

func TestHarvestableTags_RemovesDuplicates(t *testing.T) {
	svc, buf := newTestService(&mockStore{
		listHarvestableTagsFn: func(ctx context.Context) ([]models.Tag, error) {
			return []models.Tag{
				{ID: 1, Name: "sunset"},
				{ID: 2, Name: "beach"},
				{ID: 1, Name: "sunset"},
			}, nil
		},
	})

	tags, err := svc.HarvestableTags(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "sunset" || tags[1].Name != "beach" {
		t.Errorf("expected [sunset beach], got %+v", tags)
	}
	if !bytes.Contains(buf.Bytes(), []byte("1 duplicate tags")) {
		t.Errorf("expected duplicate warning, got %q", buf.String())
	}
}

func TestHarvestableTags_StoreError(t *testing.T) {
	boom := errors.New("connection refused")
	svc, _ := newTestService(&mockStore{
		listHarvestableTagsFn: func(ctx context.Context) ([]models.Tag, error) {
			return nil, boom
		},
	})

	if _, err := svc.HarvestableTags(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestUniqueTags(t *testing.T) {
	tests := []struct {
		name string
		in   []models.Tag
		want []uint
	}{
		{name: "nil", in: nil, want: []uint{}},
		{name: "no duplicates", in: []models.Tag{{ID: 2}, {ID: 1}}, want: []uint{2, 1}},
		{name: "keeps first occurrence", in: []models.Tag{{ID: 3}, {ID: 1}, {ID: 3}, {ID: 1}}, want: []uint{3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UniqueTags(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tags, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("position %d: expected id %d, got %d", i, id, got[i].ID)
				}
			}
		})
	}
}
