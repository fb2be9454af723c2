package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/lentil/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrations.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func TestMigrate_CreatesSchema(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := NewMigrator(db).Migrate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, model := range []any{&models.Tag{}, &models.Tagset{}, &models.Image{}, &models.TagsetAssignment{}, &models.Tagging{}} {
		if !db.Migrator().HasTable(model) {
			t.Errorf("expected table for %T", model)
		}
	}
	if !db.Migrator().HasColumn(&models.Tag{}, "staff_tag") {
		t.Error("expected tags.staff_tag column")
	}
	if !db.Migrator().HasColumn(&models.Tagset{}, "harvest") {
		t.Error("expected tagsets.harvest column")
	}
	for _, idx := range reverseIndexes {
		if !db.Migrator().HasIndex(idx.model, idx.name) {
			t.Errorf("expected index %s", idx.name)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m := NewMigrator(db)

	for i := 0; i < 2; i++ {
		if err := m.Migrate(ctx); err != nil {
			t.Fatalf("unexpected error on run %d: %v", i, err)
		}
	}

	var count int64
	db.Model(&migrationHistory{}).Count(&count)
	if count != int64(len(allMigrations())) {
		t.Errorf("expected %d history rows, got %d", len(allMigrations()), count)
	}
}

func TestStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m := NewMigrator(db)

	statuses, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("unexpected error before migrating: %v", err)
	}
	for _, status := range statuses {
		if status.Applied {
			t.Errorf("expected migration %d to be pending", status.Version)
		}
	}

	if err := m.Migrate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	statuses, err = m.Status(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statuses) != len(allMigrations()) {
		t.Fatalf("expected %d statuses, got %d", len(allMigrations()), len(statuses))
	}
	for _, status := range statuses {
		if !status.Applied {
			t.Errorf("expected migration %d to be applied", status.Version)
		}
	}
}

func TestRollback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m := NewMigrator(db)

	if err := m.Migrate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Version 2 only drops the reverse lookup indexes
	if err := m.Rollback(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.Migrator().HasIndex(&models.Tagging{}, "idx_taggings_image_id") {
		t.Error("expected reverse index to be dropped")
	}
	if !db.Migrator().HasTable(&models.Tagging{}) {
		t.Error("expected taggings table to remain")
	}

	if err := m.Rollback(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.Migrator().HasTable(&models.Tag{}) {
		t.Error("expected tags table to be dropped")
	}

	if err := m.Rollback(ctx); err == nil {
		t.Error("expected error when nothing is left to roll back")
	}

	// Migrating again restores the full schema
	if err := m.Migrate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.Migrator().HasTable(&models.Tag{}) {
		t.Error("expected tags table after re-migrating")
	}
}
