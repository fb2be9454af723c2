package log

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	gl := NewGormLogger(NewLoggerServiceWithWriter("gorm", testConfig("DEBUG"), &buf), logger.Error)
	query := func() (string, int64) { return "SELECT * FROM tags", 0 }

	gl.Trace(context.Background(), time.Now(), query, nil)
	if buf.Len() != 0 {
		t.Errorf("expected successful query to be silent at error level, got %q", buf.String())
	}

	gl.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	if buf.Len() != 0 {
		t.Errorf("expected record-not-found to be ignored, got %q", buf.String())
	}

	gl.Trace(context.Background(), time.Now(), query, errors.New("no such table: tags"))
	if !strings.Contains(buf.String(), "no such table: tags") {
		t.Errorf("expected error to be logged, got %q", buf.String())
	}
}

func TestGormLogger_LogMode(t *testing.T) {
	var buf bytes.Buffer
	gl := NewGormLogger(NewLoggerServiceWithWriter("gorm", testConfig("DEBUG"), &buf), logger.Silent)

	verbose := gl.LogMode(logger.Info)
	verbose.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)
	if !strings.Contains(buf.String(), "SELECT 1") {
		t.Errorf("expected query to be logged in info mode, got %q", buf.String())
	}

	buf.Reset()
	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 2", 1 }, nil)
	if buf.Len() != 0 {
		t.Errorf("expected original logger to stay silent, got %q", buf.String())
	}
}
