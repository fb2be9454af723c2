package catalog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mwantia/lentil/pkg/db/models"
	"github.com/spf13/cobra"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		value   string
		want    uint
		wantErr bool
	}{
		{value: "1", want: 1},
		{value: "42", want: 42},
		{value: "0", wantErr: true},
		{value: "-3", wantErr: true},
		{value: "abc", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseID("tag", tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseID(%q): expected error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseID(%q): unexpected error %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("parseID(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"3", "7"}, "tagset", "tag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids[0] != 3 || ids[1] != 7 {
		t.Errorf("expected [3 7], got %v", ids)
	}

	if _, err := parseIDs([]string{"3", "x"}, "tagset", "tag"); err == nil || !strings.Contains(err.Error(), "invalid tag id") {
		t.Errorf("expected invalid tag id error, got %v", err)
	}
}

func newOutputCommand(t *testing.T, format string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	cmd := &cobra.Command{Use: "test"}
	addOutputFlag(cmd)
	cmd.SetOut(&out)
	if err := cmd.Flags().Set("output", format); err != nil {
		t.Fatalf("failed to set output flag: %v", err)
	}
	return cmd, &out
}

func TestPrintTags_Table(t *testing.T) {
	cmd, out := newOutputCommand(t, "table")
	tags := []models.Tag{{ID: 1, Name: "sunset", StaffTag: true, CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}}

	if err := printTags(cmd, tags); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[1], "sunset") || !strings.Contains(lines[1], "2024-05-01 12:00:00") {
		t.Errorf("unexpected table output %q", out.String())
	}
}

func TestPrintTagsets_YAML(t *testing.T) {
	cmd, out := newOutputCommand(t, "yaml")

	if err := printTagsets(cmd, []models.Tagset{{ID: 2, Title: "Summer", Harvest: true}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "title: Summer") || !strings.Contains(out.String(), "harvest: true") {
		t.Errorf("unexpected yaml output %q", out.String())
	}
}

func TestPrintImages_UnknownFormat(t *testing.T) {
	cmd, _ := newOutputCommand(t, "xml")

	if err := printImages(cmd, nil); err == nil {
		t.Error("expected error for unsupported format")
	}
}
