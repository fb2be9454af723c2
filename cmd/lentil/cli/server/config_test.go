package server

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwantia/lentil/cmd/lentil/cli"
	"gopkg.in/yaml.v3"

	config "github.com/mwantia/lentil/internal/config/server"
)

func runConfigGenerate(t *testing.T, args ...string) string {
	t.Helper()

	root := cli.NewRootCommand(cli.VersionInfo{Version: "test", Commit: "test"})
	root.AddCommand(NewConfigCommand())

	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stdout)
	root.SetArgs(append([]string{"config", "generate"}, args...))

	if err := root.Execute(); err != nil {
		t.Fatalf("config generate: unexpected error: %v", err)
	}
	return stdout.String()
}

func TestConfigGenerate_WritesDefaults(t *testing.T) {
	dir := t.TempDir()

	runConfigGenerate(t, "--output", dir)

	data, err := os.ReadFile(filepath.Join(dir, "lentil.yaml"))
	if err != nil {
		t.Fatalf("expected lentil.yaml to be written: %v", err)
	}

	var cfg config.BaseServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("expected valid yaml: %v", err)
	}
	if cfg.HarvestInterval != "5m" || cfg.Metadata.Type != "sqlite" {
		t.Errorf("unexpected generated config %+v", cfg)
	}
}

func TestConfigGenerate_KeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "lentil.yaml")
	if err := os.WriteFile(filename, []byte("harvest_interval: 1h\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	output := runConfigGenerate(t, "--output", dir)
	if !strings.Contains(output, "Skipping") {
		t.Errorf("expected skip message, got %q", output)
	}

	data, _ := os.ReadFile(filename)
	if string(data) != "harvest_interval: 1h\n" {
		t.Errorf("expected existing file to be kept, got %q", string(data))
	}

	runConfigGenerate(t, "--output", dir, "--overwrite")
	data, _ = os.ReadFile(filename)
	if !strings.Contains(string(data), "harvest_interval: 5m") {
		t.Errorf("expected file to be overwritten, got %q", string(data))
	}
}

func TestConfigCommand_HelpDescribesGenerateOnly(t *testing.T) {
	cmd := NewConfigCommand()
	if strings.Contains(cmd.Long, "validating") {
		t.Errorf("unexpected help text %q", cmd.Long)
	}
	if len(cmd.Commands()) != 1 || cmd.Commands()[0].Name() != "generate" {
		t.Errorf("expected only the generate subcommand, got %v", cmd.Commands())
	}
}
