package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dossou/afriwiki/internal/config"
	"github.com/dossou/afriwiki/internal/lang"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "afriwiki.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want default 4", cfg.Workers)
	}
	if len(cfg.Services) == 0 {
		t.Error("expected default services")
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	if _, err := config.Load("/nonexistent/afriwiki.yaml"); err == nil {
		t.Fatal("expected error for explicitly named missing file")
	}
}

func TestLoad_OverridesAndMatrix(t *testing.T) {
	path := writeConfig(t, `
quality_matrix:
  "fr>fon": 0.75
workers: 8
tonal_data_dir: /data/tonal
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.TonalDataDir != "/data/tonal" {
		t.Errorf("TonalDataDir = %q", cfg.TonalDataDir)
	}

	m, err := cfg.Matrix()
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	if q := m.Quality(lang.French, lang.Fon); q != 0.75 {
		t.Errorf("override not applied, Quality = %v", q)
	}
	// Untouched defaults survive the overlay.
	if q := m.Quality(lang.English, lang.French); q != 0.95 {
		t.Errorf("default edge lost, Quality = %v", q)
	}
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	path := writeConfig(t, "workers: [not a number")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoad_RejectsOutOfRangeScores(t *testing.T) {
	path := writeConfig(t, `
quality_matrix:
  "fr>fon": 1.5
`)
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for out-of-range quality score")
	}
}

func TestLoad_RejectsBadKeys(t *testing.T) {
	path := writeConfig(t, `
affinity:
  "fonyor": 0.8
`)
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for affinity key without separator")
	}
}
