// config_test.go verifies the zero-setup contract (missing file means
// defaults), YAML loading, validation, and the save round trip.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("missing config file must not be an error: %v", err)
	}

	if cfg.ReportDir != "." {
		t.Errorf("default report_dir = %q, want %q", cfg.ReportDir, ".")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log_level = %q, want info", cfg.LogLevel)
	}
	if cfg.CommandTimeout() != 10*time.Second {
		t.Errorf("default command timeout = %v, want 10s", cfg.CommandTimeout())
	}
	if cfg.LoginHistoryLimit != 10 {
		t.Errorf("default login_history_limit = %d, want 10", cfg.LoginHistoryLimit)
	}
	if cfg.MetadataTimeout() != 2*time.Second {
		t.Errorf("default metadata timeout = %v, want 2s", cfg.MetadataTimeout())
	}
	if cfg.MetadataEndpoint == "" {
		t.Error("default metadata_endpoint is empty")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `report_dir: /var/log/hostaudit
log_level: debug
command_timeout_seconds: 5
login_history_limit: 20
metadata_timeout_ms: 500
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ReportDir != "/var/log/hostaudit" {
		t.Errorf("report_dir = %q", cfg.ReportDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
	if cfg.CommandTimeout() != 5*time.Second {
		t.Errorf("command timeout = %v", cfg.CommandTimeout())
	}
	if cfg.LoginHistoryLimit != 20 {
		t.Errorf("login_history_limit = %d", cfg.LoginHistoryLimit)
	}
	if cfg.MetadataTimeout() != 500*time.Millisecond {
		t.Errorf("metadata timeout = %v", cfg.MetadataTimeout())
	}
	// Unset fields keep their defaults.
	if cfg.MetadataEndpoint == "" {
		t.Error("metadata_endpoint should default when unset")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"negative command timeout", "command_timeout_seconds: -1\n", ErrInvalidCommandTimeout},
		{"negative history limit", "login_history_limit: -5\n", ErrInvalidHistoryLimit},
		{"negative metadata timeout", "metadata_timeout_ms: -100\n", ErrInvalidMetadataTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("report_dir: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := Save(path, Default()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of saved config failed: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("round trip mismatch: %+v vs %+v", cfg, Default())
	}
}
