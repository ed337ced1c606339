package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/launchessentials/finplan/pkg/constants"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{name: "Bare bytes", value: "1024", want: 1024},
		{name: "Bytes suffix", value: "512B", want: 512},
		{name: "Kilobytes short", value: "256K", want: 256 * 1024},
		{name: "Kilobytes long", value: "256KB", want: 256 * 1024},
		{name: "Megabytes", value: "10M", want: 10 * 1024 * 1024},
		{name: "Gigabytes", value: "1GB", want: 1024 * 1024 * 1024},
		{name: "Lowercase unit", value: "2m", want: 2 * 1024 * 1024},
		{name: "Surrounding whitespace", value: "  64K  ", want: 64 * 1024},
		{name: "Empty uses default", value: "", want: constants.DefaultMaxUploadSizeBytes},
		{name: "No digits", value: "MB", wantErr: true},
		{name: "Unknown unit", value: "10TB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSize(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, want %q", cfg.Address, constants.DefaultServerAddress)
	}
	if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Errorf("UploadSizeBytes() = %d, want %d", cfg.UploadSizeBytes(), constants.DefaultMaxUploadSizeBytes)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want defaults for a missing file", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, want default", cfg.Address)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := []byte("address: \":9090\"\nmaxUploadSize: 1M\nlogging:\n  level: warn\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != ":9090" {
		t.Errorf("Address = %q, want :9090", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 1024*1024 {
		t.Errorf("UploadSizeBytes() = %d, want 1M", cfg.UploadSizeBytes())
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadConfigBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("maxUploadSize: 10TB\n"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for unsupported size unit, got nil")
	}
}

func TestSetUploadSizeBytes(t *testing.T) {
	cfg, _ := LoadConfig("")
	cfg.SetUploadSizeBytes(2048)
	if cfg.UploadSizeBytes() != 2048 {
		t.Errorf("UploadSizeBytes() = %d, want 2048", cfg.UploadSizeBytes())
	}

	cfg.SetUploadSizeBytes(-1)
	if cfg.UploadSizeBytes() != 2048 {
		t.Error("non-positive override must be ignored")
	}
}
