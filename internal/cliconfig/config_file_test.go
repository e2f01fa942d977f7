package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				SimDir:         "/sim/out",
				Prefix:         "galaxy",
				Decades:        3,
				DPI:            150,
				DensityFigSize: []float64{12, 4},
				Debounce:       "2s",
				Incremental:    &trueVal,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				SimDir:         "/sim/out",
				Prefix:         "galaxy",
				Decades:        3,
				DPI:            150,
				DensityFigSize: FigSize{12, 4},
				Debounce:       2 * time.Second,
				Incremental:    true,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				SimDir: "/config/sim",
				Prefix: "config-prefix",
			},
			changed: map[string]bool{"sim-dir": true},
			initial: Config{
				SimDir: "/flag/sim",
				Prefix: "flag-prefix",
			},
			expected: Config{
				SimDir: "/flag/sim", // unchanged because flag was set
				Prefix: "config-prefix",
			},
			wantErr: false,
		},
		{
			name: "ignores zero values",
			fileConfig: FileConfig{
				Decades: 0,
				DPI:     -1,
			},
			changed: map[string]bool{},
			initial: Config{Decades: 5, DPI: 100},
			expected: Config{
				Decades: 5,
				DPI:     100,
			},
			wantErr: false,
		},
		{
			name: "returns error for invalid duration",
			fileConfig: FileConfig{
				Debounce: "soon",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
		{
			name: "returns error for malformed figure size",
			fileConfig: FileConfig{
				TemperatureFigSize: []float64{8, 6, 1},
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyFileConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyFileConfig() unexpected error: %v", err)
				return
			}

			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	// Create a temporary TOML file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
sim_dir = "/tmp/sim"
prefix = "galaxy"
decades = 4.5
density_fig_size = [16.0, 5.0]
format = "png"
interactive = true
debounce = "1s"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.SimDir != "/tmp/sim" {
		t.Errorf("SimDir = %v, want /tmp/sim", fc.SimDir)
	}
	if fc.Prefix != "galaxy" {
		t.Errorf("Prefix = %v, want galaxy", fc.Prefix)
	}
	if fc.Decades != 4.5 {
		t.Errorf("Decades = %v, want 4.5", fc.Decades)
	}
	if len(fc.DensityFigSize) != 2 || fc.DensityFigSize[0] != 16 || fc.DensityFigSize[1] != 5 {
		t.Errorf("DensityFigSize = %v, want [16 5]", fc.DensityFigSize)
	}
	if fc.Format != "png" {
		t.Errorf("Format = %v, want png", fc.Format)
	}
	if fc.Interactive == nil || *fc.Interactive != true {
		t.Errorf("Interactive = %v, want true", fc.Interactive)
	}
	if fc.Incremental != nil {
		t.Errorf("Incremental = %v, want nil", fc.Incremental)
	}
	if fc.Debounce != "1s" {
		t.Errorf("Debounce = %v, want 1s", fc.Debounce)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
sim_dir = "/test"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".cutviz") {
		t.Errorf("DefaultConfigPath() = %v, should contain .cutviz", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
