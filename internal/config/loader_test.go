package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name          string
		globalName    string
		globalConfig  string
		projectName   string
		projectConfig string
		check         func(t *testing.T, cfg *GanttConfig)
	}{
		{
			name: "No config files - returns defaults",
			check: func(t *testing.T, cfg *GanttConfig) {
				if cfg.ViewMode != "Day" {
					t.Errorf("view_mode = %q, want Day", cfg.ViewMode)
				}
				if cfg.HeaderHeight != 50 || cfg.Bar.Height != 20 || cfg.Padding != 18 {
					t.Errorf("unexpected default geometry: %+v", cfg)
				}
				if !cfg.EditMode || !cfg.Inline || cfg.Projection {
					t.Errorf("unexpected default flags: edit=%v inline=%v projection=%v", cfg.EditMode, cfg.Inline, cfg.Projection)
				}
			},
		},
		{
			name:         "Global only - single key overrides, rest kept",
			globalName:   "global.json",
			globalConfig: `{"view_mode": "Week"}`,
			check: func(t *testing.T, cfg *GanttConfig) {
				if cfg.ViewMode != "Week" {
					t.Errorf("view_mode = %q, want Week", cfg.ViewMode)
				}
				if cfg.HeaderHeight != 50 {
					t.Errorf("header_height = %v, want default 50", cfg.HeaderHeight)
				}
			},
		},
		{
			name:          "Project overrides global - project wins",
			globalName:    "global.json",
			globalConfig:  `{"view_mode": "Week", "padding": 10}`,
			projectName:   "project.json",
			projectConfig: `{"view_mode": "Month"}`,
			check: func(t *testing.T, cfg *GanttConfig) {
				if cfg.ViewMode != "Month" {
					t.Errorf("view_mode = %q, want Month", cfg.ViewMode)
				}
				if cfg.Padding != 10 {
					t.Errorf("padding = %v, want 10 from global", cfg.Padding)
				}
			},
		},
		{
			name:         "Nested keys override individually",
			globalName:   "global.json",
			globalConfig: `{"bar": {"height": 30}}`,
			check: func(t *testing.T, cfg *GanttConfig) {
				if cfg.Bar.Height != 30 {
					t.Errorf("bar.height = %v, want 30", cfg.Bar.Height)
				}
				if cfg.Bar.CornerRadius != 3 {
					t.Errorf("bar.corner_radius = %v, want default 3", cfg.Bar.CornerRadius)
				}
			},
		},
		{
			name:          "YAML project config",
			projectName:   "project.yaml",
			projectConfig: "view_mode: Half Day\nprojection: true\narrow:\n  curve: 8\n",
			check: func(t *testing.T, cfg *GanttConfig) {
				if cfg.ViewMode != "Half Day" {
					t.Errorf("view_mode = %q, want Half Day", cfg.ViewMode)
				}
				if !cfg.Projection {
					t.Error("projection = false, want true")
				}
				if cfg.Arrow.Curve != 8 {
					t.Errorf("arrow.curve = %v, want 8", cfg.Arrow.Curve)
				}
				if !cfg.EditMode {
					t.Error("edit_mode lost its default")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()

			globalPath := ""
			if tt.globalName != "" {
				globalPath = writeFile(t, tmpDir, tt.globalName, tt.globalConfig)
			}
			projectPath := ""
			if tt.projectName != "" {
				projectPath = writeFile(t, tmpDir, tt.projectName, tt.projectConfig)
			}

			cfg, err := Load(globalPath, projectPath)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	tmpDir := t.TempDir()
	globalPath := writeFile(t, tmpDir, "global.json", "{invalid json")

	_, err := Load(globalPath, "")
	if err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	projectPath := writeFile(t, tmpDir, "project.yml", "view_mode: [unterminated")

	_, err := Load("", projectPath)
	if err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
}

func TestLoad_MissingFilesNotError(t *testing.T) {
	cfg, err := Load("/nonexistent/global.json", "/nonexistent/project.json")
	if err != nil {
		t.Fatalf("expected no error for missing files, got: %v", err)
	}
	if cfg.ViewMode != "Day" {
		t.Errorf("view_mode = %q, want Day", cfg.ViewMode)
	}
}
