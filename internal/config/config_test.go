package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if len(cfg.Sources) != 3 {
		t.Fatalf("sources = %d, want 3", len(cfg.Sources))
	}
	if cfg.Sources[0].Name != "school_erp" || cfg.Sources[1].Name != "chinook" || cfg.Sources[2].Name != "sakila" {
		t.Errorf("unexpected source order: %v, %v, %v",
			cfg.Sources[0].Name, cfg.Sources[1].Name, cfg.Sources[2].Name)
	}
	if cfg.Limits.RowCap != 50 {
		t.Errorf("RowCap = %d, want 50", cfg.Limits.RowCap)
	}
	for _, s := range cfg.Sources {
		if len(s.Keywords) == 0 {
			t.Errorf("source %s has no keywords", s.Name)
		}
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Sources) != 3 {
		t.Errorf("sources = %d, want the defaults", len(cfg.Sources))
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Sources = cfg.Sources[:1]
	cfg.Sources[0].Host = "db.internal"
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(loaded.Sources) != 1 {
		t.Fatalf("sources = %d, want 1", len(loaded.Sources))
	}
	if loaded.Sources[0].Host != "db.internal" {
		t.Errorf("host = %q, want db.internal", loaded.Sources[0].Host)
	}
	if loaded.Limits.RowCap != 50 {
		t.Errorf("RowCap = %d, want 50", loaded.Limits.RowCap)
	}
}

func TestLoadConfigFillsZeroLimits(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Limits = LimitsConfig{}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Limits.RowCap != 50 || loaded.Limits.TableMatchWeight != 5 {
		t.Errorf("limits not defaulted: %+v", loaded.Limits)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad version", func(c *Config) { c.Version = 2 }},
		{"no sources", func(c *Config) { c.Sources = nil }},
		{"empty name", func(c *Config) { c.Sources[0].Name = "" }},
		{"duplicate name", func(c *Config) { c.Sources[1].Name = c.Sources[0].Name }},
		{"bad driver", func(c *Config) { c.Sources[0].Driver = "oracle" }},
		{"mysql without database", func(c *Config) { c.Sources[0].Database = "" }},
		{"sqlite without path", func(c *Config) {
			c.Sources[0].Driver = "sqlite"
			c.Sources[0].Path = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
