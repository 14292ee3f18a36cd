package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete MDB configuration
type Config struct {
	Version int            `json:"version" mapstructure:"version"`
	Sources []SourceConfig `json:"sources" mapstructure:"sources"`
	Limits  LimitsConfig   `json:"limits" mapstructure:"limits"`
	Logging LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// SourceConfig describes one configured data source. Order in the config
// file is the order sources are scored, listed, and queried in.
type SourceConfig struct {
	Name        string   `json:"name" mapstructure:"name"`
	Driver      string   `json:"driver" mapstructure:"driver"` // mysql, postgres, sqlite
	Host        string   `json:"host,omitempty" mapstructure:"host"`
	Port        int      `json:"port,omitempty" mapstructure:"port"`
	Database    string   `json:"database,omitempty" mapstructure:"database"`
	Username    string   `json:"username,omitempty" mapstructure:"username"`
	Password    string   `json:"password,omitempty" mapstructure:"password"`
	Path        string   `json:"path,omitempty" mapstructure:"path"` // file path for sqlite
	Description string   `json:"description" mapstructure:"description"`
	Keywords    []string `json:"keywords" mapstructure:"keywords"`
}

// LimitsConfig bounds per-call work so latency stays predictable
type LimitsConfig struct {
	RowCap             int `json:"rowCap" mapstructure:"rowCap"`
	DeepSearchTables   int `json:"deepSearchTables" mapstructure:"deepSearchTables"`
	TotalRecordsTables int `json:"totalRecordsTables" mapstructure:"totalRecordsTables"`
	ReasoningMarkers   int `json:"reasoningMarkers" mapstructure:"reasoningMarkers"`
	TableMatchWeight   int `json:"tableMatchWeight" mapstructure:"tableMatchWeight"`
	MinColumnFragment  int `json:"minColumnFragment" mapstructure:"minColumnFragment"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration: the three stock sources
// on a local MySQL, matching the shipped sample databases.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Sources: []SourceConfig{
			{
				Name:        "school_erp",
				Driver:      "mysql",
				Host:        "localhost",
				Port:        3306,
				Database:    "school_erp",
				Username:    "root",
				Password:    "admin",
				Description: "School Management System - students, teachers, classes, fees, attendance, marks, library",
				Keywords: []string{
					"student", "teacher", "class", "school", "fee", "payment", "attendance",
					"marks", "exam", "grade", "enrollment", "library", "book issue", "staff",
					"subject", "assignment", "announcement", "academic", "session", "roll",
					"admission", "principal", "hostel", "uniform",
				},
			},
			{
				Name:        "chinook",
				Driver:      "mysql",
				Host:        "localhost",
				Port:        3306,
				Database:    "chinook",
				Username:    "root",
				Password:    "admin",
				Description: "Music Store - albums, artists, tracks, customers, invoices, playlists",
				Keywords: []string{
					"music", "album", "artist", "track", "song", "playlist", "genre",
					"customer", "invoice", "purchase", "employee", "media", "composer",
					"billing", "sale",
				},
			},
			{
				Name:        "sakila",
				Driver:      "mysql",
				Host:        "localhost",
				Port:        3306,
				Database:    "sakila",
				Username:    "root",
				Password:    "admin",
				Description: "Movie Rental - films, actors, customers, rentals, inventory, categories",
				Keywords: []string{
					"film", "movie", "actor", "rental", "dvd", "store", "inventory",
					"category", "language", "address", "city", "country", "payment",
					"cinema", "video", "actress",
				},
			},
		},
		Limits: LimitsConfig{
			RowCap:             50,
			DeepSearchTables:   10,
			TotalRecordsTables: 20,
			ReasoningMarkers:   5,
			TableMatchWeight:   5,
			MinColumnFragment:  3,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .mdb/config.json under root.
// A missing config file yields the default configuration.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".mdb"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Limits left at zero in the file fall back to defaults
	cfg.Limits = cfg.Limits.withDefaults()

	return &cfg, nil
}

func (l LimitsConfig) withDefaults() LimitsConfig {
	def := DefaultConfig().Limits
	if l.RowCap <= 0 {
		l.RowCap = def.RowCap
	}
	if l.DeepSearchTables <= 0 {
		l.DeepSearchTables = def.DeepSearchTables
	}
	if l.TotalRecordsTables <= 0 {
		l.TotalRecordsTables = def.TotalRecordsTables
	}
	if l.ReasoningMarkers <= 0 {
		l.ReasoningMarkers = def.ReasoningMarkers
	}
	if l.TableMatchWeight <= 0 {
		l.TableMatchWeight = def.TableMatchWeight
	}
	if l.MinColumnFragment <= 0 {
		l.MinColumnFragment = def.MinColumnFragment
	}
	return l
}

// Save writes the configuration to .mdb/config.json under root
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".mdb")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}

	if len(c.Sources) == 0 {
		return &ConfigError{Field: "sources", Message: "at least one source must be configured"}
	}

	seen := make(map[string]bool, len(c.Sources))
	for _, s := range c.Sources {
		if s.Name == "" {
			return &ConfigError{Field: "sources", Message: "source with empty name"}
		}
		if seen[s.Name] {
			return &ConfigError{Field: "sources", Message: "duplicate source name: " + s.Name}
		}
		seen[s.Name] = true

		switch s.Driver {
		case "mysql", "postgres":
			if s.Database == "" {
				return &ConfigError{Field: "sources", Message: s.Name + ": database is required for " + s.Driver}
			}
		case "sqlite":
			if s.Path == "" {
				return &ConfigError{Field: "sources", Message: s.Name + ": path is required for sqlite"}
			}
		default:
			return &ConfigError{Field: "sources", Message: s.Name + ": unsupported driver: " + s.Driver}
		}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
