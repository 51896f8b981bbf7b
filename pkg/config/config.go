package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the searchlite tool configuration.
type Config struct {
	Entities  []EntityConfig   `yaml:"entities"`
	Relations []RelationConfig `yaml:"relations"`
	HTTP      HTTPConfig       `yaml:"http"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// EntityConfig describes one entity type to load at startup.
type EntityConfig struct {
	Name       string `yaml:"name"`
	File       string `yaml:"file"`
	PrimaryKey string `yaml:"primary_key"` // default: _id
}

// RelationConfig links a field of one entity to the primary key of another,
// e.g. a ticket's assignee_id to the user it names.
type RelationConfig struct {
	FromEntity string `yaml:"from_entity"`
	ViaField   string `yaml:"via_field"`
	ToEntity   string `yaml:"to_entity"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec == 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec == 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec == 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks that entities are well formed and that relations reference
// configured entities.
func (c *Config) Validate() error {
	if len(c.Entities) == 0 {
		return fmt.Errorf("config must declare at least one entity")
	}

	seen := make(map[string]struct{}, len(c.Entities))
	for _, ent := range c.Entities {
		if ent.Name == "" {
			return fmt.Errorf("entity with file %q is missing a name", ent.File)
		}
		if ent.File == "" {
			return fmt.Errorf("entity %q is missing a data file", ent.Name)
		}
		if _, dup := seen[ent.Name]; dup {
			return fmt.Errorf("entity %q is declared twice", ent.Name)
		}
		seen[ent.Name] = struct{}{}
	}

	for _, rel := range c.Relations {
		if rel.ViaField == "" {
			return fmt.Errorf("relation %s -> %s is missing via_field", rel.FromEntity, rel.ToEntity)
		}
		if _, ok := seen[rel.FromEntity]; !ok {
			return fmt.Errorf("relation references unknown entity %q", rel.FromEntity)
		}
		if _, ok := seen[rel.ToEntity]; !ok {
			return fmt.Errorf("relation references unknown entity %q", rel.ToEntity)
		}
	}
	return nil
}
