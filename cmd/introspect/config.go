package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the config file read when --config is not given.
const DefaultConfigName = ".introspect.yaml"

// ErrNoConnectionURL is returned when neither flags, environment nor the
// config file name a database.
var ErrNoConnectionURL = errors.New("no connection URL specified (use --url, DATABASE_URL or .introspect.yaml)")

// Config represents the .introspect.yaml configuration file.
type Config struct {
	URL      string   `yaml:"url,omitempty"`
	Provider string   `yaml:"provider,omitempty"`
	Schemas  []string `yaml:"schemas,omitempty"`
	Debug    bool     `yaml:"debug,omitempty"`
}

// LoadConfigFile reads the config file at path. A missing file yields an
// empty config.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// settings are the effective options of a run. Flags and environment take
// precedence over the config file.
type settings struct {
	url      string
	provider string
	schemas  []string
	debug    bool
}

func loadSettings(cmd *cli.Command) (*settings, error) {
	cfg, err := LoadConfigFile(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	s := &settings{
		url:      firstNonEmpty(cmd.String("url"), cfg.URL),
		provider: firstNonEmpty(cmd.String("provider"), cfg.Provider),
		schemas:  cfg.Schemas,
		debug:    cmd.Bool("debug") || cfg.Debug,
	}
	if names := cmd.StringSlice("schema"); len(names) > 0 {
		s.schemas = names
	}
	if s.url == "" {
		return nil, ErrNoConnectionURL
	}
	return s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
