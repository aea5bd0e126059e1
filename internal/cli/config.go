package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML config file. Flags given on the command line
// take precedence over values from the file.
type Config struct {
	DB       string `yaml:"db"`
	Backend  string `yaml:"backend"`
	Verbose  bool   `yaml:"verbose"`
	Format   string `yaml:"format"`
	MmapSize int    `yaml:"mmap_size"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.MmapSize < 0 {
		return nil, fmt.Errorf("config %s: mmap_size must not be negative", path)
	}
	return &cfg, nil
}

func applyConfig(cmd *cobra.Command, opts *RootOptions) error {
	if opts.ConfigFile == "" {
		return nil
	}
	cfg, err := LoadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if cfg.DB != "" && !flags.Changed("db") {
		opts.DBPath = cfg.DB
	}
	if cfg.Backend != "" && !flags.Changed("backend") {
		opts.Backend = cfg.Backend
	}
	if cfg.Verbose && !flags.Changed("verbose") {
		opts.Verbose = true
	}
	if cfg.Format != "" && !flags.Changed("format") {
		opts.Format = cfg.Format
	}
	opts.mmapSize = cfg.MmapSize
	return nil
}
