package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the tool configuration, usually read from pbi-atlas.yaml.
type Config struct {
	// SourceDir holds the raw .pbix archives.
	SourceDir string `mapstructure:"source_dir"`
	// ExtractedDir holds the unpacked report folders.
	ExtractedDir string `mapstructure:"extracted_dir"`
	// OutputDir receives the exported CSV files.
	OutputDir string `mapstructure:"output_dir"`
	// CatalogPath is the DuckDB database file for the searchable catalog.
	CatalogPath string `mapstructure:"catalog_path"`

	Describe DescribeConfig `mapstructure:"describe"`
}

// DescribeConfig controls the AI description service.
type DescribeConfig struct {
	Model     string `mapstructure:"model"`
	BatchSize int    `mapstructure:"batch_size"`
}

// Load reads the configuration from the given file path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("source_dir", "data/pbi_files")
	v.SetDefault("extracted_dir", "data/unzipped_pbi_folders")
	v.SetDefault("output_dir", "output")
	v.SetDefault("catalog_path", "pbi-atlas.db")
	v.SetDefault("describe.model", "gemini-2.5-flash")
	v.SetDefault("describe.batch_size", 20)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
