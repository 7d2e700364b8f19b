package model

import (
	"os"
	"time"
)

// Config holds all benchsplit settings
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Categories  []Category        `yaml:"categories"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
}

// InputConfig controls how benchmark logs are read
type InputConfig struct {
	MaxBytes int64 `yaml:"max_bytes"` // 0 means unlimited
}

// OutputConfig controls where and how category files are written
type OutputConfig struct {
	Dir        string      `yaml:"dir"`         // Root holding one subdirectory per category
	FileMode   os.FileMode `yaml:"file_mode"`   // Mode for newly created files
	CreateDirs bool        `yaml:"create_dirs"` // Create missing category directories
	Verbose    bool        `yaml:"verbose"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// CacheConfig controls split memoization
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// DefaultConfig returns the configuration matching the reference behavior:
// outputs relative to the working directory, directories must pre-exist.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			MaxBytes: 0,
		},
		Output: OutputConfig{
			Dir:        ".",
			FileMode:   0644,
			CreateDirs: false,
		},
		Categories: DefaultCategories(),
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
	}
}
