package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/avelar/go-tpl2pdf/internal/yamlutil"
)

// Sentinel errors for configuration loading.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config file")
)

// Config holds file-based settings for the tpl2pdf command. All fields are
// optional; CLI flags override config values.
type Config struct {
	Page struct {
		Format      string  `yaml:"format"`
		Orientation string  `yaml:"orientation"`
		Margin      float64 `yaml:"margin"`
	} `yaml:"page"`

	Header struct {
		File     string  `yaml:"file"`
		HeightMM float64 `yaml:"heightMm"`
	} `yaml:"header"`

	Footer struct {
		File     string  `yaml:"file"`
		HeightMM float64 `yaml:"heightMm"`
	} `yaml:"footer"`

	CSS struct {
		File string `yaml:"file"`
	} `yaml:"css"`

	Output struct {
		Path string `yaml:"path"`
		Mode string `yaml:"mode"` // "bytes" or "nativePrint"
	} `yaml:"output"`

	Markdown bool    `yaml:"markdown"`
	Scale    float64 `yaml:"scale"`
	Timeout  string  `yaml:"timeout"`
}

// DefaultConfig returns an empty configuration; the library supplies all
// rendering defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}
