package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-richtext/internal/fileutil"
	"github.com/alnah/go-richtext/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrOutOfRange      = errors.New("value out of range")
)

// Field length limits.
const (
	MaxHostLength     = 253  // RFC 1035
	MaxURLLength      = 2048 // Browser limit
	MaxClassLength    = 256  // Space-separated class list
	MaxTOCTitleLength = 100
	MaxStyleLength    = 50 // Chroma style name
	MaxPathLength     = 4096
)

// Numeric limits.
const (
	MinHeadingsLimit     = 50
	MaxWordsPerMinute    = 2000
	MaxExcerptLength     = 10000
	MaxInputSizeLimit    = 100 << 20
	DefaultMinHeadings   = 3
	DefaultWordsPerMin   = 200
	DefaultExcerptLength = 150
	DefaultMaxInputSize  = 5 << 20
)

// configDirName is the directory searched under the user config dir.
const configDirName = "go-richtext"

// Config holds all configuration for rendering.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Images   ImagesConfig   `yaml:"images"`
	Links    LinksConfig    `yaml:"links"`
	TOC      TOCConfig      `yaml:"toc"`
	Code     CodeConfig     `yaml:"code"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Reading  ReadingConfig  `yaml:"reading"`
	Limits   LimitsConfig   `yaml:"limits"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// SiteConfig identifies the site content is published on.
type SiteConfig struct {
	Host    string `yaml:"host"`    // Links to other hosts are external
	BaseURL string `yaml:"baseURL"` // Empty = keep relative URLs
}

// ImagesConfig defines image rewriting options.
type ImagesConfig struct {
	Class string `yaml:"class"` // Added when an <img> has no class
}

// LinksConfig defines external link options.
type LinksConfig struct {
	Class           string `yaml:"class"`           // Added when an external <a> has no class
	StrictDetection bool   `yaml:"strictDetection"` // Tokenize tags instead of name= heuristic
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Title       string `yaml:"title"`
	MinHeadings int    `yaml:"minHeadings"` // 1-50, default 3
}

// CodeConfig defines code block options.
type CodeConfig struct {
	Highlight bool   `yaml:"highlight"`
	Style     string `yaml:"style"` // Chroma style name (default: "github")
}

// MarkdownConfig defines Markdown input options.
type MarkdownConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ReadingConfig defines text statistics options.
type ReadingConfig struct {
	WordsPerMinute int `yaml:"wordsPerMinute"` // 1-2000, default 200
	ExcerptLength  int `yaml:"excerptLength"`  // 0-10000, default 150
}

// LimitsConfig defines input guards.
type LimitsConfig struct {
	MaxInputSize int `yaml:"maxInputSize"` // bytes, default 5 MiB
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Standalone bool   `yaml:"standalone"` // Wrap fragments in a full HTML page
	Theme      string `yaml:"theme"`      // Component stylesheet for standalone pages
}

// AssetsConfig defines custom stylesheet locations.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Directory with styles/{name}.css (empty = embedded only)
}

// Validate checks field lengths and numeric ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.host", c.Site.Host, MaxHostLength},
		{"site.baseURL", c.Site.BaseURL, MaxURLLength},
		{"images.class", c.Images.Class, MaxClassLength},
		{"links.class", c.Links.Class, MaxClassLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"code.style", c.Code.Style, MaxStyleLength},
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.theme", c.Output.Theme, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	ranges := []struct {
		name     string
		value    int
		min, max int
	}{
		{"toc.minHeadings", c.TOC.MinHeadings, 1, MinHeadingsLimit},
		{"reading.wordsPerMinute", c.Reading.WordsPerMinute, 1, MaxWordsPerMinute},
		{"reading.excerptLength", c.Reading.ExcerptLength, 0, MaxExcerptLength},
		{"limits.maxInputSize", c.Limits.MaxInputSize, 1, MaxInputSizeLimit},
	}
	for _, r := range ranges {
		if r.value < r.min || r.value > r.max {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrOutOfRange, r.name, r.min, r.max, r.value)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
// Fields a file omits keep these values.
func DefaultConfig() *Config {
	return &Config{
		Images:  ImagesConfig{Class: "img-fluid"},
		Links:   LinksConfig{Class: "external-link"},
		TOC:     TOCConfig{Enabled: true, Title: "Table of Contents", MinHeadings: DefaultMinHeadings},
		Code:    CodeConfig{Style: "github"},
		Reading: ReadingConfig{WordsPerMinute: DefaultWordsPerMin, ExcerptLength: DefaultExcerptLength},
		Limits:  LimitsConfig{MaxInputSize: DefaultMaxInputSize},
		Output:  OutputConfig{Theme: "default"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CandidatePaths lists where a config name is searched, in order:
// the current directory, then <user config dir>/go-richtext/,
// each with .yaml before .yml.
func CandidatePaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate path.
func resolveConfigPath(name string) (string, error) {
	paths := CandidatePaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
