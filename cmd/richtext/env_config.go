package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-richtext/internal/config"
	"github.com/alnah/go-richtext/internal/logging"
)

const envPrefix = "RICHTEXT_"

// envConfig holds configuration from RICHTEXT_* environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // RICHTEXT_CONFIG
	Host           string // RICHTEXT_HOST
	BaseURL        string // RICHTEXT_BASE_URL
	Style          string // RICHTEXT_STYLE: chroma style
	Theme          string // RICHTEXT_THEME: component stylesheet
	AssetPath      string // RICHTEXT_ASSET_PATH
	InputDir       string // RICHTEXT_INPUT_DIR
	OutputDir      string // RICHTEXT_OUTPUT_DIR
	Highlight      *bool  // RICHTEXT_HIGHLIGHT
	Markdown       *bool  // RICHTEXT_MARKDOWN
	Workers        int    // RICHTEXT_WORKERS
	MaxInputSize   int    // RICHTEXT_MAX_INPUT_SIZE
	WordsPerMinute int    // RICHTEXT_WORDS_PER_MINUTE
}

// knownEnvVars lists valid RICHTEXT_* variables, for typo detection.
var knownEnvVars = map[string]bool{
	"RICHTEXT_CONFIG":           true,
	"RICHTEXT_HOST":             true,
	"RICHTEXT_BASE_URL":         true,
	"RICHTEXT_STYLE":            true,
	"RICHTEXT_THEME":            true,
	"RICHTEXT_ASSET_PATH":       true,
	"RICHTEXT_INPUT_DIR":        true,
	"RICHTEXT_OUTPUT_DIR":       true,
	"RICHTEXT_HIGHLIGHT":        true,
	"RICHTEXT_MARKDOWN":         true,
	"RICHTEXT_WORKERS":          true,
	"RICHTEXT_MAX_INPUT_SIZE":   true,
	"RICHTEXT_WORDS_PER_MINUTE": true,
}

// loadEnvConfig reads RICHTEXT_* variables. Unparsable values are
// logged and ignored.
func loadEnvConfig(logger *log.Logger) *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("RICHTEXT_CONFIG"),
		Host:       os.Getenv("RICHTEXT_HOST"),
		BaseURL:    os.Getenv("RICHTEXT_BASE_URL"),
		Style:      os.Getenv("RICHTEXT_STYLE"),
		Theme:      os.Getenv("RICHTEXT_THEME"),
		AssetPath:  os.Getenv("RICHTEXT_ASSET_PATH"),
		InputDir:   os.Getenv("RICHTEXT_INPUT_DIR"),
		OutputDir:  os.Getenv("RICHTEXT_OUTPUT_DIR"),
	}

	cfg.Highlight = envBool(logger, "RICHTEXT_HIGHLIGHT")
	cfg.Markdown = envBool(logger, "RICHTEXT_MARKDOWN")
	cfg.Workers = envPositiveInt(logger, "RICHTEXT_WORKERS")
	cfg.MaxInputSize = envPositiveInt(logger, "RICHTEXT_MAX_INPUT_SIZE")
	cfg.WordsPerMinute = envPositiveInt(logger, "RICHTEXT_WORDS_PER_MINUTE")

	return cfg
}

func envBool(logger *log.Logger, name string) *bool {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Warn("ignoring invalid boolean", logging.FieldVar, name, "value", raw)
		return nil
	}
	return &v
}

func envPositiveInt(logger *log.Logger, name string) int {
	raw := os.Getenv(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		logger.Warn("ignoring invalid positive integer", logging.FieldVar, name, "value", raw)
		return 0
	}
	return v
}

// warnUnknownEnvVars logs unrecognized RICHTEXT_* variables.
// Catches typos like RICHTEXT_HOSTNAME instead of RICHTEXT_HOST.
func warnUnknownEnvVars(logger *log.Logger) {
	for _, env := range os.Environ() {
		name, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", logging.FieldVar, name)
		}
	}
}

// applyEnvConfig overlays set environment values onto cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (flags are applied afterwards by the command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setString(&cfg.Site.Host, env.Host)
	setString(&cfg.Site.BaseURL, env.BaseURL)
	setString(&cfg.Code.Style, env.Style)
	setString(&cfg.Output.Theme, env.Theme)
	setString(&cfg.Assets.BasePath, env.AssetPath)
	setString(&cfg.Input.DefaultDir, env.InputDir)
	setString(&cfg.Output.DefaultDir, env.OutputDir)

	if env.Highlight != nil {
		cfg.Code.Highlight = *env.Highlight
	}
	if env.Markdown != nil {
		cfg.Markdown.Enabled = *env.Markdown
	}
	if env.MaxInputSize > 0 {
		cfg.Limits.MaxInputSize = env.MaxInputSize
	}
	if env.WordsPerMinute > 0 {
		cfg.Reading.WordsPerMinute = env.WordsPerMinute
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
