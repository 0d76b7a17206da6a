package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	richtext "github.com/alnah/go-richtext"
	"github.com/alnah/go-richtext/internal/config"
	"github.com/alnah/go-richtext/internal/fileutil"
	"github.com/alnah/go-richtext/internal/hints"
	"github.com/alnah/go-richtext/internal/logging"
)

// loadSettings resolves configuration from the config file and the
// environment. Flags are merged by the caller.
func loadSettings(configName string, logger *log.Logger) (*config.Config, *envConfig, error) {
	env := loadEnvConfig(logger)
	warnUnknownEnvVars(logger)

	name := configName
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.CandidatePaths(name)))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		logger.Debug("loaded config", logging.FieldConfig, name)
	}

	applyEnvConfig(env, cfg)
	return cfg, env, nil
}

// mergeContentFlags overlays explicitly set rendering flags onto cfg.
func mergeContentFlags(f contentFlags, changed map[string]bool, cfg *config.Config) {
	if changed["host"] {
		cfg.Site.Host = f.host
	}
	if changed["base-url"] {
		cfg.Site.BaseURL = f.baseURL
	}
	if changed["markdown"] {
		cfg.Markdown.Enabled = f.markdown
	}
	if changed["highlight"] {
		cfg.Code.Highlight = f.highlight
	}
	if changed["style"] {
		cfg.Code.Style = f.style
		// Choosing a style implies highlighting unless --highlight=false.
		if !changed["highlight"] {
			cfg.Code.Highlight = true
		}
	}
	if changed["no-toc"] {
		cfg.TOC.Enabled = !f.noTOC
	}
	if changed["toc-title"] {
		cfg.TOC.Title = f.tocTitle
	}
}

// newRenderer builds a Renderer from resolved configuration.
func newRenderer(cfg *config.Config) (*richtext.Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []richtext.Option{
		richtext.WithHost(cfg.Site.Host),
		richtext.WithImageClass(cfg.Images.Class),
		richtext.WithLinkClass(cfg.Links.Class),
		richtext.WithTOCTitle(cfg.TOC.Title),
		richtext.WithTOCMinHeadings(cfg.TOC.MinHeadings),
		richtext.WithWordsPerMinute(cfg.Reading.WordsPerMinute),
		richtext.WithExcerptLength(cfg.Reading.ExcerptLength),
		richtext.WithMaxInputSize(cfg.Limits.MaxInputSize),
	}
	if !cfg.TOC.Enabled {
		opts = append(opts, richtext.WithoutTOC())
	}
	if cfg.Code.Highlight {
		opts = append(opts, richtext.WithHighlighting(cfg.Code.Style))
	}
	if cfg.Markdown.Enabled {
		opts = append(opts, richtext.WithMarkdown())
	}
	if cfg.Links.StrictDetection {
		opts = append(opts, richtext.WithStrictAttributeDetection())
	}
	if cfg.Site.BaseURL != "" {
		opts = append(opts, richtext.WithBaseURL(cfg.Site.BaseURL))
	}

	r, err := richtext.NewRenderer(opts...)
	switch {
	case errors.Is(err, richtext.ErrInvalidHighlightStyle):
		return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(richtext.HighlightStyles()))
	case errors.Is(err, richtext.ErrInvalidBaseURL):
		return nil, fmt.Errorf("%w%s", err, hints.ForBaseURL())
	case err != nil:
		return nil, err
	}
	return r, nil
}

// newLogger picks the level from --quiet and --verbose.
func newLogger(env *Environment, f commonFlags) *log.Logger {
	level := "info"
	switch {
	case f.verbose:
		level = "debug"
	case f.quiet:
		level = "error"
	}
	return logging.New(env.Stderr, level)
}
