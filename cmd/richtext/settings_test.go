package main

// Notes:
// - loadSettings reads RICHTEXT_* variables, so its tests use t.Setenv and
//   t.Chdir and do not run in parallel.

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	richtext "github.com/alnah/go-richtext"
	"github.com/alnah/go-richtext/internal/config"
	"github.com/alnah/go-richtext/internal/logging"
)

// ---------------------------------------------------------------------------
// TestLoadSettings - Config file and environment precedence
// ---------------------------------------------------------------------------

func TestLoadSettings(t *testing.T) {
	t.Run("no config uses defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, _, err := loadSettings("", logging.Discard())
		if err != nil {
			t.Fatalf("loadSettings() error = %v", err)
		}
		if cfg.Reading.WordsPerMinute != config.DefaultWordsPerMin {
			t.Errorf("WordsPerMinute = %d, want default", cfg.Reading.WordsPerMinute)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "blog.yaml"), "site:\n  host: file.example\n")
		t.Chdir(dir)
		t.Setenv("RICHTEXT_HOST", "env.example")

		cfg, _, err := loadSettings("blog", logging.Discard())
		if err != nil {
			t.Fatalf("loadSettings() error = %v", err)
		}
		if cfg.Site.Host != "env.example" {
			t.Errorf("Site.Host = %q, want env.example", cfg.Site.Host)
		}
	})

	t.Run("config name from environment", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "site.yml"), "toc:\n  title: Outline\n")
		t.Chdir(dir)
		t.Setenv("RICHTEXT_CONFIG", "site")

		cfg, _, err := loadSettings("", logging.Discard())
		if err != nil {
			t.Fatalf("loadSettings() error = %v", err)
		}
		if cfg.TOC.Title != "Outline" {
			t.Errorf("TOC.Title = %q, want Outline", cfg.TOC.Title)
		}
	})

	t.Run("missing named config carries a hint", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, _, err := loadSettings("nosuch", logging.Discard())
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error missing hint: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeContentFlags - Explicit flags override config
// ---------------------------------------------------------------------------

func TestMergeContentFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   contentFlags
		changed map[string]bool
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name:    "unset flags keep config",
			flags:   contentFlags{host: "ignored.example"},
			changed: map[string]bool{},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Site.Host != "config.example" {
					t.Errorf("Site.Host = %q, want config.example", cfg.Site.Host)
				}
			},
		},
		{
			name:    "style implies highlighting",
			flags:   contentFlags{style: "monokai"},
			changed: map[string]bool{"style": true},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Code.Highlight || cfg.Code.Style != "monokai" {
					t.Errorf("Code = %+v, want monokai highlighted", cfg.Code)
				}
			},
		},
		{
			name:    "explicit highlight=false wins over style",
			flags:   contentFlags{style: "monokai", highlight: false},
			changed: map[string]bool{"style": true, "highlight": true},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Code.Highlight {
					t.Error("Code.Highlight = true, want false")
				}
			},
		},
		{
			name:    "no-toc disables and toc-title sets",
			flags:   contentFlags{noTOC: true, tocTitle: "On this page"},
			changed: map[string]bool{"no-toc": true, "toc-title": true},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.TOC.Enabled || cfg.TOC.Title != "On this page" {
					t.Errorf("TOC = %+v", cfg.TOC)
				}
			},
		},
		{
			name:    "host base-url and markdown",
			flags:   contentFlags{host: "flag.example", baseURL: "https://flag.example/", markdown: true},
			changed: map[string]bool{"host": true, "base-url": true, "markdown": true},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Site.Host != "flag.example" || cfg.Site.BaseURL != "https://flag.example/" || !cfg.Markdown.Enabled {
					t.Errorf("Site = %+v, Markdown = %+v", cfg.Site, cfg.Markdown)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Site.Host = "config.example"
			mergeContentFlags(tt.flags, tt.changed, cfg)
			tt.check(t, cfg)
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewRenderer - Config to renderer options
// ---------------------------------------------------------------------------

func TestNewRenderer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*config.Config)
		wantErr  error
		wantHint string
	}{
		{"defaults", func(*config.Config) {}, nil, ""},
		{"highlighting", func(c *config.Config) { c.Code.Highlight = true; c.Code.Style = "monokai" }, nil, ""},
		{"unknown style lists available", func(c *config.Config) { c.Code.Highlight = true; c.Code.Style = "nope" },
			richtext.ErrInvalidHighlightStyle, "available:"},
		{"base URL without host", func(c *config.Config) { c.Site.BaseURL = "https://" },
			richtext.ErrInvalidBaseURL, "absolute http(s) URL"},
		{"out of range config", func(c *config.Config) { c.Reading.WordsPerMinute = -1 },
			config.ErrOutOfRange, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			r, err := newRenderer(cfg)
			if tt.wantErr == nil {
				if err != nil || r == nil {
					t.Fatalf("newRenderer() = %v, %v", r, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantHint != "" && !strings.Contains(err.Error(), tt.wantHint) {
				t.Errorf("error %q missing hint %q", err, tt.wantHint)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flags     commonFlags
		wantDebug bool
		wantInfo  bool
	}{
		{"default", commonFlags{}, false, true},
		{"verbose", commonFlags{verbose: true}, true, true},
		{"quiet", commonFlags{quiet: true}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			logger := newLogger(&Environment{Stderr: &stderr}, tt.flags)
			logger.Debug("debug-line")
			logger.Info("info-line")

			if got := strings.Contains(stderr.String(), "debug-line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(stderr.String(), "info-line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}
