package main

// Notes:
// - Tests use t.Setenv(), which prevents t.Parallel().
// - Invalid values are logged and ignored, never returned as errors.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-richtext/internal/config"
	"github.com/alnah/go-richtext/internal/logging"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("strings and numbers", func(t *testing.T) {
		t.Setenv("RICHTEXT_CONFIG", "blog")
		t.Setenv("RICHTEXT_HOST", "example.com")
		t.Setenv("RICHTEXT_BASE_URL", "https://example.com/blog/")
		t.Setenv("RICHTEXT_STYLE", "monokai")
		t.Setenv("RICHTEXT_THEME", "minimal")
		t.Setenv("RICHTEXT_ASSET_PATH", "/assets")
		t.Setenv("RICHTEXT_INPUT_DIR", "/in")
		t.Setenv("RICHTEXT_OUTPUT_DIR", "/out")
		t.Setenv("RICHTEXT_WORKERS", "4")
		t.Setenv("RICHTEXT_MAX_INPUT_SIZE", "1024")
		t.Setenv("RICHTEXT_WORDS_PER_MINUTE", "250")

		cfg := loadEnvConfig(logging.Discard())

		checks := []struct {
			name string
			got  any
			want any
		}{
			{"ConfigPath", cfg.ConfigPath, "blog"},
			{"Host", cfg.Host, "example.com"},
			{"BaseURL", cfg.BaseURL, "https://example.com/blog/"},
			{"Style", cfg.Style, "monokai"},
			{"Theme", cfg.Theme, "minimal"},
			{"AssetPath", cfg.AssetPath, "/assets"},
			{"InputDir", cfg.InputDir, "/in"},
			{"OutputDir", cfg.OutputDir, "/out"},
			{"Workers", cfg.Workers, 4},
			{"MaxInputSize", cfg.MaxInputSize, 1024},
			{"WordsPerMinute", cfg.WordsPerMinute, 250},
		}
		for _, c := range checks {
			if c.got != c.want {
				t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
			}
		}
	})

	t.Run("booleans", func(t *testing.T) {
		t.Setenv("RICHTEXT_HIGHLIGHT", "true")
		t.Setenv("RICHTEXT_MARKDOWN", "0")

		cfg := loadEnvConfig(logging.Discard())

		if cfg.Highlight == nil || !*cfg.Highlight {
			t.Errorf("Highlight = %v, want true", cfg.Highlight)
		}
		if cfg.Markdown == nil || *cfg.Markdown {
			t.Errorf("Markdown = %v, want false", cfg.Markdown)
		}
	})

	t.Run("unset booleans stay nil", func(t *testing.T) {
		cfg := loadEnvConfig(logging.Discard())
		if cfg.Highlight != nil || cfg.Markdown != nil {
			t.Errorf("Highlight = %v, Markdown = %v, want nil", cfg.Highlight, cfg.Markdown)
		}
	})

	t.Run("invalid values are ignored with a warning", func(t *testing.T) {
		t.Setenv("RICHTEXT_HIGHLIGHT", "sometimes")
		t.Setenv("RICHTEXT_WORKERS", "-2")
		t.Setenv("RICHTEXT_MAX_INPUT_SIZE", "big")

		var buf bytes.Buffer
		cfg := loadEnvConfig(logging.New(&buf, "warn"))

		if cfg.Highlight != nil {
			t.Errorf("Highlight = %v, want nil", *cfg.Highlight)
		}
		if cfg.Workers != 0 || cfg.MaxInputSize != 0 {
			t.Errorf("Workers = %d, MaxInputSize = %d, want 0", cfg.Workers, cfg.MaxInputSize)
		}
		for _, name := range []string{"RICHTEXT_HIGHLIGHT", "RICHTEXT_WORKERS", "RICHTEXT_MAX_INPUT_SIZE"} {
			if !strings.Contains(buf.String(), name) {
				t.Errorf("log missing warning for %s:\n%s", name, buf.String())
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("RICHTEXT_HOSTNAME", "typo.example")
	t.Setenv("RICHTEXT_HOST", "example.com")

	var buf bytes.Buffer
	warnUnknownEnvVars(logging.New(&buf, "warn"))

	out := buf.String()
	if !strings.Contains(out, "RICHTEXT_HOSTNAME") {
		t.Errorf("expected warning for RICHTEXT_HOSTNAME, got:\n%s", out)
	}
	if strings.Contains(out, "RICHTEXT_HOST ") || strings.Contains(out, "RICHTEXT_HOST\n") {
		t.Errorf("known variable RICHTEXT_HOST should not warn:\n%s", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment overrides config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override", func(t *testing.T) {
		t.Parallel()

		yes := true
		cfg := config.DefaultConfig()
		cfg.Site.Host = "file.example"
		applyEnvConfig(&envConfig{
			Host:           "env.example",
			Style:          "monokai",
			Theme:          "minimal",
			Highlight:      &yes,
			MaxInputSize:   2048,
			WordsPerMinute: 300,
		}, cfg)

		if cfg.Site.Host != "env.example" {
			t.Errorf("Site.Host = %q, want env.example", cfg.Site.Host)
		}
		if cfg.Code.Style != "monokai" || !cfg.Code.Highlight {
			t.Errorf("Code = %+v, want monokai highlighted", cfg.Code)
		}
		if cfg.Output.Theme != "minimal" {
			t.Errorf("Output.Theme = %q, want minimal", cfg.Output.Theme)
		}
		if cfg.Limits.MaxInputSize != 2048 || cfg.Reading.WordsPerMinute != 300 {
			t.Errorf("Limits = %+v, Reading = %+v", cfg.Limits, cfg.Reading)
		}
	})

	t.Run("empty values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Site.Host = "file.example"
		cfg.Code.Highlight = true
		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Site.Host != "file.example" {
			t.Errorf("Site.Host = %q, want file.example", cfg.Site.Host)
		}
		if !cfg.Code.Highlight {
			t.Error("Code.Highlight reset by unset env")
		}
	})
}
