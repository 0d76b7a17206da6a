package main

import (
	"context"
	"fmt"

	richtext "github.com/alnah/go-richtext"
	"github.com/alnah/go-richtext/internal/config"
)

// runStrip prints the plain text of each input, shortcodes removed.
func runStrip(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseStripFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	logger := newLogger(env, flags.common)
	cfg, _, err := loadSettings(flags.common.config, logger)
	if err != nil {
		return err
	}
	if flags.changed["markdown"] {
		cfg.Markdown.Enabled = flags.markdown
	}

	r, err := newRenderer(stripConfig(cfg))
	if err != nil {
		return err
	}

	paths, err := expandInputs(positional)
	if err != nil {
		return err
	}

	for _, path := range paths {
		src, err := readSource(path, env.Stdin, cfg.Limits.MaxInputSize)
		if err != nil {
			return err
		}
		text, err := stripSource(ctx, r, src, cfg.Markdown.Enabled)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(env.Stdout, text); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	return nil
}

// stripConfig drops options that only affect rendered markup, so the
// Markdown converter runs without highlighting.
func stripConfig(cfg *config.Config) *config.Config {
	cp := *cfg
	cp.Code.Highlight = false
	cp.Site.BaseURL = ""
	return &cp
}

// stripSource reduces src to plain text. Markdown is converted first so
// its syntax does not leak into the text.
func stripSource(ctx context.Context, r *richtext.Renderer, src *source, markdown bool) (string, error) {
	content := src.Content
	if markdown || src.Markdown {
		html, err := r.MarkdownToHTML(ctx, content)
		if err != nil {
			return "", fmt.Errorf("%s: %w", src.Path, err)
		}
		content = html
	}
	return richtext.PlainText(content), nil
}
