package main

import (
	"fmt"
	"strings"

	richtext "github.com/alnah/go-richtext"
	"github.com/alnah/go-richtext/internal/assets"
	"github.com/alnah/go-richtext/internal/config"
	"github.com/alnah/go-richtext/internal/hints"
)

// runCSS prints the stylesheet for rendered content: component styles
// from the theme, then chroma classes for highlighted code.
func runCSS(args []string, env *Environment) error {
	flags, _, err := parseCSSFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if flags.noComponents && flags.noCode {
		return fmt.Errorf("%w: --no-components and --no-code leave nothing to print", ErrUsage)
	}

	logger := newLogger(env, flags.common)
	cfg, _, err := loadSettings(flags.common.config, logger)
	if err != nil {
		return err
	}
	if flags.changed["style"] {
		cfg.Code.Style = flags.style
	}
	if flags.changed["theme"] {
		cfg.Output.Theme = flags.theme
	}
	if flags.changed["asset-path"] {
		cfg.Assets.BasePath = flags.assetPath
	}
	cfg.Code.Highlight = !flags.noCode

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	css, err := buildStylesheet(cfg, r, !flags.noComponents)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(env.Stdout, css); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// buildStylesheet concatenates the theme stylesheet (when components is
// set) and the renderer's highlighting CSS.
func buildStylesheet(cfg *config.Config, r *richtext.Renderer, components bool) (string, error) {
	var b strings.Builder

	if components {
		resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
		if err != nil {
			return "", err
		}
		theme := cfg.Output.Theme
		if theme == "" {
			theme = assets.DefaultStyleName
		}
		css, err := resolver.LoadStyle(theme)
		if err != nil {
			return "", fmt.Errorf("%w%s", err, hints.ForStyleNotFound(resolver.StyleNames()))
		}
		b.WriteString(css)
		if !strings.HasSuffix(css, "\n") {
			b.WriteByte('\n')
		}
	}

	if err := r.WriteCSS(&b); err != nil {
		return "", fmt.Errorf("writing highlight styles: %w", err)
	}
	return b.String(), nil
}
