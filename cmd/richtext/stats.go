package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	richtext "github.com/alnah/go-richtext"
	"github.com/alnah/go-richtext/internal/fileutil"
	"github.com/alnah/go-richtext/internal/logging"
	"github.com/alnah/go-richtext/internal/yamlutil"
)

// docStats is the YAML record printed per document.
type docStats struct {
	File        string        `yaml:"file"`
	Title       string        `yaml:"title,omitempty"`
	Words       int           `yaml:"words"`
	ReadingTime int           `yaml:"readingTime"`
	Excerpt     string        `yaml:"excerpt"`
	Headings    []headingStat `yaml:"headings,omitempty"`
}

type headingStat struct {
	Level int    `yaml:"level"`
	Text  string `yaml:"text"`
	Slug  string `yaml:"slug"`
}

// runStats prints word count, reading time, excerpt and outline as YAML.
func runStats(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseStatsFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	logger := newLogger(env, flags.common)
	cfg, _, err := loadSettings(flags.common.config, logger)
	if err != nil {
		return err
	}
	mergeContentFlags(flags.content, flags.changed, cfg)

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	paths, err := expandInputs(positional)
	if err != nil {
		return err
	}

	stats := make([]docStats, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := readSource(path, env.Stdin, cfg.Limits.MaxInputSize)
		if err != nil {
			return err
		}
		s, err := statsFor(ctx, r, src)
		if err != nil {
			return err
		}
		logger.Debug("measured", logging.FieldInput, path, logging.FieldWords, s.Words, logging.FieldHeadings, len(s.Headings))
		stats = append(stats, s)
	}

	var out any = stats
	if len(stats) == 1 {
		out = stats[0]
	}
	if err := yamlutil.Encode(env.Stdout, out); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// statsFor renders src and collects its statistics.
func statsFor(ctx context.Context, r *richtext.Renderer, src *source) (docStats, error) {
	res, err := r.RenderDocument(ctx, richtext.Input{Content: src.Content, Markdown: src.Markdown})
	if err != nil {
		return docStats{}, fmt.Errorf("%s: %w", src.Path, err)
	}

	s := docStats{
		File:        src.Path,
		Title:       src.Meta.Title,
		Words:       res.WordCount,
		ReadingTime: res.ReadingTime,
		Excerpt:     res.Excerpt,
	}
	for _, h := range res.Headings {
		s.Headings = append(s.Headings, headingStat{Level: h.Level, Text: h.Text, Slug: h.Slug})
	}
	return s, nil
}

// expandInputs turns positional arguments into source paths. No
// arguments means stdin; directories expand to the content files
// they contain.
func expandInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{stdinPath}, nil
	}

	var paths []string
	for _, arg := range args {
		if arg == stdinPath {
			paths = append(paths, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && fileutil.IsContentFile(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
	}
	return paths, nil
}
