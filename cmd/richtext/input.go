package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-richtext/internal/fileutil"
	"github.com/alnah/go-richtext/internal/yamlutil"
)

// stdinPath selects standard input as the source.
const stdinPath = "-"

// Sentinel errors for reading and writing content.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadInput        = errors.New("failed to read input")
	ErrWriteOutput      = errors.New("failed to write output")
	ErrFrontMatter      = errors.New("invalid front matter")
	ErrUnsupportedInput = errors.New("unsupported input file")
)

// frontMatter is the optional YAML block at the top of a source file.
type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// source is one loaded input document.
type source struct {
	Path     string
	Content  string
	Markdown bool
	Meta     frontMatter
}

// readSource loads path, or stdin for "-", reading at most limit+1 bytes
// so oversized input still trips the renderer's size check.
func readSource(path string, stdin io.Reader, limit int) (*source, error) {
	r := stdin
	if path != stdinPath {
		f, err := os.Open(path) // #nosec G304 -- user-provided input path
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}

	meta, body, err := yamlutil.SplitFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFrontMatter, path, err)
	}

	src := &source{
		Path:     path,
		Content:  string(body),
		Markdown: fileutil.IsMarkdown(path),
	}
	if len(bytes.TrimSpace(meta)) > 0 {
		if err := yamlutil.Unmarshal(meta, &src.Meta); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFrontMatter, path, err)
		}
	}
	return src, nil
}

// title picks the page title: front matter, then the file name.
func (s *source) title() string {
	if s.Meta.Title != "" {
		return s.Meta.Title
	}
	if s.Path == stdinPath {
		return ""
	}
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
