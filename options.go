package richtext

import (
	"context"
	"fmt"

	"github.com/alnah/go-richtext/internal/pipeline"
)

// Defaults applied by NewRenderer.
const (
	DefaultImageClass     = pipeline.DefaultImageClass
	DefaultLinkClass      = pipeline.DefaultLinkClass
	DefaultTOCTitle       = pipeline.DefaultTOCTitle
	DefaultMinHeadings    = pipeline.DefaultMinHeadings
	DefaultHighlightStyle = pipeline.DefaultHighlightStyle
	DefaultWordsPerMinute = pipeline.DefaultWordsPerMinute
	DefaultExcerptLength  = pipeline.DefaultExcerptLength

	// DefaultMaxInputSize bounds RenderDocument input, in bytes.
	DefaultMaxInputSize = 5 << 20

	// maxClassLength keeps injected class lists reasonable.
	maxClassLength = 256
)

// markdownConverter converts Markdown to an HTML fragment.
type markdownConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Compile-time interface implementation checks.
var (
	_ markdownConverter     = (*pipeline.MarkdownConverter)(nil)
	_ pipeline.Highlighter  = (*pipeline.ChromaHighlighter)(nil)
	_ pipeline.AttrDetector = pipeline.TokenizerDetector{}
)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds the settings collected from options.
type rendererConfig struct {
	host           string
	imageClass     string
	linkClass      string
	tocTitle       string
	minHeadings    int
	tocDisabled    bool
	highlight      bool
	highlightStyle string
	markdown       bool
	strictAttrs    bool
	wordsPerMinute int
	excerptLength  int
	maxInputSize   int
	baseURL        string
}

func defaultConfig() rendererConfig {
	return rendererConfig{
		imageClass:     DefaultImageClass,
		linkClass:      DefaultLinkClass,
		tocTitle:       DefaultTOCTitle,
		minHeadings:    DefaultMinHeadings,
		highlightStyle: DefaultHighlightStyle,
		wordsPerMinute: DefaultWordsPerMinute,
		excerptLength:  DefaultExcerptLength,
		maxInputSize:   DefaultMaxInputSize,
	}
}

// validate rejects values no render could honor.
func (c rendererConfig) validate() error {
	switch {
	case c.imageClass == "" || len(c.imageClass) > maxClassLength:
		return fmt.Errorf("%w: image class must be 1-%d characters", ErrInvalidOption, maxClassLength)
	case c.linkClass == "" || len(c.linkClass) > maxClassLength:
		return fmt.Errorf("%w: link class must be 1-%d characters", ErrInvalidOption, maxClassLength)
	case c.minHeadings < 1:
		return fmt.Errorf("%w: minimum TOC headings must be at least 1, got %d", ErrInvalidOption, c.minHeadings)
	case c.wordsPerMinute < 1:
		return fmt.Errorf("%w: words per minute must be positive, got %d", ErrInvalidOption, c.wordsPerMinute)
	case c.excerptLength < 0:
		return fmt.Errorf("%w: excerpt length must not be negative, got %d", ErrInvalidOption, c.excerptLength)
	case c.maxInputSize < 1:
		return fmt.Errorf("%w: max input size must be positive, got %d", ErrInvalidOption, c.maxInputSize)
	}
	return nil
}

// WithHost sets the site host used to tell internal links from external ones.
func WithHost(host string) Option {
	return func(r *Renderer) {
		r.cfg.host = host
	}
}

// WithImageClass sets the class added to images that have none.
func WithImageClass(class string) Option {
	return func(r *Renderer) {
		r.cfg.imageClass = class
	}
}

// WithLinkClass sets the class added to external links that have none.
func WithLinkClass(class string) Option {
	return func(r *Renderer) {
		r.cfg.linkClass = class
	}
}

// WithTOCTitle sets the table of contents heading.
func WithTOCTitle(title string) Option {
	return func(r *Renderer) {
		r.cfg.tocTitle = title
	}
}

// WithTOCMinHeadings sets how many headings a document needs before it
// gets a table of contents.
func WithTOCMinHeadings(n int) Option {
	return func(r *Renderer) {
		r.cfg.minHeadings = n
	}
}

// WithoutTOC disables heading anchors and the table of contents.
func WithoutTOC() Option {
	return func(r *Renderer) {
		r.cfg.tocDisabled = true
	}
}

// WithHighlighting enables chroma highlighting for code blocks.
// An empty style selects DefaultHighlightStyle.
func WithHighlighting(style string) Option {
	return func(r *Renderer) {
		r.cfg.highlight = true
		if style != "" {
			r.cfg.highlightStyle = style
		}
	}
}

// WithMarkdown treats every input as Markdown.
func WithMarkdown() Option {
	return func(r *Renderer) {
		r.cfg.markdown = true
	}
}

// WithStrictAttributeDetection parses tags with an HTML tokenizer to
// decide whether class, loading, rel or target are already set, instead
// of the faster name="..." heuristic.
func WithStrictAttributeDetection() Option {
	return func(r *Renderer) {
		r.cfg.strictAttrs = true
	}
}

// WithWordsPerMinute sets the reading speed for reading-time estimates.
func WithWordsPerMinute(n int) Option {
	return func(r *Renderer) {
		r.cfg.wordsPerMinute = n
	}
}

// WithExcerptLength sets the excerpt length used by RenderDocument.
func WithExcerptLength(n int) Option {
	return func(r *Renderer) {
		r.cfg.excerptLength = n
	}
}

// WithMaxInputSize bounds RenderDocument input, in bytes.
func WithMaxInputSize(n int) Option {
	return func(r *Renderer) {
		r.cfg.maxInputSize = n
	}
}

// WithBaseURL resolves relative image and link URLs against base, for
// content published away from the site (feeds, newsletters).
func WithBaseURL(base string) Option {
	return func(r *Renderer) {
		r.cfg.baseURL = base
	}
}

// withMarkdownConverter injects a converter (for testing).
func withMarkdownConverter(conv markdownConverter) Option {
	return func(r *Renderer) {
		r.markdown = conv
	}
}
