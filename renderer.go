package richtext

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alnah/go-richtext/internal/pipeline"
)

// Renderer turns author content into publishable HTML.
// It is immutable after construction and safe for concurrent use.
type Renderer struct {
	cfg         rendererConfig
	pipe        *pipeline.Pipeline
	highlighter *pipeline.ChromaHighlighter
	markdown    markdownConverter
}

// NewRenderer creates a Renderer with default configuration.
// Returns ErrInvalidOption or ErrInvalidHighlightStyle when an option
// carries a value no render could honor.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{cfg: defaultConfig()}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.cfg.validate(); err != nil {
		return nil, err
	}

	pipeOpts := pipeline.Options{
		Host:       r.cfg.host,
		ImageClass: r.cfg.imageClass,
		LinkClass:  r.cfg.linkClass,
		TOC: pipeline.TOCBuilder{
			Title:       r.cfg.tocTitle,
			MinHeadings: r.cfg.minHeadings,
		},
		DisableTOC: r.cfg.tocDisabled,
	}

	if r.cfg.strictAttrs {
		pipeOpts.Detector = pipeline.TokenizerDetector{}
	}

	if r.cfg.highlight {
		hl, err := pipeline.NewChromaHighlighter(r.cfg.highlightStyle)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHighlightStyle, err)
		}
		r.highlighter = hl
		pipeOpts.Highlighter = hl
	}

	if r.cfg.baseURL != "" {
		base, err := pipeline.ParseBaseURL(r.cfg.baseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
		}
		pipeOpts.BaseURL = base
	}

	if r.markdown == nil {
		r.markdown = pipeline.NewMarkdownConverter(r.cfg.highlight)
	}

	r.pipe = pipeline.New(pipeOpts)
	return r, nil
}

// Render runs every pass over content and returns the enhanced HTML.
// Unrecognized input passes through unchanged; Render never fails.
func (r *Renderer) Render(content string) string {
	return r.pipe.Render(content)
}

// ForHost returns a copy of r bound to the host of the current request.
func (r *Renderer) ForHost(host string) *Renderer {
	cp := *r
	cp.cfg.host = host
	cp.pipe = r.pipe.WithHost(host)
	return &cp
}

// Host returns the host external links are compared against.
func (r *Renderer) Host() string {
	return r.cfg.host
}

// RenderDocument renders input and derives its outline, excerpt, word
// count and reading time. It is the guarded entry point for untrusted
// sizes: input over the configured maximum fails with ErrContentTooLarge.
func (r *Renderer) RenderDocument(ctx context.Context, input Input) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(input.Content) > r.cfg.maxInputSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrContentTooLarge, len(input.Content), r.cfg.maxInputSize)
	}

	source := input.Content
	if r.cfg.markdown || input.Markdown {
		html, err := r.MarkdownToHTML(ctx, source)
		if err != nil {
			return nil, err
		}
		source = html
	}

	rr := r
	if input.Host != "" {
		rr = r.ForHost(input.Host)
	}

	html := rr.Render(source)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	excerpt, err := pipeline.Excerpt(source, r.cfg.excerptLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	words := pipeline.CountWords(source)

	return &Result{
		HTML:        html,
		Headings:    toHeadings(pipeline.ExtractHeadings(html)),
		Excerpt:     excerpt,
		WordCount:   words,
		ReadingTime: pipeline.ReadingMinutes(words, r.cfg.wordsPerMinute),
	}, nil
}

// MarkdownToHTML converts Markdown to an HTML fragment without running
// the rendering passes. Shortcodes come back exactly as written.
// Cancellation errors are returned as is; other failures wrap
// ErrMarkdownConversion.
func (r *Renderer) MarkdownToHTML(ctx context.Context, content string) (string, error) {
	html, err := r.markdown.ToHTML(ctx, content)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	return html, nil
}

// Excerpt returns the plain-text excerpt at the configured length.
func (r *Renderer) Excerpt(content string) string {
	// excerptLength is validated non-negative, so this cannot fail.
	excerpt, _ := pipeline.Excerpt(content, r.cfg.excerptLength)
	return excerpt
}

// ReadingTime estimates reading minutes at the configured speed.
func (r *Renderer) ReadingTime(content string) int {
	return pipeline.EstimateReadingTime(content, r.cfg.wordsPerMinute)
}

// WriteCSS writes the stylesheet for highlighted code blocks.
// It writes nothing when highlighting is disabled.
func (r *Renderer) WriteCSS(w io.Writer) error {
	if r.highlighter == nil {
		return nil
	}
	return r.highlighter.WriteCSS(w)
}
