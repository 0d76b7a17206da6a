package pipeline

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ErrUnknownStyle indicates the requested chroma style does not exist.
var ErrUnknownStyle = errors.New("unknown highlight style")

// ChromaHighlighter highlights code samples with chroma using CSS classes,
// so the page stylesheet controls colors (see WriteCSS).
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// Compile-time interface implementation check.
var _ Highlighter = (*ChromaHighlighter)(nil)

// NewChromaHighlighter creates a highlighter for a named chroma style.
// An empty name selects DefaultHighlightStyle.
func NewChromaHighlighter(styleName string) (*ChromaHighlighter, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}

	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}

	return &ChromaHighlighter{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true), // the caller writes <pre><code>
		),
	}, nil
}

// Highlight tokenises code with the lexer registered for lang.
// Unknown languages and tokeniser failures report false.
func (h *ChromaHighlighter) Highlight(code, lang string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", false
	}
	return b.String(), true
}

// WriteCSS writes the stylesheet matching the highlighter's classes.
func (h *ChromaHighlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

// StyleNames lists the available chroma styles in alphabetical order.
func StyleNames() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
