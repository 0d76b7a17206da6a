package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownConversion indicates goldmark failed to convert the input.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// Shortcode placeholders used while goldmark runs. They are distinct from
// the code placeholders so both can coexist in one render.
const (
	DirectiveStartPlaceholder = "\uE004"
	DirectiveEndPlaceholder   = "\uE005"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	directivePlaceholderPattern = regexp.MustCompile(DirectiveStartPlaceholder + `([0-9]+)` + DirectiveEndPlaceholder)
	blockPlaceholderPattern     = regexp.MustCompile(`<p>(` + DirectiveStartPlaceholder + `[0-9]+` + DirectiveEndPlaceholder + `)</p>`)

	// renderedCodePattern matches code elements produced by goldmark.
	renderedCodePattern = regexp.MustCompile(`(?is)<pre\b[^>]*>.*?</pre>|<code\b[^>]*>.*?</code>`)

	// directivePattern matches whole directives, paired bodies included.
	directivePattern = buildDirectivePattern()
)

// buildDirectivePattern combines every catalog entry into one scanner.
// RE2 has no back-references, so each paired name gets its own branch.
func buildDirectivePattern() *regexp.Regexp {
	// Markdown code comes first so directives inside it are skipped.
	branches := []string{"```.*?```", "~~~.*?~~~", "`[^`\n]+`"}
	var single []string
	for _, name := range []string{"code", "quote", "callout"} {
		q := regexp.QuoteMeta(name)
		branches = append(branches, `\[`+q+`(?:\s[^\]]*)?\].*?\[/`+q+`\]`)
	}
	for _, sc := range append(ContentShortcodes(), EmbedShortcodes()...) {
		if !sc.Paired {
			single = append(single, regexp.QuoteMeta(sc.Name))
		}
	}
	branches = append(branches, `\[(?:`+strings.Join(single, "|")+`)(?:\s[^\]]*)?\]`)
	return regexp.MustCompile(`(?s)` + strings.Join(branches, "|"))
}

// MarkdownConverter turns Markdown with embedded shortcodes into an HTML
// fragment the pipeline can process. Shortcodes reach the pipeline verbatim.
type MarkdownConverter struct {
	md goldmark.Markdown
}

// NewMarkdownConverter creates a converter with GFM extensions. Fenced code
// is highlighted with chroma classes when highlight is true.
func NewMarkdownConverter(highlight bool) *MarkdownConverter {
	extensions := []goldmark.Extender{
		extension.GFM,
		extension.Footnote,
	}
	if highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(), // authors mix raw HTML with Markdown
		),
	)
	return &MarkdownConverter{md: md}
}

// ToHTML converts content. Goldmark has no context support, so conversion
// runs in a goroutine and the call returns early on cancellation.
func (c *MarkdownConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	content, directives := protectDirectives(content)

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		out := neutralizeRenderedCode(buf.String())
		done <- result{html: restoreDirectives(out, directives)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// protectDirectives swaps shortcodes for placeholders so goldmark neither
// escapes their quotes nor parses their brackets as links.
func protectDirectives(content string) (string, []string) {
	content = strings.NewReplacer(DirectiveStartPlaceholder, "", DirectiveEndPlaceholder, "").Replace(content)
	if !strings.Contains(content, "[") {
		return content, nil
	}

	var directives []string
	content = directivePattern.ReplaceAllStringFunc(content, func(match string) string {
		if match[0] == '`' || match[0] == '~' {
			return match
		}
		directives = append(directives, match)
		return DirectiveStartPlaceholder + strconv.Itoa(len(directives)-1) + DirectiveEndPlaceholder
	})
	return content, directives
}

// restoreDirectives puts the shortcodes back. A directive alone in its
// paragraph is unwrapped so block output is not nested inside <p>.
func restoreDirectives(content string, directives []string) string {
	if len(directives) == 0 {
		return content
	}
	content = blockPlaceholderPattern.ReplaceAllString(content, "$1")
	return directivePlaceholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		idx, err := strconv.Atoi(match[len(DirectiveStartPlaceholder) : len(match)-len(DirectiveEndPlaceholder)])
		if err != nil || idx < 0 || idx >= len(directives) {
			return ""
		}
		return directives[idx]
	})
}

// neutralizeRenderedCode encodes brackets and backticks inside goldmark's
// code output so later passes treat them as text.
func neutralizeRenderedCode(content string) string {
	if !strings.Contains(content, "<pre") && !strings.Contains(content, "<code") {
		return content
	}
	r := strings.NewReplacer("`", "&#96;", "[", "&#91;", "]", "&#93;")
	return renderedCodePattern.ReplaceAllStringFunc(content, r.Replace)
}
