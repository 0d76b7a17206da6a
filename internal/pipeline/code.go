package pipeline

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Code placeholders use Unicode Private Use Area characters so they can
// travel through the other passes without being matched or escaped.
const (
	CodeStartPlaceholder = "\uE002"
	CodeEndPlaceholder   = "\uE003"
)

var (
	// codeSpanPattern matches a [code] block or a single-line backtick span.
	codeSpanPattern = regexp.MustCompile("(?s)\\[code(\\s[^\\]]*)?\\](.*?)\\[/code\\]|`([^`\\n]+)`")

	codePlaceholderPattern = regexp.MustCompile(CodeStartPlaceholder + `([0-9]+)` + CodeEndPlaceholder)
)

// Highlighter renders a code sample as escaped, highlighted HTML.
// Returning false makes the caller fall back to plain escaping.
type Highlighter interface {
	Highlight(code, lang string) (string, bool)
}

// codeSpan is a code sample lifted out of the content.
type codeSpan struct {
	raw   string
	block bool
	attrs Attrs
	body  string
	html  string // rendered output, empty until the code pass runs
}

// CodeShield holds the code samples of a single render call.
// It is not safe for concurrent use; create one per render.
type CodeShield struct {
	spans []codeSpan
}

// Shield replaces code samples with placeholders so that earlier passes
// leave their contents alone.
func (s *CodeShield) Shield(content string) string {
	// Placeholder characters in author input would alias our own markers.
	content = strings.NewReplacer(CodeStartPlaceholder, "", CodeEndPlaceholder, "").Replace(content)

	if !strings.Contains(content, "[code") && !strings.Contains(content, "`") {
		return content
	}

	return codeSpanPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := codeSpanPattern.FindStringSubmatch(match)
		span := codeSpan{raw: match}
		if strings.HasPrefix(match, "[code") {
			span.block = true
			span.attrs = ParseAttrs(m[1])
			span.body = m[2]
		} else {
			span.body = m[3]
		}
		s.spans = append(s.spans, span)
		return CodeStartPlaceholder + strconv.Itoa(len(s.spans)-1) + CodeEndPlaceholder
	})
}

// Render turns every shielded sample into HTML. Placeholders stay in place
// until Restore so the embed pass cannot look inside code.
func (s *CodeShield) Render(hl Highlighter) {
	for i := range s.spans {
		span := &s.spans[i]
		if span.block {
			span.html = renderCodeBlock(span.body, span.attrs.Value("lang", DefaultCodeLanguage), hl)
		} else {
			span.html = "<code>" + html.EscapeString(span.body) + "</code>"
		}
	}
}

// Restore substitutes placeholders with rendered samples, or with the
// original text when Render was never called.
func (s *CodeShield) Restore(content string) string {
	if len(s.spans) == 0 {
		return content
	}
	return codePlaceholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		idx, err := strconv.Atoi(match[len(CodeStartPlaceholder) : len(match)-len(CodeEndPlaceholder)])
		if err != nil || idx < 0 || idx >= len(s.spans) {
			return ""
		}
		span := s.spans[idx]
		if span.html != "" {
			return span.html
		}
		return span.raw
	})
}

// RenderCode renders [code] blocks and inline backtick code in one sweep.
// Code bodies are never scanned for other directives.
func RenderCode(content string, hl Highlighter) string {
	var s CodeShield
	content = s.Shield(content)
	s.Render(hl)
	return s.Restore(content)
}

// renderCodeBlock builds the <pre><code> element for a block sample.
func renderCodeBlock(body, lang string, hl Highlighter) string {
	body = strings.Trim(body, "\r\n")

	var inner string
	if hl != nil {
		if out, ok := hl.Highlight(body, lang); ok {
			inner = out
		}
	}
	if inner == "" {
		inner = html.EscapeString(body)
	}

	var b strings.Builder
	b.WriteString(`<pre><code class="language-`)
	b.WriteString(html.EscapeString(lang))
	b.WriteString(`">`)
	b.WriteString(inner)
	b.WriteString(`</code></pre>`)
	return b.String()
}
