package pipeline

import (
	"html"
	"regexp"
	"strings"
)

// Default attribute values for the built-in directives.
const (
	DefaultButtonStyle  = "primary"
	DefaultCalloutType  = "info"
	DefaultCodeLanguage = "text"
	DefaultVideoWidth   = "560"
	DefaultVideoHeight  = "315"
)

// buttonClasses maps the style attribute to CSS classes.
var buttonClasses = map[string]string{
	"primary":   "btn btn-primary",
	"secondary": "btn btn-secondary",
	"success":   "btn btn-success",
	"danger":    "btn btn-danger",
}

// calloutClasses maps the type attribute to CSS classes.
var calloutClasses = map[string]string{
	"info":    "callout callout-info",
	"warning": "callout callout-warning",
	"error":   "callout callout-error",
	"success": "callout callout-success",
}

var (
	digitsPattern    = regexp.MustCompile(`^[0-9]{1,4}$`)
	youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// ContentShortcodes are expanded in the first directive pass.
func ContentShortcodes() Catalog {
	return Catalog{
		{Name: "button", Required: []string{"url", "text"}, Render: renderButton},
		{Name: "highlight", Required: []string{"text"}, Render: renderHighlight},
		{Name: "quote", Paired: true, Render: renderQuote},
		{Name: "callout", Paired: true, Render: renderCallout},
	}
}

// EmbedShortcodes are expanded after code samples are rendered.
func EmbedShortcodes() Catalog {
	return Catalog{
		{Name: "figure", Required: []string{"src"}, Render: renderFigure},
		{Name: "youtube", Required: []string{"id"}, Render: renderYouTube},
		{Name: "twitter", Required: []string{"url"}, Render: renderTwitter},
	}
}

// ShortcodeNames lists every directive name the pipeline understands,
// including the code block handled by the code pass.
func ShortcodeNames() []string {
	names := []string{"code"}
	for _, c := range ContentShortcodes() {
		names = append(names, c.Name)
	}
	for _, c := range EmbedShortcodes() {
		names = append(names, c.Name)
	}
	return names
}

func renderButton(m Match) (string, bool) {
	url, _ := m.Attrs.Get("url")
	text, _ := m.Attrs.Get("text")

	class, ok := buttonClasses[strings.ToLower(m.Attrs.Value("style", DefaultButtonStyle))]
	if !ok {
		class = buttonClasses[DefaultButtonStyle]
	}

	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(url))
	b.WriteString(`" class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(text))
	b.WriteString(`</a>`)
	return b.String(), true
}

func renderHighlight(m Match) (string, bool) {
	text, _ := m.Attrs.Get("text")
	return "<mark>" + html.EscapeString(text) + "</mark>", true
}

func renderQuote(m Match) (string, bool) {
	var b strings.Builder
	b.WriteString(`<blockquote class="blockquote">`)
	b.WriteString("\n<p>")
	b.WriteString(escapeMultiline(m.Body))
	b.WriteString("</p>\n")

	if footer := quoteAttribution(m.Attrs.Value("author", ""), m.Attrs.Value("source", "")); footer != "" {
		b.WriteString(`<footer class="blockquote-footer">`)
		b.WriteString(footer)
		b.WriteString("</footer>\n")
	}

	b.WriteString("</blockquote>")
	return b.String(), true
}

// quoteAttribution builds the escaped footer line of a quote.
func quoteAttribution(author, source string) string {
	switch {
	case author != "" && source != "":
		return "— " + html.EscapeString(author) + ", " + html.EscapeString(source)
	case author != "":
		return "— " + html.EscapeString(author)
	case source != "":
		return "— " + html.EscapeString(source)
	}
	return ""
}

func renderCallout(m Match) (string, bool) {
	class, ok := calloutClasses[strings.ToLower(m.Attrs.Value("type", DefaultCalloutType))]
	if !ok {
		class = calloutClasses[DefaultCalloutType]
	}

	var b strings.Builder
	b.WriteString(`<div class="`)
	b.WriteString(class)
	b.WriteString(`" role="note">`)
	b.WriteByte('\n')

	// Title is not an <hN> so it never shows up in the table of contents.
	if title := m.Attrs.Value("title", ""); title != "" {
		b.WriteString(`<div class="callout-title"><strong>`)
		b.WriteString(html.EscapeString(title))
		b.WriteString("</strong></div>\n")
	}

	b.WriteString(`<div class="callout-body">`)
	b.WriteString(escapeMultiline(m.Body))
	b.WriteString("</div>\n</div>")
	return b.String(), true
}

func renderFigure(m Match) (string, bool) {
	src, _ := m.Attrs.Get("src")

	var b strings.Builder
	b.WriteString(`<figure class="figure">`)
	b.WriteString(`<img src="`)
	b.WriteString(html.EscapeString(src))
	b.WriteString(`" alt="`)
	b.WriteString(html.EscapeString(m.Attrs.Value("alt", "")))
	b.WriteString(`" class="figure-img img-fluid" loading="lazy">`)

	if caption := m.Attrs.Value("caption", ""); caption != "" {
		b.WriteString(`<figcaption class="figure-caption">`)
		b.WriteString(html.EscapeString(caption))
		b.WriteString(`</figcaption>`)
	}

	b.WriteString(`</figure>`)
	return b.String(), true
}

func renderYouTube(m Match) (string, bool) {
	id, _ := m.Attrs.Get("id")
	if !youtubeIDPattern.MatchString(id) {
		return "", false
	}

	width := m.Attrs.Value("width", DefaultVideoWidth)
	if !digitsPattern.MatchString(width) {
		width = DefaultVideoWidth
	}
	height := m.Attrs.Value("height", DefaultVideoHeight)
	if !digitsPattern.MatchString(height) {
		height = DefaultVideoHeight
	}

	var b strings.Builder
	b.WriteString(`<div class="video-embed">`)
	b.WriteString(`<iframe src="https://www.youtube-nocookie.com/embed/`)
	b.WriteString(id)
	b.WriteString(`" width="`)
	b.WriteString(width)
	b.WriteString(`" height="`)
	b.WriteString(height)
	b.WriteString(`" title="YouTube video" frameborder="0"`)
	b.WriteString(` allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"`)
	b.WriteString(` allowfullscreen loading="lazy"></iframe></div>`)
	return b.String(), true
}

func renderTwitter(m Match) (string, bool) {
	url, _ := m.Attrs.Get("url")

	var b strings.Builder
	b.WriteString(`<blockquote class="twitter-tweet"><a href="`)
	b.WriteString(html.EscapeString(url))
	b.WriteString(`" target="_blank" rel="noopener noreferrer">View tweet</a></blockquote>`)
	return b.String(), true
}

// escapeMultiline escapes a paired-directive body and keeps its line breaks.
func escapeMultiline(body string) string {
	body = strings.TrimSpace(body)
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	return strings.ReplaceAll(html.EscapeString(body), "\n", "<br>\n")
}
