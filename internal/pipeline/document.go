package pipeline

import (
	"html"
	"strings"
)

// documentHead and documentTail wrap a rendered fragment in an HTML5 page.
const (
	documentHead = "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>"
	documentTail = "\n</body>\n</html>\n"
)

// WrapDocument turns a rendered fragment into a standalone page, with css
// in a <style> block when non-empty. An empty title falls back to "Document".
func WrapDocument(fragment, title, css string) string {
	if title == "" {
		title = "Document"
	}

	var b strings.Builder
	b.Grow(len(fragment) + len(css) + 128)
	b.WriteString(documentHead)
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n")
	if css != "" {
		b.WriteString("<style>")
		b.WriteString(sanitizeCSS(css))
		b.WriteString("</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(fragment)
	b.WriteString(documentTail)
	return b.String()
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
