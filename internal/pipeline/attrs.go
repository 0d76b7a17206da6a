package pipeline

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Default classes injected by the attribute passes.
const (
	DefaultImageClass = "img-fluid"
	DefaultLinkClass  = "external-link"
)

var (
	// imgTagPattern and anchorTagPattern only match tags with a closing '>'.
	imgTagPattern    = regexp.MustCompile(`(?i)<img\b([^>]*)>`)
	anchorTagPattern = regexp.MustCompile(`(?i)<a\b([^>]*)>`)

	hrefPattern = regexp.MustCompile(`(?i)(?:^|\s)href\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)
)

// AttrDetector reports whether a tag already carries an attribute.
type AttrDetector interface {
	HasAttr(tag, name string) bool
}

// HeuristicDetector looks for the attribute name followed by '=',
// case-insensitively. It can misfire when an attribute value contains
// text such as " class=".
type HeuristicDetector struct{}

// HasAttr implements AttrDetector.
func (HeuristicDetector) HasAttr(tag, name string) bool {
	lower := strings.ToLower(tag)
	name = strings.ToLower(name)
	for i := 0; ; {
		j := strings.Index(lower[i:], name)
		if j < 0 {
			return false
		}
		pos := i + j
		i = pos + len(name)
		if pos > 0 && !isHTMLSpace(lower[pos-1]) {
			continue
		}
		rest := strings.TrimLeft(lower[i:], " \t\n\r\f")
		if strings.HasPrefix(rest, "=") {
			return true
		}
	}
}

// TokenizerDetector parses the tag with the x/net/html tokenizer, so
// attribute values never count as attribute names.
type TokenizerDetector struct{}

// HasAttr implements AttrDetector.
func (TokenizerDetector) HasAttr(tag, name string) bool {
	z := html.NewTokenizer(strings.NewReader(tag))
	switch z.Next() {
	case html.StartTagToken, html.SelfClosingTagToken:
	default:
		return false
	}
	name = strings.ToLower(name)
	for _, a := range z.Token().Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

func isHTMLSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// insertAttrs appends attributes to a complete tag, before its '>' or '/>'.
func insertAttrs(tag, attrs string) string {
	if attrs == "" {
		return tag
	}
	end := len(tag) - 1 // index of '>'
	closing := ">"
	if end > 0 && tag[end-1] == '/' {
		end--
		closing = " />"
	}
	return strings.TrimRight(tag[:end], " \t\n\r\f") + attrs + closing
}

// ImageRewriter adds a default class and native lazy loading to <img> tags.
type ImageRewriter struct {
	Class    string
	Detector AttrDetector
}

// Rewrite processes every <img> tag in content. Existing class and
// loading attributes are never replaced.
func (r ImageRewriter) Rewrite(content string) string {
	if !strings.Contains(strings.ToLower(content), "<img") {
		return content
	}
	det := r.detector()
	class := r.Class
	if class == "" {
		class = DefaultImageClass
	}

	return imgTagPattern.ReplaceAllStringFunc(content, func(tag string) string {
		var extra strings.Builder
		if !det.HasAttr(tag, "class") {
			extra.WriteString(` class="` + html.EscapeString(class) + `"`)
		}
		if !det.HasAttr(tag, "loading") {
			extra.WriteString(` loading="lazy"`)
		}
		return insertAttrs(tag, extra.String())
	})
}

func (r ImageRewriter) detector() AttrDetector {
	if r.Detector == nil {
		return HeuristicDetector{}
	}
	return r.Detector
}

// LinkRewriter marks links to other hosts as external.
// Host is the host of the current request; it is never read from globals.
type LinkRewriter struct {
	Host     string
	Class    string
	Detector AttrDetector
}

// Rewrite adds rel, target and class attributes to external anchors,
// each only when absent. Relative and same-host links are untouched.
func (r LinkRewriter) Rewrite(content string) string {
	if !strings.Contains(strings.ToLower(content), "<a") {
		return content
	}
	det := r.detector()
	class := r.Class
	if class == "" {
		class = DefaultLinkClass
	}
	host := normalizeHost(r.Host)

	return anchorTagPattern.ReplaceAllStringFunc(content, func(tag string) string {
		m := anchorTagPattern.FindStringSubmatch(tag)
		href, ok := extractHref(m[1])
		if !ok || !IsExternalURL(href, host) {
			return tag
		}

		var extra strings.Builder
		if !det.HasAttr(tag, "rel") {
			extra.WriteString(` rel="noopener noreferrer"`)
		}
		if !det.HasAttr(tag, "target") {
			extra.WriteString(` target="_blank"`)
		}
		if !det.HasAttr(tag, "class") {
			extra.WriteString(` class="` + html.EscapeString(class) + `"`)
		}
		return insertAttrs(tag, extra.String())
	})
}

func (r LinkRewriter) detector() AttrDetector {
	if r.Detector == nil {
		return HeuristicDetector{}
	}
	return r.Detector
}

// extractHref returns the href value of an anchor's attribute text.
func extractHref(attrs string) (string, bool) {
	m := hrefPattern.FindStringSubmatch(attrs)
	if m == nil {
		return "", false
	}
	for _, v := range m[1:] {
		if v != "" {
			return html.UnescapeString(v), true
		}
	}
	return "", true
}

// IsExternalURL reports whether href is an absolute http(s) URL whose host
// differs from host. Root-relative and relative paths are internal.
// An empty host treats every absolute URL as external.
func IsExternalURL(href, host string) bool {
	href = strings.TrimSpace(href)
	lower := strings.ToLower(href)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}

	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return false
	}

	host = normalizeHost(host)
	if host == "" {
		return true
	}
	return !strings.EqualFold(u.Hostname(), host)
}

// normalizeHost lowercases a host and drops any port.
func normalizeHost(host string) string {
	host = strings.TrimSpace(strings.ToLower(host))
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return strings.Trim(h, "[]")
	}
	return strings.Trim(host, "[]")
}
