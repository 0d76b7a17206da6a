package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidBaseURL indicates a base URL that is not absolute http(s).
var ErrInvalidBaseURL = errors.New("base URL must be an absolute http(s) URL")

// ParseBaseURL validates a base URL for ResolveRelativeURLs.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return u, nil
}

// ResolveRelativeURLs makes relative img[src] and a[href] values absolute
// against base, for content published outside the site (feeds, email).
// A nil base returns the content unchanged.
//
// Left alone:
//   - absolute and protocol-relative URLs
//   - fragment-only links such as TOC anchors
//   - other elements and srcset
func ResolveRelativeURLs(content string, base *url.URL) (string, error) {
	if base == nil {
		return content, nil
	}

	nodes, err := html.ParseFragment(strings.NewReader(content), &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	})
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		resolveNode(n, base)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func resolveNode(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			resolveAttr(n, "src", base)
		case atom.A:
			resolveAttr(n, "href", base)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		resolveNode(c, base)
	}
}

func resolveAttr(n *html.Node, key string, base *url.URL) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativeURL(attr.Val) {
			continue
		}
		ref, err := url.Parse(strings.TrimSpace(attr.Val))
		if err != nil {
			continue
		}
		n.Attr[i].Val = base.ResolveReference(ref).String()
	}
}

// isRelativeURL reports whether a value is a path the base should prefix.
func isRelativeURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") || strings.HasPrefix(raw, "//") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
