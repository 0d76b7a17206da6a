package pipeline

import (
	"regexp"
	"strings"
)

// attrPattern matches name="value" or name='value' pairs inside a shortcode tag.
var attrPattern = regexp.MustCompile(`([A-Za-z][\w-]*)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// Attr is a single shortcode attribute.
type Attr struct {
	Name  string
	Value string
}

// Attrs holds shortcode attributes in source order.
// Absent attributes are simply not present; there is no null value.
type Attrs []Attr

// ParseAttrs extracts attributes from the raw text between the shortcode
// name and its closing bracket. Order is preserved; names are lowercased.
func ParseAttrs(raw string) Attrs {
	matches := attrPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}

	attrs := make(Attrs, 0, len(matches))
	for _, m := range matches {
		value := m[2]
		if value == "" && m[3] != "" {
			value = m[3]
		}
		attrs = append(attrs, Attr{Name: strings.ToLower(m[1]), Value: value})
	}
	return attrs
}

// Get returns the value of the first attribute with the given name.
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Value returns the named attribute or def when it is absent or empty.
func (a Attrs) Value(name, def string) string {
	if v, ok := a.Get(name); ok && v != "" {
		return v
	}
	return def
}

// Has reports whether every name is present.
func (a Attrs) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := a.Get(name); !ok {
			return false
		}
	}
	return true
}

// Match is one recognized shortcode occurrence.
// It lives only for the duration of a single replacement.
type Match struct {
	Name  string
	Attrs Attrs
	Body  string // inner text of paired shortcodes
}

// RenderFunc turns a match into an HTML fragment.
// Returning false leaves the original text untouched.
type RenderFunc func(m Match) (string, bool)

// Shortcode describes one directive of the catalog.
type Shortcode struct {
	Name     string
	Paired   bool
	Required []string
	Render   RenderFunc
}

// pattern compiles the scanner for this shortcode.
// Paired directives stop at the first closing tag of the same name.
func (s Shortcode) pattern() *regexp.Regexp {
	name := regexp.QuoteMeta(s.Name)
	if s.Paired {
		return regexp.MustCompile(`(?s)\[` + name + `(\s[^\]]*)?\](.*?)\[/` + name + `\]`)
	}
	return regexp.MustCompile(`\[` + name + `(\s[^\]]*)?\]`)
}

// Catalog is an ordered set of shortcodes applied one after another.
type Catalog []Shortcode

// compiledShortcode pairs a definition with its scanner.
type compiledShortcode struct {
	def Shortcode
	re  *regexp.Regexp
}

// Matcher expands a fixed catalog. It is immutable and safe for concurrent use.
type Matcher struct {
	entries []compiledShortcode
}

// NewMatcher compiles a catalog.
func NewMatcher(catalog Catalog) *Matcher {
	m := &Matcher{entries: make([]compiledShortcode, 0, len(catalog))}
	for _, def := range catalog {
		m.entries = append(m.entries, compiledShortcode{def: def, re: def.pattern()})
	}
	return m
}

// Expand replaces every recognized shortcode with its HTML.
// Each catalog entry is a full left-to-right sweep over the string.
func (m *Matcher) Expand(content string) string {
	for _, e := range m.entries {
		if !strings.Contains(content, "["+e.def.Name) {
			continue
		}
		content = expandOne(content, e)
	}
	return content
}

func expandOne(content string, e compiledShortcode) string {
	locs := e.re.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	lastEnd := 0

	for _, loc := range locs {
		start, end := loc[0], loc[1]

		raw := ""
		if loc[2] >= 0 {
			raw = content[loc[2]:loc[3]]
		}
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "/")

		match := Match{Name: e.def.Name, Attrs: ParseAttrs(raw)}
		if e.def.Paired {
			match.Body = content[loc[4]:loc[5]]
		}

		if !match.Attrs.Has(e.def.Required...) {
			continue
		}
		out, ok := e.def.Render(match)
		if !ok {
			continue
		}

		b.WriteString(content[lastEnd:start])
		b.WriteString(out)
		lastEnd = end
	}

	if lastEnd == 0 {
		return content
	}
	b.WriteString(content[lastEnd:])
	return b.String()
}
