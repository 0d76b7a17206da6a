package pipeline

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// TOC defaults.
const (
	DefaultTOCTitle    = "Table of Contents"
	DefaultMinHeadings = 3

	// tocMarker flags a generated container so re-rendering skips it.
	tocMarker = "data-toc"

	// tocIndent is one indentation group; an entry gets (level-2) of them.
	tocIndent = "&nbsp;&nbsp;&nbsp;&nbsp;"
)

var (
	// tocHeadingPattern captures: 1=level, 2=attributes, 3=inner HTML, 4=closing level.
	tocHeadingPattern = regexp.MustCompile(`(?is)<h([2-6])(\s[^>]*)?>(.*?)</h([2-6])\s*>`)

	headingIDAttr   = regexp.MustCompile(`(?i)(?:^|\s)id\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	htmlTagPattern  = regexp.MustCompile(`<[^>]*>`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	paragraphClose  = regexp.MustCompile(`(?i)</p\s*>`)
	existingTOC     = regexp.MustCompile(`(?i)<nav\b[^>]*\s` + tocMarker + `[\s>=]`)
)

// Heading is one entry of the table of contents.
type Heading struct {
	Level int    // 2-6
	Text  string // plain text, unescaped
	Slug  string // anchor id
}

// headingMatch locates a heading inside the content.
type headingMatch struct {
	Heading
	start, end int    // full element
	attrs      string // original attribute text
	inner      string
	hasID      bool
}

// Slugify lowercases text, collapses runs of non-alphanumerics into a
// single hyphen and trims hyphens from both ends.
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = nonAlphanumeric.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// headingText strips tags and entities from a heading's inner HTML.
func headingText(inner string) string {
	text := htmlTagPattern.ReplaceAllString(inner, "")
	text = html.UnescapeString(text)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// scanHeadings finds h2-h6 elements in document order and assigns
// unique anchors. Explicit ids are kept; generated slugs never collide
// with them or with each other.
func scanHeadings(content string) []headingMatch {
	locs := tocHeadingPattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]headingMatch, 0, len(locs))
	used := make(map[string]bool, len(locs))

	for _, loc := range locs {
		level := content[loc[2]:loc[3]]
		if closing := content[loc[8]:loc[9]]; closing != level {
			continue
		}
		m := headingMatch{start: loc[0], end: loc[1]}
		m.Level, _ = strconv.Atoi(level)
		if loc[4] >= 0 {
			m.attrs = content[loc[4]:loc[5]]
		}
		m.inner = content[loc[6]:loc[7]]
		m.Text = headingText(m.inner)

		if id := existingID(m.attrs); id != "" {
			m.Slug, m.hasID = id, true
			used[id] = true
		} else {
			// An empty id is replaced by the generated anchor.
			m.attrs = headingIDAttr.ReplaceAllString(m.attrs, "")
		}
		matches = append(matches, m)
	}

	for i := range matches {
		if matches[i].hasID {
			continue
		}
		slug := Slugify(matches[i].Text)
		if slug == "" {
			slug = "heading-" + strconv.Itoa(i+1)
		}
		matches[i].Slug = uniqueSlug(slug, used)
		used[matches[i].Slug] = true
	}
	return matches
}

func existingID(attrs string) string {
	m := headingIDAttr.FindStringSubmatch(attrs)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// uniqueSlug appends -1, -2, ... until slug is unused.
func uniqueSlug(slug string, used map[string]bool) string {
	if !used[slug] {
		return slug
	}
	for n := 1; ; n++ {
		candidate := slug + "-" + strconv.Itoa(n)
		if !used[candidate] {
			return candidate
		}
	}
}

// ExtractHeadings returns the headings a TOC would list, with the anchors
// the TOC pass would assign.
func ExtractHeadings(content string) []Heading {
	matches := scanHeadings(content)
	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, m.Heading)
	}
	return headings
}

// TOCBuilder anchors headings and inserts a table of contents.
type TOCBuilder struct {
	Title       string // container heading, DefaultTOCTitle when empty
	MinHeadings int    // fewer headings skip the TOC, DefaultMinHeadings when <= 0
}

// Build rewrites every heading with an id and inserts the TOC after the
// first paragraph, or at the start when there is no paragraph.
// Content with fewer than MinHeadings headings is returned unchanged.
func (t TOCBuilder) Build(content string) string {
	if strings.Contains(content, tocMarker) && existingTOC.MatchString(content) {
		return content
	}

	minHeadings := t.MinHeadings
	if minHeadings <= 0 {
		minHeadings = DefaultMinHeadings
	}

	matches := scanHeadings(content)
	if len(matches) < minHeadings {
		return content
	}

	var body strings.Builder
	body.Grow(len(content) + len(matches)*24)
	lastEnd := 0
	for _, m := range matches {
		body.WriteString(content[lastEnd:m.start])
		if m.hasID {
			body.WriteString(content[m.start:m.end])
		} else {
			writeAnchoredHeading(&body, m)
		}
		lastEnd = m.end
	}
	body.WriteString(content[lastEnd:])

	return insertTOC(body.String(), t.render(matches))
}

func writeAnchoredHeading(b *strings.Builder, m headingMatch) {
	level := strconv.Itoa(m.Level)
	b.WriteString("<h")
	b.WriteString(level)
	b.WriteString(` id="`)
	b.WriteString(m.Slug)
	b.WriteByte('"')
	b.WriteString(m.attrs)
	b.WriteByte('>')
	b.WriteString(m.inner)
	b.WriteString("</h")
	b.WriteString(level)
	b.WriteByte('>')
}

// render builds the TOC container. Entries form a flat list indented by level.
func (t TOCBuilder) render(matches []headingMatch) string {
	title := t.Title
	if title == "" {
		title = DefaultTOCTitle
	}

	var b strings.Builder
	b.WriteString(`<nav class="table-of-contents" ` + tocMarker + `>`)
	b.WriteString("\n")
	b.WriteString(`<div class="toc-title">`)
	b.WriteString(html.EscapeString(title))
	b.WriteString("</div>\n")
	b.WriteString(`<ul class="toc-list">`)
	b.WriteString("\n")

	for _, m := range matches {
		b.WriteString(`<li class="toc-level-`)
		b.WriteString(strconv.Itoa(m.Level))
		b.WriteString(`">`)
		b.WriteString(strings.Repeat(tocIndent, m.Level-2))
		b.WriteString(`<a href="#`)
		b.WriteString(html.EscapeString(m.Slug))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(m.Text))
		b.WriteString("</a></li>\n")
	}

	b.WriteString("</ul>\n</nav>")
	return b.String()
}

// insertTOC places the TOC right after the first </p>, else prepends it.
func insertTOC(content, toc string) string {
	if loc := paragraphClose.FindStringIndex(content); loc != nil {
		return content[:loc[1]] + "\n" + toc + content[loc[1]:]
	}
	return toc + "\n" + content
}
