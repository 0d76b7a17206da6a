package richtext

import "github.com/alnah/go-richtext/internal/pipeline"

// Input is the content to render plus per-call settings.
type Input struct {
	Content  string // HTML with shortcodes, or Markdown when Markdown is set
	Markdown bool   // convert Markdown first; also enabled by WithMarkdown
	Host     string // request host; overrides the renderer's host when set
}

// Result is a rendered document with derived metadata.
type Result struct {
	HTML        string
	Headings    []Heading
	Excerpt     string
	WordCount   int
	ReadingTime int // minutes, at least 1
}

// Heading is one entry of a document outline.
type Heading struct {
	Level int    // 2-6
	Text  string // plain text
	Slug  string // anchor id
}

func toHeadings(in []pipeline.Heading) []Heading {
	if len(in) == 0 {
		return nil
	}
	out := make([]Heading, len(in))
	for i, h := range in {
		out[i] = Heading(h)
	}
	return out
}
