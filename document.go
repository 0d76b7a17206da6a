package richtext

import "github.com/alnah/go-richtext/internal/pipeline"

// WrapDocument embeds a rendered fragment in a standalone HTML5 page.
// An empty title becomes "Document". css is inlined in a <style> element.
func WrapDocument(fragment, title, css string) string {
	return pipeline.WrapDocument(fragment, title, css)
}

// HighlightStyles lists the style names WithHighlighting accepts, sorted.
func HighlightStyles() []string {
	return pipeline.StyleNames()
}

// ShortcodeNames lists the directive names Render understands.
func ShortcodeNames() []string {
	return pipeline.ShortcodeNames()
}
