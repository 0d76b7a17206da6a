// Package richtext renders author content (HTML mixed with bracketed
// shortcodes) into safe, enhanced, publishable HTML.
//
// # Quick Start
//
//	r, err := richtext.NewRenderer(richtext.WithHost("example.com"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := r.Render(`<p>Hi</p>[button url="/join" text="Join"]`)
//
// For request handlers, bind the request host on a copy:
//
//	html := r.ForHost(req.Host).Render(post.Body)
//
// # Rendering Pipeline
//
// Render applies these passes, in order:
//
//  1. Content shortcodes: button, highlight, quote, callout
//  2. Images: default class and loading="lazy"
//  3. External links: rel="noopener noreferrer", target="_blank", class
//  4. Code: [code] blocks and `inline` code, optionally highlighted
//  5. Embed shortcodes: figure, youtube, twitter
//  6. Heading anchors and a table of contents
//
// Code samples are set aside before the first pass, so shortcodes, images
// and links inside code render literally. Every substituted value is
// HTML-escaped. Unknown or malformed shortcodes are left as written.
//
// # Documents
//
// RenderDocument adds a size limit, optional Markdown input and derived
// metadata:
//
//	res, err := r.RenderDocument(ctx, richtext.Input{Content: body})
//	fmt.Println(res.WordCount, res.ReadingTime, res.Excerpt)
//
// # Text Helpers
//
// StripShortcodes, PlainText, Excerpt, CountWords and EstimateReadingTime
// work on raw content. They always strip shortcodes before tags so
// attribute text such as url="..." is never counted as prose.
//
// # Configuration
//
//	r, err := richtext.NewRenderer(
//	    richtext.WithHighlighting("monokai"),
//	    richtext.WithTOCTitle("On this page"),
//	    richtext.WithWordsPerMinute(250),
//	)
package richtext
