// Package pipeline implements the content rendering passes.
//
// Content flows through these stages, in order:
//   - code samples are lifted out behind placeholders
//   - content shortcodes (button, highlight, quote, callout) are expanded
//   - <img> tags get a class and lazy loading
//   - external <a> tags get rel, target and class
//   - code samples are rendered, optionally highlighted with chroma
//   - embed shortcodes (figure, youtube, twitter) are expanded
//   - rendered code is put back
//   - headings are anchored and a table of contents is inserted
//   - relative URLs are resolved against a base URL, when one is set
//
// Every pass degrades to a pass-through on input it does not recognize.
// Markdown input is converted first by MarkdownConverter, which keeps
// shortcodes intact for the passes above.
package pipeline
