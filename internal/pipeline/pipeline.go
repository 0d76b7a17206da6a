package pipeline

import (
	"net/url"
)

// Stage names, in execution order.
const (
	StageShieldCode  = "shield-code"
	StageShortcodes  = "shortcodes"
	StageImages      = "images"
	StageLinks       = "links"
	StageCode        = "code"
	StageEmbeds      = "embeds"
	StageRestoreCode = "restore-code"
	StageTOC         = "toc"
	StageBaseURL     = "base-url"
)

// Options configures a Pipeline. Zero values select the defaults.
type Options struct {
	Host        string // request host for external-link detection
	ImageClass  string
	LinkClass   string
	Detector    AttrDetector
	Highlighter Highlighter // nil escapes code without highlighting
	TOC         TOCBuilder
	DisableTOC  bool
	BaseURL     *url.URL // nil keeps relative URLs
}

// Stage is one named content pass.
type Stage struct {
	Name  string
	Apply func(content string) string
}

// Pipeline runs the passes in a fixed order. It is immutable and safe for
// concurrent use; per-call state lives in the stages returned by Stages.
type Pipeline struct {
	opts    Options
	content *Matcher
	embeds  *Matcher
}

// New builds a pipeline and compiles the shortcode catalogs.
func New(opts Options) *Pipeline {
	return &Pipeline{
		opts:    opts,
		content: NewMatcher(ContentShortcodes()),
		embeds:  NewMatcher(EmbedShortcodes()),
	}
}

// WithHost returns a copy bound to another request host.
func (p *Pipeline) WithHost(host string) *Pipeline {
	cp := *p
	cp.opts.Host = host
	return &cp
}

// Options returns the configuration the pipeline was built with.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Stages returns the passes for one render call. Code samples are lifted
// out first and put back only after the embed pass, so no other pass
// ever sees their contents.
func (p *Pipeline) Stages() []Stage {
	shield := &CodeShield{}
	images := ImageRewriter{Class: p.opts.ImageClass, Detector: p.opts.Detector}
	links := LinkRewriter{Host: p.opts.Host, Class: p.opts.LinkClass, Detector: p.opts.Detector}

	stages := []Stage{
		{Name: StageShieldCode, Apply: shield.Shield},
		{Name: StageShortcodes, Apply: p.content.Expand},
		{Name: StageImages, Apply: images.Rewrite},
		{Name: StageLinks, Apply: links.Rewrite},
		{Name: StageCode, Apply: func(content string) string {
			shield.Render(p.opts.Highlighter)
			return content
		}},
		{Name: StageEmbeds, Apply: p.embeds.Expand},
		{Name: StageRestoreCode, Apply: shield.Restore},
	}

	if !p.opts.DisableTOC {
		stages = append(stages, Stage{Name: StageTOC, Apply: p.opts.TOC.Build})
	}
	if base := p.opts.BaseURL; base != nil {
		stages = append(stages, Stage{Name: StageBaseURL, Apply: func(content string) string {
			out, err := ResolveRelativeURLs(content, base)
			if err != nil {
				return content
			}
			return out
		}})
	}
	return stages
}

// Render folds content through every stage. Empty input stays empty.
func (p *Pipeline) Render(content string) string {
	if content == "" {
		return ""
	}
	for _, s := range p.Stages() {
		content = s.Apply(content)
	}
	return content
}
