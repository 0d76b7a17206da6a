package pipeline

import (
	"strings"
	"testing"
)

func TestParseAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Attrs
	}{
		{
			name: "empty",
			raw:  "",
			want: nil,
		},
		{
			name: "double quotes",
			raw:  ` url="/a" text="Go"`,
			want: Attrs{{Name: "url", Value: "/a"}, {Name: "text", Value: "Go"}},
		},
		{
			name: "single quotes",
			raw:  ` text='it "works"'`,
			want: Attrs{{Name: "text", Value: `it "works"`}},
		},
		{
			name: "names are lowercased",
			raw:  ` URL="/a"`,
			want: Attrs{{Name: "url", Value: "/a"}},
		},
		{
			name: "spaces around equals",
			raw:  ` id = "x"`,
			want: Attrs{{Name: "id", Value: "x"}},
		},
		{
			name: "unquoted values ignored",
			raw:  ` id=x`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseAttrs(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseAttrs(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("attr %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAttrs_Get(t *testing.T) {
	t.Parallel()

	attrs := Attrs{{Name: "a", Value: "first"}, {Name: "a", Value: "second"}, {Name: "b", Value: ""}}

	if v, ok := attrs.Get("a"); !ok || v != "first" {
		t.Errorf("Get(a) = %q, %v, want first occurrence", v, ok)
	}
	if _, ok := attrs.Get("missing"); ok {
		t.Error("Get(missing) reported present")
	}
	if v := attrs.Value("b", "def"); v != "def" {
		t.Errorf("Value(b) = %q, want default for empty value", v)
	}
	if !attrs.Has("a", "b") {
		t.Error("Has(a, b) = false")
	}
	if attrs.Has("a", "c") {
		t.Error("Has(a, c) = true")
	}
}

func TestMatcher_Expand(t *testing.T) {
	t.Parallel()

	m := NewMatcher(ContentShortcodes())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no directives",
			input: "<p>plain</p>",
			want:  "<p>plain</p>",
		},
		{
			name:  "button with default style",
			input: `[button url="/signup" text="Join"]`,
			want:  `<a href="/signup" class="btn btn-primary">Join</a>`,
		},
		{
			name:  "button attributes in any order",
			input: `[button text="Join" style="danger" url="/x"]`,
			want:  `<a href="/x" class="btn btn-danger">Join</a>`,
		},
		{
			name:  "button with unknown style falls back",
			input: `[button url="/x" text="Go" style="neon"]`,
			want:  `<a href="/x" class="btn btn-primary">Go</a>`,
		},
		{
			name:  "button self-closing slash",
			input: `[button url="/x" text="Go" /]`,
			want:  `<a href="/x" class="btn btn-primary">Go</a>`,
		},
		{
			name:  "missing required attribute stays literal",
			input: `[button text="Join"]`,
			want:  `[button text="Join"]`,
		},
		{
			name:  "highlight escapes text",
			input: `[highlight text="<b>"]`,
			want:  `<mark>&lt;b&gt;</mark>`,
		},
		{
			name:  "quote without attribution",
			input: `[quote]Simple is better.[/quote]`,
			want:  "<blockquote class=\"blockquote\">\n<p>Simple is better.</p>\n</blockquote>",
		},
		{
			name:  "quote with author and source",
			input: `[quote author="Rob" source="Talk"]Clear is better.[/quote]`,
			want: "<blockquote class=\"blockquote\">\n<p>Clear is better.</p>\n" +
				"<footer class=\"blockquote-footer\">— Rob, Talk</footer>\n</blockquote>",
		},
		{
			name:  "quote keeps line breaks",
			input: "[quote]a\nb[/quote]",
			want:  "<blockquote class=\"blockquote\">\n<p>a<br>\nb</p>\n</blockquote>",
		},
		{
			name:  "unclosed paired directive stays literal",
			input: `[quote]never closed`,
			want:  `[quote]never closed`,
		},
		{
			name:  "callout with title",
			input: `[callout type="warning" title="Heads up"]Careful[/callout]`,
			want: "<div class=\"callout callout-warning\" role=\"note\">\n" +
				"<div class=\"callout-title\"><strong>Heads up</strong></div>\n" +
				"<div class=\"callout-body\">Careful</div>\n</div>",
		},
		{
			name:  "unknown directive stays literal",
			input: `[gallery ids="1,2"]`,
			want:  `[gallery ids="1,2"]`,
		},
		{
			name:  "prefix of another name is not matched",
			input: `[buttons url="/x" text="y"]`,
			want:  `[buttons url="/x" text="y"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := m.Expand(tt.input)
			if got != tt.want {
				t.Errorf("Expand(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatcher_Expand_PairedShortestSpan(t *testing.T) {
	t.Parallel()

	m := NewMatcher(ContentShortcodes())
	got := m.Expand(`[quote]one[/quote] and [quote]two[/quote]`)

	if n := strings.Count(got, `<blockquote class="blockquote">`); n != 2 {
		t.Errorf("got %d blockquotes, want 2: %q", n, got)
	}
	if strings.Contains(got, "[/quote]") {
		t.Errorf("closing tag left behind: %q", got)
	}
}

func TestEmbedShortcodes(t *testing.T) {
	t.Parallel()

	m := NewMatcher(EmbedShortcodes())

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:  "figure with caption",
			input: `[figure src="/a.png" alt="A" caption="Fig 1"]`,
			wantContains: []string{
				`<figure class="figure"><img src="/a.png" alt="A" class="figure-img img-fluid" loading="lazy">`,
				`<figcaption class="figure-caption">Fig 1</figcaption></figure>`,
			},
		},
		{
			name:         "figure without caption",
			input:        `[figure src="/a.png"]`,
			wantContains: []string{`alt=""`},
			wantExcludes: []string{"figcaption"},
		},
		{
			name:  "youtube defaults",
			input: `[youtube id="dQw4w9WgXcQ"]`,
			wantContains: []string{
				`<div class="video-embed">`,
				`src="https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ"`,
				`width="560"`,
				`height="315"`,
			},
		},
		{
			name:         "youtube custom size",
			input:        `[youtube id="abc" width="640" height="360"]`,
			wantContains: []string{`width="640"`, `height="360"`},
		},
		{
			name:         "youtube non-numeric size falls back",
			input:        `[youtube id="abc" width="100%" height="x"]`,
			wantContains: []string{`width="560"`, `height="315"`},
		},
		{
			name:         "youtube hostile id stays literal",
			input:        `[youtube id="a&quot;onload=x"]`,
			wantContains: []string{`[youtube id="a&quot;onload=x"]`},
			wantExcludes: []string{"<iframe"},
		},
		{
			name:  "twitter",
			input: `[twitter url="https://twitter.com/x/status/1"]`,
			wantContains: []string{
				`<blockquote class="twitter-tweet"><a href="https://twitter.com/x/status/1"`,
				`View tweet</a></blockquote>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := m.Expand(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\n got: %q", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("output contains %q\n got: %q", exclude, got)
				}
			}
		})
	}
}

func TestShortcodes_EscapeAttributes(t *testing.T) {
	t.Parallel()

	m := NewMatcher(append(ContentShortcodes(), EmbedShortcodes()...))

	inputs := []string{
		`[button url='"><script>alert(1)</script>' text="x"]`,
		`[button url="/x" text='<script>alert(1)</script>']`,
		`[figure src="/a.png" alt='"><script>alert(1)</script>']`,
		`[figure src="/a.png" caption='<script>alert(1)</script>']`,
		`[quote author='<script>alert(1)</script>']body[/quote]`,
		`[callout title='<script>alert(1)</script>']body[/callout]`,
		`[twitter url='"><script>alert(1)</script>']`,
		`[quote]<script>alert(1)</script>[/quote]`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			got := m.Expand(input)
			if strings.Contains(got, "<script>") {
				t.Errorf("unescaped script in %q", got)
			}
		})
	}
}

func TestShortcodeNames(t *testing.T) {
	t.Parallel()

	names := ShortcodeNames()
	want := []string{"code", "button", "highlight", "quote", "callout", "figure", "youtube", "twitter"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("ShortcodeNames() = %v, want %v", names, want)
	}
}
