package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMarkdownConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		highlight    bool
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "basic markdown",
			input:        "## Title\n\nSome *text*.",
			wantContains: []string{"<h2>Title</h2>", "<em>text</em>"},
		},
		{
			name:         "inline directive survives",
			input:        `Click [button url="/go" text="Go"] now.`,
			wantContains: []string{`<p>Click [button url="/go" text="Go"] now.</p>`},
		},
		{
			name:         "block directive is unwrapped",
			input:        "Intro.\n\n[quote author=\"Rob\"]Clear is better.[/quote]\n\nOutro.",
			wantContains: []string{"\n[quote author=\"Rob\"]Clear is better.[/quote]\n"},
			wantExcludes: []string{"<p>[quote"},
		},
		{
			name:         "directive inside inline code is literal",
			input:        "Write `[button url=\"/x\" text=\"y\"]` to add a button.",
			wantContains: []string{"<code>&#91;button url=&quot;/x&quot; text=&quot;y&quot;&#93;</code>"},
		},
		{
			name:         "fenced code is neutralized",
			input:        "```\n[youtube id=\"abc\"]\n```",
			wantContains: []string{"&#91;youtube"},
			wantExcludes: []string{"[youtube"},
		},
		{
			name:         "raw html allowed",
			input:        `<div class="box">hi</div>`,
			wantContains: []string{`<div class="box">hi</div>`},
		},
		{
			name:         "highlighted fence uses classes",
			input:        "```go\nx := 1\n```",
			highlight:    true,
			wantContains: []string{`class="chroma"`},
		},
		{
			name:         "CRLF normalized",
			input:        "a\r\nb",
			wantContains: []string{"<p>a\nb</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewMarkdownConverter(tt.highlight).ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
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

func TestMarkdownConverter_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMarkdownConverter(false).ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestProtectDirectives_RoundTrip(t *testing.T) {
	t.Parallel()

	input := `a [figure src="/x.png"] b [callout]c[/callout] [unknown] d`
	protected, directives := protectDirectives(input)

	if len(directives) != 2 {
		t.Fatalf("protected %d directives, want 2: %v", len(directives), directives)
	}
	if !strings.Contains(protected, "[unknown]") {
		t.Errorf("unknown token should stay: %q", protected)
	}
	if got := restoreDirectives(protected, directives); got != input {
		t.Errorf("round trip = %q, want %q", got, input)
	}
}
