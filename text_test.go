package richtext

import (
	"errors"
	"testing"
)

func TestExcerpt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		length  int
		want    string
		wantErr error
	}{
		{"default length keeps short text", "<p>Short post.</p>", DefaultExcerptLength, "Short post.", nil},
		{"shortcodes stripped before tags", `[button url="https://a.b" text="x"]<p>Body</p>`, 10, "Body", nil},
		{"hard cut without word boundary", "<p>abcdef ghi</p>", 8, "abcdef g...", nil},
		{"negative length fails", "x", -5, "", ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Excerpt(tt.content, tt.length)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Excerpt() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Excerpt() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.content, tt.length, got, tt.want)
			}
		})
	}
}

func TestTextHelpers(t *testing.T) {
	t.Parallel()

	content := `<p>Read the [highlight text="fine"] manual.</p>[youtube id="abc"]`

	if got := StripShortcodes(content); got != "<p>Read the  manual.</p>" {
		t.Errorf("StripShortcodes() = %q", got)
	}
	if got := PlainText(content); got != "Read the manual." {
		t.Errorf("PlainText() = %q", got)
	}
	if got := CountWords(content); got != 3 {
		t.Errorf("CountWords() = %d, want 3", got)
	}
	if got := EstimateReadingTime(content); got != 1 {
		t.Errorf("EstimateReadingTime() = %d, want 1", got)
	}
}
