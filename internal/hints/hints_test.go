package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     []string
		notWant  string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"blog.yaml", "/home/u/.config/go-richtext/blog.yaml"},
			want:     []string{"--config", "or create /home/u/.config/go-richtext/blog.yaml"},
		},
		{
			name:     "windows separators",
			searched: []string{`C:\Users\u\AppData\Roaming\go-richtext\blog.yaml`},
			want:     []string{`or create C:\Users\u\AppData\Roaming\go-richtext\blog.yaml`},
		},
		{
			name:     "only local paths",
			searched: []string{"blog.yaml", "blog.yml"},
			want:     []string{"--config"},
			notWant:  "or create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.searched)
			for _, w := range tt.want {
				if !strings.Contains(hint, w) {
					t.Errorf("hint %q missing %q", hint, w)
				}
			}
			if tt.notWant != "" && strings.Contains(hint, tt.notWant) {
				t.Errorf("hint %q should not contain %q", hint, tt.notWant)
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", got)
	}
	got := ForStyleNotFound([]string{"github", "monokai"})
	if !strings.Contains(got, "available: github, monokai") {
		t.Errorf("ForStyleNotFound() = %q", got)
	}
}

func TestForContentTooLarge(t *testing.T) {
	t.Parallel()

	got := ForContentTooLarge(1024)
	if !strings.Contains(got, "1024 bytes") || !strings.Contains(got, "RICHTEXT_MAX_INPUT_SIZE") {
		t.Errorf("ForContentTooLarge() = %q", got)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	hints := map[string]string{
		"ForConfigNotFound":   ForConfigNotFound(nil),
		"ForOutputDirectory":  ForOutputDirectory(),
		"ForStyleNotFound":    ForStyleNotFound([]string{"github"}),
		"ForContentTooLarge":  ForContentTooLarge(1),
		"ForBaseURL":          ForBaseURL(),
		"ForUnsupportedInput": ForUnsupportedInput(),
	}

	for name, hint := range hints {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s() = %q, want prefix %q", name, hint, "\n  hint: ")
		}
		if strings.Count(hint, "hint:") != 1 {
			t.Errorf("%s() should contain exactly one hint marker: %q", name, hint)
		}
	}

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
