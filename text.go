package richtext

import (
	"fmt"

	"github.com/alnah/go-richtext/internal/pipeline"
)

// StripShortcodes removes every bracketed token, known directive or not,
// and trims the result. It is idempotent.
func StripShortcodes(content string) string {
	return pipeline.StripShortcodes(content)
}

// PlainText strips shortcodes, then HTML tags, and collapses whitespace.
func PlainText(content string) string {
	return pipeline.PlainText(content)
}

// Excerpt hard-truncates the plain text of content to length characters
// and appends "..." when it cut anything. A negative length fails with
// ErrInvalidArgument; it is never clamped.
func Excerpt(content string, length int) (string, error) {
	excerpt, err := pipeline.Excerpt(content, length)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return excerpt, nil
}

// CountWords counts the words in the plain text of content.
func CountWords(content string) int {
	return pipeline.CountWords(content)
}

// EstimateReadingTime returns reading minutes at DefaultWordsPerMinute,
// rounded up, never below one.
func EstimateReadingTime(content string) int {
	return pipeline.EstimateReadingTime(content, DefaultWordsPerMinute)
}
