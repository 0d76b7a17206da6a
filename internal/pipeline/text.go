package pipeline

import (
	"errors"
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Text helper defaults.
const (
	DefaultExcerptLength  = 150
	DefaultWordsPerMinute = 200
	ExcerptEllipsis       = "..."
)

// ErrNegativeLength indicates an excerpt length below zero.
var ErrNegativeLength = errors.New("excerpt length must not be negative")

var (
	// bracketTokenPattern matches any [..] or [/..] token, known or not.
	bracketTokenPattern = regexp.MustCompile(`\[[^\]]*\]`)

	// tagStripper drops every element and keeps text. Policies are safe
	// for concurrent use once built.
	tagStripper = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)
)

// StripShortcodes removes every bracketed token and trims the result.
// Applying it twice gives the same result as applying it once.
func StripShortcodes(content string) string {
	if !strings.Contains(content, "[") {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(bracketTokenPattern.ReplaceAllString(content, ""))
}

// StripTags removes HTML elements, leaving their text. Script and style
// contents are dropped.
func StripTags(content string) string {
	if !strings.Contains(content, "<") && !strings.Contains(content, "&") {
		return content
	}
	return html.UnescapeString(tagStripper.Sanitize(content))
}

// PlainText strips shortcodes first, then tags, so attribute text such as
// url="..." is never read as prose. Whitespace runs collapse to one space.
func PlainText(content string) string {
	text := StripTags(StripShortcodes(content))
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt truncates the plain text to length characters and appends an
// ellipsis when anything was cut. There is no word-boundary search.
func Excerpt(content string, length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeLength, length)
	}
	text := PlainText(content)
	if utf8.RuneCountInString(text) <= length {
		return text, nil
	}
	runes := []rune(text)
	return string(runes[:length]) + ExcerptEllipsis, nil
}

// CountWords counts runs of letters, digits, apostrophes and hyphens in
// the plain text of content. A run needs at least one letter or digit.
func CountWords(content string) int {
	count := 0
	for _, field := range strings.FieldsFunc(PlainText(content), isWordSeparator) {
		if strings.IndexFunc(field, isAlphanumeric) >= 0 {
			count++
		}
	}
	return count
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWordSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-' && r != '’'
}

// ReadingMinutes converts a word count to whole minutes, rounded up,
// never below one. A non-positive rate selects DefaultWordsPerMinute.
func ReadingMinutes(words, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	minutes := int(math.Ceil(float64(words) / float64(wordsPerMinute)))
	return max(minutes, 1)
}

// EstimateReadingTime returns the reading time of content in minutes.
func EstimateReadingTime(content string, wordsPerMinute int) int {
	return ReadingMinutes(CountWords(content), wordsPerMinute)
}
