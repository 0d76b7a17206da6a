// Package yamlutil wraps YAML parsing to isolate the external dependency.
// It decodes config files, splits front matter off content sources and
// encodes document statistics.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrUnclosedFront  = errors.New("yamlutil: unclosed front matter")
)

const frontMatterDelim = "---"

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode writes v as a YAML document with two-space indentation.
func Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(true))
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return enc.Close()
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// body. Content without front matter returns nil meta and the input as body.
func SplitFrontMatter(content []byte) (meta, body []byte, err error) {
	content = bytes.TrimPrefix(content, []byte("\uFEFF"))
	first, rest, ok := cutLine(content)
	if !ok || string(bytes.TrimRight(first, " \t")) != frontMatterDelim {
		return nil, content, nil
	}

	offset := 0
	for len(rest[offset:]) > 0 {
		line, next, _ := cutLine(rest[offset:])
		if string(bytes.TrimRight(line, " \t")) == frontMatterDelim {
			return rest[:offset], next, nil
		}
		offset = len(rest) - len(next)
	}
	return nil, nil, ErrUnclosedFront
}

// cutLine splits at the first newline, dropping a trailing CR.
func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}
