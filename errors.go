package richtext

import (
	"errors"

	"github.com/alnah/go-richtext/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrContentTooLarge    = errors.New("content exceeds maximum input size")
	ErrMarkdownConversion = errors.New("markdown conversion failed")

	// Option validation errors.
	ErrInvalidOption         = errors.New("invalid option")
	ErrInvalidHighlightStyle = errors.New("invalid highlight style")
	ErrInvalidBaseURL        = pipeline.ErrInvalidBaseURL
)
