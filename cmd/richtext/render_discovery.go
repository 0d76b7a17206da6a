package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-richtext/internal/fileutil"
	"github.com/alnah/go-richtext/internal/hints"
)

// renderedSuffix names output that would otherwise overwrite an HTML source.
const renderedSuffix = ".rendered.html"

// ErrInvalidWorkerCount is returned for out-of-range --workers values.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// FileToRender represents a single file to process.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the content files under inputPath. Rendered outputs
// and the output directory itself are skipped, so reruns are stable.
func discoverFiles(inputPath, outputDir string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	if !info.IsDir() {
		if !fileutil.IsContentFile(inputPath) {
			return nil, fmt.Errorf("%w: %q%s", ErrUnsupportedInput, inputPath, hints.ForUnsupportedInput())
		}
		return []FileToRender{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, outputDir, "")}}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && outputDir != "" && samePath(path, outputDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.IsContentFile(path) || strings.HasSuffix(path, renderedSuffix) {
			return nil
		}
		files = append(files, FileToRender{InputPath: path, OutputPath: resolveOutputPath(path, outputDir, inputPath)})
		return nil
	})

	return files, err
}

// resolveOutputPath maps a source file to its .html output. An outputDir
// ending in .html names the file directly for single-file renders.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	var out string
	switch {
	case outputDir == "":
		out = filepath.Join(filepath.Dir(inputPath), base+".html")
	case baseInputDir == "" && fileutil.IsHTML(outputDir):
		out = outputDir
	case baseInputDir != "":
		relDir := "."
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			relDir = filepath.Dir(rel)
		}
		out = filepath.Join(outputDir, relDir, base+".html")
	default:
		out = filepath.Join(outputDir, base+".html")
	}

	if samePath(out, inputPath) {
		out = strings.TrimSuffix(out, filepath.Ext(out)) + renderedSuffix
	}
	return out
}

// samePath compares two paths after making them absolute.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}
