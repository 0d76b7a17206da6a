package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	richtext "github.com/alnah/go-richtext"
	"github.com/alnah/go-richtext/internal/config"
	"github.com/alnah/go-richtext/internal/fileutil"
	"github.com/alnah/go-richtext/internal/hints"
	"github.com/alnah/go-richtext/internal/logging"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// renderJob groups what every file in a batch shares.
type renderJob struct {
	renderer     *richtext.Renderer
	standalone   bool
	css          string
	maxInputSize int
}

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Words      int
	Err        error
	Duration   time.Duration
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	logger := newLogger(env, flags.common)
	ctx = logging.WithLogger(ctx, logger)
	cfg, envCfg, err := loadSettings(flags.common.config, logger)
	if err != nil {
		return err
	}
	mergeRenderFlags(flags, cfg)

	job, err := newRenderJob(cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	if inputPath == stdinPath {
		return renderStdin(ctx, job, flags.output, env)
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no content files found in %s", ErrNoInput, inputPath)
	}

	workers := resolvePoolSize(firstPositive(flags.workers, envCfg.Workers))
	logger.Debug("rendering", logging.FieldFiles, len(files), logging.FieldWorkers, workers)

	results := renderBatch(ctx, workers, files, job)
	failed := printResults(results, flags.common, env, logger)
	logger.Debug("batch finished", logging.FieldFiles, len(results), logging.FieldFailed, failed)

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d render(s) failed", failed)
	}
	return nil
}

// mergeRenderFlags merges explicitly set flags into cfg. Flags win.
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) {
	mergeContentFlags(flags.content, flags.changed, cfg)
	if flags.changed["standalone"] {
		cfg.Output.Standalone = flags.standalone
	}
	if flags.changed["theme"] {
		cfg.Output.Theme = flags.theme
	}
	if flags.changed["asset-path"] {
		cfg.Assets.BasePath = flags.assetPath
	}
}

// newRenderJob builds the renderer and, for standalone pages, the
// inlined stylesheet.
func newRenderJob(cfg *config.Config) (*renderJob, error) {
	r, err := newRenderer(cfg)
	if err != nil {
		return nil, err
	}

	job := &renderJob{
		renderer:     r,
		standalone:   cfg.Output.Standalone,
		maxInputSize: cfg.Limits.MaxInputSize,
	}
	if job.standalone {
		css, err := buildStylesheet(cfg, r, true)
		if err != nil {
			return nil, err
		}
		job.css = css
	}
	return job, nil
}

// resolveInputPath picks the positional argument, then input.defaultDir.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	default:
		return "", fmt.Errorf("%w (pass a file, a directory or - for stdin)", ErrNoInput)
	}
}

// resolveOutputDir picks --output, then output.defaultDir.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// renderBatch renders files concurrently. Files not started before ctx
// is canceled report the context error.
func renderBatch(ctx context.Context, workers int, files []FileToRender, job *renderJob) []RenderResult {
	results := make([]RenderResult, len(files))
	runPool(workers, len(files), func(i int) {
		if err := ctx.Err(); err != nil {
			results[i] = RenderResult{InputPath: files[i].InputPath, Err: err}
			return
		}
		results[i] = renderFile(ctx, job, files[i])
	})
	return results
}

// renderFile renders one source file to its output path.
func renderFile(ctx context.Context, job *renderJob, f FileToRender) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	logging.FromContext(ctx).Debug("rendering", logging.FieldInput, f.InputPath)

	src, err := readSource(f.InputPath, nil, job.maxInputSize)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	page, res, err := job.render(ctx, src)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Words = res.WordCount

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: creating output directory: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(page), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	result.Duration = time.Since(start)
	return result
}

// render produces the output text for src: the fragment, or a full page
// in standalone mode.
func (j *renderJob) render(ctx context.Context, src *source) (string, *richtext.Result, error) {
	res, err := j.renderer.RenderDocument(ctx, richtext.Input{Content: src.Content, Markdown: src.Markdown})
	if err != nil {
		if errors.Is(err, richtext.ErrContentTooLarge) {
			return "", nil, fmt.Errorf("%s: %w%s", src.Path, err, hints.ForContentTooLarge(j.maxInputSize))
		}
		return "", nil, fmt.Errorf("%s: %w", src.Path, err)
	}

	if !j.standalone {
		return res.HTML, res, nil
	}
	return richtext.WrapDocument(res.HTML, src.title(), j.css), res, nil
}

// renderStdin renders standard input to --output or stdout.
func renderStdin(ctx context.Context, job *renderJob, output string, env *Environment) error {
	src, err := readSource(stdinPath, env.Stdin, job.maxInputSize)
	if err != nil {
		return err
	}

	page, _, err := job.render(ctx, src)
	if err != nil {
		return err
	}

	if output == "" {
		if _, err := fmt.Fprint(env.Stdout, page); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(output, []byte(page), filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// printResults reports each result and returns the failure count.
func printResults(results []RenderResult, common commonFlags, env *Environment, logger *log.Logger) int {
	var succeeded, failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Error("render failed", logging.FieldInput, r.InputPath, logging.FieldError, r.Err)
			continue
		}
		succeeded++
		logger.Debug("rendered",
			logging.FieldInput, r.InputPath,
			logging.FieldOutput, r.OutputPath,
			logging.FieldWords, r.Words,
			logging.FieldDuration, r.Duration.Round(time.Millisecond))
		if !common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}
	return failed
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
