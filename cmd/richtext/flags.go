package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// contentFlags holds flags that shape rendering.
type contentFlags struct {
	host      string
	baseURL   string
	markdown  bool
	highlight bool
	style     string
	noTOC     bool
	tocTitle  string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common     commonFlags
	content    contentFlags
	output     string
	workers    int
	standalone bool
	theme      string
	assetPath  string
	changed    map[string]bool
}

// statsFlags holds flags for the stats command.
type statsFlags struct {
	common  commonFlags
	content contentFlags
	changed map[string]bool
}

// stripFlags holds flags for the strip command.
type stripFlags struct {
	common   commonFlags
	markdown bool
	changed  map[string]bool
}

// cssFlags holds flags for the css command.
type cssFlags struct {
	common       commonFlags
	style        string
	theme        string
	assetPath    string
	noComponents bool
	noCode       bool
	changed      map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addContentFlags adds rendering flags to a FlagSet.
func addContentFlags(fs *flag.FlagSet, f *contentFlags) {
	fs.StringVar(&f.host, "host", "", "site host; links elsewhere are external")
	fs.StringVar(&f.baseURL, "base-url", "", "resolve relative image and link URLs against this URL")
	fs.BoolVarP(&f.markdown, "markdown", "m", false, "treat input as Markdown")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight code blocks")
	fs.StringVar(&f.style, "style", "", "highlighting style (chroma name)")
	fs.BoolVar(&f.noTOC, "no-toc", false, "disable table of contents")
	fs.StringVar(&f.tocTitle, "toc-title", "", "table of contents heading")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	fs := newFlagSet("render", stderr, printRenderUsage)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.standalone, "standalone", false, "wrap output in a full HTML page")
	fs.StringVar(&f.theme, "theme", "", "component stylesheet for standalone pages")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles/{name}.css")
	addContentFlags(fs, &f.content)
	addCommonFlags(fs, &f.common)

	rest, changed, err := parse(fs, args)
	f.changed = changed
	return f, rest, err
}

// parseStatsFlags parses stats command flags.
func parseStatsFlags(args []string, stderr io.Writer) (*statsFlags, []string, error) {
	fs := newFlagSet("stats", stderr, printStatsUsage)
	f := &statsFlags{}
	addContentFlags(fs, &f.content)
	addCommonFlags(fs, &f.common)

	rest, changed, err := parse(fs, args)
	f.changed = changed
	return f, rest, err
}

// parseStripFlags parses strip command flags.
func parseStripFlags(args []string, stderr io.Writer) (*stripFlags, []string, error) {
	fs := newFlagSet("strip", stderr, printStripUsage)
	f := &stripFlags{}
	fs.BoolVarP(&f.markdown, "markdown", "m", false, "treat input as Markdown")
	addCommonFlags(fs, &f.common)

	rest, changed, err := parse(fs, args)
	f.changed = changed
	return f, rest, err
}

// parseCSSFlags parses css command flags.
func parseCSSFlags(args []string, stderr io.Writer) (*cssFlags, []string, error) {
	fs := newFlagSet("css", stderr, printCSSUsage)
	f := &cssFlags{}
	fs.StringVar(&f.style, "style", "", "highlighting style (chroma name)")
	fs.StringVar(&f.theme, "theme", "", "component stylesheet name")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles/{name}.css")
	fs.BoolVar(&f.noComponents, "no-components", false, "omit component styles")
	fs.BoolVar(&f.noCode, "no-code", false, "omit code highlighting styles")
	addCommonFlags(fs, &f.common)

	rest, changed, err := parse(fs, args)
	f.changed = changed
	return f, rest, err
}

func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parse runs fs over args and records which flags were set explicitly,
// so only those override config and environment values.
func parse(fs *flag.FlagSet, args []string) ([]string, map[string]bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	changed := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { changed[f.Name] = true })
	return fs.Args(), changed, nil
}
