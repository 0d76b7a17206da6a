package main

import (
	"fmt"
	"io"
	"strings"

	richtext "github.com/alnah/go-richtext"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: richtext <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render shortcodes, links, images and TOC into HTML")
	fmt.Fprintln(w, "  stats      Print word count, reading time, excerpt and outline")
	fmt.Fprintln(w, "  strip      Print plain text with shortcodes removed")
	fmt.Fprintln(w, "  css        Print the stylesheet for rendered content")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'richtext <file>' is shorthand for 'richtext render <file>'.")
	fmt.Fprintln(w, "Run 'richtext help <command>' for details on a specific command.")
}

func printContentFlags(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --host <s>            Site host; links elsewhere get rel/target attributes")
	fmt.Fprintln(w, "      --base-url <url>      Resolve relative image and link URLs")
	fmt.Fprintln(w, "  -m, --markdown            Treat input as Markdown (implied by .md)")
	fmt.Fprintln(w, "      --highlight           Syntax-highlight code blocks")
	fmt.Fprintln(w, "      --style <s>           Highlighting style (implies --highlight)")
	fmt.Fprintln(w, "      --toc-title <s>       Table of contents heading")
	fmt.Fprintln(w, "      --no-toc              Disable table of contents")
	fmt.Fprintln(w)
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: richtext render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render content files to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File, directory, or - for stdin (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (stdin renders to stdout)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --standalone          Wrap output in a full HTML page")
	fmt.Fprintln(w, "      --theme <name>        Component stylesheet for standalone pages")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom styles/{name}.css")
	fmt.Fprintln(w)
	printContentFlags(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Shortcodes: %s\n", strings.Join(richtext.ShortcodeNames(), ", "))
}

// printStatsUsage prints usage for the stats command.
func printStatsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: richtext stats [input...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print word count, reading time, excerpt and headings as YAML.")
	fmt.Fprintln(w, "Reads stdin when no input is given.")
	fmt.Fprintln(w)
	printContentFlags(w)
	printCommonFlags(w)
}

// printStripUsage prints usage for the strip command.
func printStripUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: richtext strip [input...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print plain text with tags and shortcodes removed.")
	fmt.Fprintln(w, "Reads stdin when no input is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "  -m, --markdown            Treat input as Markdown (implied by .md)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printCSSUsage prints usage for the css command.
func printCSSUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: richtext css [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the component stylesheet followed by code highlighting classes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --theme <name>        Component stylesheet (default, minimal, or custom)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom styles/{name}.css")
	fmt.Fprintln(w, "      --style <s>           Highlighting style (chroma name)")
	fmt.Fprintln(w, "      --no-components       Omit component styles")
	fmt.Fprintln(w, "      --no-code             Omit code highlighting styles")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "stats":
		printStatsUsage(env.Stdout)
	case "strip":
		printStripUsage(env.Stdout)
	case "css":
		printCSSUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: richtext version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: richtext help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
