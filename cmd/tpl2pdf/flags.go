package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the tpl2pdf command.
type cliFlags struct {
	config  string
	output  string
	quiet   bool
	verbose bool
	version bool

	pageFormat  string
	orientation string
	margin      float64

	headerFile string
	footerFile string

	markdown    bool
	nativePrint bool
	scale       float64
	timeout     string
	debugHTML   string
}

// parseFlags parses CLI flags and returns the positional arguments
// (template file and data file).
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("tpl2pdf", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default: template name with .pdf)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.StringVarP(&f.pageFormat, "page-format", "p", "", "page format: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in millimeters (applied to all sides)")

	fs.StringVar(&f.headerFile, "header", "", "HTML file for the fixed header band")
	fs.StringVar(&f.footerFile, "footer", "", "HTML file for the fixed footer band")

	fs.BoolVarP(&f.markdown, "markdown", "m", false, "treat the rendered template as Markdown")
	fs.BoolVar(&f.nativePrint, "native-print", false, "use the browser print engine instead of page capture")
	fs.Float64Var(&f.scale, "scale", 0, "capture scale factor (0.5-4.0)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.debugHTML, "debug-html", "", "also write the composed HTML to this path")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// printUsage writes the command usage to w.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: tpl2pdf [flags] <template.html> <data.yaml|data.json>

Renders an HTML template against a data payload and produces a paginated
PDF via headless Chrome.

Flags:
  -c, --config string        config file name or path
  -o, --output string        output PDF path (default: template name with .pdf)
  -p, --page-format string   page format: a4, letter, legal
      --orientation string   page orientation: portrait, landscape
      --margin float         page margin in millimeters (all sides)
      --header string        HTML file for the fixed header band
      --footer string        HTML file for the fixed footer band
  -m, --markdown             treat the rendered template as Markdown
      --native-print         use the browser print engine instead of page capture
      --scale float          capture scale factor (0.5-4.0)
  -t, --timeout string       generation timeout (e.g., 30s, 2m)
      --debug-html string    also write the composed HTML to this path
  -q, --quiet                only show errors
  -v, --verbose              show detailed progress
      --version              print version and exit
`)
}
