package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"

	"github.com/midbel/xmlcheck/check"
	"github.com/midbel/xmlcheck/fetch"
)

const usage = `Usage: xml-validate [OPTIONS] XML_FILE SCHEMA_FILE

  Validate an XML document against an XSD schema.

  XML_FILE and SCHEMA_FILE are filesystem paths, file:// URIs, http(s)://
  URLs or ftp:// URLs.

Options:
  -v, --verbose  verbose printout for XML validation errors
  -h, --help     show this message and exit
`

type usageError string

func (e usageError) Error() string {
	return string(e)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var verbose bool

	set := flag.NewFlagSet("xml-validate", flag.ContinueOnError)
	set.SetOutput(io.Discard)
	set.BoolVar(&verbose, "v", false, "verbose printout for XML validation errors")
	set.BoolVar(&verbose, "verbose", false, "verbose printout for XML validation errors")
	if err := set.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(stdout, usage)
			return 0
		}
		fmt.Fprint(stderr, usage)
		fmt.Fprintf(stderr, "\nError: %s\n", err)
		return 2
	}
	if err := checkArgs(set.Args()); err != nil {
		fmt.Fprint(stderr, usage)
		fmt.Fprintf(stderr, "\nError: %s\n", err)
		return 2
	}

	doc, err := resolve(set.Arg(0), "XML_FILE", stderr)
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 0
	}
	schema, err := resolve(set.Arg(1), "SCHEMA_FILE", stderr)
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 0
	}

	report := check.Reporter{
		Out:     stdout,
		Verbose: verbose,
		Color:   colorEnabled(stdout),
	}
	report.Report(doc, check.Run(doc, schema))
	return 0
}

func checkArgs(args []string) error {
	switch {
	case len(args) == 0:
		return usageError("Missing argument 'XML_FILE'")
	case len(args) == 1:
		return usageError("Missing argument 'SCHEMA_FILE'")
	case len(args) > 2:
		word := "argument"
		if len(args) > 3 {
			word = "arguments"
		}
		return usageError(fmt.Sprintf("Got unexpected extra %s (%s)", word, strings.Join(args[2:], " ")))
	default:
		return nil
	}
}

// resolve fetches an argument, spinning on stderr while a remote transfer
// is in flight. No timeout: a hung server hangs the run.
func resolve(arg, label string, stderr io.Writer) (fetch.Source, error) {
	if k := fetch.Classify(arg); k != fetch.KindHTTP && k != fetch.KindFTP {
		return fetch.Resolve(arg, label)
	}
	if !terminal(stderr) {
		return fetch.Resolve(arg, label)
	}
	var (
		src  fetch.Source
		err  error
		spin = NewSpinner(stderr)
	)
	spin.SetMessage(fmt.Sprintf("fetching %s", arg))
	spin.Run(func() {
		src, err = fetch.Resolve(arg, label)
	})
	return src, err
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return terminal(w)
}

func terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
