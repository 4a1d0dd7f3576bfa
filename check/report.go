package check

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"

	"github.com/midbel/xmlcheck/fetch"
)

var (
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.Green)
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Red)
	errorStyle   = lipgloss.NewStyle().Bold(true)
)

// Reporter writes the outcome of a validation run as terminal text. The
// printed text is a contract: scripts parse it, so everything but the
// coloring has to stay byte for byte stable.
type Reporter struct {
	Out     io.Writer
	Verbose bool
	Color   bool
}

func (r Reporter) Report(doc fetch.Source, res Result) {
	switch res.Status {
	case StatusValid:
		r.heading(doc)
		r.println(validStyle, "is valid.")
		fmt.Fprintln(r.Out)
	case StatusInvalid:
		r.heading(doc)
		r.println(invalidStyle, "is invalid.")
		fmt.Fprintln(r.Out)
		if r.Verbose {
			r.println(errorStyle, "Error:")
			fmt.Fprintln(r.Out, res.Detail)
		}
	case StatusMalformed:
		fmt.Fprintln(r.Out, "Faulty XML or XSD file was given.")
		fmt.Fprintln(r.Out)
		if r.Verbose {
			fmt.Fprintf(r.Out, "Error: %s\n", res.Detail)
		}
	default:
		if r.Verbose {
			fmt.Fprintf(r.Out, "Error: %s\n", res.Detail)
		} else {
			fmt.Fprintln(r.Out)
			fmt.Fprintln(r.Out, "Validation ran into an unexpected error. Run command with --verbose option for more details")
			fmt.Fprintln(r.Out)
		}
	}
}

func (r Reporter) heading(doc fetch.Source) {
	if doc.Remote() {
		fmt.Fprintf(r.Out, "The XML from the URL:\n%s\n", doc.Arg)
	} else {
		fmt.Fprintf(r.Out, "The XML file: %s\n", doc.Name())
	}
}

func (r Reporter) println(style lipgloss.Style, text string) {
	if r.Color {
		text = style.Render(text)
	}
	fmt.Fprintln(r.Out, text)
}
