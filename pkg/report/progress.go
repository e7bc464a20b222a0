package report

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Progress shows a spinner on stderr while a long traversal runs. It stays
// inactive when stderr is not a terminal, so piped and scripted runs see
// nothing extra.
type Progress struct {
	spinner *pterm.SpinnerPrinter
}

// StartProgress starts the spinner with an initial label. Always returns a
// usable value; on a non-terminal stderr every method is a no-op.
func StartProgress(label string) *Progress {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return &Progress{}
	}
	spinner, err := pterm.DefaultSpinner.
		WithWriter(os.Stderr).
		WithRemoveWhenDone(true).
		Start(label)
	if err != nil {
		return &Progress{}
	}
	return &Progress{spinner: spinner}
}

// Visit updates the spinner with the path currently being scanned
func (p *Progress) Visit(path string) {
	if p.spinner == nil {
		return
	}
	p.spinner.UpdateText(path)
}

// Stop clears the spinner before the report is printed
func (p *Progress) Stop() {
	if p.spinner == nil {
		return
	}
	_ = p.spinner.Stop()
}
