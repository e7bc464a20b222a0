package deepsearch

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// longHelp renders the embedded markdown guide. On a terminal it goes
// through glamour; piped output and render failures fall back to the
// raw markdown, which reads fine as plain text.
func longHelp() string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return MsgRootLong
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return MsgRootLong
	}

	rendered, err := renderer.Render(MsgRootLong)
	if err != nil {
		return MsgRootLong
	}

	return strings.TrimRight(rendered, "\n")
}
