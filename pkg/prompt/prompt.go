// Package prompt asks for a search pattern through a desktop dialog.
//
// This covers launches from a file manager, where there is no terminal to
// type the pattern into. zenity is tried first, then kdialog; the dialog's
// stdout becomes an ordinary pattern string.
package prompt

import (
	"os/exec"
	"strings"

	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/X-Seti/Deepsearch/pkg/logging"
)

// Seams for tests; dialogs cannot run headless
var (
	lookPath  = exec.LookPath
	runDialog = func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).Output()
	}
)

// Ask opens an entry dialog and returns what the user typed, without the
// trailing newline. A cancelled dialog or a machine with no dialog tool is
// a prompt failure.
func Ask(title, text string) (string, error) {
	logger := logging.GetLogger("prompt")

	name, args, err := dialogCommand(title, text)
	if err != nil {
		return "", err
	}

	logger.Debug().Str("dialog", name).Msg("Prompting for pattern")

	out, err := runDialog(name, args...)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPromptFailed, "%s dialog failed or was cancelled", name)
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

// dialogCommand picks the first available dialog tool
func dialogCommand(title, text string) (string, []string, error) {
	if _, err := lookPath("zenity"); err == nil {
		return "zenity", zenityArgs(title, text), nil
	}
	if _, err := lookPath("kdialog"); err == nil {
		return "kdialog", kdialogArgs(title, text), nil
	}
	return "", nil, errors.New(errors.ErrPromptFailed,
		"no dialog tool available; install zenity or kdialog, or pass the pattern as an argument")
}

func zenityArgs(title, text string) []string {
	return []string{"--entry", "--title", title, "--text", text}
}

func kdialogArgs(title, text string) []string {
	return []string{"--title", title, "--inputbox", text}
}
