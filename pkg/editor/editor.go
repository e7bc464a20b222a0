// Package editor launches an external text editor on a search result.
//
// The tool only formats the invocation; the editor itself is a boundary
// collaborator. Launches are fire-and-forget: the process is started and
// released, never waited on.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/X-Seti/Deepsearch/pkg/logging"
)

// Resolve picks the editor command to run: the configured value wins,
// then $VISUAL, then $EDITOR.
func Resolve(configured string) (string, error) {
	for _, candidate := range []string{configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}
	return "", errors.New(errors.ErrEditorLaunch,
		"no editor configured; set $EDITOR or the output.editor config key")
}

// Launch starts editorCmd on path, jumping to line when line > 0 using the
// +N convention understood by vi, nano, emacs and friends. The editor may
// outlive this process.
func Launch(editorCmd, path string, line int) error {
	logger := logging.GetLogger("editor")

	argv := buildArgv(editorCmd, path, line)
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return errors.Wrapf(err, errors.ErrEditorLaunch, "editor %q not found", argv[0])
	}

	cmd := exec.Command(bin, argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Debug().
		Str("editor", bin).
		Strs("args", argv[1:]).
		Msg("Launching editor")

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, errors.ErrEditorLaunch, "failed to start editor %q", bin)
	}
	// Fire and forget
	return cmd.Process.Release()
}

// buildArgv splits a configured command like "code --reuse-window" into
// argv and appends the line jump and the file
func buildArgv(editorCmd, path string, line int) []string {
	argv := strings.Fields(editorCmd)
	if line > 0 {
		argv = append(argv, fmt.Sprintf("+%d", line))
	}
	return append(argv, path)
}
