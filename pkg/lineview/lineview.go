// Package lineview shows a window of a single file around one line.
//
// This backs the dedicated line-viewing mode: given a file and a 1-based
// line number, it returns that line with up to N lines of context on each
// side, sharing the search pipeline's line splitting so both modes agree
// on what a line is.
package lineview

import (
	"github.com/X-Seti/Deepsearch/pkg/classify"
	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/X-Seti/Deepsearch/pkg/search"
	"github.com/X-Seti/Deepsearch/pkg/types"
)

// Viewer reads line windows from files
type Viewer struct {
	fs types.FS
}

// New creates a viewer reading through fsys
func New(fsys types.FS) *Viewer {
	return &Viewer{fs: fsys}
}

// Window returns line (1-based) of path with context lines on each side,
// clamped to the file. Binary files are refused; viewing the middle of a
// blob helps nobody.
func (v *Viewer) Window(path string, line, context int) ([]types.ContextLine, error) {
	if line < 1 {
		return nil, errors.Newf(errors.ErrUsage, "line must be >= 1, got %d", line)
	}
	if context < 0 {
		return nil, errors.Newf(errors.ErrUsage, "context must be >= 0, got %d", context)
	}

	binary, err := classify.New(v.fs, false).IsBinary(path)
	if err != nil {
		return nil, err
	}
	if binary {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is a binary file", path)
	}

	data, err := v.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
	}

	lines := search.SplitLines(string(data))
	if line > len(lines) {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"line %d is beyond the end of %s (%d lines)", line, path, len(lines))
	}

	lo := line - 1 - context
	if lo < 0 {
		lo = 0
	}
	hi := line - 1 + context
	if hi > len(lines)-1 {
		hi = len(lines) - 1
	}

	window := make([]types.ContextLine, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		window = append(window, types.ContextLine{Number: i + 1, Text: lines[i]})
	}
	return window, nil
}
