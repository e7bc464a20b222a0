// Package classify decides whether a file's content is text or binary.
// Binary files are skipped by content search and replace unless the
// caller overrides the classification.
package classify

import (
	"io"

	"github.com/gabriel-vasile/mimetype"

	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/X-Seti/Deepsearch/pkg/types"
)

// headerSize bounds how much of a file the classifier reads. Null
// bytes and magic numbers show up in the first half kilobyte; files of
// unbounded size are never read whole.
const headerSize = 512

// Classifier sniffs file headers through an FS.
type Classifier struct {
	fs          types.FS
	allowBinary bool
}

// New returns a Classifier. When allowBinary is set every file is
// treated as text and the filesystem is never touched.
func New(fsys types.FS, allowBinary bool) *Classifier {
	return &Classifier{fs: fsys, allowBinary: allowBinary}
}

// IsBinary reports whether the file at path should be excluded from
// content operations. Classification inspects a bounded content prefix
// rather than the extension: a file counts as text when its detected
// MIME type is text/plain or descends from it (JSON, XML, CSV and the
// like all do). Empty files are text.
func (c *Classifier) IsBinary(path string) (bool, error) {
	if c.allowBinary {
		return false, nil
	}

	r, err := c.fs.Open(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", path)
	}
	defer func() { _ = r.Close() }()

	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", path)
	}
	if n == 0 {
		return false, nil
	}

	for m := mimetype.Detect(header[:n]); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return false, nil
		}
	}
	return true, nil
}
