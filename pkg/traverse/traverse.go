// Package traverse walks a directory tree once per operation,
// applying exclusion rules and the optional file-type allow-list, and
// hands each surviving entry to a callback. The walk is depth-first in
// lexical order, so a fixed filesystem snapshot always produces the
// same sequence.
package traverse

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/X-Seti/Deepsearch/pkg/filter"
	"github.com/X-Seti/Deepsearch/pkg/logging"
	"github.com/X-Seti/Deepsearch/pkg/types"
)

// ErrStop is returned by a WalkFunc to halt the entire walk early.
// Walk swallows it and returns nil; it signals completion, not failure.
var ErrStop = stderrors.New("stop traversal")

// Entry is one filesystem entry produced by a walk.
type Entry struct {
	Path  string // joined from the walk root
	Name  string // basename
	IsDir bool
}

// WalkFunc receives entries in walk order. Returning ErrStop ends the
// walk; any other non-nil error aborts it and is returned from Walk.
type WalkFunc func(e Entry) error

// Walker produces candidate entries beneath a root. Each call to Walk
// is an independent pass; name matching and content matching run their
// own walks so they can apply different entry filters.
type Walker struct {
	fs          types.FS
	filter      *filter.Filter
	typeGlobs   []string
	includeDirs bool

	// OnError receives per-entry failures (unreadable subdirectory,
	// vanished file). The walk continues after it returns. Nil means
	// failures are only logged.
	OnError func(path string, err error)

	log zerolog.Logger
}

// New builds a Walker. typeFilters are filename globs; bare tokens are
// treated as extensions, so "py" and ".py" both become "*.py". An
// empty list admits every file. Directories are emitted (before their
// contents) only when includeDirs is set, and are never type-filtered.
func New(fsys types.FS, fl *filter.Filter, typeFilters []string, includeDirs bool) (*Walker, error) {
	globs, err := normalizeTypeFilters(typeFilters)
	if err != nil {
		return nil, err
	}
	return &Walker{
		fs:          fsys,
		filter:      fl,
		typeGlobs:   globs,
		includeDirs: includeDirs,
		log:         logging.GetLogger("traverse"),
	}, nil
}

// normalizeTypeFilters expands bare tokens into extension globs and
// validates each pattern.
func normalizeTypeFilters(filters []string) ([]string, error) {
	var globs []string
	for _, f := range filters {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		switch {
		case strings.ContainsAny(f, "*?["):
			// already a glob
		case strings.HasPrefix(f, "."):
			f = "*" + f
		default:
			f = "*." + f
		}
		if _, err := filepath.Match(f, "probe"); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput,
				"invalid type filter %q", f)
		}
		globs = append(globs, f)
	}
	return globs, nil
}

// Walk visits every candidate entry beneath root. An unreadable root
// is fatal; failures below it are reported through OnError and
// skipped. Entries arrive in lexical order within each directory.
func (w *Walker) Walk(root string, fn WalkFunc) error {
	info, err := w.fs.Stat(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRootAccess, "cannot access %s", root)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrRootAccess, "%s is not a directory", root)
	}

	err = w.walkDir(root, fn)
	if stderrors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func (w *Walker) walkDir(dir string, fn WalkFunc) error {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		w.reportEntryError(dir, err)
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if w.filter.SkipDir(name, path) {
				w.log.Trace().Str("path", path).Msg("directory excluded")
				continue
			}
			if w.includeDirs {
				if err := fn(Entry{Path: path, Name: name, IsDir: true}); err != nil {
					return err
				}
			}
			if err := w.walkDir(path, fn); err != nil {
				return err
			}
			continue
		}

		if !entry.Type().IsRegular() {
			w.log.Trace().Str("path", path).Msg("not a regular file, skipped")
			continue
		}
		if w.filter.SkipPath(path) {
			w.log.Trace().Str("path", path).Msg("path excluded")
			continue
		}
		if !w.matchesType(name) {
			continue
		}
		if err := fn(Entry{Path: path, Name: name, IsDir: false}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) matchesType(name string) bool {
	if len(w.typeGlobs) == 0 {
		return true
	}
	for _, g := range w.typeGlobs {
		// patterns are validated in New, Match cannot fail here
		if ok, _ := filepath.Match(g, name); ok {
			return true
		}
	}
	return false
}

func (w *Walker) reportEntryError(path string, err error) {
	w.log.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
	if w.OnError != nil {
		w.OnError(path, err)
	}
}
