// Package filter decides which filesystem paths a run should skip.
// It combines the built-in exclusions (VCS and tooling directories,
// dot-directories, the old/ convention) with user-supplied glob
// fragments. Exclusions are additive; nothing re-includes a path.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/X-Seti/Deepsearch/pkg/errors"
)

// DefaultExcludedDirs are directory names skipped on every run,
// independent of user configuration.
var DefaultExcludedDirs = []string{".git", "node_modules", "__pycache__", ".vscode", ".idea"}

// oldDirName is the directory name conventionally used for parked
// copies of files. Excluded unless the caller opts back in.
const oldDirName = "old"

// Filter evaluates exclusion rules against candidate paths.
type Filter struct {
	includeOld bool
	globs      []compiledGlob
}

type compiledGlob struct {
	fragment string
	g        glob.Glob
}

// New compiles the user-supplied exclusion fragments into a Filter.
// Each fragment f excludes any path containing a match for f: "build"
// excludes build/ trees at any depth, "*.min.js" excludes minified
// bundles wherever they sit. Wildcards span path separators.
func New(excludes []string, includeOld bool) (*Filter, error) {
	f := &Filter{includeOld: includeOld}
	for _, frag := range excludes {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		g, err := glob.Compile("*" + frag + "*")
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput,
				"invalid exclusion pattern %q", frag)
		}
		f.globs = append(f.globs, compiledGlob{fragment: frag, g: g})
	}
	return f, nil
}

// SkipDir reports whether the directory named name at path should be
// pruned from the walk, descendants included.
func (f *Filter) SkipDir(name, path string) bool {
	if name != "." && strings.HasPrefix(name, ".") {
		return true
	}
	for _, d := range DefaultExcludedDirs {
		if name == d {
			return true
		}
	}
	if !f.includeOld && name == oldDirName {
		return true
	}
	return f.SkipPath(path)
}

// SkipPath reports whether path is excluded by a user fragment or sits
// under an old/ directory. Files named "old" are not directories and
// are never excluded by the old/ rule.
func (f *Filter) SkipPath(path string) bool {
	if !f.includeOld && underOldDir(path) {
		return true
	}
	for _, cg := range f.globs {
		if cg.g.Match(path) {
			return true
		}
	}
	return false
}

// underOldDir reports whether any directory component of path is
// exactly "old".
func underOldDir(path string) bool {
	dir := filepath.ToSlash(filepath.Dir(path))
	if dir == "." {
		return false
	}
	for _, part := range strings.Split(dir, "/") {
		if part == oldDirName {
			return true
		}
	}
	return false
}
