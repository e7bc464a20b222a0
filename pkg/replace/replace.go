// Package replace reuses the matching pipeline to mutate the tree:
// renames for matching names, in-place substitution for matching
// contents. Nothing is written unless apply is set; the default run
// only reports what would change.
package replace

import (
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"

	"github.com/X-Seti/Deepsearch/pkg/classify"
	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/X-Seti/Deepsearch/pkg/filter"
	"github.com/X-Seti/Deepsearch/pkg/logging"
	"github.com/X-Seti/Deepsearch/pkg/match"
	"github.com/X-Seti/Deepsearch/pkg/traverse"
	"github.com/X-Seti/Deepsearch/pkg/types"
)

// Replacer performs the rename and content phases for one invocation.
type Replacer struct {
	fs         types.FS
	cfg        types.ReplaceConfig
	mode       types.Mode
	matcher    *match.Matcher
	filter     *filter.Filter
	classifier *classify.Classifier

	// OnVisit, when set, is called with each path before its content
	// is examined. Used for progress display.
	OnVisit func(path string)

	log zerolog.Logger
}

// New validates cfg and assembles the replacement pipeline.
func New(fsys types.FS, cfg types.ReplaceConfig, mode types.Mode) (*Replacer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := match.New(cfg.Pattern, cfg.IsRegex, cfg.IgnoreCase)
	if err != nil {
		return nil, err
	}
	fl, err := filter.New(cfg.Excludes, cfg.IncludeOld)
	if err != nil {
		return nil, err
	}
	return &Replacer{
		fs:         fsys,
		cfg:        cfg,
		mode:       mode,
		matcher:    m,
		filter:     fl,
		classifier: classify.New(fsys, cfg.AllowBinary),
		log:        logging.GetLogger("replace"),
	}, nil
}

// Run executes the rename phase, then the content phase. Per-file
// failures are recorded on their changes and the run continues; only
// an unusable root or configuration aborts it.
func (r *Replacer) Run() (*types.ReplaceResult, error) {
	result := &types.ReplaceResult{}

	if r.mode.SearchesNames() {
		if err := r.renamePhase(result); err != nil {
			return nil, err
		}
	}
	if r.mode.SearchesContents() {
		if err := r.contentPhase(result); err != nil {
			return nil, err
		}
	}

	r.log.Info().
		Bool("apply", r.cfg.Apply).
		Int("scanned", result.Counters.Scanned).
		Int("matched", result.Counters.Matched).
		Int("modified", result.Counters.Modified).
		Msg("replace complete")

	return result, nil
}

// renamePhase collects rename proposals in walk order, then applies
// them in reverse so files move before the directories holding them
// and every recorded path is still valid when its turn comes.
func (r *Replacer) renamePhase(result *types.ReplaceResult) error {
	w, err := traverse.New(r.fs, r.filter, r.cfg.TypeFilters, r.cfg.IncludeDirs)
	if err != nil {
		return err
	}
	w.OnError = func(path string, err error) {
		r.recordError(result, path, err)
	}

	var proposals []types.RenameChange
	err = w.Walk(r.cfg.Root, func(e traverse.Entry) error {
		if !r.matcher.MatchString(e.Name) {
			return nil
		}
		result.Counters.Matched++
		newName := r.matcher.Replace(e.Name, r.cfg.Replacement)
		if newName == e.Name {
			// Matched, but substitution changes nothing. Counted, not
			// proposed.
			return nil
		}
		proposals = append(proposals, types.RenameChange{
			Path:    e.Path,
			NewPath: filepath.Join(filepath.Dir(e.Path), newName),
			IsDir:   e.IsDir,
		})
		return nil
	})
	if err != nil {
		return err
	}

	if r.cfg.Apply {
		for i := len(proposals) - 1; i >= 0; i-- {
			r.applyRename(&proposals[i])
			if proposals[i].Applied {
				result.Counters.Modified++
			}
		}
	}

	// Reported in walk order regardless of apply order
	result.Renames = append(result.Renames, proposals...)
	return nil
}

// applyRename executes one rename. An existing target is a per-file
// conflict, never silently clobbered.
func (r *Replacer) applyRename(change *types.RenameChange) {
	if _, err := r.fs.Lstat(change.NewPath); err == nil {
		change.Err = errors.Newf(errors.ErrRenameConflict,
			"rename target %s already exists", change.NewPath)
		r.log.Warn().
			Str("from", change.Path).
			Str("to", change.NewPath).
			Msg("rename conflict")
		return
	}
	if err := r.fs.Rename(change.Path, change.NewPath); err != nil {
		change.Err = errors.Wrapf(err, errors.ErrRename, "cannot rename %s", change.Path)
		r.log.Warn().Err(err).Str("path", change.Path).Msg("rename failed")
		return
	}
	change.Applied = true
	r.log.Debug().
		Str("from", change.Path).
		Str("to", change.NewPath).
		Msg("renamed")
}

// contentPhase rewrites (or proposes to rewrite) every candidate file
// containing at least one occurrence.
func (r *Replacer) contentPhase(result *types.ReplaceResult) error {
	w, err := traverse.New(r.fs, r.filter, r.cfg.TypeFilters, false)
	if err != nil {
		return err
	}
	w.OnError = func(path string, err error) {
		r.recordError(result, path, err)
	}

	return w.Walk(r.cfg.Root, func(e traverse.Entry) error {
		r.editFile(e.Path, result)
		return nil
	})
}

// editFile tests one file for occurrences and rewrites it when apply
// is on. The scanned counter moves before the match test; files that
// turn out not to match still count as scanned.
func (r *Replacer) editFile(path string, result *types.ReplaceResult) {
	if r.OnVisit != nil {
		r.OnVisit(path)
	}

	binary, err := r.classifier.IsBinary(path)
	if err != nil {
		r.recordError(result, path, err)
		return
	}
	if binary {
		r.log.Trace().Str("path", path).Msg("binary file skipped")
		return
	}

	result.Counters.Scanned++

	info, err := r.fs.Stat(path)
	if err != nil {
		r.recordError(result, path, err)
		return
	}
	data, err := r.fs.ReadFile(path)
	if err != nil {
		r.recordError(result, path, err)
		return
	}

	oldContent := string(data)
	newContent, matchedLines := r.substitute(oldContent)
	if matchedLines == 0 {
		return
	}
	result.Counters.Matched++

	change := types.ContentChange{Path: path, MatchedLines: matchedLines}

	if r.cfg.ShowDiff {
		change.Diff = unifiedDiff(path, oldContent, newContent)
	}

	if r.cfg.Apply {
		if r.cfg.Backup {
			backupPath := path + r.cfg.BackupSuffix
			if err := r.fs.WriteFile(backupPath, data, info.Mode().Perm()); err != nil {
				change.Err = errors.Wrapf(err, errors.ErrBackup,
					"cannot write backup %s", backupPath)
				result.Edits = append(result.Edits, change)
				r.log.Warn().Err(err).Str("path", path).
					Msg("backup failed, file left unmodified")
				return
			}
			change.BackupPath = backupPath
		}
		if err := r.fs.WriteFile(path, []byte(newContent), info.Mode().Perm()); err != nil {
			change.Err = errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
			result.Edits = append(result.Edits, change)
			r.log.Warn().Err(err).Str("path", path).Msg("write failed")
			return
		}
		change.Applied = true
		result.Counters.Modified++
	}

	result.Edits = append(result.Edits, change)
}

// substitute applies the replacement on every line, keeping line
// terminators exactly as found. Returns the new content and the number
// of lines that contained at least one occurrence.
func (r *Replacer) substitute(content string) (string, int) {
	if content == "" {
		return content, 0
	}

	segments := strings.SplitAfter(content, "\n")
	// A trailing newline leaves a phantom empty segment, not a line
	if segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}

	matched := 0
	var b strings.Builder
	b.Grow(len(content))
	for _, seg := range segments {
		body := strings.TrimRight(seg, "\r\n")
		terminator := seg[len(body):]
		if r.matcher.MatchString(body) {
			matched++
			body = r.matcher.Replace(body, r.cfg.Replacement)
		}
		b.WriteString(body)
		b.WriteString(terminator)
	}
	return b.String(), matched
}

func (r *Replacer) recordError(result *types.ReplaceResult, path string, err error) {
	r.log.Warn().Err(err).Str("path", path).Msg("skipping file")
	result.Errors = append(result.Errors, types.FileError{Path: path, Err: err})
}

// unifiedDiff renders the old-versus-new comparison for one file.
func unifiedDiff(path, oldContent, newContent string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}
