// Package search runs the read-only matching pipeline. Filename
// matching and content matching are independent streams, each with its
// own traversal, feeding one accumulated result.
package search

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/X-Seti/Deepsearch/pkg/classify"
	"github.com/X-Seti/Deepsearch/pkg/filter"
	"github.com/X-Seti/Deepsearch/pkg/logging"
	"github.com/X-Seti/Deepsearch/pkg/match"
	"github.com/X-Seti/Deepsearch/pkg/traverse"
	"github.com/X-Seti/Deepsearch/pkg/types"
)

// Searcher runs filename and content searches for one invocation. It
// only ever reads the filesystem.
type Searcher struct {
	fs         types.FS
	cfg        types.SearchConfig
	mode       types.Mode
	matcher    *match.Matcher
	filter     *filter.Filter
	classifier *classify.Classifier

	// OnVisit, when set, is called with each path before its content
	// is scanned. Used for progress display.
	OnVisit func(path string)

	log zerolog.Logger
}

// New validates cfg and assembles the matching pipeline.
func New(fsys types.FS, cfg types.SearchConfig, mode types.Mode) (*Searcher, error) {
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
	return &Searcher{
		fs:         fsys,
		cfg:        cfg,
		mode:       mode,
		matcher:    m,
		filter:     fl,
		classifier: classify.New(fsys, cfg.AllowBinary),
		log:        logging.GetLogger("search"),
	}, nil
}

// Run performs the search and returns the accumulated result. A run
// that finds nothing is a normal outcome, not an error; fatal errors
// are limited to an unusable root or configuration.
func (s *Searcher) Run() (*types.SearchResult, error) {
	result := &types.SearchResult{}

	if s.mode.SearchesNames() {
		if err := s.searchNames(result); err != nil {
			return nil, err
		}
		// A first-match hit in the name stream ends the whole run.
		if s.cfg.FirstOnly && len(result.Matches) > 0 {
			return result, nil
		}
	}

	if s.mode.SearchesContents() {
		if err := s.searchContents(result); err != nil {
			return nil, err
		}
	}

	s.log.Info().
		Int("scanned", result.Counters.Scanned).
		Int("matched", result.Counters.Matched).
		Msg("search complete")

	return result, nil
}

// searchNames tests every candidate basename against the pattern.
func (s *Searcher) searchNames(result *types.SearchResult) error {
	w, err := traverse.New(s.fs, s.filter, s.cfg.TypeFilters, s.cfg.IncludeDirs)
	if err != nil {
		return err
	}
	w.OnError = func(path string, err error) {
		s.recordError(result, path, err)
	}

	return w.Walk(s.cfg.Root, func(e traverse.Entry) error {
		if !s.matcher.MatchString(e.Name) {
			return nil
		}
		result.Matches = append(result.Matches, types.MatchResult{
			Path:  e.Path,
			Kind:  types.MatchName,
			IsDir: e.IsDir,
		})
		result.Counters.Matched++
		if s.cfg.FirstOnly {
			return traverse.ErrStop
		}
		return nil
	})
}

// searchContents scans candidate files line by line.
func (s *Searcher) searchContents(result *types.SearchResult) error {
	w, err := traverse.New(s.fs, s.filter, s.cfg.TypeFilters, false)
	if err != nil {
		return err
	}
	w.OnError = func(path string, err error) {
		s.recordError(result, path, err)
	}

	return w.Walk(s.cfg.Root, func(e traverse.Entry) error {
		return s.scanFile(e.Path, result)
	})
}

// scanFile reads one file and records every matching line. Returns
// traverse.ErrStop in first-match mode once a match is recorded.
func (s *Searcher) scanFile(path string, result *types.SearchResult) error {
	if s.OnVisit != nil {
		s.OnVisit(path)
	}

	binary, err := s.classifier.IsBinary(path)
	if err != nil {
		s.recordError(result, path, err)
		return nil
	}
	if binary {
		s.log.Trace().Str("path", path).Msg("binary file skipped")
		return nil
	}

	result.Counters.Scanned++

	data, err := s.fs.ReadFile(path)
	if err != nil {
		s.recordError(result, path, err)
		return nil
	}

	lines := SplitLines(string(data))
	for i, line := range lines {
		if !s.matcher.MatchString(line) {
			continue
		}
		m := types.MatchResult{
			Path: path,
			Kind: types.MatchContent,
			Line: i + 1,
			Text: line,
		}
		if s.cfg.ContextLines > 0 {
			m.Context = contextWindow(lines, i, s.cfg.ContextLines)
		}
		result.Matches = append(result.Matches, m)
		result.Counters.Matched++
		if s.cfg.FirstOnly {
			return traverse.ErrStop
		}
	}
	return nil
}

func (s *Searcher) recordError(result *types.SearchResult, path string, err error) {
	s.log.Warn().Err(err).Str("path", path).Msg("skipping file")
	result.Errors = append(result.Errors, types.FileError{Path: path, Err: err})
}

// SplitLines splits file content into lines for matching. Line
// terminators are stripped so ^ and $ anchor correctly; a trailing
// newline does not produce a phantom empty line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// contextWindow copies the lines around index i, the matched line
// included, numbering them 1-based.
func contextWindow(lines []string, i, n int) []types.ContextLine {
	lo := i - n
	if lo < 0 {
		lo = 0
	}
	hi := i + n
	if hi > len(lines)-1 {
		hi = len(lines) - 1
	}
	window := make([]types.ContextLine, 0, hi-lo+1)
	for j := lo; j <= hi; j++ {
		window = append(window, types.ContextLine{Number: j + 1, Text: lines[j]})
	}
	return window
}
