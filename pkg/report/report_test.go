package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/X-Seti/Deepsearch/pkg/style"
	"github.com/X-Seti/Deepsearch/pkg/types"
)

func TestMain(m *testing.M) {
	// Force plain rendering so assertions see no escape sequences
	style.Apply(style.FormatText)
	m.Run()
}

func renderSearch(t *testing.T, result *types.SearchResult, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	r := New(&buf, opts)
	require.NoError(t, r.RenderSearch(result, "foo"))
	return buf.String()
}

func renderReplace(t *testing.T, result *types.ReplaceResult, cfg types.ReplaceConfig, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	r := New(&buf, opts)
	require.NoError(t, r.RenderReplace(result, cfg))
	return buf.String()
}

func TestSearchReportSections(t *testing.T) {
	result := &types.SearchResult{
		Matches: []types.MatchResult{
			{Path: "src/foo.txt", Kind: types.MatchName},
			{Path: "src/foo_dir", Kind: types.MatchName, IsDir: true},
			{Path: "src/main.go", Kind: types.MatchContent, Line: 3, Text: "foo happens"},
			{Path: "src/main.go", Kind: types.MatchContent, Line: 9, Text: "more foo"},
			{Path: "src/other.go", Kind: types.MatchContent, Line: 1, Text: "foo"},
		},
		Counters: types.RunCounters{Scanned: 4, Matched: 5},
	}

	out := renderSearch(t, result, Options{})

	assert.Contains(t, out, "Name matches\n")
	assert.Contains(t, out, "  src/foo.txt\n")
	assert.Contains(t, out, "  src/foo_dir/\n")
	assert.Contains(t, out, "Content matches\n")
	assert.Contains(t, out, "  src/main.go\n")
	assert.Contains(t, out, "    3: foo happens\n")
	assert.Contains(t, out, "    9: more foo\n")
	assert.Contains(t, out, "  src/other.go\n")
	assert.Contains(t, out, "scanned 4, matched 5\n")

	// A file header appears once, not per match
	assert.Equal(t, 1, strings.Count(out, "  src/main.go\n"))
}

func TestSearchReportContextWindow(t *testing.T) {
	result := &types.SearchResult{
		Matches: []types.MatchResult{
			{
				Path: "a.txt", Kind: types.MatchContent, Line: 3, Text: "foo",
				Context: []types.ContextLine{
					{Number: 2, Text: "before"},
					{Number: 3, Text: "foo"},
					{Number: 4, Text: "after"},
				},
			},
		},
		Counters: types.RunCounters{Scanned: 1, Matched: 1},
	}

	out := renderSearch(t, result, Options{})

	assert.Contains(t, out, "    2  before\n")
	assert.Contains(t, out, "    3: foo\n")
	assert.Contains(t, out, "    4  after\n")
}

func TestSearchReportCountMode(t *testing.T) {
	result := &types.SearchResult{
		Matches: []types.MatchResult{
			{Path: "a.txt", Kind: types.MatchContent, Line: 1, Text: "foo"},
			{Path: "a.txt", Kind: types.MatchContent, Line: 2, Text: "foo"},
			{Path: "b.txt", Kind: types.MatchContent, Line: 5, Text: "foo"},
		},
		Counters: types.RunCounters{Scanned: 2, Matched: 3},
	}

	out := renderSearch(t, result, Options{CountOnly: true})

	assert.Contains(t, out, "  a.txt: 2\n")
	assert.Contains(t, out, "  b.txt: 1\n")
	assert.NotContains(t, out, "1: foo")
}

func TestSearchReportSummaryOnly(t *testing.T) {
	result := &types.SearchResult{
		Matches: []types.MatchResult{
			{Path: "a.txt", Kind: types.MatchContent, Line: 1, Text: "foo"},
		},
		Counters: types.RunCounters{Scanned: 1, Matched: 1},
	}

	out := renderSearch(t, result, Options{SummaryOnly: true})

	assert.NotContains(t, out, "a.txt")
	assert.Contains(t, out, "scanned 1, matched 1\n")
}

func TestSearchReportNotFound(t *testing.T) {
	result := &types.SearchResult{Counters: types.RunCounters{Scanned: 7}}

	out := renderSearch(t, result, Options{})

	assert.Contains(t, out, `No matches for "foo".`)
	assert.Contains(t, out, "scanned 7, matched 0\n")
}

func TestSearchReportFileErrors(t *testing.T) {
	result := &types.SearchResult{
		Matches: []types.MatchResult{
			{Path: "a.txt", Kind: types.MatchContent, Line: 1, Text: "foo"},
		},
		Counters: types.RunCounters{Scanned: 2, Matched: 1},
		Errors: []types.FileError{
			{Path: "locked.txt", Err: errors.New(errors.ErrFileAccess, "permission denied")},
		},
	}

	out := renderSearch(t, result, Options{})

	assert.Contains(t, out, "Skipped\n")
	assert.Contains(t, out, "  locked.txt: ")
	assert.Contains(t, out, "permission denied")
}

func TestSearchReportTeeIsPlainCopy(t *testing.T) {
	result := &types.SearchResult{
		Matches: []types.MatchResult{
			{Path: "a.txt", Kind: types.MatchContent, Line: 1, Text: "foo"},
		},
		Counters: types.RunCounters{Scanned: 1, Matched: 1},
	}

	var out, tee bytes.Buffer
	r := New(&out, Options{})
	r.Tee(&tee)
	require.NoError(t, r.RenderSearch(result, "foo"))

	// With styling forced off, both renditions are identical
	assert.Equal(t, out.String(), tee.String())
	assert.NotContains(t, tee.String(), "\x1b[")
}

func TestReplaceReportDryRun(t *testing.T) {
	result := &types.ReplaceResult{
		Renames: []types.RenameChange{
			{Path: "foo.txt", NewPath: "baz.txt"},
		},
		Edits: []types.ContentChange{
			{Path: "a.txt", MatchedLines: 2},
		},
		Counters: types.RunCounters{Scanned: 3, Matched: 3},
	}
	cfg := types.ReplaceConfig{
		SearchConfig: types.SearchConfig{Pattern: "foo"},
		Replacement:  "baz",
		BackupSuffix: ".bak",
	}

	out := renderReplace(t, result, cfg, Options{})

	assert.Contains(t, out, "Proposed renames\n")
	assert.Contains(t, out, "  foo.txt -> baz.txt\n")
	assert.Contains(t, out, "Proposed edits\n")
	assert.Contains(t, out, "  a.txt (2 lines)\n")
	assert.Contains(t, out, "scanned 3, matched 3, modified 0 (dry run)\n")
	assert.Contains(t, out, "--apply")
	assert.Contains(t, out, "--backup")
	assert.Contains(t, out, ".bak")
	assert.Contains(t, out, "--diff")
}

func TestReplaceReportApplied(t *testing.T) {
	result := &types.ReplaceResult{
		Renames: []types.RenameChange{
			{Path: "foo_dir", NewPath: "baz_dir", IsDir: true, Applied: true},
		},
		Edits: []types.ContentChange{
			{Path: "a.txt", MatchedLines: 1, Applied: true, BackupPath: "a.txt.bak"},
		},
		Counters: types.RunCounters{Scanned: 1, Matched: 2, Modified: 2},
	}
	cfg := types.ReplaceConfig{
		SearchConfig: types.SearchConfig{Pattern: "foo"},
		Replacement:  "baz",
		Apply:        true,
	}

	out := renderReplace(t, result, cfg, Options{})

	assert.Contains(t, out, "Renamed\n")
	assert.Contains(t, out, "  foo_dir/ -> baz_dir/\n")
	assert.Contains(t, out, "Edited\n")
	assert.Contains(t, out, "  a.txt (1 line, backup: a.txt.bak)\n")
	assert.Contains(t, out, "scanned 1, matched 2, modified 2\n")
	assert.NotContains(t, out, "(dry run)")
	assert.NotContains(t, out, "--apply")
}

func TestReplaceReportPerFileErrors(t *testing.T) {
	result := &types.ReplaceResult{
		Renames: []types.RenameChange{
			{
				Path: "foo.txt", NewPath: "bar.txt",
				Err: errors.New(errors.ErrRenameConflict, "target exists"),
			},
		},
		Edits: []types.ContentChange{
			{
				Path: "a.txt", MatchedLines: 1,
				Err: errors.New(errors.ErrFileWrite, "permission denied"),
			},
		},
		Counters: types.RunCounters{Scanned: 1, Matched: 2},
	}
	cfg := types.ReplaceConfig{
		SearchConfig: types.SearchConfig{Pattern: "foo"},
		Replacement:  "bar",
		Apply:        true,
	}

	out := renderReplace(t, result, cfg, Options{})

	assert.Contains(t, out, "target exists")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "scanned 1, matched 2, modified 0\n")
}

func TestReplaceReportDiff(t *testing.T) {
	diff := "--- a.txt\n+++ a.txt\n@@ -1 +1 @@\n-foo\n+baz\n"
	result := &types.ReplaceResult{
		Edits: []types.ContentChange{
			{Path: "a.txt", MatchedLines: 1, Diff: diff},
		},
		Counters: types.RunCounters{Scanned: 1, Matched: 1},
	}
	cfg := types.ReplaceConfig{
		SearchConfig: types.SearchConfig{Pattern: "foo"},
		Replacement:  "baz",
		ShowDiff:     true,
		BackupSuffix: ".bak",
	}

	out := renderReplace(t, result, cfg, Options{})

	assert.Contains(t, out, "-foo\n")
	assert.Contains(t, out, "+baz\n")
	assert.Contains(t, out, "@@ -1 +1 @@\n")
	// ShowDiff already on, so no hint for it
	assert.NotContains(t, out, "Add --diff")
}

func TestReplaceReportNotFound(t *testing.T) {
	result := &types.ReplaceResult{Counters: types.RunCounters{Scanned: 2}}
	cfg := types.ReplaceConfig{
		SearchConfig: types.SearchConfig{Pattern: "foo"},
		Replacement:  "baz",
	}

	out := renderReplace(t, result, cfg, Options{})

	assert.Contains(t, out, `No matches for "foo".`)
	// Nothing pending, so no apply hint either
	assert.NotContains(t, out, "--apply")
}

func TestRenderLineView(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{})
	err := r.RenderLineView("a.txt", 3, []types.ContextLine{
		{Number: 2, Text: "two"},
		{Number: 3, Text: "three"},
		{Number: 4, Text: "four"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "a.txt\n")
	assert.Contains(t, out, "  2  two\n")
	assert.Contains(t, out, "  3: three\n")
	assert.Contains(t, out, "  4  four\n")
}

func TestProgressInactiveIsSafe(t *testing.T) {
	p := &Progress{}
	p.Visit("some/path")
	p.Stop()
}
