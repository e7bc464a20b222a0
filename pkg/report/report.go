// Package report renders search and replace results for the terminal.
//
// The reporter builds two renditions of every report in one pass: a styled
// one for standard output and a plain one for the optional output file, so
// files never receive ANSI sequences. Styles are looked up by semantic name
// in the style registry.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/X-Seti/Deepsearch/pkg/style"
	"github.com/X-Seti/Deepsearch/pkg/types"
)

const indent = "  "

// Options control how much of the run a report shows
type Options struct {
	// CountOnly collapses content matches into per-file counts
	CountOnly bool

	// SummaryOnly suppresses everything but the final summary line
	SummaryOnly bool
}

// Reporter writes human-readable run reports
type Reporter struct {
	out  io.Writer
	tee  io.Writer
	opts Options

	styled strings.Builder
	plain  strings.Builder
}

// New creates a reporter writing to out
func New(out io.Writer, opts Options) *Reporter {
	return &Reporter{out: out, opts: opts}
}

// Tee additionally writes the plain rendition of every report to w
func (r *Reporter) Tee(w io.Writer) {
	r.tee = w
}

// RenderSearch renders one search run: match sections, per-file errors and
// the final summary. The pattern is only used for the not-found notice.
func (r *Reporter) RenderSearch(result *types.SearchResult, pattern string) error {
	names, contents := splitMatches(result.Matches)

	if !r.opts.SummaryOnly {
		if len(names) > 0 {
			r.renderNameMatches(names)
		}
		if len(contents) > 0 {
			if len(names) > 0 {
				r.blank()
			}
			if r.opts.CountOnly {
				r.renderContentCounts(contents)
			} else {
				r.renderContentMatches(contents)
			}
		}
		r.renderFileErrors(result.Errors)
	}

	if len(result.Matches) == 0 {
		r.line("Hint", fmt.Sprintf("No matches for %q.", pattern))
	}
	if !r.opts.SummaryOnly || len(result.Matches) == 0 {
		r.blank()
	}
	r.line("Summary", fmt.Sprintf("scanned %d, matched %d",
		result.Counters.Scanned, result.Counters.Matched))

	return r.flush()
}

// RenderReplace renders one replace run: renames, content edits, per-file
// errors, the summary and, on dry runs, how to go further.
func (r *Reporter) RenderReplace(result *types.ReplaceResult, cfg types.ReplaceConfig) error {
	if !r.opts.SummaryOnly {
		if len(result.Renames) > 0 {
			r.renderRenames(result.Renames, cfg.Apply)
		}
		if len(result.Edits) > 0 {
			if len(result.Renames) > 0 {
				r.blank()
			}
			r.renderEdits(result.Edits, cfg.Apply)
		}
		r.renderFileErrors(result.Errors)
	}

	if len(result.Renames) == 0 && len(result.Edits) == 0 {
		r.line("Hint", fmt.Sprintf("No matches for %q.", cfg.Pattern))
	}
	if !r.opts.SummaryOnly || len(result.Renames)+len(result.Edits) == 0 {
		r.blank()
	}

	summary := fmt.Sprintf("scanned %d, matched %d, modified %d",
		result.Counters.Scanned, result.Counters.Matched, result.Counters.Modified)
	if !cfg.Apply {
		summary += " (dry run)"
	}
	r.line("Summary", summary)

	if !cfg.Apply {
		r.renderHints(result, cfg)
	}

	return r.flush()
}

// RenderLineView renders one file window, marking the focused line
func (r *Reporter) RenderLineView(path string, focus int, lines []types.ContextLine) error {
	r.line("FilePath", path)
	for _, cl := range lines {
		if cl.Number == focus {
			plain := fmt.Sprintf("%s%d: %s", indent, cl.Number, cl.Text)
			styled := indent +
				style.GetStyle("LineNumber").Render(fmt.Sprintf("%d", cl.Number)) + ": " +
				style.GetStyle("MatchLine").Render(cl.Text)
			r.parts(plain, styled)
			continue
		}
		plain := fmt.Sprintf("%s%d  %s", indent, cl.Number, cl.Text)
		styled := indent +
			style.GetStyle("LineNumber").Render(fmt.Sprintf("%d", cl.Number)) + "  " +
			style.GetStyle("Context").Render(cl.Text)
		r.parts(plain, styled)
	}
	return r.flush()
}

func (r *Reporter) renderNameMatches(matches []types.MatchResult) {
	r.line("Header", "Name matches")
	for _, m := range matches {
		path := m.Path
		if m.IsDir {
			path += "/"
		}
		r.line("FilePath", indent+path)
	}
}

func (r *Reporter) renderContentMatches(matches []types.MatchResult) {
	r.line("Header", "Content matches")
	current := ""
	for _, m := range matches {
		if m.Path != current {
			current = m.Path
			r.line("FilePath", indent+current)
		}
		if len(m.Context) > 0 {
			r.renderContextBlock(m)
			continue
		}
		r.matchLine(m.Line, m.Text)
	}
}

// renderContextBlock prints the window around one match, marking the
// matched line itself
func (r *Reporter) renderContextBlock(m types.MatchResult) {
	for _, cl := range m.Context {
		if cl.Number == m.Line {
			r.matchLine(cl.Number, cl.Text)
			continue
		}
		plain := fmt.Sprintf("%s%d  %s", indent+indent, cl.Number, cl.Text)
		styled := indent + indent +
			style.GetStyle("LineNumber").Render(fmt.Sprintf("%d", cl.Number)) + "  " +
			style.GetStyle("Context").Render(cl.Text)
		r.parts(plain, styled)
	}
}

func (r *Reporter) matchLine(number int, text string) {
	plain := fmt.Sprintf("%s%d: %s", indent+indent, number, text)
	styled := indent + indent +
		style.GetStyle("LineNumber").Render(fmt.Sprintf("%d", number)) + ": " +
		style.GetStyle("MatchLine").Render(text)
	r.parts(plain, styled)
}

// renderContentCounts prints one line per file with its match count,
// preserving walk order
func (r *Reporter) renderContentCounts(matches []types.MatchResult) {
	r.line("Header", "Content matches")
	current := ""
	count := 0
	emit := func() {
		if current == "" {
			return
		}
		plain := fmt.Sprintf("%s%s: %d", indent, current, count)
		styled := indent + style.GetStyle("FilePath").Render(current) + ": " +
			style.GetStyle("LineNumber").Render(fmt.Sprintf("%d", count))
		r.parts(plain, styled)
	}
	for _, m := range matches {
		if m.Path != current {
			emit()
			current = m.Path
			count = 0
		}
		count++
	}
	emit()
}

func (r *Reporter) renderRenames(renames []types.RenameChange, applied bool) {
	if applied {
		r.line("Header", "Renamed")
	} else {
		r.line("Header", "Proposed renames")
	}
	for _, rn := range renames {
		suffix := ""
		if rn.IsDir {
			suffix = "/"
		}
		text := fmt.Sprintf("%s%s%s -> %s%s", indent, rn.Path, suffix, rn.NewPath, suffix)
		switch {
		case rn.Err != nil:
			r.line("Error", fmt.Sprintf("%s: %v", text, rn.Err))
		case rn.Applied:
			r.line("Applied", text)
		default:
			r.line("Rename", text)
		}
	}
}

func (r *Reporter) renderEdits(edits []types.ContentChange, applied bool) {
	if applied {
		r.line("Header", "Edited")
	} else {
		r.line("Header", "Proposed edits")
	}
	for _, e := range edits {
		detail := pluralLines(e.MatchedLines)
		if e.BackupPath != "" {
			detail += ", backup: " + e.BackupPath
		}
		text := fmt.Sprintf("%s%s (%s)", indent, e.Path, detail)
		switch {
		case e.Err != nil:
			r.line("Error", fmt.Sprintf("%s: %v", text, e.Err))
		case e.Applied:
			r.line("Applied", text)
		default:
			r.line("FilePath", text)
		}
		if e.Diff != "" {
			r.renderDiff(e.Diff)
		}
	}
}

// renderDiff styles a unified diff line by line
func (r *Reporter) renderDiff(diff string) {
	for _, ln := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(ln, "+++"), strings.HasPrefix(ln, "---"):
			r.line("FilePath", ln)
		case strings.HasPrefix(ln, "@@"):
			r.line("LineNumber", ln)
		case strings.HasPrefix(ln, "+"):
			r.line("DiffAdd", ln)
		case strings.HasPrefix(ln, "-"):
			r.line("DiffDel", ln)
		default:
			r.line("Context", ln)
		}
	}
}

func (r *Reporter) renderFileErrors(errs []types.FileError) {
	if len(errs) == 0 {
		return
	}
	r.blank()
	r.line("Header", "Skipped")
	for _, fe := range errs {
		r.line("Error", fmt.Sprintf("%s%s: %v", indent, fe.Path, fe.Err))
	}
}

// renderHints reminds a dry run how to make it real
func (r *Reporter) renderHints(result *types.ReplaceResult, cfg types.ReplaceConfig) {
	if len(result.Renames)+len(result.Edits) == 0 {
		return
	}
	r.blank()
	r.line("Hint", "Run again with --apply to write these changes.")
	if len(result.Edits) == 0 {
		return
	}
	if !cfg.Backup {
		r.line("Hint", fmt.Sprintf("Add --backup to keep a %s copy of each edited file.", cfg.BackupSuffix))
	}
	if !cfg.ShowDiff {
		r.line("Hint", "Add --diff to preview the edits line by line.")
	}
}

// line appends one uniformly styled line to both renditions
func (r *Reporter) line(styleName, text string) {
	r.plain.WriteString(text)
	r.plain.WriteByte('\n')
	r.styled.WriteString(style.GetStyle(styleName).Render(text))
	r.styled.WriteByte('\n')
}

// parts appends one line whose styled rendition was assembled from
// individually styled spans
func (r *Reporter) parts(plain, styled string) {
	r.plain.WriteString(plain)
	r.plain.WriteByte('\n')
	r.styled.WriteString(styled)
	r.styled.WriteByte('\n')
}

func (r *Reporter) blank() {
	r.plain.WriteByte('\n')
	r.styled.WriteByte('\n')
}

// flush writes both renditions and resets the builders for the next report
func (r *Reporter) flush() error {
	defer func() {
		r.styled.Reset()
		r.plain.Reset()
	}()
	if _, err := io.WriteString(r.out, r.styled.String()); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write report")
	}
	if r.tee != nil {
		if _, err := io.WriteString(r.tee, r.plain.String()); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to write report copy")
		}
	}
	return nil
}

func splitMatches(matches []types.MatchResult) (names, contents []types.MatchResult) {
	for _, m := range matches {
		if m.Kind == types.MatchName {
			names = append(names, m)
		} else {
			contents = append(contents, m)
		}
	}
	return names, contents
}

func pluralLines(n int) string {
	if n == 1 {
		return "1 line"
	}
	return fmt.Sprintf("%d lines", n)
}
