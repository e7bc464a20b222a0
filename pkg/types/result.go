package types

// MatchKind distinguishes the two match streams
type MatchKind uint8

const (
	// MatchName is a match of the pattern against a file or directory name
	MatchName MatchKind = iota
	// MatchContent is a match of the pattern against one content line
	MatchContent
)

// ContextLine is one line of a context window around a content match
type ContextLine struct {
	Number int
	Text   string
}

// MatchResult is a single reported match. Produced transiently, never
// persisted.
type MatchResult struct {
	Path string
	Kind MatchKind

	// Line is the 1-based line number of a content match; zero for name
	// matches
	Line int

	// Text is the matched line, with its terminator stripped
	Text string

	// Context holds the surrounding lines, including the matched one, when
	// context was requested
	Context []ContextLine

	// IsDir marks name matches on directories
	IsDir bool
}

// RunCounters aggregates the per-run totals. Orchestrators return their own
// counters; the caller merges them and reads the sum once, for the summary.
type RunCounters struct {
	// Scanned counts content-eligible files visited
	Scanned int
	// Matched counts reported matches (searches) or proposed changes
	// (replaces)
	Matched int
	// Modified counts executed renames and rewritten files
	Modified int
}

// Add merges another set of counters into this one
func (c *RunCounters) Add(other RunCounters) {
	c.Scanned += other.Scanned
	c.Matched += other.Matched
	c.Modified += other.Modified
}

// SearchResult is everything one search run produced
type SearchResult struct {
	Matches  []MatchResult
	Counters RunCounters

	// Errors holds per-file failures that were skipped over
	Errors []FileError
}

// RenameChange is one proposed or executed file rename
type RenameChange struct {
	Path    string
	NewPath string
	IsDir   bool

	// Applied is true when the rename was executed, false for dry-run
	// proposals
	Applied bool

	// Err records a per-file failure (for example a target collision);
	// the run continues past it
	Err error
}

// ContentChange is one proposed or executed in-place content substitution
type ContentChange struct {
	Path string

	// MatchedLines counts the lines containing at least one occurrence
	MatchedLines int

	// Diff is the unified diff of the proposed change, when requested
	Diff string

	// BackupPath is where the pre-modification copy was written, when
	// backups are enabled and the change was applied
	BackupPath string

	// Applied is true when the file was rewritten
	Applied bool

	// Err records a per-file failure; the run continues past it
	Err error
}

// ReplaceResult is everything one replace run produced
type ReplaceResult struct {
	Renames  []RenameChange
	Edits    []ContentChange
	Counters RunCounters
	Errors   []FileError
}

// FileError pairs a path with the error that made the run skip it
type FileError struct {
	Path string
	Err  error
}
