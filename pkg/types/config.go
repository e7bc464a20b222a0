package types

import (
	"github.com/X-Seti/Deepsearch/pkg/errors"
)

// SearchConfig holds everything one search invocation needs. It is built
// once at argument-parse time and never mutated afterwards.
type SearchConfig struct {
	// Pattern is the literal string or regular expression to match
	Pattern string

	// IsRegex selects the regex dialect; the default is literal substring
	IsRegex bool

	// IgnoreCase applies to either dialect
	IgnoreCase bool

	// NameOnly restricts matching to file names; ContentOnly to file
	// contents. Both set (or both unset) means neither is restricted.
	NameOnly    bool
	ContentOnly bool

	// TypeFilters restricts content candidates to files matching at least
	// one filename glob. A bare token like "py" is normalized to "*.py".
	TypeFilters []string

	// Excludes are additional exclusion glob fragments, matched against the
	// full walked path. Additive on top of the built-in defaults.
	Excludes []string

	// IncludeOld re-includes "old" directories that are suppressed by default
	IncludeOld bool

	// AllowBinary includes binary files in content matching
	AllowBinary bool

	// IncludeDirs emits directories as name-match candidates
	IncludeDirs bool

	// ContextLines is the number of lines shown before and after a content
	// match; zero shows the matched line alone
	ContextLines int

	// FirstOnly stops the entire run after the first reported match
	FirstOnly bool

	// CountOnly reports per-file content match counts instead of lines
	CountOnly bool

	// SummaryOnly suppresses everything but the end-of-run summary
	SummaryOnly bool

	// Root is the directory the traversal starts from
	Root string
}

// Validate reports usage errors that can be detected before any filesystem
// work starts.
func (c *SearchConfig) Validate() error {
	if c.Pattern == "" {
		return errors.New(errors.ErrUsage, "missing search pattern")
	}
	if c.Root == "" {
		return errors.New(errors.ErrUsage, "missing search root")
	}
	if c.ContextLines < 0 {
		return errors.Newf(errors.ErrUsage, "context must be >= 0, got %d", c.ContextLines)
	}
	return nil
}

// ReplaceConfig extends SearchConfig with the replacement discipline:
// dry run by default, destructive only under Apply.
type ReplaceConfig struct {
	SearchConfig

	// Replacement substitutes every occurrence of Pattern
	Replacement string

	// Apply authorizes filesystem mutation; false means report-only dry run
	Apply bool

	// Backup writes a byte-identical copy before mutating a file
	Backup bool

	// ShowDiff renders a unified diff of the proposed content change
	ShowDiff bool

	// BackupSuffix is appended to the original path for backups
	BackupSuffix string
}

// DefaultBackupSuffix is used when no suffix is configured
const DefaultBackupSuffix = ".bak"

// Validate reports usage errors in the replace configuration.
func (c *ReplaceConfig) Validate() error {
	if err := c.SearchConfig.Validate(); err != nil {
		return err
	}
	if c.Replacement == "" {
		return errors.New(errors.ErrUsage, "replace mode requires a non-empty replacement string")
	}
	if c.BackupSuffix == "" {
		c.BackupSuffix = DefaultBackupSuffix
	}
	return nil
}
