package deepsearch

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "Search file names and contents, with optional in-place replacement"

	// User guidance
	MsgMissingPattern   = "missing search pattern"
	MsgPromptTitle      = "deepsearch"
	MsgPromptText       = "Search for:"
	MsgUsageHint        = "Run 'deepsearch --help' for usage."
	MsgConfigWritten    = "Wrote default config to %s\n"
	MsgProgressScanning = "Scanning..."

	// Flag descriptions
	MsgFlagIgnoreCase  = "Match case-insensitively"
	MsgFlagRegex       = "Treat the pattern as a regular expression"
	MsgFlagType        = "Only scan files matching these globs (comma-separated; \"py\" means *.py)"
	MsgFlagNameOnly    = "Match file names only"
	MsgFlagContentOnly = "Match file contents only"
	MsgFlagReplace     = "Replace every match with this string"
	MsgFlagApply       = "Write the proposed changes (default is a dry run)"
	MsgFlagBackup      = "Keep a backup copy of each edited file"
	MsgFlagDiff        = "Show a unified diff of each proposed edit"
	MsgFlagExclude     = "Exclude paths matching this glob fragment (repeatable)"
	MsgFlagIncludeOld  = "Include old/ directories, which are skipped by default"
	MsgFlagBinary      = "Include binary files in content matching"
	MsgFlagDirs        = "Include directories in name matching"
	MsgFlagContext     = "Show N lines around each content match"
	MsgFlagCount       = "Report per-file match counts instead of matched lines"
	MsgFlagSummary     = "Only print the end-of-run summary"
	MsgFlagFirst       = "Stop after the first match"
	MsgFlagOutput      = "Also write the report to this file (plain text)"
	MsgFlagEditor      = "Open the first match in your editor"
	MsgFlagLine        = "View line N of a file instead of searching"
	MsgFlagColor       = "Color output: auto, always or never"
	MsgFlagInitConfig  = "Write a default config file and exit"
	MsgFlagVerbose     = "Increase log verbosity (repeat for more detail)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.md
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)
)
