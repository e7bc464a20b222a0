// Package deepsearch wires the command line to the search, replace and
// line-view engines. The root command is the whole surface: flags pick
// the mode, positional arguments supply pattern, replacement and root.
package deepsearch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/X-Seti/Deepsearch/internal/version"
	"github.com/X-Seti/Deepsearch/pkg/config"
	"github.com/X-Seti/Deepsearch/pkg/editor"
	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/X-Seti/Deepsearch/pkg/filesystem"
	"github.com/X-Seti/Deepsearch/pkg/lineview"
	"github.com/X-Seti/Deepsearch/pkg/logging"
	"github.com/X-Seti/Deepsearch/pkg/prompt"
	"github.com/X-Seti/Deepsearch/pkg/replace"
	"github.com/X-Seti/Deepsearch/pkg/report"
	"github.com/X-Seti/Deepsearch/pkg/search"
	"github.com/X-Seti/Deepsearch/pkg/style"
	"github.com/X-Seti/Deepsearch/pkg/types"
)

// rootFlags holds every flag value for one invocation.
type rootFlags struct {
	ignoreCase  bool
	regex       bool
	types       []string
	nameOnly    bool
	contentOnly bool
	replace     string
	apply       bool
	backup      bool
	diff        bool
	excludes    []string
	includeOld  bool
	binary      bool
	dirs        bool
	context     int
	count       bool
	summary     bool
	first       bool
	output      string
	editor      bool
	line        int
	color       string
	initConfig  bool
	verbosity   int
}

// NewRootCmd creates the deepsearch command with all flags registered.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:     "deepsearch <pattern> [replacement] [path]",
		Short:   MsgRootShort,
		Long:    longHelp(),
		Version: versionLine(),
		Args:    cobra.MaximumNArgs(3),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(f.verbosity)
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := cmd.Flags()
	flags.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, MsgFlagIgnoreCase)
	flags.BoolVarP(&f.regex, "regex", "E", false, MsgFlagRegex)
	flags.StringSliceVarP(&f.types, "type", "t", nil, MsgFlagType)
	flags.BoolVarP(&f.nameOnly, "name-only", "n", false, MsgFlagNameOnly)
	flags.BoolVarP(&f.contentOnly, "content-only", "c", false, MsgFlagContentOnly)
	flags.StringVarP(&f.replace, "replace", "r", "", MsgFlagReplace)
	flags.BoolVar(&f.apply, "apply", false, MsgFlagApply)
	flags.BoolVar(&f.backup, "backup", false, MsgFlagBackup)
	flags.BoolVar(&f.diff, "diff", false, MsgFlagDiff)
	flags.StringArrayVar(&f.excludes, "exclude", nil, MsgFlagExclude)
	flags.BoolVar(&f.includeOld, "include-old", false, MsgFlagIncludeOld)
	flags.BoolVar(&f.binary, "binary", false, MsgFlagBinary)
	flags.BoolVar(&f.dirs, "dirs", false, MsgFlagDirs)
	flags.IntVarP(&f.context, "context", "C", 0, MsgFlagContext)
	flags.BoolVar(&f.count, "count", false, MsgFlagCount)
	flags.BoolVar(&f.summary, "summary", false, MsgFlagSummary)
	flags.BoolVar(&f.first, "first", false, MsgFlagFirst)
	flags.StringVarP(&f.output, "output", "o", "", MsgFlagOutput)
	flags.BoolVarP(&f.editor, "editor", "e", false, MsgFlagEditor)
	flags.IntVarP(&f.line, "line", "l", 0, MsgFlagLine)
	flags.StringVar(&f.color, "color", "", MsgFlagColor)
	flags.BoolVar(&f.initConfig, "init-config", false, MsgFlagInitConfig)
	// No shorthand: -v belongs to --version.
	flags.CountVar(&f.verbosity, "verbose", MsgFlagVerbose)

	return cmd
}

// Execute runs the root command and maps the outcome to an exit code.
// Not-found runs exit 1 without an error banner; everything else that
// fails is printed to stderr in the Error style.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err == nil {
		if helpRequested(root) {
			return 1
		}
		return 0
	}

	if errors.IsErrorCode(err, errors.ErrNotFound) {
		// Already reported as a normal outcome; the code is the signal.
		return 1
	}

	errStyle := style.GetStyle("Error")
	fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("Error: %v", err)))

	code := errors.GetErrorCode(err)
	if code == errors.ErrUsage || code == errors.ErrUnknown {
		// ErrUnknown covers cobra's own flag-parse failures.
		fmt.Fprintln(os.Stderr, MsgUsageHint)
	}
	return 1
}

func helpRequested(cmd *cobra.Command) bool {
	help, err := cmd.Flags().GetBool("help")
	return err == nil && help
}

func versionLine() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date)
}

func run(cmd *cobra.Command, args []string, f *rootFlags) error {
	if f.initConfig {
		return runInitConfig(cmd)
	}

	if f.line > 0 {
		return runLineView(cmd, args, f)
	}

	pattern, replacement, root, err := resolveArgs(args, f)
	if err != nil {
		return err
	}

	fileCfg, err := config.Load(root)
	if err != nil {
		return err
	}

	if err := applyColor(f, fileCfg); err != nil {
		return err
	}

	if err := validateCombos(f, replacement); err != nil {
		return err
	}

	searchCfg := buildSearchConfig(cmd, f, fileCfg, pattern, root)
	mode := types.ResolveMode(replacement != "", f.nameOnly, f.contentOnly)

	if mode.IsReplace() {
		return runReplace(cmd, f, fileCfg, searchCfg, replacement, mode)
	}
	return runSearch(cmd, f, fileCfg, searchCfg, mode)
}

// resolveArgs maps positionals to pattern, replacement and root. With
// two arguments the second is ambiguous: a token starting with "." or
// naming an existing directory is a path, anything else a replacement.
// --replace removes the ambiguity.
func resolveArgs(args []string, f *rootFlags) (pattern, replacement, root string, err error) {
	root = "."
	replacement = f.replace

	if len(args) == 0 {
		// From a terminal a missing pattern is a usage error. A
		// file-manager launch has no terminal to type into, so ask
		// through a dialog instead.
		if isatty.IsTerminal(os.Stdin.Fd()) {
			return "", "", "", errors.New(errors.ErrUsage, MsgMissingPattern)
		}
		pattern, err = prompt.Ask(MsgPromptTitle, MsgPromptText)
		if err != nil {
			return "", "", "", err
		}
		if strings.TrimSpace(pattern) == "" {
			return "", "", "", errors.New(errors.ErrUsage, MsgMissingPattern)
		}
		return pattern, replacement, root, nil
	}

	pattern = args[0]
	switch len(args) {
	case 2:
		if f.replace != "" || pathLike(args[1]) {
			root = args[1]
		} else {
			replacement = args[1]
		}
	case 3:
		if f.replace != "" {
			return "", "", "", errors.New(errors.ErrUsage,
				"too many arguments: --replace already supplies the replacement")
		}
		replacement = args[1]
		root = args[2]
	}
	return pattern, replacement, root, nil
}

func pathLike(s string) bool {
	if strings.HasPrefix(s, ".") {
		return true
	}
	info, err := os.Stat(s)
	return err == nil && info.IsDir()
}

// validateCombos rejects flag combinations with no defined meaning
// instead of guessing one.
func validateCombos(f *rootFlags, replacement string) error {
	if replacement == "" {
		switch {
		case f.apply:
			return errors.New(errors.ErrUsage, "--apply requires a replacement")
		case f.backup:
			return errors.New(errors.ErrUsage, "--backup requires a replacement")
		case f.diff:
			return errors.New(errors.ErrUsage, "--diff requires a replacement")
		}
		if f.count && f.nameOnly {
			return errors.New(errors.ErrUsage, "--count needs content matching; drop --name-only")
		}
		return nil
	}

	switch {
	case f.count:
		return errors.New(errors.ErrUsage, "--count does not combine with a replacement")
	case f.first:
		return errors.New(errors.ErrUsage, "--first does not combine with a replacement")
	case f.editor:
		return errors.New(errors.ErrUsage, "--editor does not combine with a replacement")
	}
	return nil
}

// applyColor resolves the output format once, before anything renders.
// Flag beats config; both default to auto-detection.
func applyColor(f *rootFlags, fileCfg *config.Config) error {
	value := fileCfg.Output.Color
	if f.color != "" {
		value = f.color
	}
	format, err := style.ParseColorMode(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrUsage, "invalid --color value")
	}
	style.Apply(style.Resolve(format, os.Stdout))
	return nil
}

// buildSearchConfig merges flags over the layered file config. A flag
// the user actually set wins; booleans that only widen the scan are
// additive, as are excludes.
func buildSearchConfig(cmd *cobra.Command, f *rootFlags, fileCfg *config.Config, pattern, root string) types.SearchConfig {
	cfg := types.SearchConfig{
		Pattern:      pattern,
		IsRegex:      f.regex,
		IgnoreCase:   f.ignoreCase,
		NameOnly:     f.nameOnly,
		ContentOnly:  f.contentOnly,
		TypeFilters:  f.types,
		IncludeOld:   fileCfg.Search.IncludeOld || f.includeOld,
		AllowBinary:  fileCfg.Scan.Binary || f.binary,
		IncludeDirs:  f.dirs,
		ContextLines: fileCfg.Search.Context,
		FirstOnly:    f.first,
		CountOnly:    f.count,
		SummaryOnly:  f.summary,
		Root:         root,
	}
	cfg.Excludes = append(append([]string{}, fileCfg.Search.Exclude...), f.excludes...)
	if cmd.Flags().Changed("context") {
		cfg.ContextLines = f.context
	}
	return cfg
}

func runSearch(cmd *cobra.Command, f *rootFlags, fileCfg *config.Config, cfg types.SearchConfig, mode types.Mode) error {
	s, err := search.New(filesystem.NewOS(), cfg, mode)
	if err != nil {
		return err
	}

	result, err := s.Run()
	if err != nil {
		return err
	}

	rep, done, err := newReporter(cmd, f)
	if err != nil {
		return err
	}
	defer done()

	if err := rep.RenderSearch(result, cfg.Pattern); err != nil {
		return err
	}

	if f.editor && len(result.Matches) > 0 {
		if err := launchEditor(fileCfg, result.Matches[0]); err != nil {
			return err
		}
	}

	if result.Counters.Matched == 0 {
		return errors.Newf(errors.ErrNotFound, "no matches for %q", cfg.Pattern)
	}
	return nil
}

func runReplace(cmd *cobra.Command, f *rootFlags, fileCfg *config.Config, searchCfg types.SearchConfig, replacement string, mode types.Mode) error {
	cfg := types.ReplaceConfig{
		SearchConfig: searchCfg,
		Replacement:  replacement,
		Apply:        f.apply,
		Backup:       f.backup,
		ShowDiff:     f.diff,
		BackupSuffix: fileCfg.Replace.BackupSuffix,
	}

	r, err := replace.New(filesystem.NewOS(), cfg, mode)
	if err != nil {
		return err
	}

	var progress *report.Progress
	if cfg.Apply {
		progress = report.StartProgress(MsgProgressScanning)
		r.OnVisit = progress.Visit
	}

	result, err := r.Run()
	if progress != nil {
		progress.Stop()
	}
	if err != nil {
		return err
	}

	rep, done, err := newReporter(cmd, f)
	if err != nil {
		return err
	}
	defer done()

	if err := rep.RenderReplace(result, cfg); err != nil {
		return err
	}

	if result.Counters.Matched == 0 {
		return errors.Newf(errors.ErrNotFound, "no matches for %q", cfg.Pattern)
	}
	return nil
}

func runLineView(cmd *cobra.Command, args []string, f *rootFlags) error {
	if len(args) != 1 {
		return errors.New(errors.ErrUsage, "--line takes exactly one file argument")
	}
	if f.replace != "" || f.apply || f.backup || f.diff {
		return errors.New(errors.ErrUsage, "--line does not combine with replacement flags")
	}
	path := args[0]

	fileCfg, err := config.Load(filepath.Dir(path))
	if err != nil {
		return err
	}
	if err := applyColor(f, fileCfg); err != nil {
		return err
	}

	window, err := lineview.New(filesystem.NewOS()).Window(path, f.line, f.context)
	if err != nil {
		return err
	}

	rep, done, err := newReporter(cmd, f)
	if err != nil {
		return err
	}
	defer done()

	if err := rep.RenderLineView(path, f.line, window); err != nil {
		return err
	}

	if f.editor {
		return launchEditor(fileCfg, types.MatchResult{Path: path, Line: f.line})
	}
	return nil
}

func runInitConfig(cmd *cobra.Command) error {
	path, err := config.WriteUserConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
	return nil
}

// newReporter builds the report writer, teeing a plain copy into
// --output when given. The returned func closes the tee file.
func newReporter(cmd *cobra.Command, f *rootFlags) (*report.Reporter, func(), error) {
	rep := report.New(cmd.OutOrStdout(), report.Options{
		CountOnly:   f.count,
		SummaryOnly: f.summary,
	})
	done := func() {}
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrOutputWrite,
				"cannot create output file %s", f.output)
		}
		rep.Tee(file)
		done = func() { _ = file.Close() }
	}
	return rep, done, nil
}

func launchEditor(fileCfg *config.Config, m types.MatchResult) error {
	ed, err := editor.Resolve(fileCfg.Output.Editor)
	if err != nil {
		return err
	}
	return editor.Launch(ed, m.Path, m.Line)
}
