package types

// Mode is the closed set of operating modes. Flag combinations are resolved
// into a Mode once at startup; orchestrators switch on the mode instead of
// re-checking flag combinations at each call site.
type Mode uint8

const (
	// ModeSearchBoth searches file names and file contents
	ModeSearchBoth Mode = iota
	// ModeNameSearch searches file names only
	ModeNameSearch
	// ModeContentSearch searches file contents only
	ModeContentSearch
	// ModeReplaceBoth renames matching files and rewrites matching contents
	ModeReplaceBoth
	// ModeRename renames matching files only
	ModeRename
	// ModeContentReplace rewrites matching contents only
	ModeContentReplace
	// ModeLineView displays a single line of one file with context
	ModeLineView
)

// ResolveMode maps the flag surface onto a Mode. nameOnly and contentOnly
// both set means "neither restricted", same as both unset.
func ResolveMode(replace, nameOnly, contentOnly bool) Mode {
	unrestricted := nameOnly == contentOnly
	switch {
	case replace && unrestricted:
		return ModeReplaceBoth
	case replace && nameOnly:
		return ModeRename
	case replace:
		return ModeContentReplace
	case unrestricted:
		return ModeSearchBoth
	case nameOnly:
		return ModeNameSearch
	default:
		return ModeContentSearch
	}
}

// SearchesNames reports whether the mode includes a file-name pass
func (m Mode) SearchesNames() bool {
	switch m {
	case ModeSearchBoth, ModeNameSearch, ModeReplaceBoth, ModeRename:
		return true
	}
	return false
}

// SearchesContents reports whether the mode includes a file-content pass
func (m Mode) SearchesContents() bool {
	switch m {
	case ModeSearchBoth, ModeContentSearch, ModeReplaceBoth, ModeContentReplace:
		return true
	}
	return false
}

// IsReplace reports whether the mode mutates (or proposes to mutate) the tree
func (m Mode) IsReplace() bool {
	switch m {
	case ModeReplaceBoth, ModeRename, ModeContentReplace:
		return true
	}
	return false
}

// String returns the mode name used in logs
func (m Mode) String() string {
	switch m {
	case ModeSearchBoth:
		return "search"
	case ModeNameSearch:
		return "name-search"
	case ModeContentSearch:
		return "content-search"
	case ModeReplaceBoth:
		return "replace"
	case ModeRename:
		return "rename"
	case ModeContentReplace:
		return "content-replace"
	case ModeLineView:
		return "line-view"
	default:
		return "unknown"
	}
}
