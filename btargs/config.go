package btargs

import (
	"strings"

	"github.com/pkg/errors"
)

// Markers are the literal strings that drive line classification and
// value scanning for one backtrace dialect.
type Markers struct {
	// Thread starts the section that is parsed.
	Thread string
	// NoSymbol and From end the section.
	NoSymbol string
	From     string
	NoLocals string

	// OptimizedOut is the value of a binding that has no storage left.
	OptimizedOut string
	// Truncated is appended by the debugger when a value hits the print limit.
	Truncated string
	// EntryAnnotation marks the "name=name@entry=value" form.
	EntryAnnotation string
}

func DefaultMarkers() Markers {
	return Markers{
		Thread:          "Thread",
		NoSymbol:        "No symbol table info available.",
		From:            "From",
		NoLocals:        "No locals",
		OptimizedOut:    "<optimized out>",
		Truncated:       "(truncated)",
		EntryAnnotation: "@entry",
	}
}

// WatchEntry names a frame function and the single argument to surface for it.
type WatchEntry struct {
	Function string
	Argument string
	Label    string
}

// Placeholder is printed when the watched argument is missing from the frame.
func (e WatchEntry) Placeholder() string {
	return "<no " + e.Label + ">"
}

func DefaultWatchList() []WatchEntry {
	return []WatchEntry{
		{Function: "import_submodule", Argument: "buf", Label: "import submodule"},
		{Function: "PyEval_EvalCodeEx", Argument: "f", Label: "python frame"},
	}
}

// ParseWatchEntry parses "function:argument[:label]". The label defaults to
// the argument name.
func ParseWatchEntry(s string) (WatchEntry, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return WatchEntry{}, errors.Wrapf(ErrMalformedWatchEntry, "%q", s)
	}

	entry := WatchEntry{
		Function: parts[0],
		Argument: parts[1],
		Label:    parts[1],
	}
	if len(parts) == 3 && len(parts[2]) > 0 {
		entry.Label = parts[2]
	}

	return entry, nil
}

// Config is shared read-only by the Reader and the Printer.
type Config struct {
	Markers   Markers
	WatchList []WatchEntry

	// InlineArguments parses the parenthesized list on frame header lines.
	InlineArguments bool
	// PrettyPrint spreads bracketed values over indented lines.
	PrettyPrint bool
}

func DefaultConfig() Config {
	return Config{
		Markers:         DefaultMarkers(),
		WatchList:       DefaultWatchList(),
		InlineArguments: true,
		PrettyPrint:     true,
	}
}

// PlainConfig reads frames by name and binding lines only.
func PlainConfig() Config {
	config := DefaultConfig()
	config.InlineArguments = false
	config.PrettyPrint = false
	return config
}
