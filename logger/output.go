package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information the CLI prints regardless of severity.
//
//	0 (default) - results, errors with hints, final status
//	1 (-v)      - + pass progress, files written or left alone
//	2 (-vv)     - + per-pass reports, config loaded, timing
//	3 (-vvv)    - + reordered overload block dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Command output
	OutputErrors                           // Errors with details and hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress   // Pass started/finished
	OutputFileWrites // Which files were written or skipped

	// Level 2 (-vv) - Detailed
	OutputPassReport // Reorder/rewrite/sync reports
	OutputConfig     // Config values loaded/applied
	OutputTiming     // Run timing

	// Level 3 (-vvv) - Dump
	OutputBlockDump // Overload block before and after
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress:   VerbosityInfo,
	OutputFileWrites: VerbosityInfo,

	OutputPassReport: VerbosityDebug,
	OutputConfig:     VerbosityDebug,
	OutputTiming:     VerbosityDebug,

	OutputBlockDump: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:    "results",
	OutputErrors:     "errors",
	OutputUserStatus: "status",
	OutputProgress:   "progress",
	OutputFileWrites: "file-writes",
	OutputPassReport: "pass-report",
	OutputConfig:     "config",
	OutputTiming:     "timing",
	OutputBlockDump:  "block-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
