package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Words, previews, summaries
	OutputErrors                        // Errors with hints
	OutputWarnings                      // Skipped lengths, disk space

	// Level 1 (-v) - Informational
	OutputProgress  // Per-length progress
	OutputArtifacts // Partitions written, compressed, uploaded
	OutputBanner    // Startup banner on interactive runs

	// Level 2 (-vv) - Detailed
	OutputConfig // Effective configuration
	OutputTiming // Per-length timing

	// Level 3 (-vvv) - Debug
	OutputSQL // Catalog statements
)

var categoryLevels = map[OutputCategory]int{
	OutputResults:   VerbosityUser,
	OutputErrors:    VerbosityUser,
	OutputWarnings:  VerbosityUser,
	OutputProgress:  VerbosityInfo,
	OutputArtifacts: VerbosityInfo,
	OutputBanner:    VerbosityInfo,
	OutputConfig:    VerbosityDebug,
	OutputTiming:    VerbosityDebug,
	OutputSQL:       VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}
