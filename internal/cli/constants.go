package cli

import "time"

// Default values for CLI output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2
	// ProgressBarWidth is the width of the rendered progress bar in cells.
	ProgressBarWidth = 30
	// RedrawInterval is the minimum time between two progress line redraws.
	RedrawInterval = 100 * time.Millisecond
	// MaxSuggestions caps the "did you mean" hints for unknown names.
	MaxSuggestions = 3
	// MaxSuggestionDistance is the largest edit distance offered as a hint.
	MaxSuggestionDistance = 3
)
