package pipeline

import "errors"

// Error taxonomy for the analysis pipeline. Every error is handled as close
// to its source as possible: symbols are skipped, layers fall back, and only
// a failure that leaves the run without any output reaches the boundary.
var (
	// ErrDataUnavailable marks a provider that answered with nothing usable.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrSymbolAnalysisFailed marks a single symbol that could not be
	// analyzed; the run skips it and continues.
	ErrSymbolAnalysisFailed = errors.New("symbol analysis failed")

	// ErrLayerUnavailable marks a layer that produced a fallback payload
	// instead of real output.
	ErrLayerUnavailable = errors.New("layer unavailable")

	// ErrPipelineFailure marks a run that produced no usable result at all.
	ErrPipelineFailure = errors.New("analysis pipeline failure")
)
