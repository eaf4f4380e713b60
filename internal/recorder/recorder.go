package recorder

import "StrataScan/internal/model"

// Recorder persists completed analysis runs for later inspection.
type Recorder interface {
	// RecordRun persists the run header and its top picks.
	RecordRun(result *model.AnalysisResult) error
	Close() error
}

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *model.AnalysisResult) error { return nil }
func (n *NoopRecorder) Close() error                            { return nil }
