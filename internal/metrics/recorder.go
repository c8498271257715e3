package metrics

import "time"

// ResultLabel enumerates per-entry render outcomes.
type ResultLabel string

const (
	ResultRendered ResultLabel = "rendered"
	ResultEmpty    ResultLabel = "empty"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// AssetLabel enumerates what happened to a media file.
type AssetLabel string

const (
	AssetCopied    AssetLabel = "copied"
	AssetReused    AssetLabel = "reused"
	AssetConverted AssetLabel = "converted"
	AssetFailed    AssetLabel = "failed"
)

// Recorder defines the observability hooks of a dictionary run.
type Recorder interface {
	ObserveEntryDuration(d time.Duration)
	IncEntryResult(result ResultLabel)
	ObserveRunDuration(d time.Duration)
	AddAssets(outcome AssetLabel, n int)
	SetWorkers(n int)
	SetLetterHeadings(n int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveEntryDuration(time.Duration) {}
func (NoopRecorder) IncEntryResult(ResultLabel)         {}
func (NoopRecorder) ObserveRunDuration(time.Duration)   {}
func (NoopRecorder) AddAssets(AssetLabel, int)          {}
func (NoopRecorder) SetWorkers(int)                     {}
func (NoopRecorder) SetLetterHeadings(int)              {}
