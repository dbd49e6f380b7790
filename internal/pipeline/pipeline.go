// Package pipeline wires the corpus, feature, classifier, and model stages
// into the three invocable operations: prepare, train, and test-phrase. Each
// operation takes its inputs as resolved plain values; configuration
// precedence is settled before the pipeline runs.
package pipeline

import (
	"context"

	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/history"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/predict"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/metrics"
)

// Params are the resolved inputs of a pipeline operation.
type Params struct {
	JSONLinesFile   string
	InputDirectory  string
	OutputDirectory string
	ModelFile       string
	TestPhrase      string
	MaxRecords      int
}

// HistoryRecorder persists training-run summaries. A nil recorder disables
// history.
type HistoryRecorder interface {
	RecordRun(ctx context.Context, run history.TrainingRun) error
}

// PredictionCache caches phrase predictions. A nil cache disables caching.
type PredictionCache interface {
	GetOrCompute(ctx context.Context, modelFile, phrase string,
		computeFn func() (*predict.Prediction, error)) (*predict.Prediction, bool, error)
}

// Pipeline executes the three operations over a shared metrics registry and
// optional integrations.
type Pipeline struct {
	metrics *metrics.Metrics
	history HistoryRecorder
	cache   PredictionCache
}

// New creates a Pipeline. hist and cache may be nil.
func New(m *metrics.Metrics, hist HistoryRecorder, cache PredictionCache) *Pipeline {
	return &Pipeline{
		metrics: m,
		history: hist,
		cache:   cache,
	}
}
