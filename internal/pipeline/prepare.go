package pipeline

import (
	"context"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/logger"
)

// Prepare partitions the records of src into a labeled directory tree under
// the output directory.
func (p *Pipeline) Prepare(ctx context.Context, src corpus.Source, params Params) error {
	log := logger.WithOperation("prepare")
	log.Info("enter",
		"jsonlines_file", params.JSONLinesFile,
		"output_directory", params.OutputDirectory,
		"max_records", params.MaxRecords,
	)
	start := time.Now()

	partitioner := corpus.NewPartitioner(params.OutputDirectory)
	stats, err := partitioner.Run(ctx, src)
	if err != nil {
		return err
	}

	p.metrics.RecordsPartitionedTotal.Add(float64(stats.Records))
	p.metrics.FieldsObserved.Set(float64(len(stats.Fields)))
	for field, count := range stats.Values {
		p.metrics.ValuesWrittenTotal.WithLabelValues(field).Add(float64(count))
	}
	p.metrics.StageDuration.WithLabelValues("prepare").Observe(time.Since(start).Seconds())

	log.Info("exit",
		"records", stats.Records,
		"fields", len(stats.Fields),
		"elapsed", time.Since(start),
	)
	return nil
}
