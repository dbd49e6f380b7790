package pipeline

import (
	"context"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/classifier"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/feature"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/history"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/model"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/logger"
)

// Train fits a model over the labeled corpus in the input directory and
// serializes the artifact to the model file. No artifact file is written when
// fitting fails.
func (p *Pipeline) Train(ctx context.Context, params Params) error {
	log := logger.WithOperation("train")
	log.Info("enter",
		"input_directory", params.InputDirectory,
		"model_file", params.ModelFile,
	)
	start := time.Now()

	c, err := corpus.LoadDirectory(params.InputDirectory)
	if err != nil {
		return err
	}

	vocab, counts := feature.Count(c.Documents)
	weighter := feature.FitWeighter(counts)
	weighted := weighter.Weight(counts)

	fitted, err := classifier.Fit(weighted, c.Labels, c.Categories)
	if err != nil {
		return err
	}

	artifact := &model.Artifact{
		Vocabulary: vocab,
		IDF:        weighter.IDF,
		Classifier: *fitted,
	}
	size, err := model.Save(artifact, params.ModelFile)
	if err != nil {
		return err
	}

	p.metrics.DocumentsTrainedTotal.Add(float64(len(c.Documents)))
	p.metrics.VocabularySize.Set(float64(len(vocab)))
	p.metrics.CategoryCount.Set(float64(len(fitted.Categories)))
	p.metrics.ArtifactBytes.Set(float64(size))
	p.metrics.StageDuration.WithLabelValues("train").Observe(time.Since(start).Seconds())

	if p.history != nil {
		run := history.TrainingRun{
			InputDirectory: params.InputDirectory,
			ModelFile:      params.ModelFile,
			Categories:     fitted.Categories,
			Documents:      len(c.Documents),
			VocabularySize: len(vocab),
			ArtifactBytes:  size,
			Duration:       time.Since(start),
		}
		if err := p.history.RecordRun(ctx, run); err != nil {
			log.Warn("recording training run failed", "error", err)
		}
	}

	log.Info("exit",
		"documents", len(c.Documents),
		"categories", len(fitted.Categories),
		"vocabulary_size", len(vocab),
		"artifact_bytes", size,
		"elapsed", time.Since(start),
	)
	return nil
}
