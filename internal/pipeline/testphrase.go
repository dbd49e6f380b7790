package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/classifier"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/feature"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/model"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/predict"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/logger"
)

// TestPhrase classifies a phrase against a stored model artifact and returns
// the prediction. A phrase with no in-vocabulary terms still yields a
// prediction, driven by the class priors alone.
func (p *Pipeline) TestPhrase(ctx context.Context, params Params) (*predict.Prediction, error) {
	log := logger.WithOperation("test-phrase")
	log.Info("enter",
		"test_phrase", params.TestPhrase,
		"model_file", params.ModelFile,
	)
	start := time.Now()

	compute := func() (*predict.Prediction, error) {
		return p.classify(log, params)
	}

	var (
		result *predict.Prediction
		hit    bool
		err    error
	)
	if p.cache != nil {
		result, hit, err = p.cache.GetOrCompute(ctx, params.ModelFile, params.TestPhrase, compute)
		if hit {
			p.metrics.CacheHitsTotal.Inc()
			p.metrics.PredictionsTotal.WithLabelValues("cache_hit").Inc()
		} else {
			p.metrics.CacheMissesTotal.Inc()
		}
	} else {
		result, err = compute()
	}
	if err != nil {
		return nil, err
	}

	p.metrics.StageDuration.WithLabelValues("test-phrase").Observe(time.Since(start).Seconds())
	log.Info("phrase classified",
		"phrase", params.TestPhrase,
		"category", result.Category,
		"score", result.Score,
		"cached", hit,
		"elapsed", time.Since(start),
	)
	return result, nil
}

func (p *Pipeline) classify(log *slog.Logger, params Params) (*predict.Prediction, error) {
	artifact, err := model.Load(params.ModelFile)
	if err != nil {
		return nil, err
	}

	weighter := &feature.Weighter{IDF: artifact.IDF}
	features := weighter.Transform(params.TestPhrase, artifact.Vocabulary)
	outcome := "scored"
	if classifier.IsZero(features) {
		outcome = "prior_only"
		log.Warn("phrase has no in-vocabulary terms, prediction driven by priors",
			"phrase", params.TestPhrase,
		)
	}
	p.metrics.PredictionsTotal.WithLabelValues(outcome).Inc()

	category, score := artifact.Classifier.Predict(features)
	return &predict.Prediction{Category: category, Score: score}, nil
}
