// Package classifier implements a multinomial Naive Bayes text classifier
// over TF-IDF weighted document vectors. Fitting is a single closed-form pass;
// there is no iterative optimization.
package classifier

import (
	"math"
	"sort"

	pkgerrors "github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/errors"
)

// DefaultAlpha is the Laplace smoothing constant.
const DefaultAlpha = 1.0

// Model holds the fitted classifier parameters. Categories are stored sorted;
// LogPrior and LogLikelihood rows share that order.
type Model struct {
	Categories    []string    `json:"categories"`
	LogPrior      []float64   `json:"log_prior"`
	LogLikelihood [][]float64 `json:"log_likelihood"`
}

// Fit estimates log-priors from label frequencies and Laplace-smoothed
// per-category term log-likelihoods from the weighted matrix. Summation is
// commutative, so permuting document order yields identical parameters.
//
// categories is the full expected category set (from the corpus directory
// layout); every category must have at least one labeled document.
func Fit(matrix [][]float64, labels []string, categories []string) (*Model, error) {
	if len(matrix) == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrInsufficientTrainingData, "no training documents")
	}
	if len(matrix) != len(labels) {
		return nil, pkgerrors.Newf(pkgerrors.ErrInsufficientTrainingData,
			"%d documents but %d labels", len(matrix), len(labels))
	}
	if len(categories) < 2 {
		return nil, pkgerrors.Newf(pkgerrors.ErrInsufficientTrainingData,
			"need at least 2 categories, got %d", len(categories))
	}

	sorted := append([]string(nil), categories...)
	sort.Strings(sorted)
	index := make(map[string]int, len(sorted))
	for i, c := range sorted {
		index[c] = i
	}

	docCounts := make([]float64, len(sorted))
	termMass := make([][]float64, len(sorted))
	vocabSize := len(matrix[0])
	for c := range termMass {
		termMass[c] = make([]float64, vocabSize)
	}
	for d, row := range matrix {
		c, ok := index[labels[d]]
		if !ok {
			return nil, pkgerrors.Newf(pkgerrors.ErrInsufficientTrainingData,
				"label %q not in category set", labels[d])
		}
		docCounts[c]++
		for t, w := range row {
			termMass[c][t] += w
		}
	}
	for c, count := range docCounts {
		if count == 0 {
			return nil, pkgerrors.Newf(pkgerrors.ErrInsufficientTrainingData,
				"category %q has no documents", sorted[c])
		}
	}

	m := &Model{
		Categories:    sorted,
		LogPrior:      make([]float64, len(sorted)),
		LogLikelihood: make([][]float64, len(sorted)),
	}
	total := float64(len(matrix))
	for c := range sorted {
		m.LogPrior[c] = math.Log(docCounts[c] / total)
		mass := DefaultAlpha * float64(vocabSize)
		for _, w := range termMass[c] {
			mass += w
		}
		m.LogLikelihood[c] = make([]float64, vocabSize)
		for t, w := range termMass[c] {
			m.LogLikelihood[c][t] = math.Log((w + DefaultAlpha) / mass)
		}
	}
	return m, nil
}

// Predict scores each category as logPrior + sum(feature * term logLikelihood)
// and returns the best category with its score. Ties go to the first category
// in stored order. An all-zero feature vector degrades to a prior-only
// prediction; it is never an error.
func (m *Model) Predict(features []float64) (string, float64) {
	best := 0
	bestScore := math.Inf(-1)
	for c := range m.Categories {
		score := m.LogPrior[c]
		for t, f := range features {
			if f > 0 {
				score += f * m.LogLikelihood[c][t]
			}
		}
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return m.Categories[best], bestScore
}

// IsZero reports whether no feature is set, meaning Predict will fall back to
// priors alone.
func IsZero(features []float64) bool {
	for _, f := range features {
		if f != 0 {
			return false
		}
	}
	return true
}
