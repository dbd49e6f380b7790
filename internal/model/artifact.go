// Package model defines the trained model artifact and its on-disk format.
// The artifact bundles everything prediction needs: the frozen vocabulary,
// IDF weights, and fitted classifier parameters. It is written once by
// training and only ever read afterwards.
package model

import (
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/classifier"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/feature"
)

// Artifact is the serialized bundle produced by the train stage.
type Artifact struct {
	Vocabulary feature.Vocabulary `json:"vocabulary"`
	IDF        []float64          `json:"idf"`
	Classifier classifier.Model   `json:"classifier"`
}

// Categories returns the model's ordered category list.
func (a *Artifact) Categories() []string {
	return a.Classifier.Categories
}
