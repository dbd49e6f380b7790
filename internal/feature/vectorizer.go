package feature

import (
	"math"
	"sort"
)

// Vocabulary assigns each distinct term a stable column index. It is built
// once at training time and frozen; prediction reuses it unchanged and drops
// any term it does not contain.
type Vocabulary map[string]int

// Index returns the column index for term and whether the term is known.
func (v Vocabulary) Index(term string) (int, bool) {
	i, ok := v[term]
	return i, ok
}

// Count builds a vocabulary and raw document-term count matrix from docs.
// Terms are indexed in sorted order so the vocabulary is independent of
// document order.
func Count(docs []string) (Vocabulary, [][]float64) {
	tokenized := make([][]string, len(docs))
	terms := make(map[string]struct{})
	for i, doc := range docs {
		tokenized[i] = Tokenize(doc)
		for _, t := range tokenized[i] {
			terms[t] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(terms))
	for t := range terms {
		sorted = append(sorted, t)
	}
	sort.Strings(sorted)

	vocab := make(Vocabulary, len(sorted))
	for i, t := range sorted {
		vocab[t] = i
	}

	matrix := make([][]float64, len(docs))
	for i, tokens := range tokenized {
		row := make([]float64, len(vocab))
		for _, t := range tokens {
			row[vocab[t]]++
		}
		matrix[i] = row
	}
	return vocab, matrix
}

// Weighter rescales raw term counts with smoothed inverse-document-frequency
// weights. The IDF vector is computed once from the training counts and then
// frozen.
type Weighter struct {
	IDF []float64
}

// FitWeighter computes idf(t) = log((1+N)/(1+df(t))) + 1 from the raw count
// matrix. The smoothing keeps unseen terms finite.
func FitWeighter(counts [][]float64) *Weighter {
	if len(counts) == 0 {
		return &Weighter{IDF: []float64{}}
	}
	n := float64(len(counts))
	idf := make([]float64, len(counts[0]))
	for t := range idf {
		df := 0.0
		for _, row := range counts {
			if row[t] > 0 {
				df++
			}
		}
		idf[t] = math.Log((1+n)/(1+df)) + 1
	}
	return &Weighter{IDF: idf}
}

// Weight returns a new matrix with each cell scaled by its term's IDF weight
// and each row L2-normalized. The input counts are not modified.
func (w *Weighter) Weight(counts [][]float64) [][]float64 {
	out := make([][]float64, len(counts))
	for i, row := range counts {
		out[i] = w.weightRow(row)
	}
	return out
}

// Transform vectorizes a single new document against the frozen vocabulary
// and IDF weights. Unknown terms are dropped. It is deterministic and
// side-effect free.
func (w *Weighter) Transform(doc string, vocab Vocabulary) []float64 {
	row := make([]float64, len(vocab))
	for _, t := range Tokenize(doc) {
		if i, ok := vocab.Index(t); ok {
			row[i]++
		}
	}
	return w.weightRow(row)
}

func (w *Weighter) weightRow(row []float64) []float64 {
	out := make([]float64, len(row))
	var norm float64
	for t, count := range row {
		out[t] = count * w.IDF[t]
		norm += out[t] * out[t]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for t := range out {
			out[t] /= norm
		}
	}
	return out
}
