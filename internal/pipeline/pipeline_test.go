package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/corpus"
	pkgerrors "github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/metrics"
)

func newTestPipeline() *Pipeline {
	return New(metrics.NewFor(prometheus.NewRegistry()), nil, nil)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestPrepareThenTrainThenTestPhrase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	jsonl := filepath.Join(dir, "records.jsonl")
	writeFile(t, jsonl,
		`{"color":"red crimson","size":"large"}`+"\n"+
			`{"color":"blue navy","size":"small"}`+"\n",
	)

	corpusDir := filepath.Join(dir, "corpus")
	modelFile := filepath.Join(dir, "model.rma")
	p := newTestPipeline()

	err := p.Prepare(ctx, corpus.NewFileSource(jsonl, 0), Params{
		JSONLinesFile:   jsonl,
		OutputDirectory: corpusDir,
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(corpusDir, "color", "color.txt"))
	assert.FileExists(t, filepath.Join(corpusDir, "size", "size.txt"))

	err = p.Train(ctx, Params{
		InputDirectory: corpusDir,
		ModelFile:      modelFile,
	})
	require.NoError(t, err)
	assert.FileExists(t, modelFile)

	result, err := p.TestPhrase(ctx, Params{
		TestPhrase: "crimson red",
		ModelFile:  modelFile,
	})
	require.NoError(t, err)
	assert.Equal(t, "color", result.Category)
}

func TestTestPhraseAllUnknownTermsStillPredicts(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	corpusDir := filepath.Join(dir, "corpus")
	writeFile(t, filepath.Join(corpusDir, "color", "color.txt"), "red crimson\nblue navy\n")
	writeFile(t, filepath.Join(corpusDir, "size", "size.txt"), "large\n")

	modelFile := filepath.Join(dir, "model.rma")
	p := newTestPipeline()
	require.NoError(t, p.Train(ctx, Params{InputDirectory: corpusDir, ModelFile: modelFile}))

	// Every term is out of vocabulary; prediction falls back to priors, and
	// color has twice the documents.
	result, err := p.TestPhrase(ctx, Params{
		TestPhrase: "zzz qqq",
		ModelFile:  modelFile,
	})
	require.NoError(t, err)
	assert.Equal(t, "color", result.Category)
}

func TestTrainSingleCategoryFailsWithoutArtifact(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	corpusDir := filepath.Join(dir, "corpus")
	writeFile(t, filepath.Join(corpusDir, "only", "only.txt"), "lonely doc\n")

	modelFile := filepath.Join(dir, "model.rma")
	err := newTestPipeline().Train(ctx, Params{
		InputDirectory: corpusDir,
		ModelFile:      modelFile,
	})
	require.ErrorIs(t, err, pkgerrors.ErrInsufficientTrainingData)
	assert.NoFileExists(t, modelFile)
	assert.NoFileExists(t, modelFile+".tmp")
}

func TestTrainEmptyCategoryFails(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	corpusDir := filepath.Join(dir, "corpus")
	writeFile(t, filepath.Join(corpusDir, "full", "full.txt"), "a doc here\n")
	require.NoError(t, os.MkdirAll(filepath.Join(corpusDir, "empty"), 0755))

	err := newTestPipeline().Train(ctx, Params{
		InputDirectory: corpusDir,
		ModelFile:      filepath.Join(dir, "model.rma"),
	})
	require.ErrorIs(t, err, pkgerrors.ErrInsufficientTrainingData)
}

func TestTestPhraseCorruptModel(t *testing.T) {
	dir := t.TempDir()
	modelFile := filepath.Join(dir, "model.rma")
	writeFile(t, modelFile, "this is not a model artifact at all")

	_, err := newTestPipeline().TestPhrase(context.Background(), Params{
		TestPhrase: "anything",
		ModelFile:  modelFile,
	})
	require.ErrorIs(t, err, pkgerrors.ErrCorruptArtifact)
}

func TestPrepareConflictingOutputDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	jsonl := filepath.Join(dir, "records.jsonl")
	writeFile(t, jsonl, `{"color":"red"}`+"\n")

	out := filepath.Join(dir, "out")
	p := newTestPipeline()
	src := corpus.NewFileSource(jsonl, 0)

	require.NoError(t, p.Prepare(ctx, src, Params{OutputDirectory: out}))
	err := p.Prepare(ctx, src, Params{OutputDirectory: out})
	require.ErrorIs(t, err, pkgerrors.ErrFilesystemConflict)
}
