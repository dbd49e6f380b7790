package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/classifier"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/internal/feature"
	pkgerrors "github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/errors"
)

func trainedArtifact(t *testing.T) *Artifact {
	t.Helper()
	docs := []string{
		"the team won the game",
		"the market closed higher",
	}
	labels := []string{"sports", "finance"}
	vocab, counts := feature.Count(docs)
	w := feature.FitWeighter(counts)
	m, err := classifier.Fit(w.Weight(counts), labels, []string{"sports", "finance"})
	require.NoError(t, err)
	return &Artifact{
		Vocabulary: vocab,
		IDF:        w.IDF,
		Classifier: *m,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	artifact := trainedArtifact(t)
	path := filepath.Join(t.TempDir(), "model.rma")

	size, err := Save(artifact, path)
	require.NoError(t, err)
	assert.Positive(t, size)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, size, info.Size())
	assert.NoFileExists(t, path+".tmp")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, artifact.Vocabulary, loaded.Vocabulary)
	assert.Equal(t, artifact.IDF, loaded.IDF)
	assert.Equal(t, artifact.Classifier, loaded.Classifier)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.rma"))
	require.ErrorIs(t, err, pkgerrors.ErrCorruptArtifact)
}

func TestLoadTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.rma")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0644))

	_, err := Load(path)
	require.ErrorIs(t, err, pkgerrors.ErrCorruptArtifact)
}

func TestLoadBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.rma")
	_, err := Save(trainedArtifact(t), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[0] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = Load(path)
	require.ErrorIs(t, err, pkgerrors.ErrCorruptArtifact)
}

func TestLoadUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.rma")
	_, err := Save(trainedArtifact(t), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[4] = 0xFF
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = Load(path)
	require.ErrorIs(t, err, pkgerrors.ErrCorruptArtifact)
}

func TestLoadCorruptedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.rma")
	_, err := Save(trainedArtifact(t), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[HeaderSize+2] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = Load(path)
	require.ErrorIs(t, err, pkgerrors.ErrCorruptArtifact)
}
