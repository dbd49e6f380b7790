package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/errors"
)

func writeCorpusDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func TestLoadDirectory(t *testing.T) {
	root := writeCorpusDir(t, map[string]string{
		"sports/sports.txt":   "the team won\na striker scored\n",
		"finance/finance.txt": "the market closed\n",
	})

	c, err := LoadDirectory(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"finance", "sports"}, c.Categories)
	assert.Equal(t, []string{"the market closed", "the team won", "a striker scored"}, c.Documents)
	assert.Equal(t, []string{"finance", "sports", "sports"}, c.Labels)
}

func TestLoadDirectorySkipsEmptyLinesAndPlainFiles(t *testing.T) {
	root := writeCorpusDir(t, map[string]string{
		"colors/colors.txt": "red\n\nblue\n",
		"stray.txt":         "ignored\n",
	})

	c, err := LoadDirectory(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"colors"}, c.Categories)
	assert.Equal(t, []string{"red", "blue"}, c.Documents)
}

func TestLoadDirectoryKeepsEmptyCategory(t *testing.T) {
	root := writeCorpusDir(t, map[string]string{
		"full/full.txt": "one doc\n",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))

	c, err := LoadDirectory(root)
	require.NoError(t, err)

	// The empty category shows up; rejecting it is the trainer's call.
	assert.Equal(t, []string{"empty", "full"}, c.Categories)
	assert.Equal(t, []string{"one doc"}, c.Documents)
}

func TestLoadDirectoryMissingRoot(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
}
