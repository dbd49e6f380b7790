package corpus

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	pkgerrors "github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/errors"
)

// LabeledCorpus is a training corpus loaded from a directory tree: one
// immediate subdirectory per category, one document per non-empty line of
// each file inside.
type LabeledCorpus struct {
	Documents  []string
	Labels     []string
	Categories []string
}

// LoadDirectory reads a labeled corpus from root. Categories are sorted so the
// corpus is independent of directory listing order. A category directory with
// no documents is reported by the trainer, not here; the directory contract
// only defines the layout.
func LoadDirectory(root string) (*LabeledCorpus, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrInvalidInput, "reading corpus directory %s: %v", root, err)
	}

	var categories []string
	for _, entry := range entries {
		if entry.IsDir() {
			categories = append(categories, entry.Name())
		}
	}
	sort.Strings(categories)

	c := &LabeledCorpus{Categories: categories}
	for _, category := range categories {
		dir := filepath.Join(root, category)
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading category directory %s: %w", dir, err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if err := c.loadFile(filepath.Join(dir, file.Name()), category); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *LabeledCorpus) loadFile(path, category string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening training file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		c.Documents = append(c.Documents, line)
		c.Labels = append(c.Labels, category)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading training file %s: %w", path, err)
	}
	return nil
}
