package corpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/errors"
)

// Partitioner groups record values by field name and writes one text file per
// field under a field-named subdirectory of the output root.
type Partitioner struct {
	root   string
	logger *slog.Logger
}

// PartitionStats summarises one partitioning run.
type PartitionStats struct {
	Records int
	Fields  []string
	Values  map[string]int
}

// NewPartitioner creates a Partitioner writing under root.
func NewPartitioner(root string) *Partitioner {
	return &Partitioner{
		root:   root,
		logger: slog.Default().With("component", "partitioner"),
	}
}

// Run consumes every record from one iteration of src and writes
// <root>/<lower(field)>/<field>.txt, one stringified value per line. Fields
// are written in sorted order; values within a field keep record arrival
// order. A field directory that already exists aborts the run: merging two
// prepare runs would mix training corpora.
func (p *Partitioner) Run(ctx context.Context, src Source) (*PartitionStats, error) {
	it, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	stats := &PartitionStats{Values: make(map[string]int)}
	values := make(map[string][]string)
	for {
		rec, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		stats.Records++
		for field, value := range rec {
			values[field] = append(values[field], stringify(value))
		}
	}
	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	stats.Fields = fields

	if err := os.MkdirAll(p.root, 0755); err != nil {
		return nil, fmt.Errorf("creating output root %s: %w", p.root, err)
	}
	for _, field := range fields {
		if err := p.writeField(field, values[field]); err != nil {
			return nil, err
		}
		stats.Values[field] = len(values[field])
		p.logger.Debug("field written", "field", field, "values", len(values[field]))
	}
	return stats, nil
}

func (p *Partitioner) writeField(field string, values []string) error {
	dir := filepath.Join(p.root, strings.ToLower(field))
	if err := os.Mkdir(dir, 0755); err != nil {
		if os.IsExist(err) {
			return pkgerrors.Newf(pkgerrors.ErrFilesystemConflict, "directory %s already exists", dir)
		}
		return fmt.Errorf("creating field directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, field+".txt")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating field file %s: %w", path, err)
	}
	for _, value := range values {
		if _, err := fmt.Fprintln(f, value); err != nil {
			f.Close()
			return fmt.Errorf("writing field file %s: %w", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing field file %s: %w", path, err)
	}
	return nil
}

// stringify renders a JSON scalar the way it appeared in the input. Nested
// objects and arrays are not flattened; they come out in Go's default map
// rendering, which is a documented limitation of the flat-record contract.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}
