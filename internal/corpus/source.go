// Package corpus turns streams of flat JSON records into the labeled
// directory tree consumed by training. Sources are finite and restartable:
// each Open starts a fresh iteration capped at a configurable maximum record
// count, independent of any prior iteration's file handle.
package corpus

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"unicode/utf8"

	pkgerrors "github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/errors"
)

// Record is one flat JSON object from the input stream. Values are scalars;
// nested values are carried through as-is and stringified on write.
type Record map[string]any

// Source produces bounded iterations over a stream of records.
type Source interface {
	Open(ctx context.Context) (Iterator, error)
}

// Iterator yields records one at a time. Next returns io.EOF after the last
// record or once the source's maximum record count is reached.
type Iterator interface {
	Next() (Record, error)
	Close() error
}

// FileSource reads a JSON Lines file, one object per line.
type FileSource struct {
	path       string
	maxRecords int
}

// NewFileSource creates a Source over the JSONL file at path. At most
// maxRecords records are yielded per iteration; zero means no cap.
func NewFileSource(path string, maxRecords int) *FileSource {
	return &FileSource{path: path, maxRecords: maxRecords}
}

// Open starts a new iteration from the beginning of the file.
func (s *FileSource) Open(ctx context.Context) (Iterator, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrInvalidInput, "opening jsonlines file %s: %v", s.path, err)
	}
	return &fileIterator{
		ctx:     ctx,
		file:    f,
		scanner: bufio.NewScanner(f),
		max:     s.maxRecords,
	}, nil
}

type fileIterator struct {
	ctx     context.Context
	file    *os.File
	scanner *bufio.Scanner
	max     int
	count   int
	line    int
}

func (it *fileIterator) Next() (Record, error) {
	if err := it.ctx.Err(); err != nil {
		return nil, err
	}
	if it.max > 0 && it.count >= it.max {
		return nil, io.EOF
	}
	for it.scanner.Scan() {
		it.line++
		raw := it.scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		if !utf8.Valid(raw) {
			return nil, pkgerrors.Newf(pkgerrors.ErrMalformedInput, "line %d is not valid UTF-8", it.line)
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, pkgerrors.Newf(pkgerrors.ErrMalformedInput, "line %d: %v", it.line, err)
		}
		it.count++
		return rec, nil
	}
	if err := it.scanner.Err(); err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrMalformedInput, "reading line %d: %v", it.line+1, err)
	}
	return nil, io.EOF
}

func (it *fileIterator) Close() error {
	return it.file.Close()
}
