package model

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"
	"time"

	pkgerrors "github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/errors"
)

// MagicBytes identifies a valid .rma artifact file.
const (
	MagicBytes    uint32 = 0x524D414D
	FormatVersion uint32 = 1
	HeaderSize    int    = 32
	FooterSize    int    = 8
)

// artifactHeader is the 32-byte header written at the start of every artifact.
type artifactHeader struct {
	Magic       uint32
	Version     uint32
	PayloadSize int64
	CreatedAt   int64
	VocabSize   uint32
	Categories  uint32
}

// Save atomically writes the artifact to path. It writes to a .tmp file first
// and renames on success, so a crashed run never leaves a readable partial
// artifact behind. It returns the total file size.
func Save(a *Artifact, path string) (int64, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return 0, fmt.Errorf("marshaling artifact: %w", err)
	}

	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(header[4:8], FormatVersion)
	binary.LittleEndian.PutUint64(header[8:16], uint64(len(payload)))
	binary.LittleEndian.PutUint64(header[16:24], uint64(time.Now().Unix()))
	binary.LittleEndian.PutUint32(header[24:28], uint32(len(a.Vocabulary)))
	binary.LittleEndian.PutUint32(header[28:32], uint32(len(a.Classifier.Categories)))

	footer := make([]byte, FooterSize)
	binary.LittleEndian.PutUint32(footer[0:4], crc32.ChecksumIEEE(payload))

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("creating temp artifact file: %w", err)
	}
	defer f.Close()
	for _, part := range [][]byte{header, payload, footer} {
		if _, err := f.Write(part); err != nil {
			return 0, fmt.Errorf("writing artifact: %w", err)
		}
	}
	if err := f.Sync(); err != nil {
		return 0, fmt.Errorf("syncing artifact file: %w", err)
	}
	f.Close()
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("renaming artifact file: %w", err)
	}
	return int64(HeaderSize + len(payload) + FooterSize), nil
}

// Load reads and verifies an artifact from path. Any malformed or
// version-mismatched input fails with a corrupt-artifact error; there is no
// partial recovery.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrCorruptArtifact, "reading artifact %s: %v", path, err)
	}
	if len(data) < HeaderSize+FooterSize {
		return nil, pkgerrors.Newf(pkgerrors.ErrCorruptArtifact, "artifact %s truncated: %d bytes", path, len(data))
	}

	header := artifactHeader{
		Magic:       binary.LittleEndian.Uint32(data[0:4]),
		Version:     binary.LittleEndian.Uint32(data[4:8]),
		PayloadSize: int64(binary.LittleEndian.Uint64(data[8:16])),
		CreatedAt:   int64(binary.LittleEndian.Uint64(data[16:24])),
		VocabSize:   binary.LittleEndian.Uint32(data[24:28]),
		Categories:  binary.LittleEndian.Uint32(data[28:32]),
	}
	if header.Magic != MagicBytes {
		return nil, pkgerrors.Newf(pkgerrors.ErrCorruptArtifact, "bad magic bytes %x", header.Magic)
	}
	if header.Version != FormatVersion {
		return nil, pkgerrors.Newf(pkgerrors.ErrCorruptArtifact, "unsupported format version %d", header.Version)
	}
	if int64(len(data)) != int64(HeaderSize)+header.PayloadSize+int64(FooterSize) {
		return nil, pkgerrors.Newf(pkgerrors.ErrCorruptArtifact,
			"artifact size mismatch: header says %d payload bytes, file has %d",
			header.PayloadSize, len(data)-HeaderSize-FooterSize)
	}

	payload := data[HeaderSize : HeaderSize+int(header.PayloadSize)]
	checksum := binary.LittleEndian.Uint32(data[len(data)-FooterSize:])
	if crc32.ChecksumIEEE(payload) != checksum {
		return nil, pkgerrors.New(pkgerrors.ErrCorruptArtifact, "payload checksum mismatch")
	}

	var a Artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrCorruptArtifact, "parsing artifact payload: %v", err)
	}
	if uint32(len(a.Vocabulary)) != header.VocabSize || uint32(len(a.Classifier.Categories)) != header.Categories {
		return nil, pkgerrors.New(pkgerrors.ErrCorruptArtifact, "header counts disagree with payload")
	}
	return &a, nil
}
