package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

// jsonlFormatName identifies contacts snapshots in the JSONL header line.
const jsonlFormatName = "contacts"

// maxLineSize bounds a single JSONL line; long notes stay well under it.
const maxLineSize = 16 << 20

// jsonlHeader is the first line of a JSONL snapshot.
type jsonlHeader struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
}

type jsonlCodec struct{}

// write emits the header line followed by one contact per line.
func (jsonlCodec) write(path string, snap Snapshot) error {
	return writeFileAtomic(path, ".contacts-*.jsonl.tmp", func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(jsonlHeader{Format: jsonlFormatName, Version: snap.Version}); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		for _, c := range snap.Contacts {
			if err := enc.Encode(c); err != nil {
				return fmt.Errorf("writing contact: %w", err)
			}
		}
		return nil
	})
}

// read parses a JSONL snapshot. Blank lines are skipped; any other line that
// does not parse rejects the file.
func (jsonlCodec) read(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()

	var snap Snapshot
	headerSeen := false
	lineNo := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !headerSeen {
			var h jsonlHeader
			if err := json.Unmarshal(line, &h); err != nil || h.Format != jsonlFormatName {
				return Snapshot{}, fmt.Errorf("%w: line %d: missing header", types.ErrMalformedSnapshot, lineNo)
			}
			snap.Version = h.Version
			headerSeen = true
			continue
		}
		var c Contact
		if err := json.Unmarshal(line, &c); err != nil {
			return Snapshot{}, fmt.Errorf("%w: line %d: %v", types.ErrMalformedSnapshot, lineNo, err)
		}
		snap.Contacts = append(snap.Contacts, c)
	}
	if err := scanner.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("scanning %s: %w", path, err)
	}
	if !headerSeen {
		return Snapshot{}, fmt.Errorf("%w: empty file", types.ErrMalformedSnapshot)
	}
	return snap, nil
}
