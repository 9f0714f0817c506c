package book

import (
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/contacts/internal/storage"
	"github.com/mesh-intelligence/contacts/pkg/types"
)

// Persist writes every record to path, replacing any prior content. The
// format follows the extension of path, else the book's configured format.
func (b *Book) Persist(path string) error {
	format := storage.FormatForPath(path, b.format)
	if err := storage.Save(path, format, b.Records()); err != nil {
		b.logger.Error("persist failed", zap.String("path", path), zap.String("format", format), zap.Error(err))
		return err
	}
	b.logger.Info("address book persisted",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("records", b.Len()),
	)
	return nil
}

// Restore replaces the book's contents with the records stored at path.
// A missing file empties the book. On any other error the book is left
// unchanged.
func (b *Book) Restore(path string) error {
	format := storage.FormatForPath(path, b.format)
	records, err := storage.Load(path, format)
	if errors.Is(err, fs.ErrNotExist) {
		b.logger.Info("no snapshot found, starting empty", zap.String("path", path))
		records, err = nil, nil
	}
	if err != nil {
		b.logger.Error("restore failed", zap.String("path", path), zap.String("format", format), zap.Error(err))
		return err
	}

	b.replace(records)
	b.logger.Info("address book restored",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("records", b.Len()),
	)
	return nil
}

func (b *Book) replace(records []*types.Record) {
	b.records = make(map[string]*types.Record, len(records))
	b.order = b.order[:0]
	for _, r := range records {
		b.Add(r)
	}
}
