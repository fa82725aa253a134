// Package records loads raw chromatography records from files.
package records

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/core/ports"
	"go.trai.ch/zerr"
)

// Source implements ports.RecordSource by dispatching on the file extension.
type Source struct {
	formats map[string]ports.RecordSource
	logger  ports.Logger
}

var _ ports.RecordSource = (*Source)(nil)

// NewSource creates a Source that understands JSON and SQLite files.
func NewSource(logger ports.Logger) *Source {
	jsonSource := &JSONSource{}
	sqliteSource := &SQLiteSource{}
	return &Source{
		formats: map[string]ports.RecordSource{
			".json":    jsonSource,
			".db":      sqliteSource,
			".sqlite":  sqliteSource,
			".sqlite3": sqliteSource,
		},
		logger: logger,
	}
}

// Load reads the records at path with the source registered for its extension.
func (s *Source) Load(ctx context.Context, path string) (domain.RawTable, error) {
	ext := strings.ToLower(filepath.Ext(path))
	src, ok := s.formats[ext]
	if !ok {
		return domain.RawTable{}, zerr.With(zerr.Wrap(domain.ErrUnknownRecordFormat, fmt.Sprintf("extension %q", ext)), "path", path)
	}

	raw, err := src.Load(ctx, path)
	if err != nil {
		return domain.RawTable{}, zerr.With(err, "path", path)
	}
	s.logger.Debug(fmt.Sprintf("loaded %d records from %s (%016x)", raw.Len(), path, raw.Hash()))
	return raw, nil
}
