package ports

import (
	"context"

	"go.trai.ch/chroma/internal/core/domain"
)

// RecordSource loads raw records from storage.
//
//go:generate mockgen -source=record_source.go -destination=mocks/mock_record_source.go -package=mocks
type RecordSource interface {
	// Load reads the records at path and returns them as a hashed table.
	Load(ctx context.Context, path string) (domain.RawTable, error)
}
