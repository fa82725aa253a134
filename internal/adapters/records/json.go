package records

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/zerr"
)

// JSONSource reads a JSON array of records:
//
//	[{"retention_time": 1200, "mass_spectrum": [{"mass_to_charge": 100.5, "signal": 40}]}]
//
// Absent or null ion fields load as null values.
type JSONSource struct{}

type recordDTO struct {
	RetentionTime *float64     `json:"retention_time"`
	MassSpectrum  []domain.Ion `json:"mass_spectrum"`
}

// Load reads and decodes the file at path.
func (JSONSource) Load(ctx context.Context, path string) (domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawTable{}, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return domain.RawTable{}, zerr.Wrap(domain.ErrRecordsReadFailed, err.Error())
	}
	return DecodeJSON(data)
}

// DecodeJSON decodes a JSON array of records.
func DecodeJSON(data []byte) (domain.RawTable, error) {
	var dtos []recordDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.RawTable{}, domain.SchemaMismatch(typeErr.Field)
		}
		return domain.RawTable{}, zerr.Wrap(domain.ErrRecordsParseFailed, err.Error())
	}

	records := make([]domain.Record, len(dtos))
	for i, dto := range dtos {
		if dto.RetentionTime == nil {
			return domain.RawTable{}, zerr.With(domain.SchemaMismatch("retention_time"), "record", i)
		}
		records[i] = domain.Record{
			RetentionTime: *dto.RetentionTime,
			MassSpectrum:  dto.MassSpectrum,
		}
	}
	return domain.NewRawTable(records), nil
}
