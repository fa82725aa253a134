package records

import (
	"context"
	"database/sql"
	"math"
	"os"
	"strings"

	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteSchema is the layout SQLiteSource reads. Ions are ordered by
// position within their record; a record without ions has an empty spectrum.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS records (
	id             INTEGER PRIMARY KEY,
	retention_time REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS ions (
	record_id      INTEGER NOT NULL REFERENCES records(id),
	position       INTEGER NOT NULL,
	mass_to_charge REAL,
	signal         INTEGER,
	PRIMARY KEY (record_id, position)
);`

const selectIons = `
SELECT r.id, r.retention_time, i.record_id IS NOT NULL, i.mass_to_charge, i.signal
FROM records r
LEFT JOIN ions i ON i.record_id = r.id
ORDER BY r.id, i.position`

// SQLiteSource reads records from a SQLite database laid out as SQLiteSchema.
type SQLiteSource struct{}

// Load opens the database at path read-only and reads every record.
func (SQLiteSource) Load(ctx context.Context, path string) (domain.RawTable, error) {
	// sql.Open would create a missing file.
	if _, err := os.Stat(path); err != nil {
		return domain.RawTable{}, zerr.Wrap(domain.ErrRecordsReadFailed, err.Error())
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return domain.RawTable{}, zerr.Wrap(domain.ErrRecordsReadFailed, err.Error())
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, selectIons)
	if err != nil {
		return domain.RawTable{}, queryError(err)
	}
	defer func() { _ = rows.Close() }()

	var (
		records []domain.Record
		lastID  int64
	)
	for rows.Next() {
		var (
			id            int64
			retentionTime sql.NullFloat64
			hasIon        bool
			massToCharge  sql.NullFloat64
			signal        sql.NullInt64
		)
		if err := rows.Scan(&id, &retentionTime, &hasIon, &massToCharge, &signal); err != nil {
			return domain.RawTable{}, zerr.Wrap(domain.ErrRecordsParseFailed, err.Error())
		}
		if !retentionTime.Valid {
			return domain.RawTable{}, zerr.With(domain.SchemaMismatch("retention_time"), "record", id)
		}

		if len(records) == 0 || id != lastID {
			records = append(records, domain.Record{RetentionTime: retentionTime.Float64})
			lastID = id
		}
		if !hasIon {
			continue
		}

		ion, err := scanIon(massToCharge, signal)
		if err != nil {
			return domain.RawTable{}, zerr.With(err, "record", id)
		}
		last := &records[len(records)-1]
		last.MassSpectrum = append(last.MassSpectrum, ion)
	}
	if err := rows.Err(); err != nil {
		return domain.RawTable{}, queryError(err)
	}

	return domain.NewRawTable(records), nil
}

func scanIon(massToCharge sql.NullFloat64, signal sql.NullInt64) (domain.Ion, error) {
	var ion domain.Ion
	if massToCharge.Valid {
		ion.MassToCharge = domain.Some(float32(massToCharge.Float64))
	}
	if signal.Valid {
		if signal.Int64 < 0 || signal.Int64 > math.MaxUint16 {
			return domain.Ion{}, zerr.With(domain.SchemaMismatch("signal"), "value", signal.Int64)
		}
		ion.Signal = domain.Some(uint16(signal.Int64))
	}
	return ion, nil
}

// queryError maps sqlite's schema complaints onto ErrSchemaMismatch.
func queryError(err error) error {
	msg := err.Error()
	for _, prefix := range []string{"no such column: ", "no such table: "} {
		if i := strings.Index(msg, prefix); i >= 0 {
			name := strings.Fields(msg[i+len(prefix):])
			if len(name) > 0 {
				return domain.SchemaMismatch(strings.Trim(name[0], `"'()`))
			}
		}
	}
	return zerr.Wrap(domain.ErrRecordsReadFailed, msg)
}
