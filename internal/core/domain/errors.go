package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrMissingField is returned when a required value is null after the null filter ran.
	// It signals an inconsistency inside the pipeline rather than bad user data.
	ErrMissingField = zerr.New("missing field")

	// ErrSchemaMismatch is returned when a table lacks an expected column or has the wrong type.
	ErrSchemaMismatch = zerr.New("schema mismatch")

	// ErrUnsupported is returned for projections that are not defined.
	ErrUnsupported = zerr.New("unsupported")

	// ErrInvalidSettings is returned when a settings snapshot is inconsistent.
	ErrInvalidSettings = zerr.New("invalid settings")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrSettingsParseFailed is returned when the settings file cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings file")

	// ErrRecordsReadFailed is returned when a record source cannot be read.
	ErrRecordsReadFailed = zerr.New("failed to read records")

	// ErrRecordsParseFailed is returned when a record source cannot be decoded.
	ErrRecordsParseFailed = zerr.New("failed to parse records")

	// ErrUnknownRecordFormat is returned when no record source handles a file.
	ErrUnknownRecordFormat = zerr.New("unknown record format")

	// ErrRenderFailed is returned when a view cannot be written.
	ErrRenderFailed = zerr.New("failed to render view")
)

// MissingField reports a null in the named column.
func MissingField(column string) error {
	return zerr.With(zerr.Wrap(ErrMissingField, fmt.Sprintf("column %q", column)), "column", column)
}

// SchemaMismatch reports a missing or mistyped column.
func SchemaMismatch(column string) error {
	return zerr.With(zerr.Wrap(ErrSchemaMismatch, fmt.Sprintf("column %q", column)), "column", column)
}

// InvalidSetting reports a settings field with an unacceptable value.
func InvalidSetting(field string, value any) error {
	return zerr.With(zerr.Wrap(ErrInvalidSettings, field), field, value)
}
