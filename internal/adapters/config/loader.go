// Package config provides the settings loader for chroma.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the settings file looked up when no path is given.
const DefaultFilename = "chroma.yaml"

// Loader implements ports.SettingsLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

var _ ports.SettingsLoader = (*Loader)(nil)

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the settings file at path. An empty path selects DefaultFilename
// in the working directory. A missing file yields the default settings.
func (l *Loader) Load(path string) (domain.Settings, error) {
	if path == "" {
		path = DefaultFilename
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Debug("no settings file at " + path + ", using defaults")
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrSettingsReadFailed, err.Error()), "path", path)
	}

	s, err := Parse(data)
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	return s, nil
}

// Parse decodes a settings document onto domain.DefaultSettings and validates
// the result. Unknown keys are rejected.
func Parse(data []byte) (domain.Settings, error) {
	var file Settingsfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return domain.Settings{}, zerr.Wrap(domain.ErrSettingsParseFailed, err.Error())
	}

	s, err := file.apply(domain.DefaultSettings())
	if err != nil {
		return domain.Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

func (f *Settingsfile) apply(s domain.Settings) (domain.Settings, error) {
	if f.Sort != nil {
		if err := s.Sort.UnmarshalText([]byte(*f.Sort)); err != nil {
			return s, err
		}
	}
	setBool(&s.Explode, f.Explode)
	setBool(&s.FilterNull, f.FilterNull)
	setBool(&s.NormalizeSignal, f.NormalizeSignal)

	if err := setPair(&s.PeakMin, f.Peak.Min, "peak.min"); err != nil {
		return s, err
	}
	if err := setPair(&s.PeakMax, f.Peak.Max, "peak.max"); err != nil {
		return s, err
	}

	setInt(&s.WindowSize, f.Rolling.WindowSize)
	setInt(&s.MinPeriods, f.Rolling.MinPeriods)

	if f.Plot.BarSort != nil {
		if err := s.Plot.BarSort.UnmarshalText([]byte(*f.Plot.BarSort)); err != nil {
			return s, err
		}
	}
	if f.Plot.BarWidth != nil {
		s.Plot.BarWidth = *f.Plot.BarWidth
	}
	setBool(&s.Plot.Stack, f.Plot.Stack)
	setBool(&s.Plot.Legend, f.Plot.Legend)

	if f.Display.RetentionTimeUnits != nil {
		if err := s.Display.RetentionTimeUnits.UnmarshalText([]byte(*f.Display.RetentionTimeUnits)); err != nil {
			return s, err
		}
	}
	setInt(&s.Display.RetentionTimePrecision, f.Display.RetentionTimePrecision)
	setInt(&s.Display.MassToChargePrecision, f.Display.MassToChargePrecision)
	setInt(&s.Display.SignalPrecision, f.Display.SignalPrecision)
	return s, nil
}

func setBool(dst, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst, src *int) {
	if src != nil {
		*dst = *src
	}
}

// setPair accepts one or two flags. A single flag leaves the label toggle alone.
func setPair(dst *[2]bool, src []bool, field string) error {
	switch len(src) {
	case 0:
	case 1:
		dst[0] = src[0]
	case 2:
		*dst = [2]bool{src[0], src[1]}
	default:
		return domain.InvalidSetting(field, src)
	}
	return nil
}
