package ports

import "go.trai.ch/chroma/internal/core/domain"

// SettingsLoader defines the interface for loading a settings snapshot.
//
//go:generate mockgen -source=settings_loader.go -destination=mocks/mock_settings_loader.go -package=mocks
type SettingsLoader interface {
	// Load reads the settings file at path. An empty path or a missing file
	// yields domain.DefaultSettings.
	Load(path string) (domain.Settings, error)
}
