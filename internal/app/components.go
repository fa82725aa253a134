package app

import (
	"go.trai.ch/chroma/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

// LogConfigurer is implemented by loggers whose mode can change at runtime.
type LogConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ConfigureLogging switches the logger mode if it supports it.
func (c *Components) ConfigureLogging(json, verbose bool) {
	if lc, ok := c.Logger.(LogConfigurer); ok {
		lc.SetJSON(json)
		lc.SetVerbose(verbose)
	}
}
