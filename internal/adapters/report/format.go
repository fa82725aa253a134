// Package report renders derived tables and plot values as terminal text or
// JSON.
package report

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/core/ports"
	"go.trai.ch/chroma/internal/ui/output"
	"golang.org/x/term"
)

// Format selects a renderer.
type Format int

const (
	// FormatAuto renders text.
	FormatAuto Format = iota
	// FormatText renders aligned tables.
	FormatText
	// FormatJSON renders indented JSON.
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "auto"
	}
}

// ParseFormat accepts "auto", "text" and "json". The empty string is auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text", "table":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, domain.InvalidSetting("format", s)
	}
}

// New returns the renderer for f.
func New(f Format) ports.Renderer {
	if f == FormatJSON {
		return NewJSONRenderer()
	}
	return NewTextRenderer(DetectProfile)
}

// DetectProfile colors output only when w is a terminal.
func DetectProfile(w io.Writer) termenv.Profile {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	return output.ColorProfile()
}
