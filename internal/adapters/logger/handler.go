package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/chroma/internal/ui/output"
	"go.trai.ch/chroma/internal/ui/style"
)

// Attribute keys the pretty handler renders specially.
const (
	// StageKey names the memo stage a line belongs to. It is printed as a
	// "[stage]" prefix instead of a key=value pair.
	StageKey = "stage"
	// HashKey carries a table hash, printed in the same 16 digit hex form the
	// reports use.
	HashKey = "hash"
)

// PrettyHandler is a slog.Handler that writes colored, human-readable lines.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	stage  string
	attrs  []string
	prefix string
}

// NewPrettyHandler creates a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record as one line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	glyph, color := levelStyle(r.Level)

	stage := h.stage
	parts := append([]string(nil), h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		parts = h.collect(parts, &stage, h.prefix, attr)
		return true
	})

	var line strings.Builder
	if glyph != "" {
		line.WriteString(glyph + " ")
	}
	if stage != "" {
		line.WriteString("[" + stage + "] ")
	}
	line.WriteString(r.Message)
	styled := h.out.String(line.String()).Foreground(color).String()

	if len(parts) > 0 {
		styled += " " + h.out.String(strings.Join(parts, " ")).Faint().String()
	}
	_, err := h.out.WriteString(styled + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, attr := range attrs {
		next.attrs = next.collect(next.attrs, &next.stage, next.prefix, attr)
	}
	return next
}

// WithGroup returns a new Handler that qualifies later keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = qualify(h.prefix, name)
	return next
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:    h.out,
		level:  h.level,
		stage:  h.stage,
		attrs:  append([]string(nil), h.attrs...),
		prefix: h.prefix,
	}
}

// collect appends the rendered form of attr to parts, flattening groups.
// A stage attribute replaces *stage instead.
func (h *PrettyHandler) collect(parts []string, stage *string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}
	if attr.Value.Kind() == slog.KindGroup {
		inner := qualify(prefix, attr.Key)
		for _, a := range attr.Value.Group() {
			parts = h.collect(parts, stage, inner, a)
		}
		return parts
	}
	if attr.Key == StageKey {
		*stage = attr.Value.String()
		return parts
	}
	return append(parts, qualify(prefix, attr.Key)+"="+formatValue(attr))
}

func qualify(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}

func formatValue(attr slog.Attr) string {
	v := attr.Value
	switch {
	case attr.Key == HashKey && v.Kind() == slog.KindUint64:
		return fmt.Sprintf("%016x", v.Uint64())
	case v.Kind() == slog.KindDuration:
		return v.Duration().Round(time.Microsecond).String()
	case v.Kind() == slog.KindString && strings.ContainsAny(v.String(), " \t\"="):
		return fmt.Sprintf("%q", v.String())
	default:
		return v.String()
	}
}

func levelStyle(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	case level < slog.LevelInfo:
		return style.Dot, termenv.RGBColor(string(style.Iris))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}
