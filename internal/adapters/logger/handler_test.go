package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chroma/internal/adapters/logger"
)

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer

	h := logger.NewPrettyHandler(&buf, nil).
		WithAttrs([]slog.Attr{slog.String("stage", "table")}).
		WithGroup("memo")
	slog.New(h).Info("miss", "key", "table-1f")

	assert.Equal(t, "[table] miss memo.key=table-1f\n", buf.String())
}

func TestPrettyHandler_ChromaKeys(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name  string
		level slog.Level
		args  []any
		want  string
	}{
		{
			name:  "hash as hex",
			level: slog.LevelInfo,
			args:  []any{logger.HashKey, uint64(0xbeef)},
			want:  "loaded hash=000000000000beef\n",
		},
		{
			name:  "stage prefix after glyph",
			level: slog.LevelWarn,
			args:  []any{logger.StageKey, "plot", "column", "signal"},
			want:  "! [plot] loaded column=signal\n",
		},
		{
			name:  "quoted path",
			level: slog.LevelInfo,
			args:  []any{"path", "my records.json"},
			want:  "loaded path=\"my records.json\"\n",
		},
		{
			name:  "rounded duration",
			level: slog.LevelDebug,
			args:  []any{"elapsed", 1500*time.Microsecond + 42*time.Nanosecond},
			want:  "· loaded elapsed=1.5ms\n",
		},
		{
			name:  "nested groups",
			level: slog.LevelInfo,
			args:  []any{slog.Group("memo", slog.Int("hits", 2), slog.Group("lru", slog.Int("size", 64)))},
			want:  "loaded memo.hits=2 memo.lru.size=64\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(logger.NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			log.Log(context.Background(), tt.level, "loaded", tt.args...)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_NestedWithGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer

	h := logger.NewPrettyHandler(&buf, nil).WithGroup("memo").WithGroup("table")
	slog.New(h).Info("evicted", "count", 3)

	assert.Equal(t, "evicted memo.table.count=3\n", buf.String())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_FollowsLevelVar(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	level := &slog.LevelVar{}

	log := slog.New(logger.NewPrettyHandler(&buf, &slog.HandlerOptions{Level: level}))
	log.Debug("dropped")
	level.Set(slog.LevelDebug)
	log.Debug("kept")

	require.Equal(t, "· kept\n", buf.String())
}
