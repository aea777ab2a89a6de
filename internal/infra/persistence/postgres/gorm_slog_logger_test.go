package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"todo/config"
	deliverycontext "todo/internal/delivery/context"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}

	return entries
}

func TestGormSlogLogger_TraceError(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := newGormSlogLogger(base, &config.Config{})

	sqlFn := func() (string, int64) { return "SELECT 1", 0 }
	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "record not found is not logged")

	l.Trace(context.Background(), time.Now(), sqlFn, assert.AnError)
	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "GORM query failed", entries[0]["msg"])
	assert.Equal(t, "SELECT 1", entries[0]["sql"])
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var baseBuf, reqBuf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&baseBuf, nil))
	reqLogger := slog.New(slog.NewJSONHandler(&reqBuf, nil)).With(slog.String("request_id", "req-1"))

	l := newGormSlogLogger(base, &config.Config{})
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)
	l.Warn(ctx, "pool %s", "exhausted")

	assert.Empty(t, baseBuf.String())
	entries := decodeLines(t, &reqBuf)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0]["request_id"])
	assert.Equal(t, "pool exhausted", entries[0]["message"])
}

func TestGormSlogLogger_Silent(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	l := newGormSlogLogger(base, &config.Config{}).LogMode(logger.Silent)

	l.Error(context.Background(), "boom")
	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, assert.AnError)

	assert.Empty(t, buf.String())
}
