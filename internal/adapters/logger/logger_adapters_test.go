package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"property-list-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	mu      sync.Mutex
	tags    []string
	records []map[string]interface{}
	closed  bool
}

func (p *fakePoster) Post(tag string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tags = append(p.tags, tag)
	p.records = append(p.records, message.(port.Fields))
	return nil
}

func (p *fakePoster) Close() error {
	p.closed = true
	return nil
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{in: "debug", want: slog.LevelDebug, wantOK: true},
		{in: " INFO ", want: slog.LevelInfo, wantOK: true},
		{in: "warning", want: slog.LevelWarn, wantOK: true},
		{in: "error", want: slog.LevelError, wantOK: true},
		{in: "verbose", want: slog.LevelInfo, wantOK: false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestSlogAdapterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelInfo, IsJSON: true})

	logger.WithFields(port.Fields{"component": "test"}).Error("Fetch error", errors.New("boom"), port.Fields{"page": 3})
	logger.Debug("hidden", nil)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &record))
	assert.Equal(t, "Fetch error", record["msg"])
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "test", record["component"])
	assert.Equal(t, float64(3), record["page"])
	assert.Equal(t, "boom", record["err"])
}

func TestFluentLoggerAdapter(t *testing.T) {
	poster := &fakePoster{}
	logger, err := NewFluentLoggerAdapter(poster, slog.LevelInfo)
	require.NoError(t, err)

	child := logger.WithFields(port.Fields{"screen_id": "s1"})
	child.Debug("skipped", nil)
	child.Warn("Response has no count", port.Fields{"page": 2})
	child.Error("Fetch error", errors.New("boom"), nil)

	require.Len(t, poster.records, 2)
	assert.Equal(t, []string{"warn", "error"}, poster.tags)
	assert.Equal(t, "s1", poster.records[0]["screen_id"])
	assert.Equal(t, 2, poster.records[0]["page"])
	assert.Equal(t, "Response has no count", poster.records[0]["message"])
	assert.Equal(t, "boom", poster.records[1]["error"])

	require.NoError(t, logger.Close())
	assert.True(t, poster.closed)
}

func TestNewFluentLoggerAdapterRequiresClient(t *testing.T) {
	_, err := NewFluentLoggerAdapter(nil, slog.LevelInfo)
	assert.Error(t, err)
}

func TestMultiloggerAdapter(t *testing.T) {
	_, err := NewMultiloggerAdapter()
	assert.Error(t, err)

	first, second := &fakePoster{}, &fakePoster{}
	a, _ := NewFluentLoggerAdapter(first, slog.LevelDebug)
	b, _ := NewFluentLoggerAdapter(second, slog.LevelError)

	multi, err := NewMultiloggerAdapter(a, nil, b)
	require.NoError(t, err)

	multi.WithFields(port.Fields{"trace_id": "t1"}).Info("Page loaded", nil)
	multi.Error("Fetch error", errors.New("boom"), nil)

	assert.Len(t, first.records, 2)
	assert.Equal(t, "t1", first.records[0]["trace_id"])
	assert.Len(t, second.records, 1)
}
