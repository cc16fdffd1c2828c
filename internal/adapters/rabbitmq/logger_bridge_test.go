package rabbitmq

import (
	"errors"
	"testing"

	"property-list-service/internal/core/port"

	"github.com/stretchr/testify/assert"
)

type capturedEntry struct {
	level  string
	msg    string
	err    error
	fields port.Fields
}

type captureLogger struct {
	entries *[]capturedEntry
}

func newCaptureLogger() captureLogger {
	return captureLogger{entries: &[]capturedEntry{}}
}

func (l captureLogger) add(level, msg string, err error, fields port.Fields) {
	*l.entries = append(*l.entries, capturedEntry{level: level, msg: msg, err: err, fields: fields})
}

func (l captureLogger) Info(msg string, fields port.Fields)  { l.add("info", msg, nil, fields) }
func (l captureLogger) Warn(msg string, fields port.Fields)  { l.add("warn", msg, nil, fields) }
func (l captureLogger) Debug(msg string, fields port.Fields) { l.add("debug", msg, nil, fields) }
func (l captureLogger) Error(msg string, err error, fields port.Fields) {
	l.add("error", msg, err, fields)
}
func (l captureLogger) WithFields(fields port.Fields) port.LoggerPort { return l }

func TestPkgLoggerBridge(t *testing.T) {
	logger := newCaptureLogger()
	bridge := NewPkgLoggerBridge(logger)

	bridge.Info("connected", "url", "amqp://localhost", "attempt", 2)
	bridge.Warn("odd args", "key", "value", 42, "ignored", "dangling")
	bridge.Error(errors.New("boom"), "failed", "exchange", "property_list_exchange")

	entries := *logger.entries
	assert.Len(t, entries, 3)
	assert.Equal(t, port.Fields{"url": "amqp://localhost", "attempt": 2}, entries[0].fields)
	assert.Equal(t, port.Fields{"key": "value"}, entries[1].fields)
	assert.Equal(t, "error", entries[2].level)
	assert.EqualError(t, entries[2].err, "boom")
}
