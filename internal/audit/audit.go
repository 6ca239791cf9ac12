// Package audit records one entry per tool invocation. The gateway persists
// nothing itself; the trail goes to the process log.
package audit

import (
	"time"

	"go.uber.org/zap"
)

// Record describes one completed tool call, success or failure.
type Record struct {
	RequestID  string
	Tool       string
	Outcome    string // "ok" or "error"
	ErrorClass string // empty on success
	Timestamp  time.Time
	LatencyMs  float64
}

// Writer is the interface for writing audit records.
// Write() must NEVER block the caller.
type Writer interface {
	Write(rec *Record)
	Close()
}

// LogWriter writes audit records to the process logger.
type LogWriter struct {
	logger *zap.Logger
}

// NewLogWriter creates a LogWriter that outputs records to the given logger.
func NewLogWriter(logger *zap.Logger) *LogWriter {
	return &LogWriter{logger: logger}
}

func (w *LogWriter) Write(rec *Record) {
	fields := []zap.Field{
		zap.String("request_id", rec.RequestID),
		zap.String("tool", rec.Tool),
		zap.String("outcome", rec.Outcome),
		zap.Float64("latency_ms", rec.LatencyMs),
	}
	if rec.ErrorClass != "" {
		fields = append(fields, zap.String("error_class", rec.ErrorClass))
	}
	w.logger.Info("tool_call", fields...)
}

func (w *LogWriter) Close() {}
