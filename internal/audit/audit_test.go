package audit

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogWriterFields(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	w := NewLogWriter(zap.New(core))
	defer w.Close()

	w.Write(&Record{
		RequestID: "req-1",
		Tool:      "divt.list_keys",
		Outcome:   "ok",
		Timestamp: time.Now(),
		LatencyMs: 12.5,
	})

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries", len(entries))
	}
	entry := entries[0]
	if entry.Message != "tool_call" {
		t.Fatalf("message = %q", entry.Message)
	}
	fields := entry.ContextMap()
	if fields["request_id"] != "req-1" || fields["tool"] != "divt.list_keys" || fields["outcome"] != "ok" {
		t.Fatalf("fields = %v", fields)
	}
	if _, present := fields["error_class"]; present {
		t.Fatal("error_class logged for a success")
	}
}

func TestLogWriterErrorClass(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	w := NewLogWriter(zap.New(core))

	w.Write(&Record{
		RequestID:  "req-2",
		Tool:       "divt.register_content",
		Outcome:    "error",
		ErrorClass: "validation",
		Timestamp:  time.Now(),
	})

	fields := observed.All()[0].ContextMap()
	if fields["error_class"] != "validation" {
		t.Fatalf("fields = %v", fields)
	}
}
