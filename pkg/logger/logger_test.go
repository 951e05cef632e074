package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoggerTextOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithOutput(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Info(context.Background(), "corpus loaded",
		String("dir", "matchdata"),
		Int("files", 3),
		Bool("ok", true),
		Duration("took", 1500*time.Millisecond),
	)

	out := buf.String()
	for _, want := range []string{"corpus loaded", "dir=matchdata", "files=3", "ok=true", "took=1.5s", "source=logger_test.go"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestLoggerJSONRequestID(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithOutput(&buf), WithFormat("json")); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := WithRequestID(context.Background(), "req-42")
	Get().Warn(ctx, "skipped", Error(errors.New("boom")))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if line["request_id"] != "req-42" {
		t.Errorf("expected request_id req-42, got %v", line["request_id"])
	}
	if line["level"] != "WARN" {
		t.Errorf("expected WARN level, got %v", line["level"])
	}
	if line["error"] != "boom" {
		t.Errorf("expected error boom, got %v", line["error"])
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithOutput(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Named("ingest").Info(context.Background(), "test message", String("k", "v"))

	if !strings.Contains(buf.String(), "ingest.k=v") {
		t.Errorf("expected grouped key, got %q", buf.String())
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithOutput(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug must be filtered at info level, got %q", buf.String())
	}

	if err := SetLevelString("debug"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Get().Debug(context.Background(), "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected debug line after SetLevelString(debug)")
	}

	tests := []struct {
		level   string
		wantErr bool
	}{
		{"info", false},
		{"WARNING", false},
		{"error", false},
		{"", false},
		{"verbose", true},
	}
	for _, tt := range tests {
		err := SetLevelString(tt.level)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetLevelString(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
		}
	}
}

func TestRequestID(t *testing.T) {
	if _, ok := RequestID(context.Background()); ok {
		t.Error("expected no request id on a bare context")
	}
	if _, ok := RequestID(WithRequestID(context.Background(), "")); ok {
		t.Error("expected empty request id to be ignored")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error(context.Background(), "dropped")
	if l.Named("x") == nil {
		t.Fatal("named discard logger is nil")
	}
}
