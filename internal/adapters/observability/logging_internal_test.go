package observability

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLogger_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "warn")

	l.Info().Msg("dropped")
	l.Warn().Str("source", "file:x.json").Msg("kept")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "kept" || line["service"] != "travel-reco" || line["source"] != "file:x.json" {
		t.Fatalf("unexpected log line: %+v", line)
	}
}

func TestNewLogger_DefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "bogus")
	l.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level: %q", buf.String())
	}
	l.Info().Msg("shown")
	if buf.Len() == 0 {
		t.Fatalf("info should be written")
	}
}
