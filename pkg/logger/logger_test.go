package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestWithComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	base.WithComponent("rate_client").WithError(errors.New("boom")).Error("request failed")

	out := buf.String()
	if !strings.Contains(out, `"component":"rate_client"`) {
		t.Errorf("expected the component tag, got %s", out)
	}
	if !strings.Contains(out, "boom") {
		t.Errorf("expected the error in the record, got %s", out)
	}
}

func TestDiscardSwallowsEverything(t *testing.T) {
	log := Discard()
	log.Error("nobody hears this", "key", "value")
}
