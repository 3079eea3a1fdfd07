package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestWithEventAttachesContextFields(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	WithEvent("event-1", "user-1").Info("analysis run completed", "trigger", "api")

	out := buf.String()
	for _, want := range []string{"event_id=event-1", "user_id=user-1", "trigger=api"} {
		if !strings.Contains(out, want) {
			t.Errorf("Log output missing %q: %s", want, out)
		}
	}
}
