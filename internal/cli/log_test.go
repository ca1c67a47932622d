package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level     log.Level
		wantDebug bool
	}{
		{log.DebugLevel, true},
		{log.InfoLevel, false},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		l := newLogger(&buf, tt.level)
		l.Debug("placing tiles")
		l.Info("layout done")

		out := buf.String()
		if got := strings.Contains(out, "placing tiles"); got != tt.wantDebug {
			t.Errorf("level %s: debug logged = %v, want %v", tt.level, got, tt.wantDebug)
		}
		if !strings.Contains(out, "layout done") {
			t.Errorf("level %s: info message missing", tt.level)
		}
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("Layout complete")

	out := buf.String()
	if !strings.Contains(out, "Layout complete (") {
		t.Errorf("progress output = %q", out)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("log output = %q", out)
	}
}
