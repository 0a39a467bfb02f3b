package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerPrefixesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false)
	l.Infof("refresh", "cancelled after %d ticks", 3)
	l.Errorf("fb", "open failed")

	out := buf.String()
	for _, want := range []string{"refresh", "cancelled after 3 ticks", "fb", "open failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		wantLog bool
	}{
		{"debug hidden by default", false, false},
		{"debug shown in debug mode", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, tt.debug).Debugf("screen", "tick")
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestFileLoggerIsLogfmt(t *testing.T) {
	var buf bytes.Buffer
	NewFileLogger(&buf).Infof("app", "attached")
	out := buf.String()
	if !strings.Contains(out, "level=info") || !strings.Contains(out, "prefix=app") {
		t.Errorf("unexpected file log line: %s", out)
	}
}
