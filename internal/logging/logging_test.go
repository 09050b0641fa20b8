package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		wantErr   bool
	}{
		{"", false, false},
		{"info", false, false},
		{"debug", true, false},
		{"loud", false, true},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		l, err := New(&buf, "test", tc.level)
		if tc.wantErr {
			if err == nil {
				t.Errorf("New(%q) should fail", tc.level)
			}
			continue
		}
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tc.level, err)
		}
		l.Debug("probe")
		if got := strings.Contains(buf.String(), "probe"); got != tc.debugSeen {
			t.Errorf("level %q: debug visible = %v, expected %v", tc.level, got, tc.debugSeen)
		}
	}
}

func TestPrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "skytower", "info")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("run ended", "floor", 12)
	out := buf.String()
	for _, want := range []string{"skytower", "run ended", "floor=12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "skytower.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	f.WriteString("line\n")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "line\n" {
		t.Errorf("log file = %q, %v", data, err)
	}
}
