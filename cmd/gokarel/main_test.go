package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRealMainExitCodes(t *testing.T) {
	t.Setenv("KAREL_TUI", "false")
	t.Setenv("LOG_LEVEL", "panic")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("walls: [{x: 1}]"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"harvest on the bundled map", []string{"-delay=0", "-program=harvest"}, exitOK},
		{"unknown program", []string{"-delay=0", "-program=teleport"}, exitFailure},
		{"malformed map", []string{"-delay=0", "-map=" + bad}, exitFailure},
		{"unknown flag", []string{"-colour=blue"}, exitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := realMain(tt.args); got != tt.want {
				t.Errorf("realMain(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRealMainRejectsBadEnv(t *testing.T) {
	t.Setenv("KAREL_STEP_DELAY", "soon")
	if got := realMain(nil); got != exitUsage {
		t.Errorf("realMain = %d, want %d", got, exitUsage)
	}
}
