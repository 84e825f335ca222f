//go:build integration
// +build integration

package main

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// buildBinary compiles playseq into a temp dir and returns its path
func buildBinary(t testing.TB) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "playseq_test")
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// TestInvalidInvocations checks that fatal errors exit non-zero before playback
func TestInvalidInvocations(t *testing.T) {
	bin := buildBinary(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantOut string
	}{
		{name: "no input", args: nil, wantOut: "input path is required"},
		{name: "bad range", args: []string{"-i", dir, "--track-select", "a:b"}, wantOut: "a"},
		{name: "missing path", args: []string{"-i", filepath.Join(dir, "gone")}, wantOut: "gone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(bin, tt.args...)
			cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
			output, err := cmd.CombinedOutput()

			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
				t.Fatalf("expected exit status 1, got %v\n%s", err, output)
			}
			if !strings.Contains(string(output), tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, output)
			}
		})
	}
}

// TestDevicesCommand tests the "devices" command
func TestDevicesCommand(t *testing.T) {
	bin := buildBinary(t)

	output, err := exec.Command(bin, "devices").CombinedOutput()
	if err != nil {
		t.Fatalf("devices command failed: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "0: default") {
		t.Errorf("devices output missing default device:\n%s", output)
	}
}

// TestInterruptDuringDelay tests that Ctrl-C during the delay cleans up the cache
func TestInterruptDuringDelay(t *testing.T) {
	t.Skip("Requires sox and an audio output device - run manually")

	// Manual test steps:
	// 1. go build -o playseq .
	// 2. ./playseq -i ~/Music/album --preprocess --stereo-pan 0.3 --delay 60 --device 0
	// 3. Press Ctrl-C during the delay
	// 4. Verify $TMPDIR/playseq/p0.30 no longer exists
}

// BenchmarkDevicesCommand benchmarks startup time via the "devices" command
func BenchmarkDevicesCommand(b *testing.B) {
	bin := buildBinary(b)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := exec.CommandContext(ctx, bin, "devices").Run(); err != nil {
			b.Fatalf("devices command failed: %v", err)
		}
	}
}
