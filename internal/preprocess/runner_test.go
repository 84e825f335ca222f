package preprocess

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeScript creates an executable shell script standing in for the tool
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-sox")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestExecRunner_Run(t *testing.T) {
	tests := []struct {
		name      string
		script    string
		wantErr   bool
		wantCode  int
		wantInMsg string
	}{
		{
			name:   "success",
			script: "exit 0",
		},
		{
			name:      "non-zero exit",
			script:    "echo 'sox FAIL formats: no handler' >&2; exit 2",
			wantErr:   true,
			wantCode:  2,
			wantInMsg: "no handler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := writeScript(t, tt.script)

			err := NewExecRunner().Run(context.Background(), tool, "in.mp3", "out.mp3")
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Run() unexpected error: %v", err)
				}
				return
			}

			var toolErr *ToolError
			if !errors.As(err, &toolErr) {
				t.Fatalf("Run() error = %v, want *ToolError", err)
			}
			if toolErr.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", toolErr.ExitCode, tt.wantCode)
			}
			if !strings.Contains(toolErr.Error(), tt.wantInMsg) {
				t.Errorf("Error() = %q, want it to contain %q", toolErr.Error(), tt.wantInMsg)
			}
		})
	}
}

func TestExecRunner_PassesArguments(t *testing.T) {
	out := filepath.Join(t.TempDir(), "args.txt")
	tool := writeScript(t, `printf '%s\n' "$@" > "`+out+`"`)

	if err := NewExecRunner().Run(context.Background(), tool, Args("a.mp3", "b.mp3", 0.5)...); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	got := strings.Fields(string(data))
	want := []string{"a.mp3", "b.mp3", "-V1", "--replay-gain", "album", "remix", "1v0.5", "2v1"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", got, want)
	}
}

func TestExecRunner_ToolNotFound(t *testing.T) {
	err := NewExecRunner().Run(context.Background(), "playseq-no-such-tool-xyz", "a", "b")
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("Run() error = %v, want ErrToolNotFound", err)
	}

	missing := filepath.Join(t.TempDir(), "absent", "sox")
	err = NewExecRunner().Run(context.Background(), missing, "a", "b")
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("Run() with missing path error = %v, want ErrToolNotFound", err)
	}
}

func TestExecRunner_Cancelled(t *testing.T) {
	tool := writeScript(t, "sleep 5")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewExecRunner().Run(ctx, tool)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
