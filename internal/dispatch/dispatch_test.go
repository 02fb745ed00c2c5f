package dispatch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"runtime"
	"testing"

	"github.com/nguyentantai21042004/rerun/internal/logger"
	"github.com/nguyentantai21042004/rerun/pkg/executor"
)

type fakeExecutor struct {
	err   error
	calls [][]string
}

func (f *fakeExecutor) Run(ctx context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.err
}

func exitError(t *testing.T) error {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	err := exec.Command("sh", "-c", "exit 2").Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exit error, got %v", err)
	}
	return err
}

func TestDispatch(t *testing.T) {
	spawnErr := errors.New("exec: \"nope\": executable file not found in $PATH")

	tests := []struct {
		name        string
		runErr      func(t *testing.T) error
		stopOnError bool
		wantStatus  Status
		wantErr     error
		wantOutput  string
	}{
		{
			name:       "success",
			runErr:     func(t *testing.T) error { return nil },
			wantStatus: Success,
			wantOutput: "run successful\n",
		},
		{
			name:       "non-zero exit still counts as success",
			runErr:     exitError,
			wantStatus: Success,
			wantOutput: "run successful\n",
		},
		{
			name:       "spawn failure continues",
			runErr:     func(t *testing.T) error { return spawnErr },
			wantStatus: Failure,
			wantOutput: "failed\n",
		},
		{
			name:        "spawn failure with stop on error",
			runErr:      func(t *testing.T) error { return spawnErr },
			stopOnError: true,
			wantStatus:  Failure,
			wantErr:     ErrStopOnError,
			wantOutput:  "failed\n",
		},
		{
			name:        "success ignores stop on error",
			runErr:      func(t *testing.T) error { return nil },
			stopOnError: true,
			wantStatus:  Success,
			wantOutput:  "run successful\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			fake := &fakeExecutor{err: tt.runErr(t)}
			d := New([]string{"make", "test"}, tt.stopOnError, fake, &out, logger.NewWithWriter(io.Discard, "debug"))

			outcome, err := d.Dispatch(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Dispatch() error = %v, want %v", err, tt.wantErr)
			}
			if outcome.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", outcome.Status, tt.wantStatus)
			}
			if tt.wantStatus == Failure && outcome.Err == nil {
				t.Error("Failure outcome carries no error")
			}
			if out.String() != tt.wantOutput {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOutput)
			}
			if len(fake.calls) != 1 || fake.calls[0][0] != "make" || fake.calls[0][1] != "test" {
				t.Errorf("executor calls = %v, want one call of [make test]", fake.calls)
			}
		})
	}
}

func TestDispatchCopiesCommand(t *testing.T) {
	command := []string{"make", "test"}
	fake := &fakeExecutor{}
	d := New(command, false, fake, io.Discard, logger.NewWithWriter(io.Discard, "info"))
	command[0] = "rm"

	if _, err := d.Dispatch(context.Background()); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if fake.calls[0][0] != "make" {
		t.Errorf("ran %q, want the command captured at construction", fake.calls[0][0])
	}
}

func TestDispatchRealCommands(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires echo on PATH")
	}
	log := logger.NewWithWriter(io.Discard, "info")

	var out bytes.Buffer
	ok := New([]string{"echo", "hi"}, false, executor.New(executor.Options{Stdout: &out}), &out, log)
	outcome, err := ok.Dispatch(context.Background())
	if err != nil || outcome.Status != Success {
		t.Fatalf("echo dispatch = %v, %v, want success", outcome.Status, err)
	}
	if out.String() != "hi\nrun successful\n" {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	missing := New([]string{"/nonexistent-binary"}, true, executor.New(executor.Options{Stdout: &out}), &out, log)
	outcome, err = missing.Dispatch(context.Background())
	if !errors.Is(err, ErrStopOnError) || outcome.Status != Failure {
		t.Fatalf("missing binary dispatch = %v, %v, want failure with ErrStopOnError", outcome.Status, err)
	}
	if out.String() != "failed\n" {
		t.Errorf("output = %q, want %q", out.String(), "failed\n")
	}
}
