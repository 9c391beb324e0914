package engine

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/phuslu/log"
)

// RawOutput is the captured outcome of one engine subprocess run. The exit
// code passes through unchanged: the engine exits non-zero when diagnostics
// were found, so the parser, not the invoker, decides what output means.
type RawOutput struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// DiagnosticEngine is the narrow port to the external analysis engine. The
// pipeline depends only on this interface, so parsing and filtering are
// testable against a fake engine returning canned output.
type DiagnosticEngine interface {
	Invoke(ctx context.Context, payload string) (RawOutput, error)
}

// powershellArgs makes the engine read the payload from stdin with no profile
// scripts and no interactive prompts.
var powershellArgs = []string{"-NoProfile", "-NonInteractive", "-Command", "-"}

// PowerShell invokes payloads through a resolved PowerShell executable.
type PowerShell struct {
	// Path is the resolved engine executable. Empty means discovery failed;
	// Invoke fails fast rather than guessing.
	Path string

	// Timeout bounds one invocation. Zero falls back to DefaultTimeout.
	Timeout time.Duration

	Logger *log.Logger

	// args overrides the engine command line; used by tests to substitute a
	// stand-in process.
	args []string
}

const defaultTimeout = 300 * time.Second

func (p *PowerShell) Invoke(ctx context.Context, payload string) (RawOutput, error) {
	if strings.TrimSpace(p.Path) == "" {
		return RawOutput{}, newError(KindEngineUnavailable, "no PowerShell executable resolved; install PowerShell (pwsh) and re-run")
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := p.args
	if args == nil {
		args = powershellArgs
	}

	cmd := exec.CommandContext(ctx, p.Path, args...)
	cmd.Stdin = strings.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		// CommandContext kills the subprocess when the context expires.
		return RawOutput{}, newError(KindEngineTimeout, "engine did not finish within %s; subprocess killed", timeout)
	}

	out := RawOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			p.logInvocation(out.ExitCode, elapsed)
			return out, nil
		}
		var execErr *exec.Error
		if errors.As(runErr, &execErr) {
			return RawOutput{}, newError(KindEngineUnavailable, "cannot run %s: %v", p.Path, execErr.Err)
		}
		return RawOutput{}, wrapError(KindEngineFailure, runErr)
	}

	p.logInvocation(0, elapsed)
	return out, nil
}

func (p *PowerShell) logInvocation(exitCode int, elapsed time.Duration) {
	if p.Logger == nil {
		return
	}
	p.Logger.Debug().
		Str("engine", p.Path).
		Int("exit_code", exitCode).
		Dur("elapsed", elapsed).
		Msg("engine invocation finished")
}
