// Package ffmpeg is the subprocess boundary to the media codec engine.
// It builds argument vectors for the operations the tool performs and runs
// them with captured output, so the packages above it never touch os/exec.
package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation. Stdout is
// retained as raw bytes because the WebP size-probe path encodes to a pipe.
type ExecResult struct {
	Stdout []byte
	Stderr string
	Err    error
}

// Runner executes one prepared command. The first args element is the
// program name. Implementations other than ExecRunner exist only in tests.
type Runner interface {
	Run(ctx context.Context, args []string) ExecResult
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, args []string) ExecResult

func (f RunnerFunc) Run(ctx context.Context, args []string) ExecResult {
	return f(ctx, args)
}

// ExecRunner runs commands via os/exec. When Echo is set, stderr is tee'd
// to os.Stderr in real time; otherwise it is captured silently for error
// reporting.
type ExecRunner struct {
	Echo bool
}

func (r ExecRunner) Run(ctx context.Context, args []string) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	if r.Echo {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
