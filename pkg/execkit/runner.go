package execkit

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"golang-lean-bridge/pkg/logger"
)

// ExecutionResult is the uniform outcome of a subprocess invocation.
type ExecutionResult struct {
	Success    bool   `json:"success"`
	Output     string `json:"output"`
	Error      string `json:"error"`
	ReturnCode int    `json:"return_code"`
}

// Runner executes an external command given as an argument vector.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ExecutionResult
}

// CommandRunner runs commands via os/exec. Arguments are always passed as an
// argv array, never through a shell, so metacharacters in arguments stay
// literal.
type CommandRunner struct {
	timeout time.Duration
	logger  *logger.Logger
}

// NewCommandRunner creates a CommandRunner. A zero timeout disables the limit.
func NewCommandRunner(timeout time.Duration, log *logger.Logger) *CommandRunner {
	return &CommandRunner{timeout: timeout, logger: log}
}

// Run executes the command and captures stdout, stderr and the exit code.
// A non-zero exit code maps to Success=false; failure to start the process
// at all (e.g. binary not found) maps to ReturnCode=-1.
func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) ExecutionResult {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.logger.Info("Executing command",
		logger.StringField("command", name),
		logger.Field("args", args),
	)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := ExecutionResult{
		Output: stdout.String(),
		Error:  stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.Success = true
	case errors.As(err, &exitErr):
		result.ReturnCode = exitErr.ExitCode()
		if result.Error == "" {
			result.Error = err.Error()
		}
	default:
		result.ReturnCode = -1
		result.Error = err.Error()
	}

	if !result.Success {
		r.logger.Warn("Command failed",
			logger.StringField("command", name),
			logger.IntField("return_code", result.ReturnCode),
			logger.StringField("stderr", result.Error),
		)
	}

	return result
}
