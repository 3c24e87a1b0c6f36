package subject

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/agbru/bigcheck/internal/errors"
	"github.com/agbru/bigcheck/internal/logging"
	"github.com/agbru/bigcheck/internal/model"
)

// DefaultWaitDelay bounds how long Wait keeps reading the output pipes after
// the subject has been killed, in case a grandchild still holds them open.
const DefaultWaitDelay = 500 * time.Millisecond

// ProcessSubject runs an external executable once per case.
type ProcessSubject struct {
	// Path is the executable to launch.
	Path string
	// Args are extra arguments passed on every launch.
	Args []string
	// Timeout is the wall-clock limit for a single case.
	Timeout time.Duration
	// Logger receives per-launch debug entries. Nil disables logging.
	Logger logging.Logger
}

// NewProcessSubject returns a ProcessSubject for path.
func NewProcessSubject(path string, args []string, timeout time.Duration, logger logging.Logger) *ProcessSubject {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ProcessSubject{Path: path, Args: args, Timeout: timeout, Logger: logger}
}

// Check verifies that the executable can be resolved, so a missing subject
// aborts the run before any case is generated.
func (p *ProcessSubject) Check() error {
	if _, err := exec.LookPath(p.Path); err != nil {
		return apperrors.SubjectNotFoundError{Path: p.Path, Cause: err}
	}
	return nil
}

// Evaluate launches the subject, writes input to its stdin, and collects its
// output. The process is killed, together with its process group where
// supported, before Evaluate returns on timeout or cancellation.
func (p *ProcessSubject) Evaluate(ctx context.Context, input string) (model.Actual, error) {
	caseCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	// #nosec G204 -- the subject path is the operator-supplied program under test.
	cmd := exec.CommandContext(caseCtx, p.Path, p.Args...)
	cmd.Stdin = strings.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = DefaultWaitDelay
	configureProcessGroup(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		if isNotFound(err) {
			return model.Actual{}, apperrors.SubjectNotFoundError{Path: p.Path, Cause: err}
		}
		return model.Actual{}, fmt.Errorf("start subject %s: %w", p.Path, err)
	}
	waitErr := cmd.Wait()
	elapsed := time.Since(start)

	actual := model.Actual{
		Output:     stdout.String(),
		Diagnostic: strings.TrimSpace(stderr.String()),
		ExitCode:   cmd.ProcessState.ExitCode(),
	}

	if ctx.Err() != nil {
		return actual, ctx.Err()
	}
	if errors.Is(caseCtx.Err(), context.DeadlineExceeded) {
		actual.TimedOut = true
		p.Logger.Debug("subject timed out",
			logging.Int("pid", cmd.Process.Pid),
			logging.Duration("limit", p.Timeout))
		return actual, nil
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
	case errors.As(waitErr, &exitErr), errors.Is(waitErr, exec.ErrWaitDelay):
		actual.Crashed = actual.ExitCode != 0
	default:
		return actual, fmt.Errorf("wait for subject: %w", waitErr)
	}

	p.Logger.Debug("subject finished",
		logging.Int("pid", cmd.Process.Pid),
		logging.Int("exit_code", actual.ExitCode),
		logging.Duration("elapsed", elapsed))
	return actual, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}
