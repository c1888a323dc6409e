package infrastructure

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/videodl/video-dl/internal/domain"
	"github.com/videodl/video-dl/pkg/logger"
)

const (
	// maxLineSize bounds a single stdout line; the --dump-json payload is one line
	maxLineSize = 16 * 1024 * 1024
	// stderrTailLines is how much stderr is kept for error messages
	stderrTailLines = 20
	// cancelGrace is how long the child gets to exit after an interrupt before it is killed
	cancelGrace = 5 * time.Second
)

// ProcessRunner spawns the external tool and streams its output
type ProcessRunner struct {
	binary  string
	toolLog *logger.ToolLog
	logger  *zap.Logger
}

// NewProcessRunner creates a runner for binary. toolLog may be nil.
func NewProcessRunner(binary string, toolLog *logger.ToolLog, log *zap.Logger) *ProcessRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProcessRunner{
		binary:  binary,
		toolLog: toolLog,
		logger:  log,
	}
}

// Binary returns the configured executable name or path
func (r *ProcessRunner) Binary() string {
	return r.binary
}

// LookPath resolves the executable without running it
func (r *ProcessRunner) LookPath() (string, error) {
	path, err := exec.LookPath(r.binary)
	if err != nil {
		return "", &domain.ExternalToolNotFoundError{Path: r.binary, Err: err}
	}
	return path, nil
}

// Run executes the tool once. Each stdout line is parsed and handed to
// onEvent in emission order. A non-zero exit is returned as
// ExtractionFailedError carrying the stderr tail.
func (r *ProcessRunner) Run(ctx context.Context, args []string, onEvent domain.EventHandler) (*domain.Outcome, error) {
	path, err := r.LookPath()
	if err != nil {
		return nil, err
	}
	if onEvent == nil {
		onEvent = func(domain.Event) {}
	}

	cmdLine := FormatCommandLine(r.binary, args...)
	r.logger.Debug("Starting external tool", zap.String("command", cmdLine))

	cmd := exec.CommandContext(ctx, path, args...)
	setCancel(cmd)
	cmd.WaitDelay = cancelGrace

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stderr pipe: %w", err)
	}

	session := r.toolLog.Begin(cmdLine)

	if err := cmd.Start(); err != nil {
		session.End(false, fmt.Sprintf("failed to start: %v", err))
		return nil, fmt.Errorf("failed to start %s: %w", r.binary, err)
	}

	// Drain stderr concurrently so the child never blocks on a full pipe
	tail := newLineTail(stderrTailLines)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := scanner.Text()
			tail.Add(line)
			session.WriteLine("[STDERR] " + line)
		}
	}()

	var info string
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		session.WriteLine(line)

		event := ParseLine(line)
		if event.Kind == domain.EventInfo {
			info = event.Raw
		}
		onEvent(event)
	}
	scanErr := scanner.Err()
	if scanErr != nil {
		// keep the pipe flowing so Wait can return
		io.Copy(io.Discard, stdout)
	}

	wg.Wait()
	waitErr := cmd.Wait()

	outcome := &domain.Outcome{
		ExitCode: -1,
		Info:     info,
		Stderr:   tail.String(),
	}
	if cmd.ProcessState != nil {
		outcome.ExitCode = cmd.ProcessState.ExitCode()
	}

	if ctx.Err() != nil {
		session.End(false, "interrupted")
		r.logger.Debug("External tool interrupted", zap.Int("exit_code", outcome.ExitCode))
		return outcome, fmt.Errorf("%s interrupted: %w", r.binary, domain.ErrCancelled)
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			session.End(false, fmt.Sprintf("exit code %d", exitErr.ExitCode()))
			return outcome, &domain.ExtractionFailedError{ExitCode: exitErr.ExitCode(), Stderr: outcome.Stderr}
		}
		session.End(false, waitErr.Error())
		return outcome, fmt.Errorf("%s failed: %w", r.binary, waitErr)
	}

	if scanErr != nil {
		session.End(false, fmt.Sprintf("reading output: %v", scanErr))
		return outcome, &domain.ExtractionFailedError{Reason: fmt.Sprintf("reading output: %v", scanErr), Stderr: outcome.Stderr}
	}

	session.End(true, "exit code 0")
	return outcome, nil
}

// lineTail keeps the last n lines written to it
type lineTail struct {
	lines []string
	max   int
}

func newLineTail(max int) *lineTail {
	return &lineTail{max: max}
}

func (t *lineTail) Add(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	t.lines = append(t.lines, line)
	if len(t.lines) > t.max {
		t.lines = t.lines[len(t.lines)-t.max:]
	}
}

func (t *lineTail) String() string {
	return strings.Join(t.lines, "\n")
}
