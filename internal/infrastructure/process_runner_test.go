package infrastructure

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/videodl/video-dl/internal/domain"
	"github.com/videodl/video-dl/pkg/logger"
)

// writeFakeTool writes an executable shell script standing in for yt-dlp
func writeFakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func collect(events *[]domain.Event) domain.EventHandler {
	return func(e domain.Event) {
		*events = append(*events, e)
	}
}

func TestProcessRunner_ProgressInOrder(t *testing.T) {
	tool := writeFakeTool(t, `
echo "[youtube] Extracting URL: $2"
echo "[download]  10.0% of 1.00MiB"
echo "[download]  50.0% of 1.00MiB"
echo "[download]  50.0% of 1.00MiB"
echo "[download]  30.0% of 1.00MiB"
echo "[download] 100% of 1.00MiB in 00:00:01"
`)
	runner := NewProcessRunner(tool, nil, nil)

	var events []domain.Event
	outcome, err := runner.Run(context.Background(), []string{"--", "https://youtu.be/abc"}, collect(&events))
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.ExitCode)
	assert.Empty(t, outcome.Info)

	var percents []float64
	for _, e := range events {
		if e.Kind == domain.EventProgress {
			percents = append(percents, e.Progress.Percent)
		}
	}
	assert.Equal(t, []float64{10, 50, 50, 30, 100}, percents)
	assert.Equal(t, domain.EventUnrecognized, events[0].Kind)
	assert.Equal(t, "[youtube] Extracting URL: https://youtu.be/abc", events[0].Raw)
}

func TestProcessRunner_InfoPayload(t *testing.T) {
	tool := writeFakeTool(t, `echo '{"id": "abc", "title": "Hello World", "duration": 5}'`)
	runner := NewProcessRunner(tool, nil, nil)

	outcome, err := runner.Run(context.Background(), BuildInfoArgs("https://youtu.be/abc"), nil)
	require.NoError(t, err)
	assert.Equal(t, `{"id": "abc", "title": "Hello World", "duration": 5}`, outcome.Info)

	info, err := ParseVideoInfo(outcome.Info, "https://youtu.be/abc")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", info.Title)
}

func TestProcessRunner_ArgumentsPassedVerbatim(t *testing.T) {
	tool := writeFakeTool(t, `for a in "$@"; do echo "arg:$a"; done`)
	runner := NewProcessRunner(tool, nil, nil)

	args := []string{"-o", "/tmp/dir with spaces/$HOME `id`.mp4", "--", "https://youtu.be/abc?x=1&y=2"}
	var events []domain.Event
	_, err := runner.Run(context.Background(), args, collect(&events))
	require.NoError(t, err)

	require.Len(t, events, len(args))
	for i, a := range args {
		assert.Equal(t, "arg:"+a, events[i].Raw)
	}
}

func TestProcessRunner_NonZeroExit(t *testing.T) {
	tool := writeFakeTool(t, `
echo "[download]   5.0% of 1.00MiB"
echo "WARNING: noisy" >&2
echo "ERROR: [youtube] abc: Video unavailable" >&2
exit 3
`)
	runner := NewProcessRunner(tool, nil, nil)

	outcome, err := runner.Run(context.Background(), []string{"--", "https://youtu.be/abc"}, nil)

	var failed *domain.ExtractionFailedError
	require.True(t, errors.As(err, &failed), "got %v", err)
	assert.Equal(t, 3, failed.ExitCode)
	assert.Contains(t, failed.Stderr, "Video unavailable")
	assert.Contains(t, failed.Stderr, "WARNING: noisy")
	require.NotNil(t, outcome)
	assert.Equal(t, 3, outcome.ExitCode)
	assert.Equal(t, domain.ExitRuntimeError, domain.ExitCode(err))
}

func TestProcessRunner_StderrTailIsBounded(t *testing.T) {
	tool := writeFakeTool(t, `
i=0
while [ $i -lt 100 ]; do echo "stderr line $i" >&2; i=$((i+1)); done
exit 1
`)
	runner := NewProcessRunner(tool, nil, nil)

	_, err := runner.Run(context.Background(), nil, nil)

	var failed *domain.ExtractionFailedError
	require.True(t, errors.As(err, &failed))
	lines := strings.Split(failed.Stderr, "\n")
	assert.Len(t, lines, stderrTailLines)
	assert.Equal(t, "stderr line 99", lines[len(lines)-1])
	assert.Equal(t, "stderr line 80", lines[0])
}

func TestProcessRunner_ToolNotFound(t *testing.T) {
	paths := []string{
		filepath.Join(t.TempDir(), "missing", "yt-dlp"),
		"yt-dlp-not-installed-anywhere",
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			runner := NewProcessRunner(p, nil, nil)
			called := false

			outcome, err := runner.Run(context.Background(), []string{"--", "https://youtu.be/abc"}, func(domain.Event) { called = true })

			var notFound *domain.ExternalToolNotFoundError
			require.True(t, errors.As(err, &notFound), "got %v", err)
			assert.Equal(t, p, notFound.Path)
			assert.Nil(t, outcome)
			assert.False(t, called)
		})
	}
}

func TestProcessRunner_Cancelled(t *testing.T) {
	tool := writeFakeTool(t, `
echo "[download]  1.0% of 1.00GiB"
exec sleep 30
`)
	runner := NewProcessRunner(tool, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	_, err := runner.Run(ctx, nil, func(e domain.Event) {
		if e.Kind == domain.EventProgress {
			cancel()
		}
	})

	assert.True(t, errors.Is(err, domain.ErrCancelled), "got %v", err)
	assert.Less(t, time.Since(start), 20*time.Second)
}

func TestProcessRunner_WritesToolLog(t *testing.T) {
	tool := writeFakeTool(t, `
echo "[download]  50.0% of 1.00MiB"
echo "oops" >&2
`)
	logsDir := t.TempDir()
	runner := NewProcessRunner(tool, logger.NewToolLog(logsDir), nil)

	_, err := runner.Run(context.Background(), []string{"--", "https://youtu.be/a b"}, nil)
	require.NoError(t, err)

	lines, err := logger.NewLogReader(logsDir).Tail(time.Now(), 0)
	require.NoError(t, err)
	content := strings.Join(lines, "\n")
	assert.Contains(t, content, "$ "+tool+" -- 'https://youtu.be/a b'")
	assert.Contains(t, content, "[download]  50.0% of 1.00MiB")
	assert.Contains(t, content, "[STDERR] oops")
	assert.Contains(t, content, "SUCCESS: exit code 0")
}
