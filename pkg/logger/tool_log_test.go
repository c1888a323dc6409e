package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolLog_SessionFraming(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	tl := NewToolLog(dir)
	tl.now = func() time.Time { return fixed }

	s := tl.Begin("yt-dlp --newline -- 'https://youtu.be/abc'")
	require.NotNil(t, s)
	s.WriteLine("[download]  50.0% of 1.00MiB")
	s.WriteLine("[STDERR] WARNING: something")
	s.End(true, "exit code 0")

	// writes after End are ignored
	s.WriteLine("late line")
	s.End(false, "again")

	lines, err := NewLogReader(dir).Tail(fixed, 0)
	require.NoError(t, err)

	content := strings.Join(lines, "\n")
	assert.Contains(t, content, "=== [2026-10-17 09:30:00] Run ===")
	assert.Contains(t, content, "$ yt-dlp --newline -- 'https://youtu.be/abc'")
	assert.Contains(t, content, "[download]  50.0% of 1.00MiB")
	assert.Contains(t, content, "SUCCESS: exit code 0")
	assert.Equal(t, "=== END ===", lines[len(lines)-1])
	assert.NotContains(t, content, "late line")
	assert.Equal(t, 1, strings.Count(content, "=== END ==="))
}

func TestToolLog_PathFor(t *testing.T) {
	tl := NewToolLog("/var/log/video-dl")
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "/var/log/video-dl/ytdlp-20260102.log", tl.PathFor(date))
}

func TestToolLog_NilIsSafe(t *testing.T) {
	var tl *ToolLog
	s := tl.Begin("yt-dlp")
	assert.Nil(t, s)
	s.WriteLine("ignored")
	s.End(true, "ignored")
	assert.Empty(t, tl.Dir())
}

func TestLogReader_TailLimit(t *testing.T) {
	dir := t.TempDir()
	tl := NewToolLog(dir)
	s := tl.Begin("yt-dlp")
	for i := 0; i < 10; i++ {
		s.WriteLine("line")
	}
	s.End(false, "exit code 1")

	lines, err := NewLogReader(dir).Tail(time.Now(), 3)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "line", lines[0])
	assert.Contains(t, lines[1], "FAILED: exit code 1")
	assert.Equal(t, "=== END ===", lines[2])
}

func TestLogReader_MissingFile(t *testing.T) {
	lines, err := NewLogReader(t.TempDir()).Tail(time.Now(), 10)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
