package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const toolLogPrefix = "ytdlp"

// ToolLog appends raw external tool output to one file per day.
// A nil *ToolLog is valid and discards everything.
type ToolLog struct {
	dir string
	now func() time.Time
}

// NewToolLog creates a tool log rooted at dir
func NewToolLog(dir string) *ToolLog {
	return &ToolLog{dir: dir, now: time.Now}
}

// Dir returns the logs directory
func (t *ToolLog) Dir() string {
	if t == nil {
		return ""
	}
	return t.dir
}

// PathFor returns the log file for date
func (t *ToolLog) PathFor(date time.Time) string {
	return filepath.Join(t.dir, fmt.Sprintf("%s-%s.log", toolLogPrefix, date.Format("20060102")))
}

// Begin opens today's log and writes the run header. Failures to open the
// log are swallowed: the returned session is nil and discards writes.
func (t *ToolLog) Begin(cmdLine string) *ToolLogSession {
	if t == nil {
		return nil
	}
	if err := os.MkdirAll(t.dir, 0755); err != nil {
		return nil
	}
	now := t.now()
	f, err := os.OpenFile(t.PathFor(now), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}

	s := &ToolLogSession{file: f, now: t.now}
	fmt.Fprintf(f, "\n=== [%s] Run ===\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, "$ %s\n", cmdLine)
	return s
}

// ToolLogSession is one framed run inside the daily log
type ToolLogSession struct {
	mu   sync.Mutex
	file *os.File
	now  func() time.Time
}

// WriteLine appends a raw output line
func (s *ToolLogSession) WriteLine(line string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return
	}
	fmt.Fprintln(s.file, line)
}

// End writes the footer and closes the file
func (s *ToolLogSession) End(success bool, message string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return
	}

	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	fmt.Fprintf(s.file, "[%s] %s: %s\n", s.now().Format("2006-01-02 15:04:05"), status, message)
	fmt.Fprint(s.file, "=== END ===\n")
	s.file.Close()
	s.file = nil
}
