package logger

import (
	"bufio"
	"os"
	"time"
)

// LogReader reads back the daily tool logs
type LogReader struct {
	toolLog *ToolLog
}

// NewLogReader creates a reader over the tool logs in logsDir
func NewLogReader(logsDir string) *LogReader {
	return &LogReader{toolLog: NewToolLog(logsDir)}
}

// GetLogPath returns the path of the tool log for date
func (lr *LogReader) GetLogPath(date time.Time) string {
	return lr.toolLog.PathFor(date)
}

// Tail returns the last limit lines of the log for date.
// A missing file yields no lines and no error. limit <= 0 returns everything.
func (lr *LogReader) Tail(date time.Time, limit int) ([]string, error) {
	file, err := os.Open(lr.GetLogPath(date))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if limit > 0 && len(lines) > limit {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
