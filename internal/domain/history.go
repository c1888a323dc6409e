package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the terminal outcome of one invocation
type RunStatus string

const (
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
	StatusCancelled RunStatus = "cancelled"
)

// Action is the external tool action an invocation performed
type Action string

const (
	ActionInfo     Action = "info"
	ActionDownload Action = "download"
)

// NoToolExitCode marks runs where yt-dlp did not exit on its own
const NoToolExitCode = -1

// HistoryEntry records one info or download invocation
type HistoryEntry struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Action       Action    `json:"action" gorm:"not null;index"`
	URL          string    `json:"url" gorm:"not null"`
	Platform     Platform  `json:"platform"`
	Quality      string    `json:"quality,omitempty"`
	Format       string    `json:"format,omitempty"`
	Output       string    `json:"output,omitempty"`
	Title        string    `json:"title,omitempty"`
	Status       RunStatus `json:"status" gorm:"not null;index"`
	ExitCode     int       `json:"exit_code"`      // exit code of video-dl itself
	ToolExitCode int       `json:"tool_exit_code"` // yt-dlp's own status, NoToolExitCode when it reported none
	ErrorMessage string    `json:"error_message,omitempty"`
	StartedAt    time.Time `json:"started_at" gorm:"index"`
	FinishedAt   time.Time `json:"finished_at"`
}

// NewHistoryEntry starts a history entry for url
func NewHistoryEntry(action Action, url string) *HistoryEntry {
	return &HistoryEntry{
		ID:        uuid.New().String(),
		Action:    action,
		URL:       url,
		StartedAt: time.Now(),
	}
}

// ForRequest copies the resolved download parameters into the entry
func (h *HistoryEntry) ForRequest(req *DownloadRequest) {
	h.Platform = req.Platform
	h.Quality = req.Quality
	h.Format = req.Format
	h.Output = req.Output
}

// Finish stamps the entry with the outcome of err
func (h *HistoryEntry) Finish(err error) {
	h.FinishedAt = time.Now()
	h.ExitCode = ExitCode(err)
	h.ToolExitCode = toolExitCode(err)
	switch {
	case err == nil:
		h.Status = StatusCompleted
	case isCancelled(err):
		h.Status = StatusCancelled
		h.ErrorMessage = err.Error()
	default:
		h.Status = StatusFailed
		h.ErrorMessage = err.Error()
	}
}

func toolExitCode(err error) int {
	if err == nil {
		return 0
	}
	var extractErr *ExtractionFailedError
	if errors.As(err, &extractErr) {
		return extractErr.ExitCode
	}
	return NoToolExitCode
}

// Duration returns how long the invocation ran
func (h *HistoryEntry) Duration() time.Duration {
	if h.FinishedAt.IsZero() {
		return 0
	}
	return h.FinishedAt.Sub(h.StartedAt)
}

// IsTerminal checks if the entry has an outcome
func (h *HistoryEntry) IsTerminal() bool {
	return h.Status == StatusCompleted || h.Status == StatusFailed || h.Status == StatusCancelled
}
