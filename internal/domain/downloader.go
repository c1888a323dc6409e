package domain

import "context"

// Runner executes the external tool once and streams its output
type Runner interface {
	// Run spawns the tool with args and blocks until it exits
	Run(ctx context.Context, args []string, onEvent EventHandler) (*Outcome, error)
}

// Outcome describes a finished external tool process
type Outcome struct {
	ExitCode int
	Info     string // last info payload seen on stdout, empty for downloads
	Stderr   string // tail of stderr
}

// ProgressReporter displays download progress
type ProgressReporter interface {
	Update(percent float64)
	Finish()
	Abort()
}

// Notifier sends desktop notifications about finished downloads
type Notifier interface {
	NotifyDownloadCompleted(url string, platform Platform)
	NotifyDownloadFailed(url string, platform Platform, err error)
}
