package app

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultHistoryPath returns $XDG_DATA_HOME/video-dl/history.db
func DefaultHistoryPath() string {
	return filepath.Join(xdg.DataHome, AppName, "history.db")
}

// DefaultToolLogDir returns $XDG_STATE_HOME/video-dl/logs
func DefaultToolLogDir() string {
	return filepath.Join(xdg.StateHome, AppName, "logs")
}
