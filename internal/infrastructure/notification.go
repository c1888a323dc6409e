package infrastructure

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/videodl/video-dl/internal/domain"
	"go.uber.org/zap"
)

// Notification methods
const (
	MethodOSAScript  = "osascript"
	MethodNotifySend = "notify-send"
)

// NotificationService sends desktop notifications through a helper command
type NotificationService struct {
	method string
	logger *zap.Logger
	run    func(name string, args ...string) error
}

// NewNotificationService creates a notifier using the helper for this OS
func NewNotificationService(logger *zap.Logger) *NotificationService {
	return &NotificationService{
		method: DefaultNotificationMethod(runtime.GOOS),
		logger: logger,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// DefaultNotificationMethod picks the notification helper for goos
func DefaultNotificationMethod(goos string) string {
	if goos == "darwin" {
		return MethodOSAScript
	}
	return MethodNotifySend
}

// Send sends a notification. Failures are logged and returned.
func (n *NotificationService) Send(title, message string) error {
	var err error
	switch n.method {
	case MethodOSAScript:
		script := fmt.Sprintf(`display notification %s with title %s`, appleScriptString(message), appleScriptString(title))
		err = n.run("osascript", "-e", script)
	case MethodNotifySend:
		err = n.run("notify-send", title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.method))
		return nil
	}

	if err != nil {
		n.logger.Warn("Failed to send notification",
			zap.String("method", n.method),
			zap.Error(err))
		return err
	}

	n.logger.Debug("Notification sent",
		zap.String("title", title),
		zap.String("message", message))
	return nil
}

// NotifyDownloadCompleted sends notification when download completes
func (n *NotificationService) NotifyDownloadCompleted(url string, platform domain.Platform) {
	message := fmt.Sprintf("Success: %s (%s)", truncateString(url, 40), platform.DisplayName())
	n.Send("Download Completed", message)
}

// NotifyDownloadFailed sends notification when download fails
func (n *NotificationService) NotifyDownloadFailed(url string, platform domain.Platform, err error) {
	message := fmt.Sprintf("Failed: %s (%s)", truncateString(url, 40), platform.DisplayName())
	if reason := failureReason(err); reason != "" {
		message += "\n" + reason
	}
	n.Send("Download Failed", message)
}

// failureReason is the first line of err, shortened for a notification
func failureReason(err error) string {
	if err == nil {
		return ""
	}
	reason := strings.TrimSpace(err.Error())
	if i := strings.IndexByte(reason, '\n'); i >= 0 {
		reason = reason[:i]
	}
	return truncateString(reason, 80)
}

// appleScriptString quotes s as an AppleScript string literal
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
