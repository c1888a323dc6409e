package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes returned by the CLI
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUserError    = 2
)

// ErrCancelled is returned when the user interrupts a running invocation
var ErrCancelled = errors.New("cancelled by user")

// ConfigError means the configuration file exists but cannot be used
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// InvalidKeyError is returned for unknown configuration keys
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("unknown configuration key %q (available: %s)", e.Key, strings.Join(ConfigKeys(), ", "))
}

// InvalidValueError is returned when a configuration value does not parse
type InvalidValueError struct {
	Key    string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Key, e.Reason)
}

// InvalidURLError is returned for malformed URLs
type InvalidURLError struct {
	URL    string
	Reason string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL %q: %s", e.URL, e.Reason)
}

// UnsupportedPlatformError is returned when no known platform matches the URL host
type UnsupportedPlatformError struct {
	URL string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform for URL %q", e.URL)
}

// ExternalToolNotFoundError is returned when the yt-dlp executable cannot be located
type ExternalToolNotFoundError struct {
	Path string
	Err  error
}

func (e *ExternalToolNotFoundError) Error() string {
	return fmt.Sprintf("external tool %q not found: install yt-dlp or set %s", e.Path, KeyYTDLPPath)
}

func (e *ExternalToolNotFoundError) Unwrap() error { return e.Err }

// ExtractionFailedError is returned when yt-dlp exits non-zero or its output cannot be parsed
type ExtractionFailedError struct {
	URL      string
	ExitCode int
	Stderr   string
	Reason   string
}

func (e *ExtractionFailedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "extraction failed for %s", e.URL)
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.ExitCode != 0 {
		fmt.Fprintf(&b, " (exit code %d)", e.ExitCode)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, "\n%s", e.Stderr)
	}
	return b.String()
}

// HistoryLookupError is returned when a history ID or prefix selects no single entry
type HistoryLookupError struct {
	ID     string
	Reason string
}

func (e *HistoryLookupError) Error() string {
	return fmt.Sprintf("history entry %q: %s", e.ID, e.Reason)
}

// UsageError wraps a command line parsing failure such as an unknown flag
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// IsUserError reports whether err was caused by bad input rather than a runtime failure
func IsUserError(err error) bool {
	var (
		keyErr      *InvalidKeyError
		valueErr    *InvalidValueError
		urlErr      *InvalidURLError
		platformErr *UnsupportedPlatformError
		usageErr    *UsageError
		historyErr  *HistoryLookupError
	)
	return errors.As(err, &keyErr) ||
		errors.As(err, &valueErr) ||
		errors.As(err, &urlErr) ||
		errors.As(err, &platformErr) ||
		errors.As(err, &usageErr) ||
		errors.As(err, &historyErr)
}

// ExitCode maps an error to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case IsUserError(err):
		return ExitUserError
	default:
		return ExitRuntimeError
	}
}

func isCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
