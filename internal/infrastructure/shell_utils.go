package infrastructure

import (
	"github.com/alessio/shellescape"
)

// FormatCommandLine renders binary and args as a copy-pasteable shell command.
// It is used for logs and --dry-run output only; exec never sees this string.
func FormatCommandLine(binary string, args ...string) string {
	return shellescape.QuoteCommand(append([]string{binary}, args...))
}
