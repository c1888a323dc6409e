//go:build !windows

package infrastructure

import (
	"os"
	"os/exec"
)

// setCancel makes context cancellation interrupt the child so yt-dlp can
// clean up its .part files before WaitDelay forces a kill
func setCancel(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
}
