//go:build windows

package infrastructure

import "os/exec"

// setCancel keeps the default kill behaviour; Windows has no SIGINT for child processes
func setCancel(cmd *exec.Cmd) {}
