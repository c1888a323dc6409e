package infrastructure

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

const versionProbeTimeout = 10 * time.Second

// ToolStatus describes one external executable
type ToolStatus struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DependencyStatus is the result of probing yt-dlp and ffmpeg
type DependencyStatus struct {
	YTDLP  ToolStatus `json:"yt_dlp"`
	FFmpeg ToolStatus `json:"ffmpeg"`
}

// Ready reports whether downloads can run. ffmpeg is only needed for merging.
func (s *DependencyStatus) Ready() bool {
	return s.YTDLP.Available
}

// CheckDependencies probes ytdlpPath and ffmpeg for their versions
func CheckDependencies(ctx context.Context, ytdlpPath string) *DependencyStatus {
	return &DependencyStatus{
		YTDLP:  probeTool(ctx, ytdlpPath, "--version", parseYTDLPVersion),
		FFmpeg: probeTool(ctx, "ffmpeg", "-version", parseFFmpegVersion),
	}
}

func probeTool(ctx context.Context, name, versionFlag string, parse func(string) string) ToolStatus {
	status := ToolStatus{Name: name}

	path, err := exec.LookPath(name)
	if err != nil {
		status.Error = "not found"
		return status
	}
	status.Path = path

	ctx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, versionFlag).Output()
	if err != nil {
		status.Error = err.Error()
		return status
	}

	status.Available = true
	status.Version = parse(string(out))
	return status
}

func parseYTDLPVersion(out string) string {
	return firstLine(out)
}

// parseFFmpegVersion extracts "6.1" from "ffmpeg version 6.1 Copyright ..."
func parseFFmpegVersion(out string) string {
	line := firstLine(out)
	idx := strings.Index(line, "version ")
	if idx < 0 {
		return "unknown"
	}
	fields := strings.Fields(line[idx+len("version "):])
	if len(fields) == 0 {
		return "unknown"
	}
	return fields[0]
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
