package infrastructure

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/videodl/video-dl/internal/domain"
)

// yt-dlp flags
const (
	FlagDumpJSON          = "--dump-json"
	FlagNoPlaylist        = "--no-playlist"
	FlagSkipDownload      = "--skip-download"
	FlagNoWarnings        = "--no-warnings"
	FlagNewline           = "--newline"
	FlagFormat            = "-f"
	FlagMergeOutputFormat = "--merge-output-format"
	FlagForceOverwrites   = "--force-overwrites"
	FlagNoOverwrites      = "--no-overwrites"
	FlagOutput            = "-o"
	EndOfOptions          = "--"

	// DefaultOutputTemplate is joined to the download directory when no output is given
	DefaultOutputTemplate = "%(title)s.%(ext)s"
)

// Preset quality heights
const (
	lowHeight    = 360
	mediumHeight = 480
	highHeight   = 720
)

// QualitySelector translates a quality preset, a "<N>p" resolution or a raw
// yt-dlp selector into the value passed to -f
func QualitySelector(quality string) string {
	q := strings.TrimSpace(quality)
	switch strings.ToLower(q) {
	case "", domain.QualityBest:
		return "bestvideo+bestaudio/best"
	case domain.QualityWorst:
		return "worstvideo+worstaudio/worst"
	case domain.QualityLow:
		return heightSelector(lowHeight)
	case domain.QualityMedium:
		return heightSelector(mediumHeight)
	case domain.QualityHigh:
		return heightSelector(highHeight)
	case domain.QualityAudio:
		return "bestaudio/best"
	}
	if h, ok := domain.ResolutionHeight(q); ok {
		return heightSelector(h)
	}
	return q
}

func heightSelector(h int) string {
	return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", h, h)
}

// OutputTemplate returns the -o value for a request
func OutputTemplate(req *domain.DownloadRequest, cfg *domain.Configuration) string {
	if req.Output != "" {
		return req.Output
	}
	return filepath.Join(cfg.DownloadDir, DefaultOutputTemplate)
}

// BuildInfoArgs builds the argument list that prints video information as one JSON line
func BuildInfoArgs(url string) []string {
	return []string{
		FlagDumpJSON,
		FlagNoPlaylist,
		FlagSkipDownload,
		FlagNoWarnings,
		EndOfOptions, url,
	}
}

// BuildDownloadArgs builds the argument list for a download.
// The result is passed to exec directly, so no shell quoting is applied.
func BuildDownloadArgs(req *domain.DownloadRequest, cfg *domain.Configuration) []string {
	overwrite := FlagNoOverwrites
	if cfg.OverwriteFiles {
		overwrite = FlagForceOverwrites
	}

	return []string{
		FlagNewline,
		FlagNoPlaylist,
		FlagFormat, QualitySelector(req.Quality),
		FlagMergeOutputFormat, req.Format,
		overwrite,
		FlagOutput, OutputTemplate(req, cfg),
		EndOfOptions, req.URL,
	}
}
