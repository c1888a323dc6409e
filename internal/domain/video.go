package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Quality presets understood by the command builder. Any other value is a
// custom quality: either a resolution such as "720p" or a raw yt-dlp selector.
const (
	QualityBest   = "best"
	QualityWorst  = "worst"
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
	QualityAudio  = "audio"
)

// mergeFormats are the containers yt-dlp accepts for --merge-output-format
var mergeFormats = []string{"avi", "flv", "mkv", "mov", "mp4", "webm"}

// MergeFormats returns the accepted container formats
func MergeFormats() []string {
	return append([]string(nil), mergeFormats...)
}

// NormalizeFormat lower-cases a container format and checks it. Several
// containers may be joined with "/" in order of preference, e.g. "mp4/mkv".
func NormalizeFormat(value string) (string, bool) {
	f := strings.ToLower(strings.TrimSpace(value))
	if f == "" {
		return "", false
	}
	for _, part := range strings.Split(f, "/") {
		if !isMergeFormat(part) {
			return "", false
		}
	}
	return f, true
}

func isMergeFormat(f string) bool {
	for _, m := range mergeFormats {
		if f == m {
			return true
		}
	}
	return false
}

func formatReason() string {
	return "use one of " + strings.Join(mergeFormats, ", ") + ", optionally joined with /"
}

var resolutionPattern = regexp.MustCompile(`^(\d{3,4})p$`)

// QualityPresets returns the named quality presets
func QualityPresets() []string {
	return []string{QualityBest, QualityHigh, QualityMedium, QualityLow, QualityWorst, QualityAudio}
}

// ResolutionHeight returns the height encoded in a "<N>p" quality string
func ResolutionHeight(quality string) (int, bool) {
	m := resolutionPattern.FindStringSubmatch(strings.ToLower(quality))
	if m == nil {
		return 0, false
	}
	h, err := strconv.Atoi(m[1])
	return h, err == nil && h > 0
}

// VideoInfo describes a video as reported by the external tool
type VideoInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Uploader    string   `json:"uploader,omitempty"`
	Duration    float64  `json:"duration"` // seconds
	Qualities   []string `json:"qualities"`
	Formats     []string `json:"formats"`
	URL         string   `json:"url"`
	Platform    Platform `json:"platform"`
}

// FormattedDuration renders the duration as HH:MM:SS
func (v *VideoInfo) FormattedDuration() string {
	total := int(v.Duration)
	if total <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// DescriptionPreview returns the first maxLines lines of the description
// and whether anything was cut off
func (v *VideoInfo) DescriptionPreview(maxLines int) (string, bool) {
	lines := strings.Split(strings.TrimSpace(v.Description), "\n")
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n"), false
	}
	return strings.Join(lines[:maxLines], "\n"), true
}

// DownloadRequest is a download resolved against configuration defaults
type DownloadRequest struct {
	URL      string
	Platform Platform
	Quality  string
	Format   string
	Output   string // empty means derive from the download directory and title
	Notify   bool
}

// DownloadFlags carries the raw CLI flag values; empty means not given
type DownloadFlags struct {
	Quality string
	Format  string
	Output  string
	Notify  bool
}

// NewDownloadRequest merges flags with configuration. An explicit flag wins
// over the configured default, which wins over the built-in default.
func NewDownloadRequest(url string, flags DownloadFlags, cfg *Configuration) *DownloadRequest {
	return &DownloadRequest{
		URL:     url,
		Quality: firstNonEmpty(flags.Quality, cfg.DefaultQuality, DefaultQuality),
		Format:  strings.ToLower(firstNonEmpty(flags.Format, cfg.DefaultFormat, DefaultFormat)),
		Output:  flags.Output,
		Notify:  flags.Notify,
	}
}

// Validate checks the resolved format before anything is spawned
func (r *DownloadRequest) Validate() error {
	f, ok := NormalizeFormat(r.Format)
	if !ok {
		return &InvalidValueError{Key: "--format", Value: r.Format, Reason: formatReason()}
	}
	r.Format = f
	return nil
}

// DownloadResult is returned by a completed download
type DownloadResult struct {
	Request  *DownloadRequest
	Output   string // output path or template handed to the external tool
	Progress float64
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
