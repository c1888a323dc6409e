package infrastructure

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/videodl/video-dl/internal/domain"
)

// progressPattern matches yt-dlp --newline progress lines such as
// "[download]  42.3% of 10.00MiB at 1.00MiB/s ETA 00:05"
var progressPattern = regexp.MustCompile(`^\[download\]\s+(\d{1,3}(?:\.\d+)?)%`)

// ParseLine classifies one line of yt-dlp stdout
func ParseLine(line string) domain.Event {
	trimmed := strings.TrimSpace(line)

	if m := progressPattern.FindStringSubmatch(trimmed); m != nil {
		if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
			return domain.Event{
				Kind:     domain.EventProgress,
				Progress: domain.ProgressUpdate{Percent: clampPercent(pct)},
				Raw:      line,
			}
		}
	}

	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return domain.Event{Kind: domain.EventInfo, Raw: trimmed}
	}

	return domain.Event{Kind: domain.EventUnrecognized, Raw: line}
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// ytdlpInfo is the subset of the --dump-json document we read
type ytdlpInfo struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Uploader    string        `json:"uploader"`
	Duration    float64       `json:"duration"`
	WebpageURL  string        `json:"webpage_url"`
	Formats     []ytdlpFormat `json:"formats"`
}

type ytdlpFormat struct {
	FormatID string `json:"format_id"`
	Ext      string `json:"ext"`
	Height   *int   `json:"height"`
	VCodec   string `json:"vcodec"`
	ACodec   string `json:"acodec"`
}

const audioOnly = "audio only"

// ParseVideoInfo decodes a --dump-json payload into VideoInfo
func ParseVideoInfo(raw, url string) (*domain.VideoInfo, error) {
	var data ytdlpInfo
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, &domain.ExtractionFailedError{URL: url, Reason: fmt.Sprintf("unparseable info response: %v", err)}
	}
	if data.Title == "" {
		return nil, &domain.ExtractionFailedError{URL: url, Reason: "unparseable info response: missing title"}
	}

	info := &domain.VideoInfo{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Uploader:    data.Uploader,
		Duration:    data.Duration,
		URL:         url,
		Qualities:   qualitiesOf(data.Formats),
		Formats:     extensionsOf(data.Formats),
	}
	return info, nil
}

// qualitiesOf returns distinct video heights, highest first, followed by
// "audio only" when an audio-only format exists
func qualitiesOf(formats []ytdlpFormat) []string {
	seen := make(map[int]bool)
	var heights []int
	hasAudioOnly := false

	for _, f := range formats {
		if f.VCodec == "none" && f.ACodec != "none" {
			hasAudioOnly = true
			continue
		}
		if f.Height == nil || *f.Height <= 0 || seen[*f.Height] {
			continue
		}
		seen[*f.Height] = true
		heights = append(heights, *f.Height)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(heights)))

	qualities := make([]string, 0, len(heights)+1)
	for _, h := range heights {
		qualities = append(qualities, fmt.Sprintf("%dp", h))
	}
	if hasAudioOnly {
		qualities = append(qualities, audioOnly)
	}
	return qualities
}

// extensionsOf returns distinct container extensions in first-seen order
func extensionsOf(formats []ytdlpFormat) []string {
	seen := make(map[string]bool)
	var exts []string
	for _, f := range formats {
		ext := strings.ToLower(f.Ext)
		if ext == "" || ext == "mhtml" || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
	}
	return exts
}
