package infrastructure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/videodl/video-dl/internal/domain"
)

func TestParseLine_Progress(t *testing.T) {
	tests := []struct {
		line     string
		expected float64
	}{
		{"[download]   0.0% of   10.00MiB at  Unknown B/s ETA Unknown", 0},
		{"[download]  42.3% of   10.00MiB at    1.00MiB/s ETA 00:05", 42.3},
		{"[download] 100% of   10.00MiB in 00:00:03 at 3.21MiB/s", 100},
		{"[download] 100.0% of ~  5.12MiB at  2.00MiB/s ETA 00:00 (frag 40/40)", 100},
		{"  [download]   7.5% of 1.00GiB", 7.5},
		{"[download] 250.0% of 1MiB", 100},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			event := ParseLine(tt.line)
			assert.Equal(t, domain.EventProgress, event.Kind)
			assert.Equal(t, tt.expected, event.Progress.Percent)
			assert.Equal(t, tt.line, event.Raw)
		})
	}
}

func TestParseLine_Info(t *testing.T) {
	line := `{"id": "abc", "title": "Test"}`
	event := ParseLine(line)
	assert.Equal(t, domain.EventInfo, event.Kind)
	assert.Equal(t, line, event.Raw)
}

func TestParseLine_Unrecognized(t *testing.T) {
	lines := []string{
		"",
		"[youtube] Extracting URL: https://www.youtube.com/watch?v=abc",
		"[download] Destination: /tmp/Test.f137.mp4",
		"[download] /tmp/Test.mp4 has already been downloaded",
		"[Merger] Merging formats into \"/tmp/Test.mp4\"",
		"{ not closed",
		"download 50%",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			event := ParseLine(line)
			assert.Equal(t, domain.EventUnrecognized, event.Kind)
			assert.Equal(t, line, event.Raw)
		})
	}
}

const sampleInfo = `{
	"id": "dQw4w9WgXcQ",
	"title": "Rick Astley - Never Gonna Give You Up",
	"description": "The official video",
	"uploader": "Rick Astley",
	"duration": 212,
	"webpage_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	"formats": [
		{"format_id": "sb0", "ext": "mhtml", "vcodec": "none", "acodec": "none"},
		{"format_id": "140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a.40.2"},
		{"format_id": "251", "ext": "webm", "vcodec": "none", "acodec": "opus"},
		{"format_id": "134", "ext": "mp4", "height": 360, "vcodec": "avc1", "acodec": "none"},
		{"format_id": "136", "ext": "mp4", "height": 720, "vcodec": "avc1", "acodec": "none"},
		{"format_id": "247", "ext": "webm", "height": 720, "vcodec": "vp9", "acodec": "none"},
		{"format_id": "137", "ext": "mp4", "height": 1080, "vcodec": "avc1", "acodec": "none"},
		{"format_id": "18", "ext": "mp4", "height": 360, "vcodec": "avc1", "acodec": "mp4a.40.2"}
	]
}`

func TestParseVideoInfo(t *testing.T) {
	url := "https://youtu.be/dQw4w9WgXcQ"

	info, err := ParseVideoInfo(sampleInfo, url)
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", info.ID)
	assert.Equal(t, "Rick Astley - Never Gonna Give You Up", info.Title)
	assert.Equal(t, "Rick Astley", info.Uploader)
	assert.Equal(t, 212.0, info.Duration)
	assert.Equal(t, url, info.URL)
	assert.Equal(t, []string{"1080p", "720p", "360p", "audio only"}, info.Qualities)
	assert.Equal(t, []string{"m4a", "webm", "mp4"}, info.Formats)
}

func TestParseVideoInfo_NoFormats(t *testing.T) {
	info, err := ParseVideoInfo(`{"title": "Live", "duration": null}`, "https://youtu.be/x")
	require.NoError(t, err)
	assert.Empty(t, info.Qualities)
	assert.Empty(t, info.Formats)
	assert.Equal(t, "unknown", info.FormattedDuration())
}

func TestParseVideoInfo_Unparseable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "ERROR: something"},
		{"truncated", `{"title": "x"`},
		{"missing title", `{"id": "abc"}`},
		{"wrong type", `{"title": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVideoInfo(tt.raw, "https://youtu.be/x")

			var failed *domain.ExtractionFailedError
			require.True(t, errors.As(err, &failed))
			assert.Equal(t, "https://youtu.be/x", failed.URL)
			assert.Contains(t, failed.Reason, "unparseable")
		})
	}
}
