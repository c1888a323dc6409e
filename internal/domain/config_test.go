package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfiguration(t *testing.T) {
	config := DefaultConfiguration()

	assert.NotNil(t, config)
	assert.NotEmpty(t, config.DownloadDir)
	assert.Equal(t, "best", config.DefaultQuality)
	assert.Equal(t, "mp4", config.DefaultFormat)
	assert.True(t, config.ShowProgress)
	assert.False(t, config.OverwriteFiles)
	assert.Empty(t, config.YTDLPPath)
	assert.Equal(t, "yt-dlp", config.ExecutablePath())
	assert.NoError(t, config.Validate())
}

func TestConfigKeys(t *testing.T) {
	assert.Equal(t, []string{
		"download_dir",
		"default_quality",
		"default_format",
		"show_progress",
		"overwrite_files",
		"ytdlp_path",
	}, ConfigKeys())
}

func TestConfiguration_SetThenGet(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		expected string
	}{
		{KeyDownloadDir, "/tmp/x", "/tmp/x"},
		{KeyDownloadDir, "/tmp/path with spaces", "/tmp/path with spaces"},
		{KeyDefaultQuality, "720p", "720p"},
		{KeyDefaultQuality, " medium ", "medium"},
		{KeyDefaultFormat, "WebM", "webm"},
		{KeyDefaultFormat, "mp4/mkv", "mp4/mkv"},
		{KeyDefaultFormat, " MOV/Webm ", "mov/webm"},
		{KeyShowProgress, "false", "false"},
		{KeyShowProgress, "1", "true"},
		{KeyOverwriteFiles, "TRUE", "true"},
		{KeyYTDLPPath, "/usr/local/bin/yt-dlp", "/usr/local/bin/yt-dlp"},
		{KeyYTDLPPath, "none", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			config := DefaultConfiguration()
			require.NoError(t, config.Set(tt.key, tt.value))

			got, err := config.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConfiguration_SetInvalidValue(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{KeyDownloadDir, ""},
		{KeyDownloadDir, "   "},
		{KeyDefaultQuality, ""},
		{KeyDefaultFormat, "mp4; rm -rf"},
		{KeyDefaultFormat, ""},
		{KeyDefaultFormat, "mp3"},
		{KeyDefaultFormat, "m4a"},
		{KeyDefaultFormat, "wav"},
		{KeyDefaultFormat, "mp4/"},
		{KeyDefaultFormat, "mp4/mp3"},
		{KeyShowProgress, "maybe"},
		{KeyOverwriteFiles, "yes please"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			config := DefaultConfiguration()
			before := *config

			err := config.Set(tt.key, tt.value)

			var valueErr *InvalidValueError
			require.True(t, errors.As(err, &valueErr))
			assert.Equal(t, tt.key, valueErr.Key)
			assert.Equal(t, before, *config, "failed Set must not modify the configuration")
			assert.Equal(t, ExitUserError, ExitCode(err))
		})
	}
}

func TestConfiguration_UnknownKey(t *testing.T) {
	config := DefaultConfiguration()

	_, err := config.Get("colour")
	var keyErr *InvalidKeyError
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, "colour", keyErr.Key)
	assert.Contains(t, err.Error(), "colour")

	err = config.Set("colour", "blue")
	require.True(t, errors.As(err, &keyErr))
}

func TestConfiguration_ExecutablePath(t *testing.T) {
	config := DefaultConfiguration()
	config.YTDLPPath = "/opt/yt-dlp/yt-dlp"
	assert.Equal(t, "/opt/yt-dlp/yt-dlp", config.ExecutablePath())
}

func TestConfiguration_Validate(t *testing.T) {
	config := DefaultConfiguration()
	config.DownloadDir = ""
	assert.Error(t, config.Validate())

	config = DefaultConfiguration()
	config.DefaultFormat = "../mp4"
	assert.Error(t, config.Validate())

	config = DefaultConfiguration()
	config.DefaultFormat = "wav"
	assert.Error(t, config.Validate())

	config = DefaultConfiguration()
	config.DefaultFormat = "mp4/mkv"
	assert.NoError(t, config.Validate())
}
