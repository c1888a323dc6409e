package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
)

// Configuration keys as they appear in config.toml
const (
	KeyDownloadDir    = "download_dir"
	KeyDefaultQuality = "default_quality"
	KeyDefaultFormat  = "default_format"
	KeyShowProgress   = "show_progress"
	KeyOverwriteFiles = "overwrite_files"
	KeyYTDLPPath      = "ytdlp_path"
)

// Built-in defaults
const (
	DefaultQuality = "best"
	DefaultFormat  = "mp4"
	DefaultYTDLP   = "yt-dlp"
)

// Configuration represents the persisted user settings
type Configuration struct {
	DownloadDir    string `mapstructure:"download_dir" toml:"download_dir"`
	DefaultQuality string `mapstructure:"default_quality" toml:"default_quality"`
	DefaultFormat  string `mapstructure:"default_format" toml:"default_format"`
	ShowProgress   bool   `mapstructure:"show_progress" toml:"show_progress"`
	OverwriteFiles bool   `mapstructure:"overwrite_files" toml:"overwrite_files"`
	YTDLPPath      string `mapstructure:"ytdlp_path" toml:"ytdlp_path"` // empty means look up yt-dlp in PATH
}

// DefaultConfiguration returns the built-in defaults
func DefaultConfiguration() *Configuration {
	downloadDir := xdg.UserDirs.Download
	if downloadDir == "" {
		downloadDir = "."
	}
	return &Configuration{
		DownloadDir:    downloadDir,
		DefaultQuality: DefaultQuality,
		DefaultFormat:  DefaultFormat,
		ShowProgress:   true,
		OverwriteFiles: false,
		YTDLPPath:      "",
	}
}

// ConfigKeys returns every configuration key in display order
func ConfigKeys() []string {
	return []string{
		KeyDownloadDir,
		KeyDefaultQuality,
		KeyDefaultFormat,
		KeyShowProgress,
		KeyOverwriteFiles,
		KeyYTDLPPath,
	}
}

// ExecutablePath returns the external tool to invoke
func (c *Configuration) ExecutablePath() string {
	if c.YTDLPPath != "" {
		return c.YTDLPPath
	}
	return DefaultYTDLP
}

// Get returns the string form of a configuration value
func (c *Configuration) Get(key string) (string, error) {
	switch key {
	case KeyDownloadDir:
		return c.DownloadDir, nil
	case KeyDefaultQuality:
		return c.DefaultQuality, nil
	case KeyDefaultFormat:
		return c.DefaultFormat, nil
	case KeyShowProgress:
		return strconv.FormatBool(c.ShowProgress), nil
	case KeyOverwriteFiles:
		return strconv.FormatBool(c.OverwriteFiles), nil
	case KeyYTDLPPath:
		return c.YTDLPPath, nil
	default:
		return "", &InvalidKeyError{Key: key}
	}
}

// Set parses value and assigns it to key
func (c *Configuration) Set(key, value string) error {
	switch key {
	case KeyDownloadDir:
		if strings.TrimSpace(value) == "" {
			return &InvalidValueError{Key: key, Value: value, Reason: "directory must not be empty"}
		}
		c.DownloadDir = value
	case KeyDefaultQuality:
		q := strings.TrimSpace(value)
		if q == "" {
			return &InvalidValueError{Key: key, Value: value, Reason: "quality must not be empty"}
		}
		c.DefaultQuality = q
	case KeyDefaultFormat:
		f, ok := NormalizeFormat(value)
		if !ok {
			return &InvalidValueError{Key: key, Value: value, Reason: formatReason()}
		}
		c.DefaultFormat = f
	case KeyShowProgress:
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.ShowProgress = b
	case KeyOverwriteFiles:
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.OverwriteFiles = b
	case KeyYTDLPPath:
		if strings.EqualFold(value, "none") {
			value = ""
		}
		c.YTDLPPath = value
	default:
		return &InvalidKeyError{Key: key}
	}
	return nil
}

// Validate checks that a loaded configuration is usable
func (c *Configuration) Validate() error {
	if c.DownloadDir == "" {
		return fmt.Errorf("%s not configured", KeyDownloadDir)
	}
	if c.DefaultQuality == "" {
		return fmt.Errorf("%s not configured", KeyDefaultQuality)
	}
	if _, ok := NormalizeFormat(c.DefaultFormat); !ok {
		return fmt.Errorf("invalid %s: %q", KeyDefaultFormat, c.DefaultFormat)
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, &InvalidValueError{Key: key, Value: value, Reason: "use true or false"}
	}
	return b, nil
}
