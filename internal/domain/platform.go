package domain

import (
	"net/url"
	"strings"
)

// Platform identifies a recognized video host
type Platform string

const (
	PlatformUnsupported Platform = ""
	PlatformYouTube     Platform = "youtube"
	PlatformTikTok      Platform = "tiktok"
	PlatformReddit      Platform = "reddit"
)

// platformHosts lists the registrable domains of each platform.
// A host matches when it equals an entry or is a subdomain of it.
var platformHosts = []struct {
	platform Platform
	hosts    []string
}{
	{PlatformYouTube, []string{"youtube.com", "youtu.be", "youtube-nocookie.com"}},
	{PlatformTikTok, []string{"tiktok.com"}},
	{PlatformReddit, []string{"reddit.com", "redd.it"}},
}

// DisplayName returns a human readable platform name
func (p Platform) DisplayName() string {
	switch p {
	case PlatformYouTube:
		return "YouTube"
	case PlatformTikTok:
		return "TikTok"
	case PlatformReddit:
		return "Reddit"
	default:
		return "unsupported"
	}
}

// Supported reports whether p is a known platform
func (p Platform) Supported() bool {
	return p != PlatformUnsupported
}

// SupportedPlatforms returns all known platforms
func SupportedPlatforms() []Platform {
	platforms := make([]Platform, 0, len(platformHosts))
	for _, ph := range platformHosts {
		platforms = append(platforms, ph.platform)
	}
	return platforms
}

// ResolvePlatform validates rawURL and returns the platform it belongs to
func ResolvePlatform(rawURL string) (Platform, error) {
	if strings.TrimSpace(rawURL) == "" {
		return PlatformUnsupported, &InvalidURLError{URL: rawURL, Reason: "URL is empty"}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnsupported, &InvalidURLError{URL: rawURL, Reason: "cannot be parsed"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return PlatformUnsupported, &InvalidURLError{URL: rawURL, Reason: "scheme must be http or https"}
	}

	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if host == "" {
		return PlatformUnsupported, &InvalidURLError{URL: rawURL, Reason: "missing host"}
	}

	for _, ph := range platformHosts {
		for _, suffix := range ph.hosts {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return ph.platform, nil
			}
		}
	}

	return PlatformUnsupported, &UnsupportedPlatformError{URL: rawURL}
}
