// Package device turns raw User-Agent headers into display names for the
// login audit log.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent returns a short "<browser> on <os>" description of ua.
func ParseUserAgent(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return "Unknown Device"
	}
	parsed := useragent.New(ua)

	browser, _ := parsed.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}
	os := parsed.OS()
	if os == "" {
		os = parsed.Platform()
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}

// IsBot reports whether ua identifies a crawler.
func IsBot(ua string) bool {
	if ua == "" {
		return false
	}
	return useragent.New(ua).Bot()
}
