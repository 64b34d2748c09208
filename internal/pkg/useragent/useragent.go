// Package useragent classifies raw user-agent strings into the coarse
// browser / OS / device buckets stored on the sessions dimension.
//
// Matching is ordered substring matching on purpose: every WebKit browser
// also advertises "Safari", so Chrome must be checked before Safari, and
// Safari only counts when the Chrome token is absent.
package useragent

import "strings"

// Unknown is the bucket for anything the classifier cannot place.
const Unknown = "Unknown"

// Info holds the classification of one user-agent string.
type Info struct {
	Browser         string
	OperatingSystem string
	DeviceType      string
}

var mobileTokens = []string{"iPhone", "Android", "Mobile"}

// Classify buckets a user-agent string. An empty string yields Unknown
// browser and OS with device type Desktop.
func Classify(userAgent string) Info {
	browser := Unknown
	switch {
	case strings.Contains(userAgent, "Chrome") && strings.Contains(userAgent, "Safari"):
		browser = "Chrome"
	case strings.Contains(userAgent, "Safari") && !strings.Contains(userAgent, "Chrome"):
		browser = "Safari"
	case strings.Contains(userAgent, "Firefox"):
		browser = "Firefox"
	}

	os := Unknown
	switch {
	case strings.Contains(userAgent, "Windows"):
		os = "Windows"
	case strings.Contains(userAgent, "Mac"):
		os = "macOS"
	case strings.Contains(userAgent, "iPhone"):
		os = "iOS"
	case strings.Contains(userAgent, "Android"):
		os = "Android"
	}

	deviceType := "Desktop"
	for _, token := range mobileTokens {
		if strings.Contains(userAgent, token) {
			deviceType = "Mobile"
			break
		}
	}

	return Info{Browser: browser, OperatingSystem: os, DeviceType: deviceType}
}
