// Package useragent classifies user agent strings into coarse device and
// browser buckets for attribution reporting.
package useragent

import "strings"

// Device type buckets.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

var mobileMarkers = []string{"mobile", "android", "iphone", "ipod", "blackberry", "windows phone"}
var tabletMarkers = []string{"tablet", "ipad"}

// DeviceType buckets a user agent into mobile, tablet or desktop. Mobile
// markers are checked before tablet ones, matching how ad platforms bucket
// Android tablets.
func DeviceType(ua string) string {
	ua = strings.ToLower(ua)
	for _, m := range mobileMarkers {
		if strings.Contains(ua, m) {
			return DeviceMobile
		}
	}
	for _, m := range tabletMarkers {
		if strings.Contains(ua, m) {
			return DeviceTablet
		}
	}
	return DeviceDesktop
}

// Browser identifies the browser family. Order matters: Edge ships a Chrome
// token and Chrome ships a Safari token, so the more specific families are
// checked first.
func Browser(ua string) string {
	ua = strings.ToLower(ua)
	switch {
	case strings.Contains(ua, "edge") || strings.Contains(ua, "edg/"):
		return "Edge"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "safari"):
		return "Safari"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "msie") || strings.Contains(ua, "trident"):
		return "Internet Explorer"
	default:
		return "Other"
	}
}
