package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	uaChromeDesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaEdgeDesktop   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edge/120.0.0.0"
	uaIPhoneSafari  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaIPadSafari    = "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/604.1"
	uaFirefoxLinux  = "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
	uaIE11          = "Mozilla/5.0 (Windows NT 10.0; Trident/7.0; rv:11.0) like Gecko"
)

func TestDeviceType(t *testing.T) {
	assert.Equal(t, DeviceDesktop, DeviceType(uaChromeDesktop))
	assert.Equal(t, DeviceMobile, DeviceType(uaIPhoneSafari))
	assert.Equal(t, DeviceTablet, DeviceType(uaIPadSafari))
	assert.Equal(t, DeviceDesktop, DeviceType(""))
}

func TestDeviceTypeMobileBeatsTablet(t *testing.T) {
	// An Android tablet UA carries both markers; mobile wins.
	ua := "Mozilla/5.0 (Linux; Android 13; SM-X200 Tablet) AppleWebKit/537.36"
	assert.Equal(t, DeviceMobile, DeviceType(ua))
}

func TestBrowser(t *testing.T) {
	assert.Equal(t, "Chrome", Browser(uaChromeDesktop))
	assert.Equal(t, "Edge", Browser(uaEdgeDesktop))
	assert.Equal(t, "Safari", Browser(uaIPhoneSafari))
	assert.Equal(t, "Firefox", Browser(uaFirefoxLinux))
	assert.Equal(t, "Internet Explorer", Browser(uaIE11))
	assert.Equal(t, "Other", Browser("curl/8.0.1"))
	assert.Equal(t, "Other", Browser(""))
}
