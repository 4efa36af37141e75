package handler

import (
	"net/http"
	"strings"

	"github.com/vasapolrittideah/auth-api/internal/usecase"
)

// deviceFromRequest derives informational device metadata from the User-Agent
// header. The classification is deliberately coarse; the fields are recorded
// on the session for display only.
func deviceFromRequest(r *http.Request) usecase.DeviceInfo {
	ua := r.Header.Get("User-Agent")

	return usecase.DeviceInfo{
		Browser: browserFromUserAgent(ua),
		OS:      osFromUserAgent(ua),
	}
}

func browserFromUserAgent(ua string) string {
	switch {
	case strings.Contains(ua, "Edg/"):
		return "Edge"
	case strings.Contains(ua, "OPR/"), strings.Contains(ua, "Opera"):
		return "Opera"
	case strings.Contains(ua, "Chrome/"):
		return "Chrome"
	case strings.Contains(ua, "Firefox/"):
		return "Firefox"
	case strings.Contains(ua, "Safari/"):
		return "Safari"
	case ua == "":
		return ""
	default:
		return "Other"
	}
}

func osFromUserAgent(ua string) string {
	switch {
	case strings.Contains(ua, "Android"):
		return "Android"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"):
		return "iOS"
	case strings.Contains(ua, "Windows"):
		return "Windows"
	case strings.Contains(ua, "Mac OS X"):
		return "macOS"
	case strings.Contains(ua, "Linux"):
		return "Linux"
	case ua == "":
		return ""
	default:
		return "Other"
	}
}
