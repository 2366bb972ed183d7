// internal/ua/ua.go
//
// User-Agent parsing helpers.
//
// This wrapper isolates the third-party `github.com/avct/uasurfer` API so
// the order API never sees its enums or structs.
package ua

import (
	"strings"

	surfer "github.com/avct/uasurfer"
)

// Info is the slice of a User-Agent the order API cares about.
//
// Example (Chrome on macOS):
//
//	Browser "Chrome"
//	OS      "MacOSX"
//	Device  "desktop"
//	IsBot   false
//
// Device is one of "desktop", "mobile", "tablet", "bot", or "other".  It is
// used as a metrics label, so the set stays small and lower-case.
type Info struct {
	Browser string
	OS      string
	Device  string
	IsBot   bool
}

// Parse converts a raw header into an Info.  An empty header yields
// Device "other".
func Parse(raw string) Info {
	if strings.TrimSpace(raw) == "" {
		return Info{Device: "other"}
	}
	u := surfer.Parse(raw)

	info := Info{
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		OS:      strings.TrimPrefix(u.OS.Name.String(), "OS"),
		IsBot:   u.IsBot(),
	}

	switch {
	case info.IsBot:
		info.Device = "bot"
	case u.DeviceType == surfer.DeviceComputer:
		info.Device = "desktop"
	case u.DeviceType == surfer.DeviceTablet:
		info.Device = "tablet"
	case u.DeviceType == surfer.DevicePhone, u.DeviceType == surfer.DeviceWearable:
		info.Device = "mobile"
	default:
		info.Device = "other"
	}
	return info
}
