package protocol

import (
	"fmt"
	"time"
)

// CapturedImage describes one fabricated image produced by take_photo.
// URL is a string matching a configurable base URL; no HTTP semantics are
// implied (spec §9).
type CapturedImage struct {
	WorkStation string `json:"work_station"`
	DeviceID    string `json:"device_id"`
	DeviceType  string `json:"device_type"`
	Component   string `json:"component"`
	URL         string `json:"url"`
	CreateTime  string `json:"create_time"`
}

// imageTimestampLayout is the fixed create_time format: YYYY-MM-DD_HH-MM-SS.mmm.
const imageTimestampLayout = "2006-01-02_15-04-05.000"

// FormatImageTimestamp renders t in the fixed create_time format.
func FormatImageTimestamp(t time.Time) string {
	return t.Format(imageTimestampLayout)
}

// BuildImageURL fabricates an image URL in the contract format:
// {base}/{workstation}/{device_id}/{component}/{timestamp}.jpg
func BuildImageURL(base, workStation, deviceID, component string, at time.Time) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s.jpg", base, workStation, deviceID, component, FormatImageTimestamp(at))
}
