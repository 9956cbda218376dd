package generators

import (
	"time"

	"github.com/c12-ai/robomock/pkg/protocol"
)

// NewImage builds a CapturedImage descriptor from its inputs: a fabricated
// URL in the contract format and a fixed-layout timestamp (spec §4.5/§9).
func NewImage(base, workStation, deviceID, deviceType, component string, at time.Time) protocol.CapturedImage {
	return protocol.CapturedImage{
		WorkStation: workStation,
		DeviceID:    deviceID,
		DeviceType:  deviceType,
		Component:   component,
		URL:         protocol.BuildImageURL(base, workStation, deviceID, component, at),
		CreateTime:  protocol.FormatImageTimestamp(at),
	}
}

// NewImages builds one CapturedImage per component, all timestamped at the
// same instant.
func NewImages(base, workStation, deviceID, deviceType string, components []string, at time.Time) []protocol.CapturedImage {
	images := make([]protocol.CapturedImage, 0, len(components))
	for _, c := range components {
		images = append(images, NewImage(base, workStation, deviceID, deviceType, c, at))
	}
	return images
}
