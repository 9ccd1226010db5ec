// ABOUTME: Version constants for the VoiceWire player
// ABOUTME: Reported in logs and stream handshakes
package version

const (
	// Version is the release version of this module.
	Version = "0.1.0"

	// Product is the product name reported to peers.
	Product = "VoiceWire Player"

	// Manufacturer identifies the project.
	Manufacturer = "VoiceWire"
)
