// ABOUTME: Version constants for the deck
// ABOUTME: Reported in the control protocol handshake and CLI banner
package version

const (
	// Version is the release version of this build
	Version = "0.1.0"

	// Product is the product name reported to controllers
	Product = "Monodeck"

	// Manufacturer identifies the project
	Manufacturer = "Monodeck Project"
)
