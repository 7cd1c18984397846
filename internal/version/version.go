// ABOUTME: Version information for monorec
// ABOUTME: Reported in logs and written into recorded files
package version

const (
	// Version is the current release
	Version = "0.1.0"

	// Product is the software name stored in WAV INFO chunks
	Product = "monorec"

	// Manufacturer identifies the maintainer
	Manufacturer = "harperreed"
)

// String returns "product version"
func String() string {
	return Product + " " + Version
}
