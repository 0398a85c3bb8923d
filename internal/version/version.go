// ABOUTME: Version and product identification
// ABOUTME: Shared by the CLI version flag and log output
package version

// Version is overridden at build time with -ldflags "-X ...version.Version=..."
var Version = "0.1.0"

const (
	// Product is the human-readable product name
	Product = "sfxpool"

	// Manufacturer identifies who ships the binary
	Manufacturer = "Resonate"
)

// String returns "sfxpool 0.1.0"
func String() string {
	return Product + " " + Version
}
