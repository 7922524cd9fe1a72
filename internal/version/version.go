// ABOUTME: Version information for autorhythm
// ABOUTME: Product, manufacturer and release version constants
package version

const (
	Version      = "0.3.0"
	Product      = "autorhythm"
	Manufacturer = "Resonate Protocol"
)

// String returns the product name and version, e.g. "autorhythm 0.3.0"
func String() string {
	return Product + " " + Version
}
