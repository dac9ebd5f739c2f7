// Package version exists solely so that we can store the version of this application
// in one location.
//
// The version is reported by the "-version" flag, and it is also recorded in our
// log output when execution starts, so that bug reports can be tied to a release.
package version

import "fmt"

var (
	// version is populated with our release tag, at build-time via:
	//
	//   go build -ldflags "-X github.com/skx/chip8ulator/version.version=v1.2.3"
	version = "unreleased"
)

// GetVersionBanner returns a banner which is suitable for printing, to show our name,
// version, and homepage link.
func GetVersionBanner() string {

	str := fmt.Sprintf("chip8ulator %s\n%s\n", version, "https://github.com/skx/chip8ulator/")
	return str
}

// GetVersionString returns our version number as a string.
func GetVersionString() string {
	return version
}
