// Package version exposes the library version used in the default
// User-Agent header.
package version

import (
	"runtime/debug"
)

// Version is the library version. Overridable at build time with -ldflags.
var Version = "0.1.0"

// UserAgent returns the default User-Agent value for outbound requests.
func UserAgent() string {
	return "restdata/" + Version
}

// GoVersion returns the Go toolchain version the binary was built with.
func GoVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return ""
}
