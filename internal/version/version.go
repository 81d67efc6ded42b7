package version

import "runtime/debug"

// devVersion marks a build without an injected version.
const devVersion = "main"

// Version is the pricefeed release, injected at build time:
// -ldflags "-X github.com/rxtech-lab/pricefeed/internal/version.Version=1.2.3"
var Version = devVersion

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the injected version. Development builds installed with
// `go install ...@vX.Y.Z` report the module version recorded in the binary instead.
func GetVersion() string {
	if Version != devVersion {
		return Version
	}

	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return Version
}
