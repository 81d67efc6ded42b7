package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/suite"
)

type VersionTestSuite struct {
	suite.Suite
	savedVersion string
	savedReader  func() (*debug.BuildInfo, bool)
}

func TestVersionSuite(t *testing.T) {
	suite.Run(t, new(VersionTestSuite))
}

func (suite *VersionTestSuite) SetupTest() {
	suite.savedVersion = Version
	suite.savedReader = readBuildInfo
}

func (suite *VersionTestSuite) TearDownTest() {
	Version = suite.savedVersion
	readBuildInfo = suite.savedReader
}

func buildInfo(mainVersion string, ok bool) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		info := &debug.BuildInfo{} //nolint:exhaustruct
		info.Main.Version = mainVersion

		return info, ok
	}
}

func (suite *VersionTestSuite) TestGetVersion() {
	testCases := []struct {
		name     string
		injected string
		reader   func() (*debug.BuildInfo, bool)
		expected string
	}{
		{"injected wins", "1.2.3", buildInfo("v0.9.0", true), "1.2.3"},
		{"module version", devVersion, buildInfo("v0.9.0", true), "v0.9.0"},
		{"devel build", devVersion, buildInfo("(devel)", true), devVersion},
		{"no build info", devVersion, buildInfo("", false), devVersion},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			Version = tc.injected
			readBuildInfo = tc.reader

			suite.Equal(tc.expected, GetVersion())
		})
	}
}
