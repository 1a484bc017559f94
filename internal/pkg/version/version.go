package version

import (
	"runtime"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/build"
)

// Version for --version flag.
func Version() string {
	return "Version:    " + build.BuildVersion + "\n" +
		"Git commit: " + build.GitCommit + "\n" +
		"Build date: " + build.BuildDate + "\n" +
		"Go version: " + runtime.Version() + "\n" +
		"Os/Arch:    " + runtime.GOOS + "/" + runtime.GOARCH + "\n"
}

// IsDev returns true if the binary was built without the version, for example by "go run".
func IsDev() bool {
	return build.BuildVersion == build.DevVersionValue
}
