// Package build contains values set at build time by the linker "-X" flag.
package build

const DevVersionValue = "dev"

// nolint: gochecknoglobals
var (
	BuildVersion = DevVersionValue
	BuildDate    = "n/a"
	GitCommit    = "n/a"
)
