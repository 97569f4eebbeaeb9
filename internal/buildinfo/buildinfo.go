// Package buildinfo exposes build metadata injected via -ldflags.
package buildinfo

import "fmt"

var (
	BuildVersion string
	BuildDate    string
	BuildCommit  string
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Banner returns the build metadata as a printable block.
func Banner() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		orNA(BuildVersion), orNA(BuildDate), orNA(BuildCommit))
}

// PrintBuildInfo writes the banner to stdout.
func PrintBuildInfo() {
	fmt.Print(Banner())
}
