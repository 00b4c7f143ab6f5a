// Package buildinfo carries the version stamped in at link time:
//
//	-ldflags "-X picotris/internal/buildinfo.Version=v1.2.0 -X picotris/internal/buildinfo.Commit=abc123"
package buildinfo

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for the title bar and splash.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// String is the full identifier for the boot log.
func String() string {
	return Short() + " (commit " + Commit + ", built " + Date + ")"
}
