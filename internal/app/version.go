// Package app wires configuration, solvers and front ends into the vecsolve
// program: command dispatch, lifecycle and version reporting.
package app

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/vecsolve/internal/lanes"
)

// Build-time variables set via -ldflags.
//
//	go build -ldflags="-X github.com/agbru/vecsolve/internal/app.Version=v1.2.3 -X github.com/agbru/vecsolve/internal/app.Commit=abc123 -X github.com/agbru/vecsolve/internal/app.BuildDate=2025-01-01T00:00:00Z"
var (
	// Version is the semantic version of the application (e.g., "v1.0.0").
	Version = "dev"
	// Commit is the short Git commit hash.
	Commit = "unknown"
	// BuildDate is the ISO 8601 timestamp of the build.
	BuildDate = "unknown"
)

// HasVersionFlag reports whether any argument is a version flag, so that
// --version works in any position.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version, build and runtime details to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "vecsolve %s\n", Version)
	fmt.Fprintf(out, "  Commit:     %s\n", Commit)
	fmt.Fprintf(out, "  Built:      %s\n", BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
	fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  Vector ext: %s (native width %d)\n", lanes.DetectExtension(), lanes.NativeWidth())
}

// VersionData is the machine-readable form of PrintVersion.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Extension string `json:"extension"`
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Extension: lanes.DetectExtension().String(),
	}
}
