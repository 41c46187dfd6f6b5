// Package compileinfo reports the release version of freyjasummary along with
// the VCS details that the Go toolchain stamps into the binary.
package compileinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Version is the release version. Override with
// -ldflags "-X github.com/carbocation/freyjasummary/compileinfo.Version=..."
var Version = "v0.9.0"

type CompileInfo struct {
	Version    string
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.GoVersion == "" {
		return fmt.Sprintf("freyjasummary %s (no build information available)", c.Version)
	}

	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("freyjasummary %s: this %s binary was built with %s at commit %v at time %v.%s", c.Version, c.Package, c.GoVersion, c.Commit, c.CommitTime, mod)
}

func Get() CompileInfo {
	out := CompileInfo{Version: Version}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Fprint writes the compile info to w.
func Fprint(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n", Get())
	return err
}
