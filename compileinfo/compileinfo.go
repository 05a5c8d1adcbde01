// Package compileinfo reports which commit a c14misc tool was built from, so
// that a figure or table can be traced back to the code that produced it.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// BuildInfo describes the binary that is running.
type BuildInfo struct {
	Binary     string
	Module     string
	GoVersion  string
	Revision   string
	RevisionAt string
	Dirty      bool
}

func (b BuildInfo) String() string {
	if b.GoVersion == "" {
		return "No build information is embedded in this binary."
	}

	revision := b.Revision
	if revision == "" {
		revision = "an unknown revision"
	}
	if b.Dirty {
		revision += " (with uncommitted changes)"
	}

	when := ""
	if b.RevisionAt != "" {
		when = " from " + b.RevisionAt
	}

	return fmt.Sprintf("%s (%s) built with %s at %s%s", b.Binary, b.Module, b.GoVersion, revision, when)
}

// Read collects the build information that the go tool embeds in binaries.
func Read() BuildInfo {
	return fromDebug(debug.ReadBuildInfo())
}

func fromDebug(info *debug.BuildInfo, ok bool) BuildInfo {
	var out BuildInfo
	if !ok || info == nil {
		return out
	}

	out.GoVersion = info.GoVersion
	out.Binary = info.Path
	out.Module = info.Main.Path
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.time":
			out.RevisionAt = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}

// Fprint writes the build information on one line.
func Fprint(w io.Writer) {
	fmt.Fprintln(w, Read())
}

// PrintToStdErr writes the build information to stderr, keeping stdout free
// for the tool's output.
func PrintToStdErr() {
	Fprint(os.Stderr)
}
