package compileinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromDebug(t *testing.T) {
	info := &debug.BuildInfo{
		GoVersion: "go1.21.0",
		Path:      "github.com/carbocation/c14misc/cmd/c14phases",
		Main:      debug.Module{Path: "github.com/carbocation/c14misc"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2021-03-01T00:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	b := fromDebug(info, true)
	if b.Revision != "abc123" || !b.Dirty || b.Module != "github.com/carbocation/c14misc" {
		t.Errorf("Unexpected build info %+v", b)
	}

	s := b.String()
	for _, want := range []string{"c14phases", "go1.21.0", "abc123", "uncommitted", "2021-03-01"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in %q", want, s)
		}
	}
}

func TestFromDebugMissing(t *testing.T) {
	b := fromDebug(nil, false)
	if b != (BuildInfo{}) {
		t.Errorf("Expected empty build info, got %+v", b)
	}
	if !strings.Contains(b.String(), "No build information") {
		t.Errorf("Unexpected string %q", b.String())
	}
}
