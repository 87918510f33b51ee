package pkg_mgr

import (
	"strings"

	"github.com/25smoking/upcheck/internal/core"
)

// parseFlatpakLine handles tab-separated `flatpak remote-ls --updates`:
//
//	Firefox	org.mozilla.firefox	121.0	stable
//
// Runtimes often leave the version column empty; the branch is used instead.
func parseFlatpakLine(line string, origin core.Origin) (core.UpdateRecord, bool) {
	if !strings.Contains(line, "\t") {
		return core.UpdateRecord{}, false
	}

	cols := strings.Split(line, "\t")
	if len(cols) < 3 {
		return core.UpdateRecord{}, false
	}

	name := strings.TrimSpace(cols[0])
	if name == "" || (name == "Name" && strings.TrimSpace(cols[1]) == "Application ID") {
		return core.UpdateRecord{}, false
	}

	version := strings.TrimSpace(cols[2])
	if version == "" && len(cols) >= 4 {
		version = strings.TrimSpace(cols[3])
	}
	if version == "" {
		return core.UpdateRecord{}, false
	}

	return newRecord(name, core.UnknownVersion, version, origin), true
}
