package pkg_mgr

import (
	"strings"

	"github.com/25smoking/upcheck/internal/core"
)

var zypperNoise = []string{
	"S |",
	"--+",
	"Listing...",
	"Done",
	"WARNING:",
	"Loading repository data...",
	"Reading installed packages...",
}

// parseZypperLine handles the `zypper list-updates` table:
//
//	S | Repository | Name  | Current Version | Available Version | Arch
//	--+------------+-------+-----------------+-------------------+-------
//	v | Main       | vim   | 9.0.1894-1.1    | 9.0.2103-1.1      | x86_64
func parseZypperLine(line string, origin core.Origin) (core.UpdateRecord, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return core.UpdateRecord{}, false
	}
	for _, prefix := range zypperNoise {
		if strings.HasPrefix(trimmed, prefix) {
			return core.UpdateRecord{}, false
		}
	}

	cols := strings.Split(line, "|")
	if len(cols) < 5 {
		return core.UpdateRecord{}, false
	}

	name := strings.TrimSpace(cols[2])
	current := strings.TrimSpace(cols[3])
	available := strings.TrimSpace(cols[4])
	if !validName(name) || !validVersion(available) {
		return core.UpdateRecord{}, false
	}

	return newRecord(name, current, available, origin), true
}
