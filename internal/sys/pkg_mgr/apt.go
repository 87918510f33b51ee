package pkg_mgr

import (
	"strings"

	"github.com/25smoking/upcheck/internal/core"
)

// parseAptLine handles `apt list --upgradable`:
//
//	firefox/jammy-updates 121.0+build1-0ubuntu0.22.04.1 amd64 [upgradable from: 120.0+build2-0ubuntu0.22.04.1]
func parseAptLine(line string, origin core.Origin) (core.UpdateRecord, bool) {
	m := upgradableFrom.FindStringSubmatch(line)
	if m == nil {
		return core.UpdateRecord{}, false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return core.UpdateRecord{}, false
	}

	slash := strings.Index(fields[0], "/")
	if slash <= 0 {
		return core.UpdateRecord{}, false
	}
	name := fields[0][:slash]
	if !validName(name) || !validVersion(fields[1]) {
		return core.UpdateRecord{}, false
	}

	return newRecord(name, strings.TrimSpace(m[1]), fields[1], origin), true
}
