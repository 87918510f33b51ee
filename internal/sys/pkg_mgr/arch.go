package pkg_mgr

import (
	"strings"

	"github.com/25smoking/upcheck/internal/core"
)

// parseArchLine handles checkupdates and `paru/yay -Qu` output:
//
//	linux 6.6.1.arch1-1 -> 6.6.2.arch1-1
//	yay-bin 12.1-1
func parseArchLine(line string, origin core.Origin) (core.UpdateRecord, bool) {
	fields := strings.Fields(line)

	switch {
	case len(fields) >= 4 && fields[2] == "->":
		// trailing tokens such as "[ignored]" are tolerated
		if !validName(fields[0]) || !validVersion(fields[1]) || !validVersion(fields[3]) {
			return core.UpdateRecord{}, false
		}
		return newRecord(fields[0], fields[1], fields[3], origin), true
	case len(fields) == 2:
		if !validName(fields[0]) || !validVersion(fields[1]) {
			return core.UpdateRecord{}, false
		}
		return newRecord(fields[0], core.UnknownVersion, fields[1], origin), true
	}
	return core.UpdateRecord{}, false
}
