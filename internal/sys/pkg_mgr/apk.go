package pkg_mgr

import (
	"regexp"
	"strings"

	"github.com/25smoking/upcheck/internal/core"
)

var apkRelease = regexp.MustCompile(`^r[0-9]+$`)

// parseApkLine handles `apk -u list`:
//
//	busybox-1.36.1-r5 x86_64 {busybox} (GPL-2.0-only) [upgradable from: busybox-1.36.1-r4]
func parseApkLine(line string, origin core.Origin) (core.UpdateRecord, bool) {
	m := upgradableFrom.FindStringSubmatch(line)
	if m == nil {
		return core.UpdateRecord{}, false
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return core.UpdateRecord{}, false
	}

	name, version, ok := splitApkToken(fields[0])
	if !ok || !validName(name) || !validVersion(version) {
		return core.UpdateRecord{}, false
	}

	current := strings.TrimPrefix(strings.TrimSpace(m[1]), name+"-")
	return newRecord(name, current, version, origin), true
}

// splitApkToken splits "<name>-<version>[-rN]" at the version boundary.
// apk prints name and version joined in the first token, and the release
// suffix contains a dash, so the last dash alone would leave "-rN" as the version.
func splitApkToken(token string) (name, version string, ok bool) {
	i := strings.LastIndex(token, "-")
	if i <= 0 || i == len(token)-1 {
		return "", "", false
	}
	head, tail := token[:i], token[i+1:]

	if apkRelease.MatchString(tail) {
		if j := strings.LastIndex(head, "-"); j > 0 {
			return head[:j], head[j+1:] + "-" + tail, true
		}
	}
	return head, tail, true
}
