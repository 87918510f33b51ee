package pkg_mgr

import (
	"strings"
	"unicode"

	"github.com/25smoking/upcheck/internal/core"
)

const dnfObsoletingHeader = "Obsoleting Packages"

// parseDnfLine handles `dnf check-update -q`:
//
//	kernel-core.x86_64    6.6.2-200.fc39    updates
func parseDnfLine(line string, origin core.Origin) (core.UpdateRecord, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return core.UpdateRecord{}, false
	}

	name, ok := dnfName(fields[0])
	if !ok || !validVersion(fields[1]) {
		return core.UpdateRecord{}, false
	}

	return newRecord(name, core.UnknownVersion, fields[1], origin), true
}

// parseDnfOutput applies parseDnfLine to a whole listing. A name.arch too
// long for its column is printed alone, with version and repo on the next
// indented line. Under the obsoletes header each update is followed by
// indented lines naming the installed packages it replaces; those are not
// updates.
//
//	Obsoleting Packages
//	grub2-tools.x86_64            1:2.06-100.fc39    updates
//	    grub2-tools.x86_64        1:2.06-95.fc39     @updates
func parseDnfOutput(lines []string, origin core.Origin) []core.UpdateRecord {
	var (
		records    []core.UpdateRecord
		pending    string
		obsoleting bool
	)
	seen := make(map[string]bool)

	for _, line := range lines {
		indented := line != "" && unicode.IsSpace(rune(line[0]))

		if pending != "" {
			head := pending
			pending = ""
			if indented {
				line = head + " " + strings.TrimSpace(line)
				indented = false
			}
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, dnfObsoletingHeader) {
			obsoleting = true
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) == 1 && !indented {
			if _, ok := dnfName(fields[0]); ok {
				pending = fields[0]
				continue
			}
		}

		if obsoleting && (indented || (len(fields) >= 3 && strings.HasPrefix(fields[2], "@"))) {
			continue
		}

		rec, ok := parseDnfLine(line, origin)
		if !ok {
			continue
		}
		key := rec.Name + "\x00" + rec.NewVersion
		if obsoleting && seen[key] {
			continue
		}
		seen[key] = true
		records = append(records, rec)
	}
	return records
}

// dnfName strips the architecture from a name.arch token.
func dnfName(token string) (string, bool) {
	dot := strings.LastIndex(token, ".")
	if dot <= 0 || dot == len(token)-1 {
		return "", false
	}
	name := token[:dot]
	return name, validName(name)
}
