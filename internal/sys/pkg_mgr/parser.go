package pkg_mgr

import (
	"regexp"
	"strings"

	"github.com/25smoking/upcheck/internal/core"
)

// lineParser turns one output line into a record; ok is false for lines that
// do not match the family's format.
type lineParser func(line string, origin core.Origin) (rec core.UpdateRecord, ok bool)

var parsers = map[Family]lineParser{
	FamilyArch:    parseArchLine,
	FamilyApt:     parseAptLine,
	FamilyDnf:     parseDnfLine,
	FamilyZypper:  parseZypperLine,
	FamilyApk:     parseApkLine,
	FamilyFlatpak: parseFlatpakLine,
}

// outputParser handles families whose records depend on neighbouring lines.
type outputParser func(lines []string, origin core.Origin) []core.UpdateRecord

var outputParsers = map[Family]outputParser{
	FamilyDnf: parseDnfOutput,
}

var (
	// Package names across pacman/apt/dnf/apk share this alphabet.
	namePattern = regexp.MustCompile(`^[A-Za-z0-9@_+][A-Za-z0-9@._+:~-]*$`)

	upgradableFrom = regexp.MustCompile(`\[upgradable from: ([^\]]*)\]`)
)

// Parse converts captured stdout of m's update listing into records. Lines
// that do not match the format are dropped. Invalid UTF-8 is replaced.
func Parse(m Manager, out []byte, origin core.Origin) []core.UpdateRecord {
	return ParseFamily(m.Family(), out, origin)
}

// ParseFamily is Parse keyed by parser family.
func ParseFamily(family Family, out []byte, origin core.Origin) []core.UpdateRecord {
	parse, ok := parsers[family]
	if !ok {
		return nil
	}

	text := strings.ToValidUTF8(string(out), "\uFFFD")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	if parseAll, ok := outputParsers[family]; ok {
		return parseAll(lines, origin)
	}

	var records []core.UpdateRecord
	for _, line := range lines {
		if rec, ok := parse(line, origin); ok {
			records = append(records, rec)
		}
	}
	return records
}

func newRecord(name, current, next string, origin core.Origin) core.UpdateRecord {
	if current == "" {
		current = core.UnknownVersion
	}
	return core.UpdateRecord{
		Name:           name,
		CurrentVersion: current,
		NewVersion:     next,
		Origin:         origin,
	}
}

func validName(s string) bool {
	return namePattern.MatchString(s)
}

// validVersion rejects tokens that cannot be a version string.
func validVersion(s string) bool {
	if s == "" || strings.ContainsAny(s, "[]|()") {
		return false
	}
	return strings.ContainsAny(s, "0123456789")
}
