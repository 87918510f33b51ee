package core

import (
	"fmt"
	"strings"
)

// UnknownVersion is reported when a listing does not carry the installed version.
const UnknownVersion = "unknown"

// Origin tells which repository an update comes from.
type Origin uint8

const (
	OriginOfficial Origin = iota
	OriginAUR
)

func (o Origin) String() string {
	switch o {
	case OriginOfficial:
		return "official"
	case OriginAUR:
		return "aur"
	default:
		return fmt.Sprintf("origin(%d)", uint8(o))
	}
}

func (o Origin) MarshalText() ([]byte, error) {
	switch o {
	case OriginOfficial, OriginAUR:
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("invalid origin %d", uint8(o))
}

func (o *Origin) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "official":
		*o = OriginOfficial
	case "aur":
		*o = OriginAUR
	default:
		return fmt.Errorf("invalid origin %q", string(text))
	}
	return nil
}

// UpdateRecord is one pending package update parsed from a single output line.
type UpdateRecord struct {
	Name           string `json:"name" yaml:"name" toml:"name"`
	CurrentVersion string `json:"current_version" yaml:"current_version" toml:"current_version"`
	NewVersion     string `json:"new_version" yaml:"new_version" toml:"new_version"`
	Origin         Origin `json:"origin" yaml:"origin" toml:"origin"`
}

// IsAUR reports whether the record came from the AUR phase.
func (r UpdateRecord) IsAUR() bool {
	return r.Origin == OriginAUR
}

func (r UpdateRecord) String() string {
	return fmt.Sprintf("%s %s -> %s", r.Name, r.CurrentVersion, r.NewVersion)
}

// UpdateReport aggregates the records of one finished check.
//
// TotalCount == len(Records) == OfficialCount + AURCount holds for every
// report built with NewReport.
type UpdateReport struct {
	TotalCount    int            `json:"total_count" yaml:"total_count" toml:"total_count"`
	OfficialCount int            `json:"official_count" yaml:"official_count" toml:"official_count"`
	AURCount      int            `json:"aur_count" yaml:"aur_count" toml:"aur_count"`
	Records       []UpdateRecord `json:"records" yaml:"records" toml:"records"`
}

// NewReport builds the aggregate once both phases have settled. Official
// records come first, followed by AUR records, each in parse order.
func NewReport(official, aur []UpdateRecord) UpdateReport {
	records := make([]UpdateRecord, 0, len(official)+len(aur))
	records = append(records, official...)
	records = append(records, aur...)
	return UpdateReport{
		TotalCount:    len(records),
		OfficialCount: len(official),
		AURCount:      len(aur),
		Records:       records,
	}
}

// HasUpdates reports whether any update is pending.
func (r UpdateReport) HasUpdates() bool {
	return r.TotalCount > 0
}

// Official returns the records from the official repositories.
func (r UpdateReport) Official() []UpdateRecord {
	return r.filter(OriginOfficial)
}

// AUR returns the records from the AUR.
func (r UpdateReport) AUR() []UpdateRecord {
	return r.filter(OriginAUR)
}

func (r UpdateReport) filter(origin Origin) []UpdateRecord {
	var out []UpdateRecord
	for _, rec := range r.Records {
		if rec.Origin == origin {
			out = append(out, rec)
		}
	}
	return out
}
