package core

import (
	"encoding/json"
	"testing"
)

func TestNewReportCounts(t *testing.T) {
	official := []UpdateRecord{
		{Name: "firefox", CurrentVersion: "120.0-1", NewVersion: "121.0-1", Origin: OriginOfficial},
		{Name: "vim", CurrentVersion: "9.0-2", NewVersion: "9.1-1", Origin: OriginOfficial},
	}
	aur := []UpdateRecord{
		{Name: "yay-bin", CurrentVersion: UnknownVersion, NewVersion: "12.1-1", Origin: OriginAUR},
	}

	report := NewReport(official, aur)

	if report.OfficialCount != 2 || report.AURCount != 1 || report.TotalCount != 3 {
		t.Fatalf("counts = %d/%d/%d, want 2/1/3", report.OfficialCount, report.AURCount, report.TotalCount)
	}
	if len(report.Records) != report.TotalCount {
		t.Errorf("len(Records) = %d, want %d", len(report.Records), report.TotalCount)
	}
	if report.Records[0].Name != "firefox" || report.Records[2].Name != "yay-bin" {
		t.Errorf("records out of order: %+v", report.Records)
	}
	if !report.HasUpdates() {
		t.Error("HasUpdates() = false, want true")
	}
	if got := len(report.AUR()); got != 1 {
		t.Errorf("len(AUR()) = %d, want 1", got)
	}
	if got := len(report.Official()); got != 2 {
		t.Errorf("len(Official()) = %d, want 2", got)
	}
}

func TestNewReportEmpty(t *testing.T) {
	report := NewReport(nil, nil)
	if report.HasUpdates() {
		t.Error("HasUpdates() = true for empty report")
	}
	if report.TotalCount != 0 || report.Records == nil {
		t.Errorf("empty report = %+v, want zero counts and non-nil records", report)
	}
}

func TestOriginJSON(t *testing.T) {
	rec := UpdateRecord{Name: "paru", CurrentVersion: UnknownVersion, NewVersion: "2.0.3-1", Origin: OriginAUR}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"name":"paru","current_version":"unknown","new_version":"2.0.3-1","origin":"aur"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var o Origin
	if err := o.UnmarshalText([]byte("Official")); err != nil || o != OriginOfficial {
		t.Errorf("UnmarshalText(Official) = %v, %v", o, err)
	}
	if err := o.UnmarshalText([]byte("ppa")); err == nil {
		t.Error("UnmarshalText(ppa) expected error")
	}
}
