package pkg_mgr

import (
	"testing"
)

func TestSupportsAUR(t *testing.T) {
	for _, m := range All() {
		want := m == Paru || m == Yay
		if got := m.SupportsAUR(); got != want {
			t.Errorf("%s.SupportsAUR() = %v, want %v", m, got, want)
		}
		cmd, ok := m.AURCheck()
		if ok != want {
			t.Errorf("%s.AURCheck() ok = %v, want %v", m, ok, want)
		}
		if !ok && !cmd.IsZero() {
			t.Errorf("%s.AURCheck() = %q, want zero command", m, cmd)
		}
	}
}

func TestCatalogCommands(t *testing.T) {
	tests := []struct {
		manager  Manager
		official string
		aur      string
		upgrade  string
	}{
		{Pacman, "checkupdates", "", "sudo pacman -Syu"},
		{Paru, "checkupdates", "paru -Qu --aur", "paru -Syu"},
		{Yay, "checkupdates", "yay -Qu --aur", "yay -Syu"},
		{Apt, "apt list --upgradable", "", "sudo apt update && sudo apt upgrade"},
		{Dnf, "dnf check-update -q", "", "sudo dnf upgrade"},
		{Zypper, "zypper list-updates", "", "sudo zypper update"},
		{Apk, "apk -u list", "", "sudo apk upgrade"},
		{Flatpak, "flatpak remote-ls --updates", "", "flatpak update"},
	}

	for _, tt := range tests {
		t.Run(tt.manager.Name(), func(t *testing.T) {
			if got := tt.manager.OfficialCheck().String(); got != tt.official {
				t.Errorf("OfficialCheck() = %q, want %q", got, tt.official)
			}
			aur, _ := tt.manager.AURCheck()
			if got := aur.String(); got != tt.aur {
				t.Errorf("AURCheck() = %q, want %q", got, tt.aur)
			}
			if got := tt.manager.SystemUpdateCommand(); got != tt.upgrade {
				t.Errorf("SystemUpdateCommand() = %q, want %q", got, tt.upgrade)
			}
		})
	}
}

func TestAllPriorityOrder(t *testing.T) {
	want := []Manager{Paru, Yay, Pacman, Apt, Dnf, Zypper, Apk, Flatpak}
	got := All()
	if len(got) != len(want) {
		t.Fatalf("len(All()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// callers must not be able to reorder the shared table
	got[0] = Flatpak
	if All()[0] != Paru {
		t.Error("All() exposes the internal priority slice")
	}
}

func TestOfficialCheckIsCopied(t *testing.T) {
	cmd := Apt.OfficialCheck()
	cmd.Args[0] = "show"
	if Apt.OfficialCheck().Args[0] != "list" {
		t.Error("OfficialCheck() exposes the catalog's argument slice")
	}
}

func TestParseManager(t *testing.T) {
	for _, m := range All() {
		got, err := ParseManager(m.Name())
		if err != nil || got != m {
			t.Errorf("ParseManager(%q) = %v, %v", m.Name(), got, err)
		}
	}

	if got, err := ParseManager("  PARU "); err != nil || got != Paru {
		t.Errorf("ParseManager(PARU) = %v, %v", got, err)
	}
	if _, err := ParseManager("brew"); err == nil {
		t.Error("ParseManager(brew) expected error")
	}
}

func TestManagerText(t *testing.T) {
	data, err := Yay.MarshalText()
	if err != nil || string(data) != "yay" {
		t.Fatalf("MarshalText() = %q, %v", data, err)
	}

	var m Manager
	if err := m.UnmarshalText([]byte("zypper")); err != nil || m != Zypper {
		t.Errorf("UnmarshalText(zypper) = %v, %v", m, err)
	}

	var zero Manager
	if _, err := zero.MarshalText(); err == nil {
		t.Error("MarshalText() on zero value expected error")
	}
	if zero.Valid() {
		t.Error("zero Manager reported valid")
	}
}
