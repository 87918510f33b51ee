package coord

import (
	"path/filepath"
	"testing"
)

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		name     string
		xdg      string
		override string
		want     string
	}{
		{name: "override wins", xdg: "/run/user/1000", override: "/custom", want: "/custom"},
		{name: "xdg runtime dir", xdg: "/run/user/1000", want: "/run/user/1000"},
		{name: "fallback tmp", want: "/tmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_RUNTIME_DIR", tt.xdg)
			p := ResolvePaths("", tt.override)
			if p.RuntimeDir != tt.want {
				t.Errorf("RuntimeDir = %q, want %q", p.RuntimeDir, tt.want)
			}
			if p.AppID != DefaultAppID {
				t.Errorf("AppID = %q, want %q", p.AppID, DefaultAppID)
			}
		})
	}
}

func TestPathNames(t *testing.T) {
	p := Paths{RuntimeDir: "/run/user/1000", AppID: "com.example.Updates"}

	if got, want := p.LockPath(), filepath.Join("/run/user/1000", "com.example.Updates.lock"); got != want {
		t.Errorf("LockPath() = %q, want %q", got, want)
	}
	if got, want := p.SyncPath(), filepath.Join("/run/user/1000", "com.example.Updates.sync"); got != want {
		t.Errorf("SyncPath() = %q, want %q", got, want)
	}
	if got, want := p.TerminalMarkerPath(4242), filepath.Join("/run/user/1000", "com.example.Updates-terminal-4242.marker"); got != want {
		t.Errorf("TerminalMarkerPath() = %q, want %q", got, want)
	}
}
