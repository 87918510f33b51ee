package pkg_mgr

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func fakeLookPath(installed ...string) LookPathFunc {
	set := make(map[string]bool, len(installed))
	for _, name := range installed {
		set[name] = true
	}
	return func(file string) (string, error) {
		if set[file] {
			return "/usr/bin/" + file, nil
		}
		return "", exec.ErrNotFound
	}
}

func TestDetectAvailableOrder(t *testing.T) {
	d := NewDetector(WithLookPath(fakeLookPath("flatpak", "pacman", "yay")))

	got := d.DetectAvailable(context.Background())
	want := []Manager{Yay, Pacman, Flatpak}
	if len(got) != len(want) {
		t.Fatalf("DetectAvailable() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DetectAvailable()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	preferred, ok := d.Preferred(context.Background())
	if !ok || preferred != Yay {
		t.Errorf("Preferred() = %v, %v, want yay", preferred, ok)
	}
}

func TestPreferredNone(t *testing.T) {
	d := NewDetector(WithLookPath(fakeLookPath()))
	if m, ok := d.Preferred(context.Background()); ok {
		t.Errorf("Preferred() = %v, want none", m)
	}
}

func TestProbeFailuresAreAbsorbed(t *testing.T) {
	lookPath := func(file string) (string, error) {
		switch file {
		case "paru":
			panic("broken probe")
		case "apt":
			return "", errors.New("permission denied")
		case "dnf":
			return "/usr/bin/dnf", nil
		}
		return "", exec.ErrNotFound
	}

	d := NewDetector(WithLookPath(lookPath))
	got := d.DetectAvailable(context.Background())
	if len(got) != 1 || got[0] != Dnf {
		t.Errorf("DetectAvailable() = %v, want [dnf]", got)
	}
}

func TestWithCandidatesKeepsPriority(t *testing.T) {
	d := NewDetector(
		WithLookPath(fakeLookPath("pacman", "paru", "yay", "apt")),
		WithCandidates(Pacman, Yay, Paru),
	)

	got := d.DetectAvailable(context.Background())
	want := []Manager{Paru, Yay, Pacman}
	if len(got) != len(want) {
		t.Fatalf("DetectAvailable() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DetectAvailable()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDetectAvailableCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDetector(WithLookPath(fakeLookPath("paru")))
	if got := d.DetectAvailable(ctx); len(got) != 0 {
		t.Errorf("DetectAvailable() with cancelled ctx = %v, want none", got)
	}
}
