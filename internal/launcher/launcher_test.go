package launcher

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/25smoking/upcheck/internal/coord"
	appErrors "github.com/25smoking/upcheck/internal/errors"
)

type spawnCall struct {
	name string
	args []string
}

func TestRunWaitsForMarkerRemoval(t *testing.T) {
	paths := coord.Paths{RuntimeDir: t.TempDir(), AppID: "upcheck-test"}

	var got spawnCall
	spawner := SpawnFunc(func(_ context.Context, name string, args ...string) error {
		got = spawnCall{name: name, args: args}
		go func() {
			time.Sleep(30 * time.Millisecond)
			_ = os.Remove(paths.TerminalMarkerPath(os.Getpid()))
		}()
		return nil
	})

	l := New("kitty", paths,
		WithSpawner(spawner),
		WithPollInterval(5*time.Millisecond),
		WithSettleDelay(0),
	)

	if err := l.Run(context.Background(), "paru -Syu"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got.name != "kitty" {
		t.Errorf("terminal = %q, want kitty", got.name)
	}
	if len(got.args) != 4 || got.args[0] != "-e" || got.args[1] != "sh" || got.args[2] != "-c" {
		t.Fatalf("args = %q", got.args)
	}
	if !strings.HasPrefix(got.args[3], "paru -Syu && ") {
		t.Errorf("script = %q", got.args[3])
	}
	if !strings.Contains(got.args[3], l.MarkerPath()) {
		t.Errorf("script does not remove marker: %q", got.args[3])
	}
}

func TestRunMarkerExistsWhileTerminalOpen(t *testing.T) {
	paths := coord.Paths{RuntimeDir: t.TempDir(), AppID: "upcheck-test"}
	l := New("", paths, WithSettleDelay(0), WithPollInterval(5*time.Millisecond))

	l.spawner = SpawnFunc(func(context.Context, string, ...string) error {
		if _, err := os.Stat(l.MarkerPath()); err != nil {
			t.Errorf("marker missing at spawn time: %v", err)
		}
		return os.Remove(l.MarkerPath())
	})

	if err := l.Run(context.Background(), "sudo apt update && sudo apt upgrade"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if l.terminal != DefaultTerminal {
		t.Errorf("terminal = %q, want default", l.terminal)
	}
}

func TestRunSpawnFailureRemovesMarker(t *testing.T) {
	paths := coord.Paths{RuntimeDir: t.TempDir(), AppID: "upcheck-test"}
	spawnErr := errors.New("exec: \"no-such-term\": executable file not found in $PATH")
	l := New("no-such-term", paths, WithSpawner(SpawnFunc(func(context.Context, string, ...string) error {
		return spawnErr
	})))

	err := l.Run(context.Background(), "flatpak update")
	if !appErrors.IsCode(err, appErrors.CodeLaunchFailed) {
		t.Fatalf("Run() error = %v, want code %s", err, appErrors.CodeLaunchFailed)
	}
	if !errors.Is(err, spawnErr) {
		t.Errorf("Run() error does not wrap spawn error: %v", err)
	}
	if _, err := os.Stat(l.MarkerPath()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("marker left behind: %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	paths := coord.Paths{RuntimeDir: t.TempDir(), AppID: "upcheck-test"}
	l := New("kitty", paths,
		WithSpawner(SpawnFunc(func(context.Context, string, ...string) error { return nil })),
		WithPollInterval(5*time.Millisecond),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := l.Run(ctx, "sudo zypper update"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, want deadline exceeded", err)
	}
}

func TestRunEmptyCommand(t *testing.T) {
	l := New("kitty", coord.Paths{RuntimeDir: t.TempDir(), AppID: "x"})
	if err := l.Run(context.Background(), "  "); !appErrors.IsCode(err, appErrors.CodeLaunchFailed) {
		t.Errorf("Run() error = %v, want code %s", err, appErrors.CodeLaunchFailed)
	}
}

func TestWrapCommand(t *testing.T) {
	got := WrapCommand("sudo apt update && sudo apt upgrade", "/run/user/1000/x.marker")
	want := `sudo apt update && sudo apt upgrade && echo "Update completed. Press Enter to exit..." && read _; rm -f "/run/user/1000/x.marker"`
	if got != want {
		t.Errorf("WrapCommand() =\n%s\nwant\n%s", got, want)
	}
}
