// Package launcher opens the user's terminal running the system upgrade
// command and waits for that terminal to close.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/25smoking/upcheck/internal/coord"
	appErrors "github.com/25smoking/upcheck/internal/errors"
)

const (
	DefaultTerminal     = "cosmic-term"
	DefaultPollInterval = 500 * time.Millisecond
	DefaultSettleDelay  = 3 * time.Second
)

// Spawner starts a process without waiting for it.
type Spawner interface {
	Spawn(ctx context.Context, name string, args ...string) error
}

// SpawnFunc adapts a function to Spawner.
type SpawnFunc func(ctx context.Context, name string, args ...string) error

func (f SpawnFunc) Spawn(ctx context.Context, name string, args ...string) error {
	return f(ctx, name, args...)
}

type execSpawner struct{}

func (execSpawner) Spawn(_ context.Context, name string, args ...string) error {
	//nolint:gosec // G204: terminal comes from the user's own config
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Most terminals detach; reap whatever is left.
	go func() { _ = cmd.Wait() }()
	return nil
}

type Option func(*Launcher)

func WithSpawner(s Spawner) Option {
	return func(l *Launcher) {
		if s != nil {
			l.spawner = s
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Launcher) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(l *Launcher) {
		if d > 0 {
			l.pollInterval = d
		}
	}
}

// WithSettleDelay waits d after the terminal closes so package databases
// are settled before the next check.
func WithSettleDelay(d time.Duration) Option {
	return func(l *Launcher) {
		l.settleDelay = d
	}
}

type Launcher struct {
	terminal     string
	paths        coord.Paths
	spawner      Spawner
	logger       *zap.Logger
	pollInterval time.Duration
	settleDelay  time.Duration
	pid          int
}

func New(terminal string, paths coord.Paths, opts ...Option) *Launcher {
	if strings.TrimSpace(terminal) == "" {
		terminal = DefaultTerminal
	}
	l := &Launcher{
		terminal:     terminal,
		paths:        paths,
		spawner:      execSpawner{},
		logger:       zap.NewNop(),
		pollInterval: DefaultPollInterval,
		settleDelay:  DefaultSettleDelay,
		pid:          os.Getpid(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// MarkerPath is the file the terminal deletes when it exits.
func (l *Launcher) MarkerPath() string {
	return l.paths.TerminalMarkerPath(l.pid)
}

// Run opens the terminal with upgrade and blocks until it has closed and
// the settle delay has passed.
func (l *Launcher) Run(ctx context.Context, upgrade string) error {
	if strings.TrimSpace(upgrade) == "" {
		return appErrors.New(appErrors.CodeLaunchFailed, "no upgrade command", nil)
	}

	marker := l.MarkerPath()
	if err := os.MkdirAll(filepath.Dir(marker), 0o755); err != nil {
		return appErrors.New(appErrors.CodeLaunchFailed, "create runtime dir", err)
	}
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return appErrors.New(appErrors.CodeLaunchFailed, "create terminal marker", err)
	}

	args := []string{"-e", "sh", "-c", WrapCommand(upgrade, marker)}
	l.logger.Info("launching upgrade terminal",
		zap.String("terminal", l.terminal),
		zap.String("command", upgrade),
	)
	if err := l.spawner.Spawn(ctx, l.terminal, args...); err != nil {
		_ = os.Remove(marker)
		return appErrors.New(appErrors.CodeLaunchFailed,
			fmt.Sprintf("launch terminal %q: %v", l.terminal, err), err)
	}

	if err := l.waitForMarker(ctx, marker); err != nil {
		return err
	}
	l.logger.Debug("upgrade terminal closed")

	if l.settleDelay > 0 {
		select {
		case <-time.After(l.settleDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (l *Launcher) waitForMarker(ctx context.Context, marker string) error {
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		if _, err := os.Stat(marker); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// WrapCommand builds the shell script run inside the terminal: the upgrade,
// a prompt to close, then removal of marker.
func WrapCommand(upgrade, marker string) string {
	return fmt.Sprintf(`%s && echo "Update completed. Press Enter to exit..." && read _; rm -f "%s"`,
		upgrade, marker)
}
