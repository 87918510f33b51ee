// Package coord coordinates update checks between instances of the
// application running for the same user: a whole-file lock serialises
// checks and a sync marker tells the other instances one has completed.
package coord

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultAppID names the lock, sync and terminal marker files.
const DefaultAppID = "upcheck"

// Paths locates the coordination files of one application id.
type Paths struct {
	RuntimeDir string
	AppID      string
}

// ResolvePaths picks the runtime directory: override when set, then
// $XDG_RUNTIME_DIR, then /tmp.
func ResolvePaths(appID, override string) Paths {
	if appID == "" {
		appID = DefaultAppID
	}

	dir := override
	if dir == "" {
		dir = os.Getenv("XDG_RUNTIME_DIR")
	}
	if dir == "" {
		dir = "/tmp"
	}

	return Paths{RuntimeDir: dir, AppID: appID}
}

func (p Paths) LockPath() string {
	return filepath.Join(p.RuntimeDir, p.AppID+".lock")
}

func (p Paths) SyncPath() string {
	return filepath.Join(p.RuntimeDir, p.AppID+".sync")
}

// TerminalMarkerPath is removed by the upgrade terminal when it exits.
func (p Paths) TerminalMarkerPath(pid int) string {
	return filepath.Join(p.RuntimeDir, fmt.Sprintf("%s-terminal-%d.marker", p.AppID, pid))
}
