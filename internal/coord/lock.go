package coord

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/process"
)

// ErrContended is returned by Acquire when another live process holds the lock.
var ErrContended = errors.New("lock held by another instance")

// Lock is an acquired check lock. The zero value is not usable.
type Lock struct {
	path string
	file *os.File

	once sync.Once
	err  error
}

// Acquire takes the lock at path without blocking and records the current
// PID in it.
func Acquire(path string) (*Lock, error) {
	f, err := acquire(path)
	if err != nil {
		return nil, err
	}

	if err := writePID(f); err != nil {
		_ = unlock(f)
		_ = f.Close()
		return nil, fmt.Errorf("write lock owner: %w", err)
	}

	return &Lock{path: path, file: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release truncates and removes the lock file, then unlocks it. Calling it
// more than once is a no-op.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	l.once.Do(func() {
		var errs []error
		if err := l.file.Truncate(0); err != nil {
			errs = append(errs, err)
		}
		if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
		if err := unlock(l.file); err != nil {
			errs = append(errs, err)
		}
		if err := l.file.Close(); err != nil {
			errs = append(errs, err)
		}
		l.err = errors.Join(errs...)
	})
	return l.err
}

// Owner reads the PID stored in the lock file at path and reports whether
// that process is still running.
func Owner(path string) (pid int, alive bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false, err
	}

	pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false, fmt.Errorf("parse lock owner %q: %w", path, err)
	}

	alive, err = process.PidExists(int32(pid))
	if err != nil {
		return pid, false, err
	}
	return pid, alive, nil
}

func writePID(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.WriteAt([]byte(strconv.Itoa(os.Getpid())+"\n"), 0); err != nil {
		return err
	}
	return f.Sync()
}
