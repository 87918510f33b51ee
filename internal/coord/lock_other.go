//go:build !unix

package coord

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func acquire(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create runtime dir: %w", err)
	}

	for i := 0; i < 2; i++ {
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		// Owner crashed without cleaning up: take the file over.
		if _, alive, oerr := Owner(path); oerr == nil && !alive {
			_ = os.Remove(path)
			continue
		}
		return nil, ErrContended
	}
	return nil, ErrContended
}

func unlock(*os.File) error {
	return nil
}
