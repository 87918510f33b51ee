package pkg_mgr

import (
	"context"
	"fmt"
	"os/exec"

	appErrors "github.com/25smoking/upcheck/internal/errors"
	"go.uber.org/zap"
)

// LookPathFunc resolves an executable name on the search path.
type LookPathFunc func(file string) (string, error)

// Detector probes the host for installed package managers.
type Detector struct {
	lookPath   LookPathFunc
	candidates []Manager
	logger     *zap.Logger
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithLookPath replaces the PATH probe.
func WithLookPath(fn LookPathFunc) DetectorOption {
	return func(d *Detector) {
		if fn != nil {
			d.lookPath = fn
		}
	}
}

// WithCandidates restricts detection to the given managers. Priority order is
// preserved regardless of the argument order.
func WithCandidates(ms ...Manager) DetectorOption {
	return func(d *Detector) {
		allowed := make(map[Manager]bool, len(ms))
		for _, m := range ms {
			allowed[m] = true
		}
		var filtered []Manager
		for _, m := range priority {
			if allowed[m] {
				filtered = append(filtered, m)
			}
		}
		d.candidates = filtered
	}
}

// WithDetectorLogger sets the logger used for probe diagnostics.
func WithDetectorLogger(logger *zap.Logger) DetectorOption {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDetector returns a Detector probing every supported manager.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		lookPath:   exec.LookPath,
		candidates: All(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectAvailable returns the candidates whose binary resolves, in priority order.
func (d *Detector) DetectAvailable(ctx context.Context) []Manager {
	var available []Manager
	for _, m := range d.candidates {
		if ctx.Err() != nil {
			break
		}
		if d.isAvailable(m) {
			available = append(available, m)
		}
	}
	return available
}

// Preferred returns the highest-priority available manager.
func (d *Detector) Preferred(ctx context.Context) (Manager, bool) {
	available := d.DetectAvailable(ctx)
	if len(available) == 0 {
		return 0, false
	}
	return available[0], true
}

// isAvailable treats any probe failure, including a panic, as "not installed".
func (d *Detector) isAvailable(m Manager) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err := appErrors.New(appErrors.CodeProbeFailed, fmt.Sprintf("probe %s panicked: %v", m.Binary(), r), nil)
			d.logger.Debug("probe failed", zap.String("manager", m.Name()), zap.Error(err))
			ok = false
		}
	}()

	path, err := d.lookPath(m.Binary())
	if err != nil {
		d.logger.Debug("manager not available",
			zap.String("manager", m.Name()),
			zap.Error(appErrors.New(appErrors.CodeProbeFailed, "probe "+m.Binary(), err)),
		)
		return false
	}
	d.logger.Debug("manager available", zap.String("manager", m.Name()), zap.String("path", path))
	return true
}

// DetectAvailable probes every supported manager using the default detector.
func DetectAvailable() []Manager {
	return NewDetector().DetectAvailable(context.Background())
}

// Preferred returns the highest-priority manager installed on this host.
func Preferred() (Manager, bool) {
	return NewDetector().Preferred(context.Background())
}
