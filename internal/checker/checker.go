// Package checker runs one update check for a package manager: it takes the
// cross-instance lock, runs the official and AUR listing commands with a
// retry-once policy, aggregates the parsed records and announces completion.
package checker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/25smoking/upcheck/internal/coord"
	"github.com/25smoking/upcheck/internal/core"
	appErrors "github.com/25smoking/upcheck/internal/errors"
	"github.com/25smoking/upcheck/internal/retry"
	"github.com/25smoking/upcheck/internal/sys/pkg_mgr"
)

const (
	DefaultLockDelay  = 500 * time.Millisecond
	DefaultPhaseDelay = 2 * time.Second
)

// Checker performs update checks for a single manager.
type Checker struct {
	manager pkg_mgr.Manager
	runner  Runner
	logger  *zap.Logger

	paths    coord.Paths
	lockPath string
	notifier coord.Notifier

	lockPolicy   retry.Policy
	phasePolicy  retry.Policy
	settleDelay  time.Duration
	phaseTimeout time.Duration

	stateHook func(State)
	state     atomic.Uint32
}

// Option configures a Checker.
type Option func(*Checker)

// WithRunner replaces the subprocess runner.
func WithRunner(r Runner) Option {
	return func(c *Checker) {
		if r != nil {
			c.runner = r
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPaths sets the runtime directory and app id used for the lock file
// and the default sync marker notifier.
func WithPaths(p coord.Paths) Option {
	return func(c *Checker) {
		c.paths = p
	}
}

// WithLockPath overrides the lock file location only.
func WithLockPath(path string) Option {
	return func(c *Checker) {
		c.lockPath = path
	}
}

func WithLockPolicy(p retry.Policy) Option {
	return func(c *Checker) {
		c.lockPolicy = p
	}
}

func WithPhasePolicy(p retry.Policy) Option {
	return func(c *Checker) {
		c.phasePolicy = p
	}
}

// WithNotifier replaces the sync marker notifier.
func WithNotifier(n coord.Notifier) Option {
	return func(c *Checker) {
		c.notifier = n
	}
}

// WithSettleDelay waits d after notifying, while the lock is still held.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Checker) {
		c.settleDelay = d
	}
}

// WithPhaseTimeout bounds each subprocess attempt. Zero disables it.
func WithPhaseTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.phaseTimeout = d
	}
}

// WithStateHook observes every state transition.
func WithStateHook(fn func(State)) Option {
	return func(c *Checker) {
		c.stateHook = fn
	}
}

// New builds a Checker for m.
func New(m pkg_mgr.Manager, opts ...Option) *Checker {
	c := &Checker{
		manager:     m,
		runner:      ExecRunner{},
		logger:      zap.NewNop(),
		paths:       coord.ResolvePaths("", ""),
		lockPolicy:  retry.Once(DefaultLockDelay),
		phasePolicy: retry.Once(DefaultPhaseDelay),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.lockPath == "" {
		c.lockPath = c.paths.LockPath()
	}
	if c.notifier == nil {
		c.notifier = coord.SyncMarkerNotifier{Path: c.paths.SyncPath()}
	}
	return c
}

// CheckUpdates runs a single check with a throwaway Checker.
func CheckUpdates(ctx context.Context, m pkg_mgr.Manager, includeAUR bool, opts ...Option) (core.UpdateReport, error) {
	return New(m, opts...).Check(ctx, includeAUR)
}

// Manager returns the manager this Checker queries.
func (c *Checker) Manager() pkg_mgr.Manager {
	return c.manager
}

// State returns the state of the most recent check.
func (c *Checker) State() State {
	return State(c.state.Load())
}

// Check lists pending updates. Phase failures are logged and contribute no
// records; the only error is failing to obtain the lock.
func (c *Checker) Check(ctx context.Context, includeAUR bool) (core.UpdateReport, error) {
	if !c.manager.Valid() {
		return core.NewReport(nil, nil), appErrors.New(appErrors.CodeUnsupportedManager,
			fmt.Sprintf("unsupported package manager %s", c.manager), nil)
	}

	checkID := ulid.Make().String()
	log := c.logger.With(
		zap.String("check_id", checkID),
		zap.String("manager", c.manager.Name()),
	)
	ctx = core.WithLogger(ctx, log)

	c.setState(StateIdle)
	c.setState(StateLockPending)

	lock, err := c.acquireLock(ctx, log)
	if err != nil {
		c.setState(StateFailed)
		log.Warn("update check skipped", zap.Error(err))
		return core.NewReport(nil, nil), err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Warn("release check lock", zap.String("path", lock.Path()), zap.Error(err))
		}
	}()

	c.setState(StateOfficialCheck)
	official := c.runPhase(ctx, log, "official", c.manager.OfficialCheck(), core.OriginOfficial)

	var aur []core.UpdateRecord
	if cmd, ok := c.manager.AURCheck(); ok && includeAUR {
		c.setState(StateAURCheck)
		aur = c.runPhase(ctx, log, "aur", cmd, core.OriginAUR)
	}

	c.setState(StateAggregated)
	report := core.NewReport(official, aur)

	c.setState(StateNotifying)
	completion := coord.Completion{
		CheckID:  checkID,
		Manager:  c.manager.Name(),
		Finished: time.Now(),
		Report:   report,
	}
	if err := c.notifier.NotifyCompleted(ctx, completion); err != nil {
		log.Warn("notify check completion", zap.Error(err))
	}
	if c.settleDelay > 0 {
		select {
		case <-time.After(c.settleDelay):
		case <-ctx.Done():
		}
	}

	log.Info("update check finished",
		zap.Int("total", report.TotalCount),
		zap.Int("official", report.OfficialCount),
		zap.Int("aur", report.AURCount),
	)
	c.setState(StateDone)
	return report, nil
}

func (c *Checker) acquireLock(ctx context.Context, log *zap.Logger) (*coord.Lock, error) {
	var lock *coord.Lock
	err := c.lockPolicy.Do(ctx, func(attempt int) error {
		l, err := coord.Acquire(c.lockPath)
		if err != nil {
			return err
		}
		lock = l
		return nil
	}, func(attempt int, err error, next time.Duration) {
		log.Debug("check lock busy, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", next),
			zap.Error(err),
		)
	})
	if err == nil {
		return lock, nil
	}

	msg := "failed to acquire check lock"
	if errors.Is(err, coord.ErrContended) {
		msg = "another update check is in progress"
	}
	return nil, appErrors.New(appErrors.CodeLockContention, msg, err)
}

func (c *Checker) runPhase(ctx context.Context, log *zap.Logger, phase string, cmd pkg_mgr.Command, origin core.Origin) []core.UpdateRecord {
	log = log.With(zap.String("phase", phase))

	var records []core.UpdateRecord
	err := c.phasePolicy.Do(ctx, func(attempt int) error {
		return core.SafeRun(ctx, phase+" check", func(ctx context.Context) error {
			recs, err := c.runOnce(ctx, log, cmd, origin)
			if err != nil {
				return err
			}
			records = recs
			return nil
		})
	}, func(attempt int, err error, next time.Duration) {
		log.Warn("phase failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", next),
			zap.Error(err),
		)
	})
	if err != nil {
		log.Error("phase failed",
			zap.String("code", string(appErrors.CodeOf(err))),
			zap.Error(err),
		)
		return nil
	}
	return records
}

func (c *Checker) runOnce(ctx context.Context, log *zap.Logger, cmd pkg_mgr.Command, origin core.Origin) ([]core.UpdateRecord, error) {
	if c.phaseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.phaseTimeout)
		defer cancel()
	}

	res, err := c.runner.Run(ctx, cmd)
	if err != nil {
		return nil, appErrors.New(appErrors.CodePhaseFailed, fmt.Sprintf("run %s: %v", cmd, err), err)
	}
	log.Debug("command finished",
		zap.String("command", cmd.String()),
		zap.Int("exit_code", res.ExitCode),
		zap.Int("stdout_bytes", len(res.Stdout)),
	)

	parse, err := classify(cmd, res)
	if err != nil || !parse {
		return nil, err
	}
	return pkg_mgr.Parse(c.manager, res.Stdout, origin), nil
}

func (c *Checker) setState(s State) {
	c.state.Store(uint32(s))
	if c.stateHook != nil {
		c.stateHook(s)
	}
}
