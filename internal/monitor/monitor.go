// Package monitor drives periodic update checks and reacts to checks
// completed by other instances.
package monitor

import (
	"context"
	"errors"
	"math"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/25smoking/upcheck/internal/coord"
	"github.com/25smoking/upcheck/internal/core"
)

const (
	DefaultInterval     = time.Hour
	DefaultStartupDelay = 2 * time.Second
	DefaultMinResync    = 3 * time.Second
)

// Reason says what triggered a check.
type Reason string

const (
	ReasonStartup  Reason = "startup"
	ReasonInterval Reason = "interval"
	ReasonSync     Reason = "sync"
	ReasonManual   Reason = "manual"
)

// Result is delivered to the report callback after every check.
type Result struct {
	Reason   Reason
	Report   core.UpdateReport
	Err      error
	Finished time.Time
}

// CheckFunc runs one update check.
type CheckFunc func(ctx context.Context) (core.UpdateReport, error)

type Option func(*Monitor)

func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithStartupCheck runs a check delay after Start when enabled.
func WithStartupCheck(enabled bool, delay time.Duration) Option {
	return func(m *Monitor) {
		m.startupCheck = enabled
		m.startupDelay = delay
	}
}

// WithSyncEvents re-checks when another instance signals a finished check.
// Those checks run with coord.WithoutSyncMarker so they are not echoed back.
func WithSyncEvents(events <-chan struct{}) Option {
	return func(m *Monitor) {
		m.syncEvents = events
	}
}

// WithMinResync ignores sync events arriving within d of our own last check.
func WithMinResync(d time.Duration) Option {
	return func(m *Monitor) {
		m.minResync = d
	}
}

func WithReportFunc(fn func(Result)) Option {
	return func(m *Monitor) {
		m.onResult = fn
	}
}

type Monitor struct {
	logger *zap.SugaredLogger
	check  CheckFunc

	interval     time.Duration
	startupCheck bool
	startupDelay time.Duration
	minResync    time.Duration
	syncEvents   <-chan struct{}
	onResult     func(Result)
	now          func() time.Time

	manual chan chan Result

	mu        sync.Mutex
	lastCheck time.Time

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewMonitor(check CheckFunc, logger *zap.SugaredLogger, opts ...Option) *Monitor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Monitor{
		logger:       logger,
		check:        check,
		interval:     DefaultInterval,
		startupDelay: DefaultStartupDelay,
		minResync:    DefaultMinResync,
		now:          time.Now,
		manual:       make(chan chan Result),
		ctx:          ctx,
		cancel:       cancel,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start launches the monitor loop. It returns immediately.
func (m *Monitor) Start() error {
	if m.check == nil {
		return errors.New("monitor: no check function")
	}

	m.logger.Infow("starting update monitor",
		"interval", m.interval,
		"startup_check", m.startupCheck,
	)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.loop()
		m.logger.Info("update monitor stopped")
	}()
	return nil
}

// Stop cancels the loop and waits for an in-flight check to finish.
func (m *Monitor) Stop() {
	m.cancel()
	m.wg.Wait()
}

// Wait blocks until SIGINT or SIGTERM, then stops the monitor.
func (m *Monitor) Wait() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-m.ctx.Done():
	}
	m.Stop()
}

// CheckNow runs a check on the monitor goroutine and returns its result.
func (m *Monitor) CheckNow(ctx context.Context) (Result, error) {
	reply := make(chan Result, 1)
	select {
	case m.manual <- reply:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-m.ctx.Done():
		return Result{}, errors.New("monitor stopped")
	}

	select {
	case res := <-reply:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	var startup <-chan time.Time
	if m.startupCheck {
		timer := time.NewTimer(m.startupDelay)
		defer timer.Stop()
		startup = timer.C
	}

	syncEvents := m.syncEvents
	for {
		select {
		case <-m.ctx.Done():
			return

		case <-startup:
			startup = nil
			m.run(ReasonStartup)

		case <-ticker.C:
			m.run(ReasonInterval)

		case _, ok := <-syncEvents:
			if !ok {
				syncEvents = nil
				continue
			}
			if since := m.sinceLastCheck(); since < m.minResync {
				m.logger.Debugw("ignoring sync event after recent check", "since", since)
				continue
			}
			m.run(ReasonSync)

		case reply := <-m.manual:
			reply <- m.run(ReasonManual)
		}
	}
}

func (m *Monitor) run(reason Reason) Result {
	ctx := m.ctx
	if reason == ReasonSync {
		ctx = coord.WithoutSyncMarker(ctx)
	}

	m.markChecked()
	report, err := m.check(ctx)
	m.markChecked()

	res := Result{Reason: reason, Report: report, Err: err, Finished: m.now()}
	if err != nil {
		m.logger.Warnw("update check failed", "reason", reason, "error", err)
	} else {
		m.logger.Infow("update check complete", "reason", reason, "total", report.TotalCount)
	}
	if m.onResult != nil {
		m.onResult(res)
	}
	return res
}

func (m *Monitor) markChecked() {
	m.mu.Lock()
	m.lastCheck = m.now()
	m.mu.Unlock()
}

func (m *Monitor) sinceLastCheck() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastCheck.IsZero() {
		return time.Duration(math.MaxInt64)
	}
	return m.now().Sub(m.lastCheck)
}
