package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/25smoking/upcheck/internal/checker"
	"github.com/25smoking/upcheck/internal/coord"
	"github.com/25smoking/upcheck/internal/core"
	"github.com/25smoking/upcheck/internal/launcher"
	"github.com/25smoking/upcheck/internal/monitor"
	"github.com/25smoking/upcheck/internal/report"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Open a terminal running the system upgrade, then re-check",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m, err := resolveManager(ctx)
		if err != nil {
			return err
		}

		l := launcher.New(cfg.PreferredTerminal, cfg.Paths(), launcher.WithLogger(log.Desugar()))
		if err := l.Run(ctx, m.SystemUpdateCommand()); err != nil {
			return err
		}

		result, err := newChecker(m).Check(ctx, cfg.IncludeAURUpdates)
		if err != nil {
			return err
		}
		return emitReport(m, result, report.FormatText)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Check periodically and whenever another instance finishes a check",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		m, err := resolveManager(ctx)
		if err != nil {
			return err
		}
		persistDetectedManager(m)

		paths := cfg.Paths()
		watcher, err := coord.NewWatcher(paths.SyncPath(), cfg.Sync.Debounce, log.Desugar())
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Warnw("sync watcher stopped", "error", err)
			}
		}()

		completions := coord.NewChannelNotifier()
		done, unsubscribe := completions.Subscribe(4)
		defer unsubscribe()
		go func() {
			for c := range done {
				log.Debugw("check completed", "check_id", c.CheckID, "total", c.Report.TotalCount)
			}
		}()

		c := newChecker(m, checker.WithNotifier(coord.Notifiers{
			coord.SyncMarkerNotifier{Path: paths.SyncPath()},
			completions,
		}))

		mon := monitor.NewMonitor(
			func(ctx context.Context) (core.UpdateReport, error) {
				return c.Check(ctx, cfg.IncludeAURUpdates)
			},
			log,
			monitor.WithInterval(cfg.CheckInterval()),
			monitor.WithStartupCheck(cfg.AutoCheckOnStartup, monitor.DefaultStartupDelay),
			monitor.WithSyncEvents(watcher.Events()),
			monitor.WithMinResync(cfg.Sync.MinResync),
			monitor.WithReportFunc(func(res monitor.Result) {
				if res.Err != nil {
					log.Warn(friendlyError(res.Err))
					return
				}
				if cfg.ShowNotifications {
					core.PrintReport(log, res.Report)
				}
			}),
		)
		if err := mon.Start(); err != nil {
			return err
		}
		log.Infow("watching for updates", "manager", m, "interval", cfg.CheckInterval())
		mon.Wait()
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a check is running and when the last one finished",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := cfg.Paths()

		pid, alive, err := coord.Owner(paths.LockPath())
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Println("Check running: no")
		case err != nil:
			return err
		case alive:
			fmt.Printf("Check running: yes (pid %d)\n", pid)
		default:
			fmt.Printf("Check running: no (stale lock from pid %d)\n", pid)
		}

		last, err := coord.LastSync(paths.SyncPath())
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Println("Last check:    never")
		case err != nil:
			return err
		default:
			fmt.Printf("Last check:    %s (%s ago)\n",
				last.Format(time.RFC3339), time.Since(last).Round(time.Second))
		}
		return nil
	},
}
