package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/25smoking/upcheck/internal/checker"
	"github.com/25smoking/upcheck/internal/config"
	appErrors "github.com/25smoking/upcheck/internal/errors"
	"github.com/25smoking/upcheck/internal/sys/pkg_mgr"
)

var (
	log *zap.SugaredLogger
	cfg *config.Config

	// Command line flags
	debugMode   bool
	configPath  string
	managerName string
	runtimeDir  string
)

func init() {
	logger, _ := zap.NewProduction()
	log = logger.Sugar()
}

var rootCmd = &cobra.Command{
	Use:   "upcheck",
	Short: "upcheck - check for pending package updates",
	Long: `upcheck lists pending updates from the system package manager
(pacman, paru, yay, apt, dnf, zypper, apk or flatpak) and coordinates with
other running instances so only one check hits the package databases at a time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugMode {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			log = logger.Sugar()
		}
		checkPrivileges()
		return loadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "verbose development logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/upcheck/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&managerName, "manager", "m", "", "package manager to use (default: configured or detected)")
	rootCmd.PersistentFlags().StringVar(&runtimeDir, "runtime-dir", "", "directory for lock and sync files (default $XDG_RUNTIME_DIR)")

	rootCmd.AddCommand(detectCmd, checkCmd, commandCmd, upgradeCmd, watchCmd, statusCmd, configCmd)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic: %v", r)
			_ = log.Sync()
			os.Exit(1)
		}
		_ = log.Sync()
	}()

	if err := rootCmd.Execute(); err != nil {
		log.Error(friendlyError(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func loadConfig() error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	configPath = path

	overrides := map[string]any{}
	if runtimeDir != "" {
		overrides[config.KeyRuntimeDir] = runtimeDir
	}

	loaded, err := config.Load(path, overrides)
	if err != nil {
		return err
	}
	cfg = loaded
	log.Debugw("configuration loaded", "path", path)
	return nil
}

// resolveManager picks the --manager flag, then the configured manager, then
// the highest-priority manager found on PATH.
func resolveManager(ctx context.Context) (pkg_mgr.Manager, error) {
	if managerName != "" {
		return pkg_mgr.ParseManager(managerName)
	}
	if m, ok, err := cfg.Manager(); err != nil || ok {
		return m, err
	}

	m, ok := pkg_mgr.NewDetector(pkg_mgr.WithDetectorLogger(log.Desugar())).Preferred(ctx)
	if !ok {
		return 0, appErrors.New(appErrors.CodeUnsupportedManager,
			"no supported package manager found on PATH", nil)
	}
	log.Debugw("detected package manager", "manager", m)
	return m, nil
}

// persistDetectedManager stores an auto-detected manager so later runs skip
// detection. Failures only cost a re-detection next time.
func persistDetectedManager(m pkg_mgr.Manager) {
	if managerName != "" || cfg.PackageManager != "" {
		return
	}
	if err := config.SetManager(configPath, m.Name()); err != nil {
		log.Warnw("save detected manager", "error", err)
		return
	}
	cfg.PackageManager = m.Name()
	log.Infow("saved detected package manager", "manager", m, "path", configPath)
}

func newChecker(m pkg_mgr.Manager, opts ...checker.Option) *checker.Checker {
	base := []checker.Option{
		checker.WithLogger(log.Desugar()),
		checker.WithPaths(cfg.Paths()),
		checker.WithLockPolicy(cfg.LockPolicy()),
		checker.WithPhasePolicy(cfg.PhasePolicy()),
		checker.WithPhaseTimeout(cfg.PhaseTimeout),
	}
	return checker.New(m, append(base, opts...)...)
}

// friendlyError turns known failure modes into a message for the user.
func friendlyError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Protocol error") || strings.Contains(msg, "wl_surface"):
		return "Display system updated. Please restart the session if issues persist."
	case appErrors.IsCode(err, appErrors.CodeLockContention):
		return "Another update check is already running; try again shortly."
	case appErrors.IsCode(err, appErrors.CodeUnsupportedManager):
		return fmt.Sprintf("%s. Set one with: upcheck config set-manager <name>", msg)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Sprintf("%s (check permissions of the runtime directory)", msg)
	}
	return msg
}
