package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/25smoking/upcheck/internal/config"
	"github.com/25smoking/upcheck/internal/sys/pkg_mgr"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persisted settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("# %s\n", configPath)
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	},
}

var configSetManagerCmd = &cobra.Command{
	Use:   "set-manager <name|auto>",
	Short: "Persist the package manager (auto re-enables detection)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(strings.TrimSpace(args[0]))
		if name == "auto" {
			name = ""
		} else {
			m, err := pkg_mgr.ParseManager(name)
			if err != nil {
				return err
			}
			name = m.Name()
		}

		if err := config.SetManager(configPath, name); err != nil {
			return err
		}

		if name == "" {
			name = "auto"
		}
		log.Infow("package manager saved", "manager", name, "path", configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetManagerCmd)
}
