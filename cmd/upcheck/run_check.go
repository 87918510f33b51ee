package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/25smoking/upcheck/internal/core"
	"github.com/25smoking/upcheck/internal/report"
	"github.com/25smoking/upcheck/internal/sys/pkg_mgr"
)

var (
	includeAUR   bool
	outputFormat string
	htmlFile     string
	saveDir      string
	saveFormat   string
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "List package managers available on this host",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d := pkg_mgr.NewDetector(pkg_mgr.WithDetectorLogger(log.Desugar()))
		available := d.DetectAvailable(ctx)

		fmt.Printf("Host: %s\n", getOSInfo())
		if len(available) == 0 {
			fmt.Println("No supported package manager found.")
			return nil
		}
		for i, m := range available {
			marker := " "
			if i == 0 {
				marker = "*"
			}
			aur := ""
			if m.SupportsAUR() {
				aur = " (AUR)"
			}
			fmt.Printf("%s %s%s\n", marker, m, aur)
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check for pending updates once",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		m, err := resolveManager(cmd.Context())
		if err != nil {
			return err
		}

		aur := cfg.IncludeAURUpdates
		if cmd.Flags().Changed("aur") {
			aur = includeAUR
		}

		result, err := newChecker(m).Check(cmd.Context(), aur)
		if err != nil {
			return err
		}
		return emitReport(m, result, format)
	},
}

var commandCmd = &cobra.Command{
	Use:   "command",
	Short: "Print the command that upgrades the whole system",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := resolveManager(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(m.SystemUpdateCommand())
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&includeAUR, "aur", true, "include AUR updates (paru/yay only; default from config)")
	checkCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, yaml, toml")
	checkCmd.Flags().StringVar(&htmlFile, "html", "", "also write an HTML report to this file")
	checkCmd.Flags().StringVar(&saveDir, "save", "", "also save a timestamped report into this directory")
	checkCmd.Flags().StringVar(&saveFormat, "save-format", "json", "format for --save: json, csv")
}

func emitReport(m pkg_mgr.Manager, result core.UpdateReport, format report.Format) error {
	if err := report.NewWriter(os.Stdout, format, m.Name(), cfg.ShowUpdateCount).Write(result); err != nil {
		return err
	}

	if htmlFile != "" {
		if err := report.GenerateHTML(result, m.Name(), htmlFile); err != nil {
			return err
		}
		log.Infow("HTML report written", "path", htmlFile)
	}
	if saveDir != "" {
		path, err := core.SaveReport(result, saveFormat, saveDir)
		if err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		log.Infow("report saved", "path", path)
	}
	return nil
}
