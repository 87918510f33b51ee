package core

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// SaveReport exports the report to a timestamped file in dir.
func SaveReport(report UpdateReport, format, dir string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case "json":
		filename := filepath.Join(dir, fmt.Sprintf("upcheck_report_%s.json", timestamp))
		return filename, saveJSON(report, filename)
	case "csv":
		filename := filepath.Join(dir, fmt.Sprintf("upcheck_report_%s.csv", timestamp))
		return filename, saveCSV(report, filename)
	default:
		return "", fmt.Errorf("unsupported report format %q", format)
	}
}

// createFile opens export targets; tests replace it.
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// writeExport runs write against a new file and reports the close error
// when write itself succeeded.
func writeExport(filename string, write func(io.Writer) error) (err error) {
	f, err := createFile(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", filename, cerr)
		}
	}()
	return write(f)
}

func saveJSON(report UpdateReport, filename string) error {
	return writeExport(filename, func(out io.Writer) error {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	})
}

func saveCSV(report UpdateReport, filename string) error {
	return writeExport(filename, func(out io.Writer) error {
		w := csv.NewWriter(out)

		if err := w.Write([]string{"Name", "Current", "New", "Origin"}); err != nil {
			return err
		}
		for _, r := range report.Records {
			if err := w.Write([]string{r.Name, r.CurrentVersion, r.NewVersion, r.Origin.String()}); err != nil {
				return err
			}
		}

		w.Flush()
		return w.Error()
	})
}

// PrintReport logs a one-line summary followed by every record.
func PrintReport(logger *zap.SugaredLogger, report UpdateReport) {
	if !report.HasUpdates() {
		logger.Info("system is up to date")
		return
	}

	logger.Infof("=== %d updates available (official: %d, aur: %d) ===",
		report.TotalCount, report.OfficialCount, report.AURCount)
	for _, rec := range report.Records {
		logger.Infof("[%s] %s", rec.Origin, rec)
	}
}
