// Package report renders update reports for people (terminal text, HTML) and
// for scripts (JSON, YAML, TOML).
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/25smoking/upcheck/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Writer handles output in the specified format.
type Writer struct {
	format    Format
	w         io.Writer
	manager   string
	showCount bool
}

// NewWriter creates a new output writer. manager and showCount only affect
// the text format.
func NewWriter(w io.Writer, format Format, manager string, showCount bool) *Writer {
	return &Writer{format: format, w: w, manager: manager, showCount: showCount}
}

// Write outputs report in the configured format.
func (w *Writer) Write(report core.UpdateReport) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(w.w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		enc := toml.NewEncoder(w.w)
		enc.SetIndentTables(true)
		return enc.Encode(report)
	default:
		return NewBeautifulReporter(w.w, w.manager, w.showCount).PrintReport(report)
	}
}

// ParseFormat parses a format string into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}
