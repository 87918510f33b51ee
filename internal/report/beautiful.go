package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/25smoking/upcheck/internal/core"
)

// Icons
const (
	IconSuccess = "✓"
	IconUpdate  = "↑"
	IconAUR     = "◆"
)

var (
	accentColor = lipgloss.Color("#8BE9FD")
	greenColor  = lipgloss.Color("#50FA7B")
	yellowColor = lipgloss.Color("#F1FA8C")
	dimColor    = lipgloss.Color("#6272A4")
)

// BeautifulReporter renders an update report for a terminal. Colours are
// only emitted when the writer is a terminal.
type BeautifulReporter struct {
	w         io.Writer
	manager   string
	showCount bool

	title   lipgloss.Style
	section lipgloss.Style
	name    lipgloss.Style
	version lipgloss.Style
	dim     lipgloss.Style
	ok      lipgloss.Style
	aur     lipgloss.Style
}

func NewBeautifulReporter(w io.Writer, manager string, showCount bool) *BeautifulReporter {
	r := lipgloss.NewRenderer(w)
	return &BeautifulReporter{
		w:         w,
		manager:   manager,
		showCount: showCount,
		title:     r.NewStyle().Bold(true).Foreground(accentColor),
		section:   r.NewStyle().Bold(true).Underline(true),
		name:      r.NewStyle().Bold(true),
		version:   r.NewStyle().Foreground(greenColor),
		dim:       r.NewStyle().Foreground(dimColor),
		ok:        r.NewStyle().Foreground(greenColor),
		aur:       r.NewStyle().Foreground(yellowColor),
	}
}

// PrintReport writes the summary line followed by one section per origin.
func (r *BeautifulReporter) PrintReport(report core.UpdateReport) error {
	var b strings.Builder

	header := "Updates"
	if r.manager != "" {
		header += r.dim.Render(" via " + r.manager)
	}
	b.WriteString(r.title.Render(header))
	b.WriteString("\n")

	if !report.HasUpdates() {
		b.WriteString(r.ok.Render(IconSuccess + " System is up to date"))
		b.WriteString("\n")
		_, err := io.WriteString(r.w, b.String())
		return err
	}

	if r.showCount {
		b.WriteString(fmt.Sprintf("%d available (official: %d, aur: %d)\n",
			report.TotalCount, report.OfficialCount, report.AURCount))
	}

	r.writeSection(&b, "Official", IconUpdate, r.version, report.Official())
	r.writeSection(&b, "AUR", IconAUR, r.aur, report.AUR())

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *BeautifulReporter) writeSection(b *strings.Builder, title, icon string, style lipgloss.Style, records []core.UpdateRecord) {
	if len(records) == 0 {
		return
	}

	width := 0
	for _, rec := range records {
		width = max(width, len(rec.Name))
	}

	b.WriteString("\n")
	b.WriteString(r.section.Render(fmt.Sprintf("%s (%d)", title, len(records))))
	b.WriteString("\n")
	for _, rec := range records {
		name := rec.Name + strings.Repeat(" ", width-len(rec.Name))
		fmt.Fprintf(b, "  %s %s  %s %s %s\n",
			style.Render(icon),
			r.name.Render(name),
			r.dim.Render(rec.CurrentVersion),
			r.dim.Render("→"),
			style.Render(rec.NewVersion),
		)
	}
}
