package report

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/25smoking/upcheck/internal/core"
)

const reportTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Update report</title>
    <style>
        :root {
            --bg-color: #f8f9fa;
            --card-bg: #ffffff;
            --text-color: #333;
            --official: #28a745;
            --aur: #fd7e14;
            --border-color: #dee2e6;
        }
        body { font-family: 'Segoe UI', sans-serif; background: var(--bg-color); color: var(--text-color); margin: 0; padding: 20px; }
        .container { max-width: 1000px; margin: 0 auto; }
        .header { text-align: center; margin-bottom: 30px; }
        .stats { display: flex; gap: 20px; margin-bottom: 20px; }
        .stat-card { flex: 1; background: var(--card-bg); padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); text-align: center; }
        .stat-num { font-size: 2em; font-weight: bold; }
        .official { color: var(--official); }
        .aur { color: var(--aur); }
        table { width: 100%; border-collapse: collapse; background: var(--card-bg); box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        th, td { padding: 10px 15px; text-align: left; border-bottom: 1px solid var(--border-color); }
        th { background: rgba(0,0,0,0.03); }
        .badge { padding: 3px 8px; border-radius: 4px; color: white; font-size: 0.8em; text-transform: uppercase; }
        .bg-official { background: var(--official); }
        .bg-aur { background: var(--aur); }
        code { background: #eee; padding: 2px 5px; border-radius: 3px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Update report</h1>
            <p>{{ if .Manager }}Package manager: <code>{{ .Manager }}</code> · {{ end }}Generated: {{ .GeneratedAt }}</p>
        </div>

        <div class="stats">
            <div class="stat-card">
                <div class="stat-num">{{ .Report.TotalCount }}</div>
                <div>Total</div>
            </div>
            <div class="stat-card">
                <div class="stat-num official">{{ .Report.OfficialCount }}</div>
                <div>Official</div>
            </div>
            <div class="stat-card">
                <div class="stat-num aur">{{ .Report.AURCount }}</div>
                <div>AUR</div>
            </div>
        </div>

        {{ if .Report.Records }}
        <table>
            <thead><tr><th>Package</th><th>Installed</th><th>Available</th><th>Source</th></tr></thead>
            <tbody>
            {{ range .Report.Records }}
                <tr>
                    <td><code>{{ .Name }}</code></td>
                    <td>{{ .CurrentVersion }}</td>
                    <td>{{ .NewVersion }}</td>
                    <td><span class="badge bg-{{ .Origin }}">{{ .Origin }}</span></td>
                </tr>
            {{ end }}
            </tbody>
        </table>
        {{ else }}
        <div style="text-align: center; padding: 40px; color: #666;">
            System is up to date
        </div>
        {{ end }}
    </div>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(reportTemplate))

type ReportData struct {
	GeneratedAt string
	Manager     string
	Report      core.UpdateReport
}

// GenerateHTML writes a standalone HTML page for report to filename.
func GenerateHTML(report core.UpdateReport, manager, filename string) error {
	data := ReportData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Manager:     manager,
		Report:      report,
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create html report: %w", err)
	}
	defer f.Close()

	if err := htmlTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}
