package reports

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"log-analyzer/internal/models"
)

const tableJSONPlaceholder = "$table_json"

//go:embed report.html
var defaultTemplate string

// ReportRenderer turns a report into the HTML page stored next to its JSON.
type ReportRenderer interface {
	Render(report *models.Report) ([]byte, error)
}

type htmlRenderer struct {
	template string
}

// NewReportRenderer uses the built-in page.
func NewReportRenderer() ReportRenderer {
	return &htmlRenderer{template: defaultTemplate}
}

// NewReportRendererWithTemplate uses a custom page. The template must contain the $table_json
// placeholder, which receives the rows as a JSON array.
func NewReportRendererWithTemplate(template string) (ReportRenderer, error) {
	if !strings.Contains(template, tableJSONPlaceholder) {
		return nil, fmt.Errorf("template has no %s placeholder", tableJSONPlaceholder)
	}
	return &htmlRenderer{template: template}, nil
}

func (r *htmlRenderer) Render(report *models.Report) ([]byte, error) {
	rows := report.Rows
	if rows == nil {
		rows = []models.ReportRow{}
	}
	// json.Marshal escapes <, > and &, so a URL cannot close the surrounding <script>.
	table, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report rows: %w", err)
	}
	return []byte(strings.Replace(r.template, tableJSONPlaceholder, string(table), 1)), nil
}
