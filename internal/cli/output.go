package cli

import (
	"fmt"
	"io"

	"log-analyzer/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true) // green
	styleNotice  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))           // yellow
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleFaint   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func printGenerated(w io.Writer, report *models.Report) {
	fmt.Fprintf(w, "%s %s\n", styleSuccess.Render("report "+report.Date+" generated"),
		styleFaint.Render(fmt.Sprintf("(%s, %d lines, %.3f%% errors, %d urls)",
			report.LogFile.Name, report.TotalLines, report.ErrorRate, len(report.Rows))))
}

func printNotice(w io.Writer, msg string) {
	fmt.Fprintln(w, styleNotice.Render(msg))
}

// printTable writes the report rows in report order.
func printTable(w io.Writer, report *models.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"URL", "Count", "Count %", "Time sum", "Time %", "Time avg", "Time max", "Time med"})
	table.SetAutoWrapText(false)

	for _, row := range report.Rows {
		table.Append([]string{
			row.URL,
			fmt.Sprintf("%d", row.Count),
			fmt.Sprintf("%.3f", row.CountPerc),
			fmt.Sprintf("%.3f", row.TimeSum),
			fmt.Sprintf("%.3f", row.TimePerc),
			fmt.Sprintf("%.3f", row.TimeAvg),
			fmt.Sprintf("%.3f", row.TimeMax),
			fmt.Sprintf("%.3f", row.TimeMed),
		})
	}
	table.Render()
}
