package cli

import (
	"log-analyzer/internal/app"
	"log-analyzer/internal/shared/svcerrors"

	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the report for the newest log file and exit",
		Long: `Generate the report for the newest log file in the log dir.

Finding no log file, an already existing report or a log with nothing to report
is not a failure: a notice is printed and the command exits 0.`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	cmd.Flags().Int("report-size", 1000, "number of URLs kept in the report")
	cmd.Flags().Float64("error-threshold", 0, "max percent of unparsable lines before the run fails")
	cmd.Flags().String("log-dir", "./log", "directory holding rotated access logs")
	cmd.Flags().String("report-dir", "./reports", "directory reports are written to")
	cmd.Flags().Int("workers", 1, "parallel line workers")
	cmd.Flags().Bool("print", false, "also print the report table to stdout")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// one-shot run, never watch
	oneShot := *cfg
	oneShot.Watch.Enabled = false

	application, err := app.New(&oneShot, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	report, err := application.ReportService().Generate(application.WithLogger(cmd.Context()))
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok && svcErr.IsBenign() {
			printNotice(cmd.OutOrStdout(), svcErr.Message)
			return nil
		}
		return err
	}

	printGenerated(cmd.OutOrStdout(), report)
	if printRows, _ := cmd.Flags().GetBool("print"); printRows {
		printTable(cmd.OutOrStdout(), report)
	}
	return nil
}
