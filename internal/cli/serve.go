package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log-analyzer/internal/app"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reports over HTTP, optionally regenerating them as new logs arrive",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().Int("port", 8080, "HTTP port")
	cmd.Flags().Bool("watch", false, "generate a report whenever a new log file lands in the log dir")
	cmd.Flags().String("log-dir", "./log", "directory holding rotated access logs")
	cmd.Flags().String("report-dir", "./reports", "directory reports are written to")
	cmd.Flags().Int("workers", 1, "parallel line workers")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	application, err := app.New(cfg, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- application.Start()
	}()

	var runErr error
	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	// also stops the watcher when the server never came up
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("server forced to shutdown: %w", err))
	}
	return runErr
}
