package watchers

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"log-analyzer/internal/locators"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long the log dir must stay quiet after a matching event before a
// report run starts, so a file still being written or compressed is not read half-way.
const DefaultSettle = 2 * time.Second

type LogDirWatcher interface {
	// Start runs report generation whenever a new access log lands in the watched dir.
	// It blocks until ctx is done and releases the underlying watch on return.
	Start(ctx context.Context) error
}

type logDirWatcher struct {
	fsw           *fsnotify.Watcher
	dir           string
	locator       locators.LogLocator
	reportService reports.ReportService
	settle        time.Duration
}

// NewLogDirWatcher registers a watch on dir. The watch is active once this returns, events
// that arrive before Start are buffered by fsnotify.
func NewLogDirWatcher(
	dir string,
	locator locators.LogLocator,
	reportService reports.ReportService,
	settle time.Duration,
) (LogDirWatcher, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve log dir %q: %w", dir, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(absDir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch log dir %s: %w", absDir, err)
	}

	if settle <= 0 {
		settle = DefaultSettle
	}
	return &logDirWatcher{
		fsw:           fsw,
		dir:           absDir,
		locator:       locator,
		reportService: reportService,
		settle:        settle,
	}, nil
}

func (w *logDirWatcher) Start(ctx context.Context) error {
	defer w.fsw.Close()

	logger := loggers.Ctx(ctx)
	logger.Info().Str("dir", w.dir).Msg("watching log dir")

	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Str("dir", w.dir).Msg("stopped watching log dir")
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.locator.Matches(ev.Name) {
				continue
			}
			logger.Debug().
				Str(loggers.FieldLogFile, ev.Name).
				Str("op", ev.Op.String()).
				Msg("log file event")
			timer.Reset(w.settle)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Str("dir", w.dir).Msg("log dir watch error")

		case <-timer.C:
			w.runReport(ctx)
		}
	}
}

func (w *logDirWatcher) runReport(ctx context.Context) {
	logger := loggers.Ctx(ctx)

	report, err := w.reportService.Generate(ctx)
	if err == nil {
		metricWatchRunsTotal.WithLabelValues(metrics.ValueNoError).Inc()
		logger.Info().
			Str(loggers.FieldReportDate, report.Date).
			Str(loggers.FieldRunID, report.RunID).
			Msg("report generated for new log file")
		return
	}

	svcErr, ok := svcerrors.AsServiceError(err)
	if !ok {
		svcErr = svcerrors.NewInternalErrorUndefined(err)
	}
	metricWatchRunsTotal.WithLabelValues(svcErr.Code).Inc()

	if svcErr.IsBenign() {
		logger.Info().Str(loggers.FieldErrorCode, svcErr.Code).Msg(svcErr.Message)
		return
	}
	logger.Error().Err(svcErr.Cause).Str(loggers.FieldErrorCode, svcErr.Code).Msg("report run failed")
}
