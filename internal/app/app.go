package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"log-analyzer/internal/aggregators"
	internalhttp "log-analyzer/internal/http"
	"log-analyzer/internal/ingestors"
	"log-analyzer/internal/lexers"
	"log-analyzer/internal/locators"
	"log-analyzer/internal/records"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/stores"
	"log-analyzer/internal/watchers"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	reportService reports.ReportService
	watcher       watchers.LogDirWatcher

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
	background       sync.WaitGroup
}

// New creates and initializes a new App instance. Logs are written as JSON to logOutput.
func New(config *configs.Config, logOutput io.Writer) (*App, error) {
	appLogger, err := loggers.NewWithWriter(config.Log.Level, logOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "log-analyzer").
		Logger()

	// Storages: logs are read from the log dir, reports are written to the report dir
	logStorage, err := filestorages.NewFileStorage(config.LogSource.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize log storage: %w", err)
	}
	reportStorage, err := filestorages.NewFileStorage(config.Report.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report storage: %w", err)
	}

	// Parsing pipeline
	locator := locators.NewLogLocator(config.LogSource.Pattern)
	ingestionService := ingestors.NewIngestionService(
		logStorage,
		lexers.NewDefaultLexer(),
		records.NewRecordBuilder(),
		ingestors.NewUserAgentSummarizer(),
		config.Ingestion,
	)

	renderer, err := newRenderer(config.Report.Template)
	if err != nil {
		return nil, err
	}

	reportService := reports.NewReportService(
		locator,
		ingestionService,
		aggregators.NewStatsReducer(),
		renderer,
		stores.NewReportStore(reportStorage),
		config,
	)

	var watcher watchers.LogDirWatcher
	if config.Watch.Enabled {
		watcher, err = watchers.NewLogDirWatcher(config.LogSource.Dir, locator, reportService, watchers.DefaultSettle)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize watcher: %w", err)
		}
	}

	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(reportService, httpLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	watcherLogger := appLogger.With().Str(loggers.FieldComponent, "watcher").Logger()
	backgroundCtx, backgroundCancel := context.WithCancel(watcherLogger.WithContext(context.Background()))

	return &App{
		config:           config,
		appLogger:        appLogger,
		server:           server,
		reportService:    reportService,
		watcher:          watcher,
		backgroundCtx:    backgroundCtx,
		backgroundCancel: backgroundCancel,
	}, nil
}

func newRenderer(templatePath string) (reports.ReportRenderer, error) {
	if templatePath == "" {
		return reports.NewReportRenderer(), nil
	}
	tpl, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read report template: %w", err)
	}
	renderer, err := reports.NewReportRendererWithTemplate(string(tpl))
	if err != nil {
		return nil, fmt.Errorf("failed to load report template %s: %w", templatePath, err)
	}
	return renderer, nil
}

// ReportService returns the service one-shot callers run reports through.
func (app *App) ReportService() reports.ReportService {
	return app.reportService
}

// WithLogger returns ctx carrying the app logger, the way HTTP handlers receive it.
func (app *App) WithLogger(ctx context.Context) context.Context {
	return app.appLogger.WithContext(ctx)
}

// Start starts the watcher, when enabled, and then the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting log-analyzer service on port %d (log_level=%s, log_dir=%s, report_dir=%s, watch=%t)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.LogSource.Dir,
			app.config.Report.Dir,
			app.config.Watch.Enabled)

	if app.watcher != nil {
		app.background.Add(1)
		go func() {
			defer app.background.Done()
			if err := app.watcher.Start(app.backgroundCtx); err != nil {
				loggers.Ctx(app.backgroundCtx).Error().Err(err).Msg("watcher stopped")
			}
		}()
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application. The watcher is stopped even when the
// server does not shut down in time.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	serverErr := app.server.Shutdown(ctx)
	if serverErr == nil {
		app.appLogger.Info().Msg("Server stopped")
	}

	// 2) Stop the watcher; a report run in flight sees the cancellation
	app.backgroundCancel()
	app.background.Wait()
	app.appLogger.Info().Msg("Background watcher stopped")

	if serverErr != nil {
		return fmt.Errorf("server shutdown failed: %w", serverErr)
	}
	return nil
}
