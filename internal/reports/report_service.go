package reports

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/ingestors"
	"log-analyzer/internal/locators"
	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/shared/ulid"
	"log-analyzer/internal/stores"

	"github.com/samber/lo"
)

//go:generate mockgen -source=report_service.go -destination=./mocks/report_service_mock.go -package=mocks
type ReportService interface {
	// Generate builds and stores the report for the newest log file. Every failure is a
	// *svcerrors.ServiceError; benign ones (no log, report exists, nothing to report) are
	// not_found or resource_conflict.
	Generate(ctx context.Context) (*models.Report, error)
	// Get returns a stored report by its YYYY.MM.DD date.
	Get(ctx context.Context, date string) (*models.Report, error)
}

type reportService struct {
	locator   locators.LogLocator
	ingestion ingestors.IngestionService
	reducer   aggregators.StatsReducer
	renderer  ReportRenderer
	store     stores.ReportStore

	logDir             string
	reportSize         int
	errorRateThreshold *float64
	topUserAgents      int

	clock func() time.Time
}

func NewReportService(
	locator locators.LogLocator,
	ingestion ingestors.IngestionService,
	reducer aggregators.StatsReducer,
	renderer ReportRenderer,
	store stores.ReportStore,
	cfg *configs.Config,
) ReportService {
	return &reportService{
		locator:            locator,
		ingestion:          ingestion,
		reducer:            reducer,
		renderer:           renderer,
		store:              store,
		logDir:             cfg.LogSource.Dir,
		reportSize:         cfg.Report.Size,
		errorRateThreshold: cfg.Report.ErrorRateThreshold,
		topUserAgents:      cfg.Report.TopUserAgents,
		clock:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) Generate(ctx context.Context) (*models.Report, error) {
	start := time.Now()
	runID := ulid.NewULIDAt(start)
	ctx = loggers.Ctx(ctx).With().Str(loggers.FieldRunID, runID).Logger().WithContext(ctx)

	report, err := s.generate(ctx, runID)

	errorCode := metrics.ValueNoError
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		errorCode = svcErr.Code
	}
	metricReportGeneratedTotal.WithLabelValues(errorCode).Inc()
	metrics.ObserveSince(metricReportDurationSeconds.WithLabelValues(errorCode), start)

	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) generate(ctx context.Context, runID string) (*models.Report, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started report run in %s", s.logDir)

	logFile, err := s.locator.Newest(ctx, s.logDir)
	if err != nil {
		if errors.Is(err, locators.ErrLogFileNotFound) {
			return nil, errLogFileNotFound(err)
		}
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			return nil, svcErr
		}
		return nil, errInternalLocateFailed(err)
	}

	date := logFile.ReportDate()
	ctx = logger.With().
		Str(loggers.FieldLogFile, logFile.Path).
		Str(loggers.FieldReportDate, date).
		Logger().WithContext(ctx)
	logger = loggers.Ctx(ctx)

	exists, err := s.store.Exists(ctx, date)
	if err != nil {
		return nil, errInternalStoreFailed(err)
	}
	if exists {
		return nil, errReportAlreadyExists(date, nil)
	}

	result, err := s.ingestion.Ingest(ctx, logFile)
	if err != nil {
		return nil, err
	}

	samples, err := result.Aggregator.Finalize(s.errorRateThreshold)
	if err != nil {
		logger.Warn().
			Int64("lines", result.Aggregator.Lines()).
			Int64("error_lines", result.Aggregator.Errors()).
			Err(err).
			Msg("error rate gate refused the log")
		return nil, err
	}

	rows := s.reducer.Reduce(samples, s.reportSize)
	if len(rows) == 0 {
		return nil, errEmptyResult(date)
	}

	report := &models.Report{
		RunID:       runID,
		LogFile:     *logFile,
		Date:        date,
		GeneratedAt: s.clock(),
		TotalLines:  result.Aggregator.Lines(),
		ErrorLines:  result.Aggregator.Errors(),
		ErrorRate:   result.Aggregator.ErrorRate(),
		Rows:        rows,
		UserAgents:  topUserAgents(result.UserAgents, s.topUserAgents),
	}

	html, err := s.renderer.Render(report)
	if err != nil {
		return nil, errInternalRenderFailed(err)
	}

	if err := s.store.Put(ctx, report, html); err != nil {
		if errors.Is(err, stores.ErrReportAlreadyExists) {
			return nil, errReportAlreadyExists(date, err)
		}
		return nil, errInternalStoreFailed(err)
	}

	logger.Info().
		Int64("lines", report.TotalLines).
		Int64("error_lines", report.ErrorLines).
		Int("rows", len(report.Rows)).
		Msgf("report for %s generated", date)
	return report, nil
}

func (s *reportService) Get(ctx context.Context, date string) (*models.Report, error) {
	if _, err := time.Parse(models.ReportDateLayout, date); err != nil {
		return nil, errInvalidReportDate(date, err)
	}

	report, err := s.store.Get(ctx, date)
	if err != nil {
		if errors.Is(err, stores.ErrReportNotFound) {
			return nil, errReportNotFound(date, err)
		}
		return nil, errInternalStoreFailed(err)
	}
	return report, nil
}

// topUserAgents orders families by count, descending, then by name, and keeps the first limit.
func topUserAgents(counts map[string]int64, limit int) []models.UserAgentCount {
	families := lo.MapToSlice(counts, func(family string, count int64) models.UserAgentCount {
		return models.UserAgentCount{Family: family, Count: count}
	})
	slices.SortFunc(families, func(a, b models.UserAgentCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Family, b.Family)
	})
	return lo.Slice(families, 0, limit)
}
