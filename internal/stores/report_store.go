package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
)

var (
	ErrReportAlreadyExists = errors.New("report already exists")
	ErrReportNotFound      = errors.New("report not found")
)

// ReportStore keeps one rendered report per log date: report-YYYY.MM.DD.json holds the data and
// report-YYYY.MM.DD.html the page. The HTML file is written last and never overwritten, so its
// presence means the report is complete; a JSON file without it is left over from an
// interrupted run and is neither served nor kept.
//
//go:generate mockgen -source=report_store.go -destination=./mocks/report_store_mock.go -package=mocks
type ReportStore interface {
	Exists(ctx context.Context, date string) (bool, error)
	// Put never replaces a complete report; it returns ErrReportAlreadyExists instead. On
	// failure no file of this report is left behind.
	Put(ctx context.Context, report *models.Report, html []byte) error
	Get(ctx context.Context, date string) (*models.Report, error)
}

type reportStore struct {
	fileStorage filestorages.FileStorage
}

func NewReportStore(fileStorage filestorages.FileStorage) ReportStore {
	return &reportStore{fileStorage: fileStorage}
}

func (s *reportStore) Exists(ctx context.Context, date string) (bool, error) {
	exists, err := s.fileStorage.Exists(ctx, htmlKey(date))
	if err != nil {
		return false, fmt.Errorf("failed to check report: %w", err)
	}
	return exists, nil
}

func (s *reportStore) Put(ctx context.Context, report *models.Report, html []byte) error {
	jsonData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	exists, err := s.Exists(ctx, report.Date)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrReportAlreadyExists, htmlKey(report.Date))
	}

	// an orphaned JSON from an interrupted run is replaced
	jsonKey := jsonKey(report.Date)
	if err := s.put(ctx, jsonKey, jsonData, true); err != nil {
		return err
	}

	err = s.put(ctx, htmlKey(report.Date), html, false)
	if errors.Is(err, ErrReportAlreadyExists) {
		// a concurrent run committed first, its JSON is the one to keep
		return err
	}
	if err != nil {
		if delErr := s.fileStorage.Delete(ctx, jsonKey); delErr != nil {
			loggers.Ctx(ctx).Warn().Err(delErr).Msgf("failed to remove %s after a failed write", jsonKey)
		}
		return err
	}
	return nil
}

func (s *reportStore) put(ctx context.Context, key string, data []byte, overwrite bool) error {
	_, err := s.fileStorage.Put(ctx, key, bytes.NewReader(data), filestorages.PutOptions{AllowOverwrite: overwrite})
	if errors.Is(err, filestorages.ErrFileAlreadyExists) {
		return fmt.Errorf("%w: %s", ErrReportAlreadyExists, key)
	}
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

func (s *reportStore) Get(ctx context.Context, date string) (*models.Report, error) {
	exists, err := s.Exists(ctx, date)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, date)
	}

	readCloser, err := s.fileStorage.Get(ctx, jsonKey(date))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrReportNotFound, date)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

func jsonKey(date string) string {
	return fmt.Sprintf("report-%s.json", date)
}

func htmlKey(date string) string {
	return fmt.Sprintf("report-%s.html", date)
}
