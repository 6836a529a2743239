package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log-analyzer/internal/models"
	reportmocks "log-analyzer/internal/reports/mocks"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleReport() *models.Report {
	return &models.Report{
		RunID:       "01BX5ZZKBKACTAV9WEVGEMMVRZ",
		LogFile:     models.LogFile{Name: "nginx-access-ui.log-20170630.gz", Date: time.Date(2017, 6, 30, 0, 0, 0, 0, time.UTC)},
		Date:        "2017.06.30",
		GeneratedAt: time.Date(2017, 6, 30, 8, 0, 0, 0, time.UTC),
		TotalLines:  3,
		Rows: []models.ReportRow{
			{URL: "/a", Count: 2, CountPerc: 66.667, TimeSum: 0.8, TimePerc: 66.667, TimeAvg: 0.4, TimeMax: 0.5, TimeMed: 0.4},
		},
		UserAgents: []models.UserAgentCount{{Family: "Chrome", Count: 3}},
	}
}

func TestReportHandlers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		target         string
		setup          func(m *reportmocks.MockReportService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "generate creates report",
			method: http.MethodPost,
			target: "/reports",
			setup: func(m *reportmocks.MockReportService) {
				m.EXPECT().Generate(gomock.Any()).Return(sampleReport(), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "generate when report exists",
			method: http.MethodPost,
			target: "/reports",
			setup: func(m *reportmocks.MockReportService) {
				m.EXPECT().Generate(gomock.Any()).
					Return(nil, svcerrors.NewResourceConflictError("RPT_1001", "report for 2017.06.30 already exists", nil))
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "RPT_1001",
		},
		{
			name:   "generate with internal failure",
			method: http.MethodPost,
			target: "/reports",
			setup: func(m *reportmocks.MockReportService) {
				m.EXPECT().Generate(gomock.Any()).Return(nil, svcerrors.NewInternalError("RPT_9001", assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "RPT_9001",
		},
		{
			name:   "get existing report",
			method: http.MethodGet,
			target: "/reports/2017.06.30",
			setup: func(m *reportmocks.MockReportService) {
				m.EXPECT().Get(gomock.Any(), "2017.06.30").Return(sampleReport(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "get missing report",
			method: http.MethodGet,
			target: "/reports/2017.07.01",
			setup: func(m *reportmocks.MockReportService) {
				m.EXPECT().Get(gomock.Any(), "2017.07.01").
					Return(nil, svcerrors.NewNotFoundError("RPT_1004", "report for 2017.07.01 not found", nil))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "RPT_1004",
		},
		{
			name:           "get with malformed date",
			method:         http.MethodGet,
			target:         "/reports/2017-06-30",
			setup:          func(m *reportmocks.MockReportService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "HTTP_1000",
		},
		{
			name:           "get with impossible date",
			method:         http.MethodGet,
			target:         "/reports/2017.02.30",
			setup:          func(m *reportmocks.MockReportService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "HTTP_1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service := reportmocks.NewMockReportService(ctrl)
			tt.setup(service)

			router := NewRouter(service, loggers.Nop())
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedStatus, rr.Code, rr.Body.String())
			assert.Equal(t, contentTypeJSON, rr.Header().Get(headerContentType))

			if tt.expectedCode != "" {
				var errorResponse ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
				assert.Equal(t, tt.expectedCode, errorResponse.ErrorCode)
				assert.Equal(t, rr.Header().Get(headerRequestID), errorResponse.RequestID)
				return
			}

			var report models.Report
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
			assert.Equal(t, sampleReport(), &report)
		})
	}
}

func TestRouter_ServesMetrics(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	router := NewRouter(reportmocks.NewMockReportService(ctrl), loggers.Nop())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
