package app_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"log-analyzer/internal/app"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/svcerrors"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accessLine(url, requestTime string) string {
	return fmt.Sprintf(`1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET %s HTTP/1.1" 200 927 "-" "curl/7.68.0" "-" "1498697422-2190034393-4708-9752759" "dc7161be3" %s`,
		url, requestTime)
}

func newConfig(t *testing.T) *configs.Config {
	t.Helper()
	threshold := 10.0
	return &configs.Config{
		Log: configs.LogConfig{Level: "debug"},
		Report: configs.ReportConfig{
			Size:               10,
			Dir:                t.TempDir(),
			ErrorRateThreshold: &threshold,
			TopUserAgents:      5,
		},
		LogSource: configs.LogSourceConfig{Dir: t.TempDir(), Pattern: "nginx-access-ui.log-*"},
		Ingestion: configs.IngestionConfig{Workers: 2, MaxLineBytes: 1024 * 1024},
		Server:    configs.ServerConfig{Port: 8080, ReadHeaderTimeout: 1, ReadTimeout: 1, WriteTimeout: 1, IdleTimeout: 1},
	}
}

func writeGzipLog(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644))
}

func TestApp_GenerateReportEndToEnd(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t)
	writeGzipLog(t, cfg.LogSource.Dir, "nginx-access-ui.log-20170629.gz", accessLine("/old", "9.9"))
	writeGzipLog(t, cfg.LogSource.Dir, "nginx-access-ui.log-20170630.gz",
		accessLine("/a", "0.3"),
		accessLine("/b", "0.2"),
		accessLine("/a", "0.5"),
	)

	application, err := app.New(cfg, io.Discard)
	require.NoError(t, err)
	ctx := application.WithLogger(context.Background())

	report, err := application.ReportService().Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2017.06.30", report.Date)
	assert.Equal(t, int64(3), report.TotalLines)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "/a", report.Rows[0].URL)
	assert.Equal(t, 2, report.Rows[0].Count)
	assert.InDelta(t, 0.8, report.Rows[0].TimeSum, 1e-9)
	assert.Equal(t, "/b", report.Rows[1].URL)

	html, err := os.ReadFile(filepath.Join(cfg.Report.Dir, "report-2017.06.30.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `"url":"/a"`)
	assert.NotContains(t, string(html), "$table_json")
	assert.FileExists(t, filepath.Join(cfg.Report.Dir, "report-2017.06.30.json"))

	// second run over the same log is a no-op
	_, err = application.ReportService().Generate(ctx)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "RPT_1001", svcErr.Code)
	assert.True(t, svcErr.IsBenign())

	stored, err := application.ReportService().Get(ctx, "2017.06.30")
	require.NoError(t, err)
	assert.Equal(t, report.Rows, stored.Rows)
}

func TestApp_GenerateReplacesOrphanedJSON(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t)
	writeGzipLog(t, cfg.LogSource.Dir, "nginx-access-ui.log-20170630.gz", accessLine("/a", "0.3"))
	// left by a run that stopped between the JSON and the HTML write
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Report.Dir, "report-2017.06.30.json"), []byte(`{"date":"2017.06.30"}`), 0o644))

	application, err := app.New(cfg, io.Discard)
	require.NoError(t, err)
	ctx := application.WithLogger(context.Background())

	_, err = application.ReportService().Get(ctx, "2017.06.30")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "RPT_1004", svcErr.Code)

	report, err := application.ReportService().Generate(ctx)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cfg.Report.Dir, "report-2017.06.30.html"))

	stored, err := application.ReportService().Get(ctx, "2017.06.30")
	require.NoError(t, err)
	assert.Equal(t, report.RunID, stored.RunID)
	assert.Equal(t, report.Rows, stored.Rows)
}

func TestApp_NoLogFile(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t)
	application, err := app.New(cfg, io.Discard)
	require.NoError(t, err)

	_, err = application.ReportService().Generate(application.WithLogger(context.Background()))
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "RPT_1000", svcErr.Code)

	entries, err := os.ReadDir(cfg.Report.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApp_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		mutate        func(t *testing.T, cfg *configs.Config)
		expectedError string
	}{
		{
			name:   "defaults",
			mutate: func(t *testing.T, cfg *configs.Config) {},
		},
		{
			name: "custom template",
			mutate: func(t *testing.T, cfg *configs.Config) {
				path := filepath.Join(t.TempDir(), "report.html")
				require.NoError(t, os.WriteFile(path, []byte("<script>var table = $table_json;</script>"), 0o644))
				cfg.Report.Template = path
			},
		},
		{
			name: "template without placeholder",
			mutate: func(t *testing.T, cfg *configs.Config) {
				path := filepath.Join(t.TempDir(), "report.html")
				require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))
				cfg.Report.Template = path
			},
			expectedError: "failed to load report template",
		},
		{
			name: "invalid log level",
			mutate: func(t *testing.T, cfg *configs.Config) {
				cfg.Log.Level = "loud"
			},
			expectedError: "failed to initialize logger",
		},
		{
			name: "watch on missing log dir",
			mutate: func(t *testing.T, cfg *configs.Config) {
				cfg.Watch.Enabled = true
				cfg.LogSource.Dir = filepath.Join(cfg.LogSource.Dir, "missing")
			},
			expectedError: "failed to initialize watcher",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := newConfig(t)
			tt.mutate(t, cfg)

			application, err := app.New(cfg, io.Discard)
			if tt.expectedError != "" {
				assert.ErrorContains(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, application.ReportService())
		})
	}
}

// syncBuffer collects log output written from several goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestApp_ShutdownStopsWatcherWhenServerShutdownFails(t *testing.T) {
	t.Parallel()

	cfg := newConfig(t)
	cfg.Watch.Enabled = true
	cfg.Server.Port = freePort(t)

	var logs syncBuffer
	application, err := app.New(cfg, &logs)
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- application.Start() }()

	// a connection that never sends a request keeps the server from going quiet
	var conn net.Conn
	require.Eventually(t, func() bool {
		c, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port))
		if err != nil {
			return false
		}
		conn = c
		return true
	}, 5*time.Second, 10*time.Millisecond)
	defer conn.Close()
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = application.Shutdown(ctx)
	assert.ErrorContains(t, err, "server shutdown failed")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, logs.String(), "stopped watching log dir")

	select {
	case err := <-served:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
