package locators

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/loggers"

	"github.com/bmatcuk/doublestar/v4"
)

const logFileDateLayout = "20060102"

// logFileName is what a rotated nginx UI access log is called: the rotation date and an
// optional compression suffix.
var logFileName = regexp.MustCompile(`^nginx-access-ui\.log-(\d{8})(\.gz|\.zst)?$`)

//go:generate mockgen -source=log_locator.go -destination=./mocks/log_locator_mock.go -package=mocks
type LogLocator interface {
	// Newest returns the log file in dir with the latest date in its name, or an error
	// wrapping ErrLogFileNotFound.
	Newest(ctx context.Context, dir string) (*models.LogFile, error)
	// Matches reports whether a file name is a candidate log file.
	Matches(name string) bool
}

type logLocator struct {
	pattern string
}

// NewLogLocator returns a locator that globs pattern (doublestar syntax, relative to the log dir)
// and keeps the names that look like rotated access logs.
func NewLogLocator(pattern string) LogLocator {
	return &logLocator{pattern: pattern}
}

func (l *logLocator) Newest(ctx context.Context, dir string) (*models.LogFile, error) {
	logger := loggers.Ctx(ctx)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errInternalLogDirScanFailed(err)
	}
	info, err := os.Stat(absDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: log dir %s does not exist", ErrLogFileNotFound, absDir)
	}
	if err != nil {
		return nil, errInternalLogDirScanFailed(err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrLogFileNotFound, absDir)
	}

	names, err := doublestar.Glob(os.DirFS(absDir), l.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errInternalLogDirScanFailed(err)
	}

	var newest *models.LogFile
	for _, name := range names {
		date, ok := parseLogFileDate(name)
		if !ok {
			logger.Debug().Str(loggers.FieldLogFile, name).Msg("skipping file that is not a dated access log")
			continue
		}
		if newest == nil || date.After(newest.Date) || (date.Equal(newest.Date) && name < newest.Name) {
			newest = &models.LogFile{
				Name: name,
				Path: filepath.Join(absDir, filepath.FromSlash(name)),
				Date: date,
			}
		}
	}

	if newest == nil {
		return nil, fmt.Errorf("%w: no file matching %q in %s", ErrLogFileNotFound, l.pattern, absDir)
	}
	logger.Debug().Str(loggers.FieldLogFile, newest.Path).Msg("located newest log file")
	return newest, nil
}

func (l *logLocator) Matches(name string) bool {
	base := path.Base(filepath.ToSlash(name))
	matched, err := doublestar.Match(path.Base(l.pattern), base)
	if err != nil || !matched {
		return false
	}
	_, ok := parseLogFileDate(base)
	return ok
}

func parseLogFileDate(name string) (time.Time, bool) {
	match := logFileName.FindStringSubmatch(path.Base(name))
	if match == nil {
		return time.Time{}, false
	}
	date, err := time.Parse(logFileDateLayout, match[1])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
