package models

import "time"

const ReportDateLayout = "2006.01.02"

// LogFile is an access log selected for a report run.
type LogFile struct {
	Name string    `json:"name"` // relative to the log dir, also its storage key
	Path string    `json:"path"` // absolute path, for logging
	Date time.Time `json:"date"` // date encoded in the file name
}

// ReportDate formats the log's date the way report file names carry it.
func (f *LogFile) ReportDate() string {
	return f.Date.Format(ReportDateLayout)
}
