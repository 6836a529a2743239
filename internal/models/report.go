package models

import "time"

// ReportRow is one URL's aggregated request-time statistics. Time values are seconds,
// percentages are 0..100; every float is rounded to 3 decimals.
type ReportRow struct {
	URL       string  `json:"url"`
	Count     int     `json:"count"`
	CountPerc float64 `json:"count_perc"`
	TimeSum   float64 `json:"time_sum"`
	TimePerc  float64 `json:"time_perc"`
	TimeAvg   float64 `json:"time_avg"`
	TimeMax   float64 `json:"time_max"`
	TimeMed   float64 `json:"time_med"`
}

// UserAgentCount is the number of accepted lines sent by one user-agent family.
type UserAgentCount struct {
	Family string `json:"family"`
	Count  int64  `json:"count"`
}

// Report is the outcome of one successful report run.
//
// Example JSON:
//
//	{
//	  "runId": "01BX5ZZKBKACTAV9WEVGEMMVRZ",
//	  "logFile": {"name": "nginx-access-ui.log-20170630.gz", "path": "/var/log/nginx/...", "date": "2017-06-30T00:00:00Z"},
//	  "date": "2017.06.30",
//	  "generatedAt": "2017-06-30T08:00:00Z",
//	  "totalLines": 3,
//	  "errorLines": 0,
//	  "errorRate": 0,
//	  "rows": [{"url": "/a", "count": 2, "count_perc": 66.667, "time_sum": 0.8, ...}],
//	  "userAgents": [{"family": "Chrome", "count": 3}]
//	}
type Report struct {
	RunID       string           `json:"runId"`
	LogFile     LogFile          `json:"logFile"`
	Date        string           `json:"date"`
	GeneratedAt time.Time        `json:"generatedAt"`
	TotalLines  int64            `json:"totalLines"`
	ErrorLines  int64            `json:"errorLines"`
	ErrorRate   float64          `json:"errorRate"`
	Rows        []ReportRow      `json:"rows"`
	UserAgents  []UserAgentCount `json:"userAgents"`
}
