package events

// LogLineEvent carries one raw access-log line from the reader to a partition worker.
//
// LineNo is 1-based and doubles as the partition key, so consecutive lines spread
// across partitions while the reader keeps a single pass over the file.
//
// Example:
//
//	{LineNo: 42, Text: `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/25019354 HTTP/1.1" ...`}
type LogLineEvent struct {
	LineNo int64
	Text   string
}
