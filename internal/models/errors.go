package models

import "errors"

// Line-level errors. The ingestion loop counts and skips lines failing with these;
// they never abort a report run.
var (
	// ErrMalformedLine: the lexer could not match the remaining input, the number of fields
	// did not match the schema, or time_local did not parse.
	ErrMalformedLine = errors.New("malformed line")
	// ErrBadRequestField: no URL could be taken from request, or request_time is not a number.
	ErrBadRequestField = errors.New("bad request field")
)
