package models

// LogRecordSchema lists the LogRecord fields in the order they appear on an access-log line:
//
//	$remote_addr $remote_user $http_x_real_ip [$time_local] "$request" $status $body_bytes_sent
//	"$http_referer" "$http_user_agent" "$http_x_forwarded_for" "$http_X_REQUEST_ID"
//	"$http_X_RB_USER" $request_time
var LogRecordSchema = [...]string{
	"remote_addr",
	"remote_user",
	"http_x_real_ip",
	"time_local",
	"request",
	"status",
	"body_bytes_sent",
	"http_referer",
	"http_user_agent",
	"http_x_forwarded_for",
	"request_id",
	"rb_user",
	"request_time",
}

// LogRecordArity is the number of fields a complete record has.
const LogRecordArity = len(LogRecordSchema)

// LogRecord is one fully assigned access-log line.
type LogRecord struct {
	RemoteAddr        FieldValue
	RemoteUser        FieldValue
	HttpXRealIP       FieldValue
	TimeLocal         FieldValue
	Request           FieldValue
	Status            FieldValue
	BodyBytesSent     FieldValue
	HttpReferer       FieldValue
	HttpUserAgent     FieldValue
	HttpXForwardedFor FieldValue
	RequestID         FieldValue
	RbUser            FieldValue
	RequestTime       FieldValue
}

// Slots returns pointers to the record's fields in LogRecordSchema order.
func (r *LogRecord) Slots() [LogRecordArity]*FieldValue {
	return [LogRecordArity]*FieldValue{
		&r.RemoteAddr,
		&r.RemoteUser,
		&r.HttpXRealIP,
		&r.TimeLocal,
		&r.Request,
		&r.Status,
		&r.BodyBytesSent,
		&r.HttpReferer,
		&r.HttpUserAgent,
		&r.HttpXForwardedFor,
		&r.RequestID,
		&r.RbUser,
		&r.RequestTime,
	}
}
