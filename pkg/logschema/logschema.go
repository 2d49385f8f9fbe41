package logschema

// Log schema constants for sdrhunter structured logs.
const (
	SchemaID    = "sdrhunter.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldResult    = "result"
	FieldError     = "error"
	FieldRunID     = "run_id"
	FieldCapture   = "capture"
	FieldScan      = "scan"
	FieldKind      = "kind"
	FieldFrequency = "freq_hz"
	FieldBandwidth = "bw_hz"
	FieldThreshold = "threshold_db"
)

// Result values attached under FieldResult.
const (
	ResultSuccess = "SUCCESS"
	ResultFailure = "FAILURE"
)

// LogRecord is a generic map representation of a log entry.
type LogRecord map[string]interface{}
