package logging

// Field names shared by every log line so output stays filterable.
const (
	FieldFile       = "file_path"
	FieldStrategy   = "strategy"
	FieldMethod     = "method"
	FieldQuality    = "quality"
	FieldConfidence = "confidence"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldRemaining  = "remaining_ms"
	FieldCount      = "count"
	FieldBytes      = "bytes"
	FieldChars      = "chars"
	FieldPages      = "pages"
	FieldWorkers    = "workers"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
