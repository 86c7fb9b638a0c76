package models

// Extraction methods
const (
	MethodTextObjects     Method = "text-objects"
	MethodStreams         Method = "streams"
	MethodRawTextScan     Method = "raw-text-scan"
	MethodCharacterCodes  Method = "character-codes"
	MethodFallbackSummary Method = "fallback-summary"
)

// Page estimation
const (
	// BytesPerPageEstimate is used when a buffer carries no /Type /Page markers.
	BytesPerPageEstimate = 50000
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
