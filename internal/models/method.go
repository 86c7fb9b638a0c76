package models

// Method identifies the strategy that produced an ExtractionResult.
type Method string

// AllMethods returns every method tag in pipeline order.
func AllMethods() []Method {
	return []Method{
		MethodTextObjects,
		MethodStreams,
		MethodRawTextScan,
		MethodCharacterCodes,
		MethodFallbackSummary,
	}
}

// IsValid reports whether m is one of the fixed method tags.
func (m Method) IsValid() bool {
	for _, known := range AllMethods() {
		if m == known {
			return true
		}
	}
	return false
}

func (m Method) String() string {
	return string(m)
}
