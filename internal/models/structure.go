package models

// CompressionTypes records which stream filters a buffer declares.
type CompressionTypes struct {
	Flate    bool `json:"flate" yaml:"flate"`
	ASCIIHex bool `json:"ascii_hex" yaml:"ascii_hex"`
	ASCII85  bool `json:"ascii85" yaml:"ascii85"`
}

// Names returns the declared filter names in a stable order.
func (c CompressionTypes) Names() []string {
	var names []string
	if c.Flate {
		names = append(names, "FlateDecode")
	}
	if c.ASCIIHex {
		names = append(names, "ASCIIHexDecode")
	}
	if c.ASCII85 {
		names = append(names, "ASCII85Decode")
	}
	return names
}

// StructureAnalysis holds the structural signals of one buffer. It is built
// once per extraction and must not be modified afterwards.
type StructureAnalysis struct {
	Size             int              `json:"size" yaml:"size"`
	TotalObjects     int              `json:"total_objects" yaml:"total_objects"`
	TotalStreams     int              `json:"total_streams" yaml:"total_streams"`
	TextObjects      int              `json:"text_objects" yaml:"text_objects"`
	Fonts            int              `json:"fonts" yaml:"fonts"`
	Pages            int              `json:"pages" yaml:"pages"`
	HasCompression   bool             `json:"has_compression" yaml:"has_compression"`
	CompressionTypes CompressionTypes `json:"compression_types" yaml:"compression_types"`

	// Debugging aids only.
	SampleTextObject string `json:"sample_text_object,omitempty" yaml:"sample_text_object,omitempty"`
	SampleStream     string `json:"sample_stream,omitempty" yaml:"sample_stream,omitempty"`
}

// EstimatePageCount returns the page count from /Type /Page markers, or a
// size-based guess when the buffer declares none.
func (s *StructureAnalysis) EstimatePageCount() int {
	if s == nil {
		return 1
	}
	if s.Pages > 0 {
		return s.Pages
	}
	return EstimatePagesFromSize(s.Size)
}

// EstimatePagesFromSize guesses a page count from the buffer size alone.
func EstimatePagesFromSize(size int) int {
	pages := size / BytesPerPageEstimate
	if pages < 1 {
		return 1
	}
	return pages
}
