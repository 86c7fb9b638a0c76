package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressionTypes_Names(t *testing.T) {
	assert.Empty(t, CompressionTypes{}.Names())
	assert.Equal(t, []string{"ASCIIHexDecode"}, CompressionTypes{ASCIIHex: true}.Names())
	assert.Equal(t,
		[]string{"FlateDecode", "ASCIIHexDecode", "ASCII85Decode"},
		CompressionTypes{ASCII85: true, Flate: true, ASCIIHex: true}.Names())
}

func TestStructureAnalysis_EstimatePageCount(t *testing.T) {
	tests := []struct {
		name     string
		analysis *StructureAnalysis
		expected int
	}{
		{name: "Nil", analysis: nil, expected: 1},
		{name: "PageMarkers", analysis: &StructureAnalysis{Pages: 4, Size: 1 << 20}, expected: 4},
		{name: "SmallBuffer", analysis: &StructureAnalysis{Size: 100}, expected: 1},
		{name: "SizeBased", analysis: &StructureAnalysis{Size: 3*BytesPerPageEstimate + 10}, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.analysis.EstimatePageCount())
		})
	}
}

func TestEstimatePagesFromSize(t *testing.T) {
	assert.Equal(t, 1, EstimatePagesFromSize(0))
	assert.Equal(t, 1, EstimatePagesFromSize(BytesPerPageEstimate))
	assert.Equal(t, 2, EstimatePagesFromSize(2*BytesPerPageEstimate))
}
