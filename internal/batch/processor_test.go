package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fjacquet/pdftext/internal/budget"
	"fjacquet/pdftext/internal/extractionerror"
	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
	"fjacquet/pdftext/internal/pipeline"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, data []byte) models.ExtractionResult {
	args := m.Called(ctx, data)
	return args.Get(0).(models.ExtractionResult)
}

func writePDFs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}
	return dir
}

func TestProcessor_ProcessDir(t *testing.T) {
	dir := writePDFs(t, map[string]string{
		"a.pdf":     "first",
		"b.pdf":     "second",
		"c.pdf":     "",
		"d.pdf":     "third",
		"notes.txt": "ignored",
	})

	extractor := &MockExtractor{}
	extractor.On("Extract", mock.Anything, []byte("first")).Return(models.ExtractionResult{Text: "one", Method: models.MethodTextObjects, Quality: 0.6, PageCount: 1})
	extractor.On("Extract", mock.Anything, []byte("second")).Return(models.ExtractionResult{Text: "two", Method: models.MethodStreams, Quality: 0.4, PageCount: 1})
	extractor.On("Extract", mock.Anything, []byte("third")).Return(models.ExtractionResult{Text: "summary", Method: models.MethodFallbackSummary, Quality: 0.5, PageCount: 1})

	logger := logging.NewMockLogger()
	summary, err := NewProcessor(extractor, 2, 0, logger).ProcessDir(context.Background(), dir)
	require.NoError(t, err)

	_, err = uuid.Parse(summary.RunID)
	assert.NoError(t, err)

	require.Len(t, summary.Items, 4)
	assert.Equal(t, filepath.Join(dir, "a.pdf"), summary.Items[0].File)
	assert.Equal(t, "one", summary.Items[0].Result.Text)
	assert.Equal(t, "two", summary.Items[1].Result.Text)
	assert.ErrorIs(t, summary.Items[2].Err, extractionerror.ErrEmptyInput)
	assert.Equal(t, models.MethodFallbackSummary, summary.Items[3].Result.Method)

	assert.Equal(t, 4, summary.Stats.Total)
	assert.Equal(t, 2, summary.Stats.Extracted)
	assert.Equal(t, 1, summary.Stats.Fallback)
	assert.Equal(t, 1, summary.Stats.Failed)
	extractor.AssertNumberOfCalls(t, "Extract", 3)

	assert.True(t, logger.HasEntry("INFO", "Extraction summary"))
	assert.True(t, logger.HasEntry("WARN", "Skipping unreadable file"))
}

func TestProcessor_Records(t *testing.T) {
	summary := &Summary{Items: []Item{
		{File: "a.pdf", Result: models.ExtractionResult{Text: "abc", Method: models.MethodRawTextScan, Quality: 0.25, Confidence: 0.7, PageCount: 3}},
		{File: "b.pdf", Err: errors.New("unreadable")},
	}}

	records := summary.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "raw-text-scan", records[0].Method)
	assert.Equal(t, "0.250", records[0].Quality)
	assert.Equal(t, 3, records[0].Chars)
	assert.Equal(t, "unreadable", records[1].Error)
}

func TestProcessor_SizeLimit(t *testing.T) {
	dir := writePDFs(t, map[string]string{"big.pdf": "0123456789"})
	extractor := &MockExtractor{}

	summary, err := NewProcessor(extractor, 1, 4, nil).ProcessDir(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, summary.Items, 1)
	assert.ErrorIs(t, summary.Items[0].Err, extractionerror.ErrInputTooLarge)
	extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestProcessor_Cancelled(t *testing.T) {
	dir := writePDFs(t, map[string]string{"a.pdf": "first"})
	extractor := &MockExtractor{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProcessor(extractor, 1, 0, nil).ProcessDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
	extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestProcessor_MissingDir(t *testing.T) {
	_, err := NewProcessor(&MockExtractor{}, 1, 0, nil).ProcessDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestProcessor_DefaultWorkers(t *testing.T) {
	assert.Equal(t, runtime.NumCPU(), NewProcessor(&MockExtractor{}, 0, 0, nil).Workers())
	assert.Equal(t, 3, NewProcessor(&MockExtractor{}, 3, 0, nil).Workers())
}

func TestProcessor_WithPipeline(t *testing.T) {
	dir := writePDFs(t, map[string]string{
		"hello.pdf":  "%PDF-1.4\nBT (Hello World) Tj ET\n%%EOF",
		"binary.pdf": "\x00\x01\x02\x03",
	})

	opts := pipeline.DefaultOptions()
	opts.Clock = budget.NewManualClock(budget.SystemClock{}.Now())
	orchestrator := pipeline.New(opts, nil)

	summary, err := NewProcessor(orchestrator, 2, 0, nil).ProcessDir(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, summary.Items, 2)
	assert.Equal(t, models.MethodFallbackSummary, summary.Items[0].Result.Method)
	assert.Equal(t, models.MethodTextObjects, summary.Items[1].Result.Method)
	assert.Contains(t, summary.Items[1].Result.Text, "Hello World")
}
