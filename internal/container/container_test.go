package container

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/pdftext/internal/config"
	"fjacquet/pdftext/internal/lexicon"
	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
	"fjacquet/pdftext/internal/textutils"
)

func TestNewContainer_NilConfig(t *testing.T) {
	_, err := NewContainer(nil)
	assert.EqualError(t, err, "configuration cannot be nil")

	_, err = NewContainerWith(nil, nil, nil)
	assert.Error(t, err)
}

func TestNewContainer_Defaults(t *testing.T) {
	cfg := config.Default()
	cfg.Lexicon.File = filepath.Join(t.TempDir(), "missing.yaml")

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.Same(t, cfg, c.GetConfig())
	assert.NotNil(t, c.GetLogger())
	assert.NotNil(t, c.GetAnalyzer())
	assert.NotNil(t, c.GetReportGenerator())
	assert.NotNil(t, c.GetBatchProcessor())
	assert.Equal(t, models.AllMethods()[:4], c.GetPipeline().Stages())
	assert.Same(t, textutils.DefaultScorer(), c.GetScorer())
}

func TestNewContainer_LexiconTerms(t *testing.T) {
	file := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(file, []byte("terms:\n  - arbitration\n"), 0600))

	cfg := config.Default()
	cfg.Lexicon.File = file
	c, err := NewContainer(cfg)
	require.NoError(t, err)

	assert.Contains(t, c.GetScorer().Terms(), "arbitration")
	result := c.GetPipeline().Extract(context.Background(), []byte("BT (binding arbitration clause) Tj ET"))
	assert.GreaterOrEqual(t, result.Quality, 0.7)
}

func TestNewContainerWith_LexiconError(t *testing.T) {
	_, err := NewContainerWith(config.Default(), logging.NewMockLogger(), &lexicon.MockSource{Err: errors.New("unreadable")})
	assert.ErrorContains(t, err, "failed to load lexicon")
}

func TestNewContainer_CharacterCodesToggle(t *testing.T) {
	cfg := config.Default()
	cfg.Extraction.EnableCharacterCodes = false

	c, err := NewContainerWith(cfg, logging.NewMockLogger(), &lexicon.MockSource{})
	require.NoError(t, err)
	assert.Equal(t, models.AllMethods()[:3], c.GetPipeline().Stages())
}

func TestNewContainer_BatchWorkers(t *testing.T) {
	cfg := config.Default()
	cfg.Batch.Workers = 3

	c, err := NewContainerWith(cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, c.GetBatchProcessor().Workers())
}

func TestPipelineOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Extraction.TotalBudget = 5 * time.Second
	cfg.Extraction.Thresholds.Streams = 0.4
	cfg.Extraction.MaxStreams = 7

	opts := PipelineOptions(cfg)

	assert.Equal(t, 5*time.Second, opts.TotalBudget)
	assert.Equal(t, time.Second, opts.StageReserve)
	assert.Equal(t, 0.3, opts.Thresholds.TextObjects)
	assert.Equal(t, 0.4, opts.Thresholds.Streams)
	assert.Equal(t, 7, opts.Limits.MaxStreams)
	assert.Equal(t, 8*time.Second, opts.Limits.TextObjectsBudget)
	assert.False(t, opts.DisableCharacterCodes)
	assert.Equal(t, 30, opts.MinResultLength)
	assert.Equal(t, 0.1, opts.MinResultQuality)
}
