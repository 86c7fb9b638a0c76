package analyze_test

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"fjacquet/pdftext/cmd/analyze"
	"fjacquet/pdftext/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var setup sync.Once

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	setup.Do(func() {
		root.Init()
		root.Cmd.AddCommand(analyze.Cmd)
	})
	root.SharedFlags = root.CommonFlags{}
	t.Chdir(t.TempDir())
	t.Setenv("PDFTEXT_LOG_LEVEL", "error")

	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(&bytes.Buffer{})
	root.Cmd.SetArgs(append([]string{"analyze"}, args...))
	err := root.Cmd.Execute()
	return out.String(), err
}

const sample = "%PDF-1.4\n1 0 obj << /Type /Page >> endobj\n" +
	"2 0 obj << /Length 20 /Filter /ASCIIHexDecode >> stream\nBT (Hello) Tj ET\nendstream endobj\n%%EOF"

func TestAnalyzeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "analyze", analyze.Cmd.Use)
	assert.Contains(t, analyze.Cmd.Short, "structure")
	assert.Contains(t, analyze.Cmd.Long, "Example")
	assert.NotNil(t, analyze.Cmd.RunE)
}

func TestAnalyzeCommand_Text(t *testing.T) {
	input := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(input, []byte(sample), 0600))

	out, err := run(t, "-i", input)
	require.NoError(t, err)
	assert.Contains(t, out, "objects:       2\n")
	assert.Contains(t, out, "streams:       1\n")
	assert.Contains(t, out, "compression:   ASCIIHex")
}

func TestAnalyzeCommand_YAML(t *testing.T) {
	input := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(input, []byte(sample), 0600))

	out, err := run(t, "-i", input, "-f", "yaml")
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, len(sample), parsed["size"])
	assert.Equal(t, 1, parsed["total_streams"])
}

func TestAnalyzeCommand_DirectoryInput(t *testing.T) {
	_, err := run(t, "-i", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}
