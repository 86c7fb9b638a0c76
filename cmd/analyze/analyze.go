// Package analyze reports the byte-level structure of a PDF file
package analyze

import (
	"errors"
	"fmt"

	"fjacquet/pdftext/cmd/root"
	"fjacquet/pdftext/internal/extractionerror"
	"fjacquet/pdftext/internal/fileutils"
	"fjacquet/pdftext/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the structure of a PDF file",
	Long: `Analyze the structure of a PDF file without extracting its text.

Counts objects, streams, text objects and fonts, lists the compression filters
in use and estimates the page count. The file does not need to be well formed.

Example:
  pdftext analyze -i contract.pdf
  pdftext analyze -i contract.pdf -f yaml`,
	RunE: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	cfg := appContainer.GetConfig()

	inputFile, err := root.RequireInput(cmd)
	if err != nil {
		return err
	}

	data, err := fileutils.ReadInput(inputFile, cfg.Batch.MaxFileSizeMB<<20)
	if err != nil && !errors.Is(err, extractionerror.ErrEmptyInput) {
		return err
	}

	analysis := appContainer.GetAnalyzer().Analyze(cmd.Context(), data)
	appContainer.GetLogger().Debug("Structure analyzed",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldBytes, Value: len(data)})

	out, err := appContainer.GetReportGenerator().RenderAnalysis(analysis, cfg.Output.Format)
	if err != nil {
		return err
	}
	return root.WriteOutput(cmd.OutOrStdout(), out)
}
