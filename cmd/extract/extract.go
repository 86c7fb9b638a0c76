// Package extract handles text extraction from a single PDF file
package extract

import (
	"errors"
	"fmt"

	"fjacquet/pdftext/cmd/root"
	"fjacquet/pdftext/internal/extractionerror"
	"fjacquet/pdftext/internal/fileutils"
	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/pipeline"
	"fjacquet/pdftext/internal/report"

	"github.com/spf13/cobra"
)

// ShowTrace adds the per-strategy attempt table to the output.
var ShowTrace bool

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract readable text from a PDF file",
	Long: `Extract readable text from a PDF file using the budgeted strategy chain.

The text objects, content streams, raw byte scan and character code stages run
in order until one produces text of sufficient quality. When none does, a
summary of the document structure is returned instead.

Example:
  pdftext extract -i contract.pdf -o contract.txt
  pdftext extract -i contract.pdf -f json --trace`,
	RunE: extractFunc,
}

func init() {
	Cmd.Flags().BoolVar(&ShowTrace, "trace", false, "Include the per-strategy attempts in the output")
}

func extractFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	logger := appContainer.GetLogger()
	cfg := appContainer.GetConfig()

	inputFile, err := root.RequireInput(cmd)
	if err != nil {
		return err
	}
	logger.Info("Extracting text", logging.Field{Key: logging.FieldInputFile, Value: inputFile})

	data, err := fileutils.ReadInput(inputFile, cfg.Batch.MaxFileSizeMB<<20)
	if err != nil && !errors.Is(err, extractionerror.ErrEmptyInput) {
		return err
	}

	result, trace := appContainer.GetPipeline().ExtractWithTrace(cmd.Context(), data)
	var shown *pipeline.Trace
	if ShowTrace {
		shown = &trace
	}

	doc := report.NewDocument(inputFile, result, shown)
	out, err := appContainer.GetReportGenerator().RenderDocument(doc, cfg.Output.Format)
	if err != nil {
		return err
	}
	return root.WriteOutput(cmd.OutOrStdout(), out)
}
