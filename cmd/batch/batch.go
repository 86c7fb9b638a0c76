// Package batch handles batch processing of files
package batch

import (
	"fmt"

	"fjacquet/pdftext/cmd/root"
	"fjacquet/pdftext/internal/batch"
	"fjacquet/pdftext/internal/logging"

	"github.com/spf13/cobra"
)

// Workers overrides batch.workers from the configuration when positive.
var Workers int

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process PDF files from a directory",
	Long: `Batch process PDF files from an input directory and write a CSV report.

Every .pdf file below the input directory goes through the extraction
pipeline independently. Files that cannot be read are reported with their
error and do not stop the run. The report has one row per file with the
winning method, its scores and the extracted length.

Example:
  pdftext batch -i filings/ -o report.csv --workers 4`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().IntVarP(&Workers, "workers", "w", 0, "Number of concurrent extractions (default from config, 0 means one per CPU)")
	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i is a directory and -o the CSV report):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`)
}

func batchFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	logger := appContainer.GetLogger()

	inputDir, err := root.RequireInput(cmd)
	if err != nil {
		return err
	}

	processor := appContainer.GetBatchProcessor()
	if Workers > 0 {
		cfg := appContainer.GetConfig()
		processor = batch.NewProcessor(appContainer.GetPipeline(), Workers, cfg.Batch.MaxFileSizeMB<<20, logger)
	}
	logger.Info("Batch command called",
		logging.Field{Key: logging.FieldInputFile, Value: inputDir},
		logging.Field{Key: logging.FieldWorkers, Value: processor.Workers()})

	summary, err := processor.ProcessDir(cmd.Context(), inputDir)
	if err != nil {
		return fmt.Errorf("error during batch extraction: %w", err)
	}

	generator := appContainer.GetReportGenerator()
	records := summary.Records()
	if output := root.SharedFlags.Output; output != "" {
		if err := generator.WriteBatchCSVFile(output, records); err != nil {
			return err
		}
	} else if err := generator.WriteBatchCSV(cmd.OutOrStdout(), records); err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("Batch processing completed. %d files processed.", len(summary.Items)))
	return nil
}
