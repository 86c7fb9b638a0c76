// Package root contains the root command for the application
package root

import (
	"fmt"
	"io"
	"os"
	"sync"

	"fjacquet/pdftext/internal/config"
	"fjacquet/pdftext/internal/container"
	"fjacquet/pdftext/internal/fileutils"
	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	Format     string
	ConfigFile string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "pdftext",
		Short: "A CLI tool to recover readable text from PDF legal documents.",
		Long: `pdftext recovers readable text from PDF files without a PDF library.
It runs a chain of byte-level extraction strategies under a time budget and
always answers, falling back to a structural summary when no text survives.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			Log.Info("Welcome to pdftext!")
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.Load(SharedFlags.ConfigFile)
			if err != nil {
				return err
			}
			if SharedFlags.Format != "" {
				cfg.Output.Format = SharedFlags.Format
			}

			c, err := container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			appContainer = c
			Log = c.GetLogger()
			logging.SetLogger(Log)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer == nil {
				return
			}
			if err := appContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close container")
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	appContainer *container.Container
	initOnce     sync.Once
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (stdout when empty)")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Output format: text, json or yaml")
		Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches ./config.yaml and $HOME/.pdftext)")
	})
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// WriteOutput writes data to the --output file, or to w when none is set.
func WriteOutput(w io.Writer, data []byte) error {
	if SharedFlags.Output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := fileutils.WriteFile(SharedFlags.Output, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	Log.Info("Wrote output",
		logging.Field{Key: logging.FieldOutputFile, Value: SharedFlags.Output},
		logging.Field{Key: logging.FieldBytes, Value: len(data)})
	return nil
}

// RequireInput returns the --input value or an error naming the command.
func RequireInput(cmd *cobra.Command) (string, error) {
	if SharedFlags.Input == "" {
		return "", fmt.Errorf("%s: --input is required", cmd.Name())
	}
	if _, err := os.Stat(SharedFlags.Input); err != nil {
		return "", fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return SharedFlags.Input, nil
}
