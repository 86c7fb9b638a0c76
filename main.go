package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/pdftext/cmd/analyze"
	"fjacquet/pdftext/cmd/batch"
	"fjacquet/pdftext/cmd/extract"
	"fjacquet/pdftext/cmd/root"
	"fjacquet/pdftext/internal/config"
	"fjacquet/pdftext/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Default logger for anything that logs before the config is read
	logging.SetLogger(logging.NewLogrusAdapter(logLevelFromEnv(), "text"))

	// 3. Initialize root command and add all subcommands
	root.Init()
	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// logLevelFromEnv returns the configured log level, or info when unset or invalid.
func logLevelFromEnv() string {
	level := strings.ToLower(os.Getenv(config.EnvPrefix + "_LOG_LEVEL"))
	if _, err := logrus.ParseLevel(level); err != nil {
		return "info"
	}
	return level
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
