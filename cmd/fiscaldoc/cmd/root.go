package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rezonia/fiscaldoc/internal/config"
	"github.com/rezonia/fiscaldoc/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	outputPath   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fiscaldoc",
	Short: "Generate Italian regulatory documents for entertainment bookings",
	Long: `Fiscaldoc generates the regulatory filings of an entertainment-booking
agency from plain JSON records.

Supports:
  - Codice fiscale validation and decoding
  - INPS agibilità communications (XML)
  - FatturaPA v1.2 electronic invoices (XML)
  - Danea Easyfatt accounting exports (XML, single or batch)

Examples:
  # Validate and decode fiscal codes
  fiscaldoc codice RSSMRA80A01H501U

  # Generate an INPS communication from a record file
  fiscaldoc genera inps engagement.json -o comunicazione.xml

  # Generate a FatturaPA invoice
  fiscaldoc genera fatturapa invoice.json

  # Start the HTTP API
  fiscaldoc serve`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format for verdicts (json, table)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Write generated document to file instead of stdout")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Optional .env; real deployments set the environment directly
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.LogConfig{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		TimeFormat: cfg.LogTimeFormat,
		Output:     cfg.LogOutput,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logger.Setup(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logging: %v\n", err)
		os.Exit(1)
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
