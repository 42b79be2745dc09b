package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	appName = "slabwatch"
	version = "v1.4.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Graded-card deal scanner",
		Version: version,
		Long: `slabwatch scans marketplace listings of graded trading cards, resolves a
verified market value for the exact card identity and grade, and scores how
far below value each listing is priced. It never guesses: a listing without a
verified value is reported as unknown, not estimated.`,
	}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Score a batch of listings",
		Long:  "Resolve and score collaborator-parsed listings from a JSON file",
		RunE:  runScan,
	}
	scanCmd.Flags().String("config", "config/slabwatch.yaml", "Path to scanner config")
	scanCmd.Flags().String("input", "", "JSON file of parsed marketplace listings (required)")
	scanCmd.Flags().String("prices", "", "JSON file of local price catalog products")
	scanCmd.Flags().String("sport", "", "Sport hint for the monitored player")
	scanCmd.Flags().Int("min-score", -1, "Override deal threshold")
	_ = scanCmd.MarkFlagRequired("input")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Reference catalog utilities",
	}
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the reference catalog definitions",
		RunE:  runCatalogValidate,
	}
	validateCmd.Flags().String("config", "config/slabwatch.yaml", "Path to scanner config")
	catalogCmd.AddCommand(validateCmd)

	rootCmd.AddCommand(scanCmd, catalogCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
