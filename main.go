package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultDataFile   = "arc_aac_data.csv"
	defaultMajorsFile = "majors.txt"
)

var (
	dataPath   string
	majorsPath string
	configPath string
	jsonOut    string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "arc-survey-report",
	Short: "Descriptive statistics for the ARC/AAC student survey export",
	Long: `arc-survey-report reads the Qualtrics export of the ARC/AAC student survey
and prints frequency counts and conditional breakdowns of the responses.

The majors frequency table is written to majors.txt; everything else goes to
stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if dataPath == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			dataPath = filepath.Join(cwd, defaultDataFile)
		}

		survey, err := loadSurvey(configPath)
		if err != nil {
			return err
		}

		runLogger := logger.With(zap.String("run_id", uuid.New().String()))
		report, err := runReport(dataPath, majorsPath, survey, cmd.OutOrStdout(), runLogger)
		if err != nil {
			return err
		}

		if jsonOut != "" {
			if err := writeJSON(report, jsonOut); err != nil {
				return err
			}
			runLogger.Info("wrote JSON report", zap.String("path", jsonOut))
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&dataPath, "data", "", "Path to survey export CSV (default <cwd>/"+defaultDataFile+")")
	rootCmd.Flags().StringVar(&majorsPath, "majors", defaultMajorsFile, "Output path for the majors frequency report")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML survey layout overriding question codes and labels")
	rootCmd.Flags().StringVar(&jsonOut, "json", "", "Optional JSON output path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
