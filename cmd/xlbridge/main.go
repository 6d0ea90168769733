package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simkit/xlbridge"
)

var (
	verbose    bool
	projectDir string
)

var rootCmd = &cobra.Command{
	Use:   "xlbridge",
	Short: "xlbridge - spreadsheet connector for simulation runs",
	Long: `xlbridge exchanges scalar values between a simulation run and an
Excel workbook: read steps pull cells into simulation state, write steps
push computed values into cells. Each replication writes to its own
derived output file.`,
}

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Execute a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		defer logger.Sync()
		logger = logger.With(zap.String("run_id", uuid.NewString()))

		scenario, err := xlbridge.LoadScenario(args[0])
		if err != nil {
			return err
		}
		if scenario.ProjectDir == "" {
			scenario.ProjectDir = projectDir
		}
		return scenario.Run(xlbridge.NewZapReporter(logger))
	},
}

func init() {
	// .env can supply XLBRIDGE_PROJECT_DIR; absence is fine.
	godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	runCmd.Flags().StringVar(&projectDir, "project-dir", os.Getenv("XLBRIDGE_PROJECT_DIR"),
		"directory for output files when the workbook path has no directory")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
