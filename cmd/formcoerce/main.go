// Command formcoerce coerces raw form submissions (JSON records of strings)
// against a JSON Schema or OpenAPI shape and prints the typed result.
//
// Usage:
//
//	formcoerce coerce --schema signup.yaml input.json [more.json ...]
//	formcoerce coerce --schema api.yaml --component Signup --meta input.json
//	formcoerce describe --schema api.yaml --operation createUser
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger  *zap.Logger
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:          "formcoerce",
	Short:        "Coerce raw form values into typed data",
	SilenceUsage: true,
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
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(newCoerceCmd(), newDescribeCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
