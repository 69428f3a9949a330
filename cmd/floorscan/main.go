package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quietgrid/floorscan/internal/geometry"
	"github.com/quietgrid/floorscan/internal/inventory"
)

var (
	separators string
	chairs     string
	logLevel   string
	strict     bool
	xlsxPath   string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "floorscan <floor-plan>",
	Short: "Count chairs per room in an ASCII floor plan",
	Long: `floorscan reads an ASCII floor plan, segments it into rooms along the
wall characters and prints a chair tally: the grand total first, then
every room in alphabetical order.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewDevelopmentConfig()
		switch logLevel {
		case "debug":
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		case "info":
			config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		case "warn":
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		case "error":
			config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		default:
			return fmt.Errorf("invalid log level %q", logLevel)
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
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	planPath := args[0]

	walls, err := geometry.ParseCharSet(separators)
	if err != nil {
		return fmt.Errorf("invalid --separators: %w", err)
	}
	chairSet, err := geometry.ParseCharSet(chairs)
	if err != nil {
		return fmt.Errorf("invalid --chairs: %w", err)
	}

	f, err := os.Open(planPath)
	if err != nil {
		return fmt.Errorf("failed to open floor plan: %w", err)
	}
	defer f.Close()

	report, err := inventory.AnalyzeReader(f, geometry.Alphabet{Walls: walls, Chairs: chairSet}, inventory.Options{
		Strict: strict,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	for _, issue := range report.Issues {
		logger.Debug("unresolved region",
			zap.String("code", string(issue.Code)),
			zap.Strings("labels", issue.Labels))
	}

	fmt.Println(report.String())

	if xlsxPath != "" {
		if err := inventory.WriteXLSX(report, xlsxPath); err != nil {
			return err
		}
		logger.Info("wrote spreadsheet", zap.String("path", xlsxPath))
	}
	return nil
}

func main() {
	rootCmd.Flags().StringVar(&separators, "separators", `+,-,|,/,\`, "comma-separated wall characters")
	rootCmd.Flags().StringVar(&chairs, "chairs", "C,S,P,W", "comma-separated chair characters")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "fail on ambiguous labels or unlabeled regions holding chairs")
	rootCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the tally to this .xlsx file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
