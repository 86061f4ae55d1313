package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"evenly.dev/internal/application/usecase"
	"evenly.dev/internal/domain/engine"
	"evenly.dev/internal/domain/port"
	"evenly.dev/internal/infrastructure/config"
	"evenly.dev/internal/infrastructure/ingest"
	"evenly.dev/internal/infrastructure/logger"
	"evenly.dev/internal/infrastructure/presenter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	settleFormat       string
	settleOutput       string
	settleParticipants []string
	settleStrategy     string
	settleScale        int32
)

var settleCmd = &cobra.Command{
	Use:   "settle <records-file>",
	Short: "Compute net balances and the settlement plan for a records file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configDir())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Flags win over config files and environment
		if cmd.Flags().Changed("scale") {
			cfg.Currency.Scale = settleScale
		}
		if cmd.Flags().Changed("strategy") {
			cfg.Solver.Strategy = settleStrategy
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		strategy, err := engine.ParseStrategy(cfg.Solver.Strategy)
		if err != nil {
			return err
		}

		// Every log line of this invocation carries one run ID
		runID := uuid.New().String()
		appLogger := logger.NewLogger(cfg.Log.Level).WithRunID(runID)

		ctx := cmd.Context()
		appLogger.LogInfo(ctx, "Configuration loaded",
			"scale", cfg.Currency.Scale,
			"strategy", string(strategy))

		// Initialize infrastructure adapters
		source, err := resolveSource(args[0], settleFormat, cfg.Currency.Scale, settleParticipants)
		if err != nil {
			return err
		}
		reportPresenter, err := resolvePresenter(settleOutput)
		if err != nil {
			return err
		}

		solver := engine.NewSolver(engine.SolverConfig{
			Strategy:             strategy,
			ExactMaxParticipants: cfg.Solver.ExactMaxParticipants,
			ExactStepBudget:      cfg.Solver.ExactStepBudget,
		})

		// Initialize use case
		settleUseCase := usecase.NewSettleExpensesUseCase(
			source,
			reportPresenter,
			solver,
			cfg.Currency.Scale,
			appLogger,
		)

		start := time.Now()
		appLogger.LogInfo(ctx, "Run started", "records_file", args[0])

		if err := settleUseCase.Execute(ctx); err != nil {
			appLogger.LogError(ctx, "Run failed", err)
			return err
		}

		appLogger.LogInfo(ctx, "Run completed",
			"duration_ms", time.Since(start).Milliseconds())

		return nil
	},
}

// configDir is where the layered YAML configuration lives, relative to where
// the binary is run from. Missing files are fine; defaults apply.
func configDir() string {
	return filepath.Join("cmd", "config")
}

// resolveSource picks the records adapter, by file extension unless a format
// was forced.
func resolveSource(path, format string, scale int32, participants []string) (port.RecordSource, error) {
	chosen := strings.ToLower(strings.TrimSpace(format))
	if chosen == "" || chosen == "auto" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			chosen = "csv"
		case ".json":
			chosen = "json"
		default:
			return nil, fmt.Errorf("cannot infer records format from %q; pass --format csv or --format json", path)
		}
	}

	switch chosen {
	case "csv":
		return ingest.NewCSVSource(path, scale, participants), nil
	case "json":
		if len(participants) > 0 {
			return nil, fmt.Errorf("--participants applies to csv records; json files declare their own participant list")
		}
		return ingest.NewJSONSource(path, scale), nil
	default:
		return nil, fmt.Errorf("unknown records format %q", format)
	}
}

// resolvePresenter picks the report renderer. Reports go to stdout; logs stay
// on stderr.
func resolvePresenter(output string) (port.ReportPresenter, error) {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", "text":
		return presenter.NewTextPresenter(os.Stdout), nil
	case "json":
		return presenter.NewJSONPresenter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", output)
	}
}

func init() { //nolint:gochecknoinits
	settleCmd.Flags().StringVar(&settleFormat, "format", "auto", "records file format: auto, csv or json")
	settleCmd.Flags().StringVar(&settleOutput, "output", "text", "report format: text or json")
	settleCmd.Flags().StringSliceVar(&settleParticipants, "participants", nil,
		"closed participant set for csv records (default: every name the file mentions)")
	settleCmd.Flags().StringVar(&settleStrategy, "strategy", "", "solver strategy: greedy or exact (overrides config)")
	settleCmd.Flags().Int32Var(&settleScale, "scale", 2, "minor-unit digits of the currency (overrides config)")
	rootCmd.AddCommand(settleCmd)
}
