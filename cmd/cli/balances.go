package cli

import (
	"fmt"
	"time"

	"evenly.dev/internal/application/usecase"
	"evenly.dev/internal/infrastructure/config"
	"evenly.dev/internal/infrastructure/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	balancesFormat       string
	balancesOutput       string
	balancesParticipants []string
	balancesScale        int32
)

var balancesCmd = &cobra.Command{
	Use:   "balances <records-file>",
	Short: "Compute only the rounded net balances for a records file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configDir())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("scale") {
			cfg.Currency.Scale = balancesScale
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		runID := uuid.New().String()
		appLogger := logger.NewLogger(cfg.Log.Level).WithRunID(runID)

		ctx := cmd.Context()
		appLogger.LogInfo(ctx, "Configuration loaded", "scale", cfg.Currency.Scale)

		source, err := resolveSource(args[0], balancesFormat, cfg.Currency.Scale, balancesParticipants)
		if err != nil {
			return err
		}
		reportPresenter, err := resolvePresenter(balancesOutput)
		if err != nil {
			return err
		}

		balancesUseCase := usecase.NewComputeBalancesUseCase(
			source,
			reportPresenter,
			cfg.Currency.Scale,
			appLogger,
		)

		start := time.Now()
		appLogger.LogInfo(ctx, "Run started", "records_file", args[0])

		if err := balancesUseCase.Execute(ctx); err != nil {
			appLogger.LogError(ctx, "Run failed", err)
			return err
		}

		appLogger.LogInfo(ctx, "Run completed",
			"duration_ms", time.Since(start).Milliseconds())

		return nil
	},
}

func init() { //nolint:gochecknoinits
	balancesCmd.Flags().StringVar(&balancesFormat, "format", "auto", "records file format: auto, csv or json")
	balancesCmd.Flags().StringVar(&balancesOutput, "output", "text", "report format: text or json")
	balancesCmd.Flags().StringSliceVar(&balancesParticipants, "participants", nil,
		"closed participant set for csv records (default: every name the file mentions)")
	balancesCmd.Flags().Int32Var(&balancesScale, "scale", 2, "minor-unit digits of the currency (overrides config)")
	rootCmd.AddCommand(balancesCmd)
}
