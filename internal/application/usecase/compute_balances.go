package usecase

import (
	"context"
	"fmt"

	"evenly.dev/internal/domain/engine"
	"evenly.dev/internal/domain/port"
	"evenly.dev/internal/infrastructure/logger"
)

// ComputeBalancesUseCase handles the balances-only view: the pipeline without
// the settlement solver.
type ComputeBalancesUseCase struct {
	source    port.RecordSource
	presenter port.ReportPresenter
	scale     int32
	logger    logger.Logger
}

// NewComputeBalancesUseCase creates a new ComputeBalancesUseCase
func NewComputeBalancesUseCase(
	source port.RecordSource,
	presenter port.ReportPresenter,
	scale int32,
	appLogger logger.Logger,
) *ComputeBalancesUseCase {
	return &ComputeBalancesUseCase{
		source:    source,
		presenter: presenter,
		scale:     scale,
		logger:    appLogger,
	}
}

// Execute loads the records, folds and rounds the balances and presents them.
func (uc *ComputeBalancesUseCase) Execute(ctx context.Context) error {
	group, records, err := uc.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	uc.logger.LogInfo(ctx, "Records loaded",
		"participants", group.Size(),
		"records", len(records))

	raw, err := engine.ComputeBalances(group, records)
	if err != nil {
		return fmt.Errorf("compute balances: %w", err)
	}

	balances, err := engine.RoundBalances(raw)
	if err != nil {
		return fmt.Errorf("round balances: %w", err)
	}

	if err := uc.presenter.PresentBalances(ctx, uc.scale, balances); err != nil {
		return fmt.Errorf("present balances: %w", err)
	}

	return nil
}
