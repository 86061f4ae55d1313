package usecase

import (
	"context"
	"fmt"

	"evenly.dev/internal/domain/engine"
	"evenly.dev/internal/domain/entity"
	"evenly.dev/internal/domain/port"
	"evenly.dev/internal/infrastructure/logger"
)

// SettleExpensesUseCase runs the full settlement pipeline: load records, fold
// exact balances, round to minor units, solve, present.
type SettleExpensesUseCase struct {
	source    port.RecordSource
	presenter port.ReportPresenter
	solver    *engine.Solver
	scale     int32
	logger    logger.Logger
}

// NewSettleExpensesUseCase creates a new SettleExpensesUseCase
func NewSettleExpensesUseCase(
	source port.RecordSource,
	presenter port.ReportPresenter,
	solver *engine.Solver,
	scale int32,
	appLogger logger.Logger,
) *SettleExpensesUseCase {
	return &SettleExpensesUseCase{
		source:    source,
		presenter: presenter,
		solver:    solver,
		scale:     scale,
		logger:    appLogger,
	}
}

// Execute runs the pipeline once. The first error aborts it; nothing is
// partially presented.
func (uc *SettleExpensesUseCase) Execute(ctx context.Context) error {
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

	plan, err := uc.solver.Settle(balances)
	if err != nil {
		return fmt.Errorf("solve settlement: %w", err)
	}
	uc.logger.LogInfo(ctx, "Settlement solved", "transactions", len(plan))

	report := entity.SettlementReport{
		Scale:    uc.scale,
		Balances: balances,
		Plan:     plan,
	}
	if err := uc.presenter.Present(ctx, report); err != nil {
		return fmt.Errorf("present report: %w", err)
	}

	return nil
}
