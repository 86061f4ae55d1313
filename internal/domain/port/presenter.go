package port

import (
	"context"

	"evenly.dev/internal/domain/entity"
)

// ReportPresenter is the port for rendering settlement results.
type ReportPresenter interface {
	Present(ctx context.Context, report entity.SettlementReport) error
	PresentBalances(ctx context.Context, scale int32, balances entity.Balances) error
}
