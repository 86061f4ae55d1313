package port

import (
	"context"

	"evenly.dev/internal/domain/entity"
)

// RecordSource is the port for loading the participant group and the expense
// records to settle.
type RecordSource interface {
	Load(ctx context.Context) (entity.Group, []entity.ExpenseRecord, error)
}
