package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"evenly.dev/internal/domain/entity"
	"evenly.dev/internal/domain/port"
)

// jsonFile mirrors the records file schema. Amounts and weights are strings
// so no value ever passes through a float.
type jsonFile struct {
	Participants []string      `json:"participants"`
	Expenses     []jsonExpense `json:"expenses"`
}

type jsonExpense struct {
	Payer  string            `json:"payer"`
	Amount string            `json:"amount"`
	Shares map[string]string `json:"shares"`
	Memo   string            `json:"memo"`
}

// JSONSource implements the RecordSource port for the weighted-shares JSON
// format. The participants list is the closed set; an expense with no shares
// is split evenly across the whole group.
type JSONSource struct {
	path  string
	scale int32
}

// NewJSONSource creates a JSON-file record source.
func NewJSONSource(path string, scale int32) port.RecordSource {
	return &JSONSource{
		path:  path,
		scale: scale,
	}
}

// Load reads and parses the records file.
func (s *JSONSource) Load(_ context.Context) (entity.Group, []entity.ExpenseRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return entity.Group{}, nil, fmt.Errorf("open records file: %w", err)
	}

	var file jsonFile
	if err := json.Unmarshal(data, &file); err != nil {
		return entity.Group{}, nil, fmt.Errorf("parse records file: %w", err)
	}
	if len(file.Participants) == 0 {
		return entity.Group{}, nil, fmt.Errorf("records file declares no participants")
	}

	group, err := entity.NewGroup(file.Participants...)
	if err != nil {
		return entity.Group{}, nil, fmt.Errorf("build participant group: %w", err)
	}

	records := make([]entity.ExpenseRecord, 0, len(file.Expenses))
	for i, expense := range file.Expenses {
		amount, err := entity.ParseAmount(expense.Amount, s.scale)
		if err != nil {
			return entity.Group{}, nil, fmt.Errorf("expense %d: %w", i+1, err)
		}

		shares := make(map[string]decimal.Decimal, len(expense.Shares))
		if len(expense.Shares) == 0 {
			// No shares means an even split across the whole group
			for _, name := range group.Names() {
				shares[name] = decimal.NewFromInt(1)
			}
		} else {
			for name, weight := range expense.Shares {
				parsed, err := decimal.NewFromString(weight)
				if err != nil {
					return entity.Group{}, nil, fmt.Errorf("expense %d: invalid weight %q for %s: %w", i+1, weight, name, err)
				}
				shares[name] = parsed
			}
		}

		records = append(records, entity.ExpenseRecord{
			Payer:  expense.Payer,
			Amount: amount,
			Shares: shares,
			Memo:   expense.Memo,
		})
	}

	return group, records, nil
}
