package presenter

import (
	"context"
	"encoding/json"
	"io"

	"evenly.dev/internal/domain/entity"
	"evenly.dev/internal/domain/port"
)

// reportDocument is the machine-readable report schema. Amounts are
// fixed-scale decimal strings so no consumer ever touches a float.
type reportDocument struct {
	Balances     map[string]string     `json:"balances"`
	Transactions []transactionDocument `json:"transactions"`
}

type transactionDocument struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type balancesDocument struct {
	Balances map[string]string `json:"balances"`
}

// JSONPresenter renders reports as one JSON document per call. Map keys are
// emitted sorted, so the bytes are identical run to run.
type JSONPresenter struct {
	w io.Writer
}

// NewJSONPresenter creates a JSON presenter writing to w.
func NewJSONPresenter(w io.Writer) port.ReportPresenter {
	return &JSONPresenter{w: w}
}

// Present writes the full report document.
func (p *JSONPresenter) Present(_ context.Context, report entity.SettlementReport) error {
	doc := reportDocument{
		Balances:     formatBalances(report.Scale, report.Balances),
		Transactions: make([]transactionDocument, 0, len(report.Plan)),
	}
	for _, tx := range report.Plan {
		doc.Transactions = append(doc.Transactions, transactionDocument{
			From:   tx.From,
			To:     tx.To,
			Amount: entity.FormatAmount(tx.Amount, report.Scale),
		})
	}
	return json.NewEncoder(p.w).Encode(doc)
}

// PresentBalances writes only the balances document.
func (p *JSONPresenter) PresentBalances(_ context.Context, scale int32, balances entity.Balances) error {
	return json.NewEncoder(p.w).Encode(balancesDocument{
		Balances: formatBalances(scale, balances),
	})
}

func formatBalances(scale int32, balances entity.Balances) map[string]string {
	out := make(map[string]string, len(balances))
	for name, units := range balances {
		out[name] = entity.FormatAmount(units, scale)
	}
	return out
}
