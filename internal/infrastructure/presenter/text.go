package presenter

import (
	"context"
	"fmt"
	"io"

	"evenly.dev/internal/domain/entity"
	"evenly.dev/internal/domain/port"
)

// TextPresenter renders reports in the classic tab-separated layout: a
// final-balances block ordered by name, then one line per transfer in plan
// order.
type TextPresenter struct {
	w io.Writer
}

// NewTextPresenter creates a text presenter writing to w.
func NewTextPresenter(w io.Writer) port.ReportPresenter {
	return &TextPresenter{w: w}
}

// Present writes the balances block followed by the settlement plan.
func (p *TextPresenter) Present(ctx context.Context, report entity.SettlementReport) error {
	if err := p.PresentBalances(ctx, report.Scale, report.Balances); err != nil {
		return err
	}

	if len(report.Plan) == 0 {
		_, err := fmt.Fprintln(p.w, "nothing to settle")
		return err
	}

	if _, err := fmt.Fprintln(p.w, "transactions:"); err != nil {
		return err
	}
	for _, tx := range report.Plan {
		_, err := fmt.Fprintf(p.w, "%s\ttransfers\t%s\tto\t%s\n",
			tx.From, entity.FormatAmount(tx.Amount, report.Scale), tx.To)
		if err != nil {
			return err
		}
	}
	return nil
}

// PresentBalances writes only the final-balances block.
func (p *TextPresenter) PresentBalances(_ context.Context, scale int32, balances entity.Balances) error {
	if _, err := fmt.Fprintln(p.w, "final balances:"); err != nil {
		return err
	}
	for _, name := range balances.Names() {
		_, err := fmt.Fprintf(p.w, "%s:\t\t%s\n", name, entity.FormatAmount(balances[name], scale))
		if err != nil {
			return err
		}
	}
	return nil
}
