package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"evenly.dev/internal/domain/entity"
	"evenly.dev/internal/domain/port"
)

// CSVSource implements the RecordSource port for the classic records format:
// a header line followed by sponsor,amount,debtors[,memo] rows. The debtors
// column is a comma-joined name list inside one (quoted) field, and the
// sponsor always carries an equal share alongside the debtors.
type CSVSource struct {
	path         string
	scale        int32
	participants []string
}

// NewCSVSource creates a CSV-file record source. An empty participants list
// means the group is the union of every name the rows mention; a non-empty
// list is the closed set and unknown names fail in the balance engine.
func NewCSVSource(path string, scale int32, participants []string) port.RecordSource {
	return &CSVSource{
		path:         path,
		scale:        scale,
		participants: participants,
	}
}

// Load reads and parses the records file.
func (s *CSVSource) Load(_ context.Context) (entity.Group, []entity.ExpenseRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return entity.Group{}, nil, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	return s.parse(f)
}

func (s *CSVSource) parse(r io.Reader) (entity.Group, []entity.ExpenseRecord, error) {
	reader := csv.NewReader(r)
	// The memo column is optional row by row
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return entity.Group{}, nil, fmt.Errorf("records file is empty")
	}
	if err != nil {
		return entity.Group{}, nil, fmt.Errorf("read header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return entity.Group{}, nil, err
	}

	var records []entity.ExpenseRecord
	var seen []string
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return entity.Group{}, nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) <= columns.debtors || len(row) <= columns.amount || len(row) <= columns.sponsor {
			return entity.Group{}, nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, columns.required(), len(row))
		}

		sponsor := strings.TrimSpace(row[columns.sponsor])
		if sponsor == "" {
			return entity.Group{}, nil, fmt.Errorf("line %d: sponsor must not be empty", line)
		}

		amount, err := entity.ParseAmount(strings.TrimSpace(row[columns.amount]), s.scale)
		if err != nil {
			return entity.Group{}, nil, fmt.Errorf("line %d: %w", line, err)
		}

		debtors := splitNames(row[columns.debtors])

		memo := ""
		if columns.memo >= 0 && len(row) > columns.memo {
			memo = strings.TrimSpace(row[columns.memo])
		}

		// The sponsor shares the expense too, with the same weight as every
		// debtor.
		shares := make(map[string]decimal.Decimal, len(debtors)+1)
		shares[sponsor] = decimal.NewFromInt(1)
		seen = append(seen, sponsor)
		for _, debtor := range debtors {
			shares[debtor] = decimal.NewFromInt(1)
			seen = append(seen, debtor)
		}

		records = append(records, entity.ExpenseRecord{
			Payer:  sponsor,
			Amount: amount,
			Shares: shares,
			Memo:   memo,
		})
	}

	names := s.participants
	if len(names) == 0 {
		names = seen
	}
	group, err := entity.NewGroup(names...)
	if err != nil {
		return entity.Group{}, nil, fmt.Errorf("build participant group: %w", err)
	}

	return group, records, nil
}

// csvColumns holds the resolved header indexes; memo is -1 when absent.
type csvColumns struct {
	sponsor int
	amount  int
	debtors int
	memo    int
}

func (c csvColumns) required() int {
	n := c.sponsor
	if c.amount > n {
		n = c.amount
	}
	if c.debtors > n {
		n = c.debtors
	}
	return n + 1
}

func mapColumns(header []string) (csvColumns, error) {
	columns := csvColumns{sponsor: -1, amount: -1, debtors: -1, memo: -1}
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "sponsor":
			columns.sponsor = i
		case "amount":
			columns.amount = i
		case "debtors":
			columns.debtors = i
		case "memo":
			columns.memo = i
		}
	}
	var missing []string
	if columns.sponsor < 0 {
		missing = append(missing, "sponsor")
	}
	if columns.amount < 0 {
		missing = append(missing, "amount")
	}
	if columns.debtors < 0 {
		missing = append(missing, "debtors")
	}
	if len(missing) > 0 {
		return csvColumns{}, fmt.Errorf("header is missing required columns: %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

// splitNames splits a comma-joined name list, trimming whitespace and
// dropping empty entries.
func splitNames(field string) []string {
	parts := strings.Split(field, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
