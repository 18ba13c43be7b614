package google

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"budgetcharts/internal/core"
)

// Header names of the operations sheet, matched case-insensitively.
var operationHeaders = []string{"Date", "Account", "Label ID", "Label", "Amount", "Description", "Finalized"}

// Spreadsheet locales render dates in day-first form.
var sheetDateLayouts = []string{"02/01/2006", "2/1/2006", "02.01.2006"}

type operationColumns struct {
	date, account, labelID, label, amount, description, finalized int
}

// parseOperations converts a values matrix (as returned by the Sheets API)
// into the operations of one account. The first row must be the header.
// Rows that cannot be parsed are counted in skipped.
func parseOperations(values [][]interface{}, accountID int64) (ops []core.Operation, skipped int, err error) {
	if len(values) == 0 {
		return nil, 0, nil
	}
	cols, err := headerColumns(toStrings(values[0]))
	if err != nil {
		return nil, 0, err
	}

	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		if isBlank(row) {
			continue
		}
		acct, err := strconv.ParseInt(safeGet(row, cols.account), 10, 64)
		if err != nil {
			skipped++
			continue
		}
		if acct != accountID {
			continue
		}
		op, ok := parseOperationRow(row, cols)
		if !ok {
			skipped++
			continue
		}
		op.ID = int64(i + 1) // sheet row number
		op.AccountID = acct
		ops = append(ops, op)
	}
	return ops, skipped, nil
}

func headerColumns(headers []string) (operationColumns, error) {
	idx := make([]int, len(operationHeaders))
	var missing []string
	for i, name := range operationHeaders {
		idx[i] = indexOf(headers, name)
		if idx[i] == -1 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return operationColumns{}, fmt.Errorf("unexpected operations header: missing %s; got headers=%v", strings.Join(missing, ","), headers)
	}
	return operationColumns{
		date: idx[0], account: idx[1], labelID: idx[2], label: idx[3],
		amount: idx[4], description: idx[5], finalized: idx[6],
	}, nil
}

func parseOperationRow(row []string, cols operationColumns) (core.Operation, bool) {
	var op core.Operation

	created, err := parseSheetDate(safeGet(row, cols.date))
	if err != nil {
		return op, false
	}
	op.CreatedAt = created

	if op.Amount, err = core.ParseAmount(safeGet(row, cols.amount)); err != nil {
		return op, false
	}

	if raw := strings.TrimSpace(safeGet(row, cols.labelID)); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return op, false
		}
		op.Label = &core.Label{ID: id, Name: strings.TrimSpace(safeGet(row, cols.label))}
	}

	op.Description = strings.TrimSpace(safeGet(row, cols.description))

	final, ok := parseFinalized(safeGet(row, cols.finalized), created)
	if !ok {
		return op, false
	}
	op.FinalDate = final
	if err := op.Validate(); err != nil {
		return op, false
	}
	return op, true
}

// parseFinalized accepts either a final date or a yes/no flag. A yes flag
// finalizes the operation on its own date; an empty cell means planned.
func parseFinalized(s string, date core.Date) (core.Date, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "no", "0":
		return core.Date{}, true
	case "true", "yes", "x", "1":
		return date, true
	}
	d, err := parseSheetDate(s)
	if err != nil {
		return core.Date{}, false
	}
	return d, true
}

func parseSheetDate(s string) (core.Date, error) {
	s = strings.TrimSpace(s)
	if d, err := core.ParseDate(s); err == nil {
		return d, nil
	}
	for _, layout := range sheetDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return core.Date{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, s)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
