// Package charts turns operation records and monthly totals into the data
// behind the budget charts: category totals for the income and expense pies,
// the per-month comparison for the yearly bar chart, and the Chart.js
// configuration objects that carry them to a renderer.
//
// Everything in this package is pure and synchronous.
package charts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"budgetcharts/internal/core"

	"github.com/shopspring/decimal"
)

var (
	ErrMalformedRecord = errors.New("malformed operation record")
	ErrInvalidShape    = errors.New("monthly series must have exactly 12 elements")
)

// LabelRef identifies the category of an operation. On the wire it is a
// two-element array: [id, name].
type LabelRef struct {
	ID   string
	Name string
}

func (l LabelRef) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{l.ID, l.Name})
}

func (l *LabelRef) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil || len(parts) != 2 {
		return fmt.Errorf("%w: label must be [id, name]", ErrMalformedRecord)
	}
	id, err := scalarText(parts[0])
	if err != nil {
		return fmt.Errorf("%w: label id: %v", ErrMalformedRecord, err)
	}
	name, err := scalarText(parts[1])
	if err != nil {
		return fmt.Errorf("%w: label name: %v", ErrMalformedRecord, err)
	}
	l.ID, l.Name = id, name
	return nil
}

// OperationRecord is one financial transaction as seen by the aggregator.
type OperationRecord struct {
	Amount decimal.Decimal `json:"amount"`
	Label  LabelRef        `json:"label"`
}

// UnmarshalJSON accepts the amount as a JSON number or a numeric string
// (comma or dot decimal separator) and rejects records without one.
func (r *OperationRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount json.RawMessage `json:"amount"`
		Label  json.RawMessage `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if len(raw.Amount) == 0 || bytes.Equal(raw.Amount, []byte("null")) {
		return fmt.Errorf("%w: missing amount", ErrMalformedRecord)
	}
	if len(raw.Label) == 0 {
		return fmt.Errorf("%w: missing label", ErrMalformedRecord)
	}

	amount, err := DecodeAmount(raw.Amount)
	if err != nil {
		return fmt.Errorf("%w: amount: %v", ErrMalformedRecord, err)
	}

	var label LabelRef
	if err := json.Unmarshal(raw.Label, &label); err != nil {
		return err
	}
	r.Amount, r.Label = amount, label
	return nil
}

// Validate checks the parts of a record that cannot be enforced by its type.
func (r OperationRecord) Validate() error {
	if strings.TrimSpace(r.Label.ID) == "" {
		return fmt.Errorf("%w: empty category id", ErrMalformedRecord)
	}
	return nil
}

// FromOperations converts dated operations to aggregator records. Operations
// without a label land in the synthetic unlabelled category.
func FromOperations(ops []core.Operation) []OperationRecord {
	out := make([]OperationRecord, 0, len(ops))
	for _, op := range ops {
		out = append(out, OperationRecord{
			Amount: op.Amount,
			Label:  LabelRef{ID: op.CategoryID(), Name: op.CategoryName()},
		})
	}
	return out
}

// CategoryTotal is the accumulated absolute amount of one category.
type CategoryTotal struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// CategoryTotals keeps category totals keyed by id, in first-seen order.
type CategoryTotals struct {
	items []CategoryTotal
	index map[string]int
}

func newCategoryTotals() CategoryTotals {
	return CategoryTotals{index: make(map[string]int)}
}

// add accumulates |amount| under id. The first name seen for an id is kept.
func (c *CategoryTotals) add(id, name string, amount decimal.Decimal) {
	if i, ok := c.index[id]; ok {
		c.items[i].Total = c.items[i].Total.Add(amount.Abs())
		return
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, CategoryTotal{ID: id, Name: name, Total: amount.Abs()})
}

// Len returns the number of distinct categories.
func (c CategoryTotals) Len() int {
	return len(c.items)
}

// Items returns a copy of the totals in first-seen order.
func (c CategoryTotals) Items() []CategoryTotal {
	out := make([]CategoryTotal, len(c.items))
	copy(out, c.items)
	return out
}

// Get looks up a category by id.
func (c CategoryTotals) Get(id string) (CategoryTotal, bool) {
	i, ok := c.index[id]
	if !ok {
		return CategoryTotal{}, false
	}
	return c.items[i], true
}

// Labels returns the category names, parallel to Amounts.
func (c CategoryTotals) Labels() []string {
	out := make([]string, len(c.items))
	for i, item := range c.items {
		out[i] = item.Name
	}
	return out
}

// Amounts returns the category totals, parallel to Labels.
func (c CategoryTotals) Amounts() []decimal.Decimal {
	out := make([]decimal.Decimal, len(c.items))
	for i, item := range c.items {
		out[i] = item.Total
	}
	return out
}

// Sum returns the total over all categories.
func (c CategoryTotals) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(item.Total)
	}
	return sum
}

func (c CategoryTotals) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items())
}

// UnmarshalJSON restores totals from their array form. Duplicate ids are summed.
func (c *CategoryTotals) UnmarshalJSON(data []byte) error {
	var items []CategoryTotal
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*c = newCategoryTotals()
	for _, item := range items {
		c.add(item.ID, item.Name, item.Total)
	}
	return nil
}

// AggregateByCategory splits records into income (amount > 0) and expenses
// (amount <= 0) and sums the absolute amounts per category id. A zero amount
// is an expense and still registers its category.
//
// Every record is validated before any accumulation happens, so a malformed
// record yields no partial totals.
func AggregateByCategory(records []OperationRecord) (income, expenses CategoryTotals, err error) {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return CategoryTotals{}, CategoryTotals{}, fmt.Errorf("record %d: %w", i, err)
		}
	}

	income, expenses = newCategoryTotals(), newCategoryTotals()
	for _, r := range records {
		if r.Amount.GreaterThan(decimal.Zero) {
			income.add(r.Label.ID, r.Label.Name, r.Amount)
		} else {
			expenses.add(r.Label.ID, r.Label.Name, r.Amount)
		}
	}
	return income, expenses, nil
}

// DecodeAmount parses a JSON amount. Numbers follow JSON number syntax,
// exponents included; strings may use a comma or dot decimal separator.
func DecodeAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] != '"' {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s", core.ErrInvalidAmount, raw)
		}
		return core.ParseNumber(n.String())
	}
	text, err := scalarText(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", core.ErrInvalidAmount, err)
	}
	return core.ParseAmount(text)
}

// scalarText returns a JSON string or number as text. Anything else is an error.
func scalarText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", errors.New("empty value")
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	default:
		return "", fmt.Errorf("expected string or number, got %s", raw)
	}
}
