package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"budgetcharts/internal/charts"

	"github.com/shopspring/decimal"
)

// pageDocument is the JSON page-data bundle:
//
//	{
//	  "currency": "€",
//	  "income": "1200,980,...",          // or [1200, 980, ...]
//	  "expenses": [300.5, "410", ...],   // or comma text
//	  "operations": ["{\"amount\": \"-12.50\", \"label\": [\"3\", \"Food\"]}", ...]
//	}
//
// Operation elements may be objects or JSON-encoded strings of objects.
type pageDocument struct {
	AccountID  json.RawMessage   `json:"accountId"`
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	Currency   string            `json:"currency"`
	Income     json.RawMessage   `json:"income"`
	Expenses   json.RawMessage   `json:"expenses"`
	Operations []json.RawMessage `json:"operations"`
}

// FileReader reads a page-data bundle from a file, or from Stdin when the
// path is empty or "-". The query and Currency only fill in what the file
// leaves out.
type FileReader struct {
	Path     string
	Currency string
	Stdin    io.Reader
}

var _ PageDataReader = (*FileReader)(nil)

// IsStdinPath reports whether a FileReader path selects standard input.
func IsStdinPath(path string) bool {
	return path == "" || path == "-"
}

func NewFileReader(path string) *FileReader {
	return &FileReader{Path: path, Stdin: os.Stdin}
}

func (r *FileReader) ReadPageData(ctx context.Context, q Query) (charts.PageData, error) {
	if err := ctx.Err(); err != nil {
		return charts.PageData{}, err
	}

	var in io.Reader
	if IsStdinPath(r.Path) {
		in = r.Stdin
	} else {
		f, err := os.Open(r.Path)
		if err != nil {
			return charts.PageData{}, fmt.Errorf("open page data: %w", err)
		}
		defer f.Close()
		in = f
	}

	p, err := DecodePageData(in)
	if err != nil {
		return charts.PageData{}, err
	}
	if p.AccountID == "" && q.AccountID > 0 {
		p.AccountID = strconv.FormatInt(q.AccountID, 10)
	}
	if p.Year == 0 {
		p.Year = q.Year
	}
	if p.Month == 0 {
		p.Month = q.Month
	}
	if p.Currency == "" {
		p.Currency = r.Currency
	}
	return p, nil
}

// DecodePageData parses a page-data bundle.
func DecodePageData(in io.Reader) (charts.PageData, error) {
	var doc pageDocument
	if err := json.NewDecoder(in).Decode(&doc); err != nil {
		return charts.PageData{}, fmt.Errorf("decode page data: %w", err)
	}

	income, err := decodeSeries(doc.Income)
	if err != nil {
		return charts.PageData{}, fmt.Errorf("income: %w", err)
	}
	expenses, err := decodeSeries(doc.Expenses)
	if err != nil {
		return charts.PageData{}, fmt.Errorf("expenses: %w", err)
	}
	records, err := DecodeRecords(doc.Operations)
	if err != nil {
		return charts.PageData{}, err
	}

	accountID := ""
	if len(doc.AccountID) > 0 {
		accountID = string(bytes.Trim(doc.AccountID, `"`))
	}

	return charts.PageData{
		AccountID:  accountID,
		Year:       doc.Year,
		Month:      doc.Month,
		Currency:   doc.Currency,
		Operations: records,
		Income:     income,
		Expenses:   expenses,
	}, nil
}

// DecodeRecords decodes operation records given either as objects or as
// JSON strings that contain an object.
func DecodeRecords(elements []json.RawMessage) ([]charts.OperationRecord, error) {
	records := make([]charts.OperationRecord, 0, len(elements))
	for i, el := range elements {
		el = bytes.TrimSpace(el)
		if len(el) > 0 && el[0] == '"' {
			var inner string
			if err := json.Unmarshal(el, &inner); err != nil {
				return nil, fmt.Errorf("operation %d: %w: %v", i, charts.ErrMalformedRecord, err)
			}
			el = []byte(inner)
		}
		var rec charts.OperationRecord
		if err := json.Unmarshal(el, &rec); err != nil {
			// Syntax errors are reported before OperationRecord sees the data.
			if !errors.Is(err, charts.ErrMalformedRecord) {
				return nil, fmt.Errorf("operation %d: %w: %v", i, charts.ErrMalformedRecord, err)
			}
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// decodeSeries accepts comma text or a JSON array of numbers or numeric strings.
func decodeSeries(raw json.RawMessage) ([]decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
		return charts.ParseMonthlySeries(text)
	}

	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("expected comma separated text or an array: %w", err)
	}
	out := make([]decimal.Decimal, 0, len(values))
	for i, v := range values {
		d, err := charts.DecodeAmount(v)
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", i+1, err)
		}
		out = append(out, d)
	}
	return out, nil
}
