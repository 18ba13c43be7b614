package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"budgetcharts/internal/core"
)

type stubLister struct {
	ops       []core.Operation
	err       error
	gotYear   int
	gotAcctID int64
}

func (s *stubLister) ListOperations(_ context.Context, accountID int64, year int) ([]core.Operation, error) {
	s.gotAcctID, s.gotYear = accountID, year
	return s.ops, s.err
}

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		q  Query
		ok bool
	}{
		{Query{AccountID: 1, Year: 2024, Month: 1}, true},
		{Query{AccountID: 1, Year: 2024, Month: 12}, true},
		{Query{AccountID: 0, Year: 2024, Month: 1}, false},
		{Query{AccountID: 1, Year: 2024, Month: 13}, false},
		{Query{AccountID: 1, Year: 0, Month: 5}, false},
	}
	for _, tt := range tests {
		if err := tt.q.Validate(); (err == nil) != tt.ok {
			t.Errorf("Validate(%+v) = %v, ok=%v", tt.q, err, tt.ok)
		}
	}
}

func TestCurrentQuery(t *testing.T) {
	q := CurrentQuery(4, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	if q.AccountID != 4 || q.Year != 2025 || q.Month != 3 {
		t.Fatalf("CurrentQuery() = %+v", q)
	}
}

func TestListerReader(t *testing.T) {
	food := &core.Label{ID: 2, Name: "Food"}
	lister := &stubLister{ops: []core.Operation{
		{Amount: core.MustParseAmount("100"), FinalDate: core.NewDate(2024, 3, 1)},
		{Amount: core.MustParseAmount("-40"), Label: food, FinalDate: core.NewDate(2024, 3, 2)},
		{Amount: core.MustParseAmount("-10"), Label: food, FinalDate: core.NewDate(2024, 1, 2)},
		{Amount: core.MustParseAmount("-99"), Label: food},
	}}

	r := ListerReader{Lister: lister, Currency: "EUR"}
	p, err := r.ReadPageData(context.Background(), Query{AccountID: 5, Year: 2024, Month: 3})
	if err != nil {
		t.Fatalf("ReadPageData() error = %v", err)
	}
	if lister.gotAcctID != 5 || lister.gotYear != 2024 {
		t.Errorf("lister called with %d/%d", lister.gotAcctID, lister.gotYear)
	}
	if p.AccountID != "5" || p.Currency != "EUR" {
		t.Errorf("page = %+v", p)
	}
	if len(p.Operations) != 2 {
		t.Fatalf("month operations = %d, want 2", len(p.Operations))
	}
	if p.Operations[0].Label.ID != core.UnlabelledID || p.Operations[1].Label.Name != "Food" {
		t.Errorf("operations = %+v", p.Operations)
	}
	if !p.Expenses[0].Equal(core.MustParseAmount("10")) || !p.Income[2].Equal(core.MustParseAmount("100")) {
		t.Errorf("series = %v / %v", p.Income, p.Expenses)
	}
}

func TestListerReader_Errors(t *testing.T) {
	r := ListerReader{Lister: &stubLister{err: errors.New("boom")}}
	if _, err := r.ReadPageData(context.Background(), Query{AccountID: 1, Year: 2024, Month: 1}); err == nil {
		t.Error("expected lister error")
	}
	if _, err := r.ReadPageData(context.Background(), Query{AccountID: 1, Year: 2024, Month: 0}); !errors.Is(err, core.ErrInvalidMonth) {
		t.Errorf("expected ErrInvalidMonth, got %v", err)
	}
}
