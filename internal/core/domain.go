package core

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Unlabelled operations are reported under this synthetic category.
const (
	UnlabelledID   = "0"
	UnlabelledName = "Other"
)

type (
	Date struct {
		time.Time
	}

	Label struct {
		ID   int64
		Name string
	}

	// Operation is a single dated money movement on an account. Positive
	// amounts are income, negative amounts are expenses. A zero FinalDate
	// means the operation is still planned.
	Operation struct {
		ID          int64
		AccountID   int64
		Label       *Label
		Amount      decimal.Decimal
		Description string
		CreatedAt   Date
		FinalDate   Date
	}
)

var (
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidLabel  = errors.New("invalid label")
)

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts ISO dates (2006-01-02), optionally followed by a time part
// as stored by the budget database.
func ParseDate(s string) (Date, error) {
	layouts := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.999999",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return Date{}, ErrInvalidDate
}

// IsEmpty returns true if the date is zero (for optional dates)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// Finalized reports whether the operation has actually happened.
func (o Operation) Finalized() bool {
	return !o.FinalDate.IsEmpty()
}

// IsIncome uses the same strict test as category aggregation: zero is not income.
func (o Operation) IsIncome() bool {
	return o.Amount.IsPositive()
}

// CategoryID returns the label id as text, or UnlabelledID.
func (o Operation) CategoryID() string {
	if o.Label == nil {
		return UnlabelledID
	}
	return strconv.FormatInt(o.Label.ID, 10)
}

// CategoryName returns the label name, or UnlabelledName.
func (o Operation) CategoryName() string {
	if o.Label == nil {
		return UnlabelledName
	}
	return o.Label.Name
}

// Validate checks an operation read from an external source. Label ids must
// be positive, since UnlabelledID is reserved for operations without a label.
func (o Operation) Validate() error {
	if o.CreatedAt.IsEmpty() {
		return fmt.Errorf("%w: missing creation date", ErrInvalidDate)
	}
	if o.Label != nil && o.Label.ID <= 0 {
		return fmt.Errorf("%w: id %d", ErrInvalidLabel, o.Label.ID)
	}
	return nil
}
