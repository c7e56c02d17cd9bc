// Package form binds the Record Store to the two user actions of the
// tracker: adding a transaction and calculating totals.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taxtracker/taxtracker/internal/model"
	"github.com/taxtracker/taxtracker/internal/store"
	"github.com/taxtracker/taxtracker/internal/totals"
)

var (
	// ErrMissingInput is returned when the description or amount is empty.
	ErrMissingInput = errors.New("missing input")
	// ErrInvalidAmount is returned when the amount is not a decimal number.
	ErrInvalidAmount = model.ErrInvalidAmount
)

// Input holds the raw text of the two entry fields.
type Input struct {
	Description string
	Amount      string
}

// Form is the state behind the tracker window. Like the Store it wraps, it
// must only be used from one goroutine at a time.
type Form struct {
	store *store.Store
}

// New creates a Form over s.
func New(s *store.Store) *Form {
	return &Form{store: s}
}

// AddTransaction validates in, appends a record and returns it. Both fields
// are trimmed first, so a field holding only spaces counts as missing and
// yields ErrMissingInput. The stored description is the trimmed text. On
// error nothing changes.
func (f *Form) AddTransaction(in Input) (model.Record, error) {
	desc := strings.TrimSpace(in.Description)
	amountText := strings.TrimSpace(in.Amount)
	if desc == "" || amountText == "" {
		return model.Record{}, ErrMissingInput
	}

	amount, err := model.ParseAmount(amountText)
	if err != nil {
		return model.Record{}, err
	}

	rec := model.NewRecord(desc, amount)
	f.store.Append(rec)
	return rec, nil
}

// CalculateTotals sums the current records.
func (f *Form) CalculateTotals() totals.Totals {
	return totals.Calculate(f.store.All())
}

// Log returns the log view: one line per record in insertion order.
func (f *Form) Log() []string {
	records := f.store.All()
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = FormatRecord(r)
	}
	return lines
}

// Len returns the number of records behind the form.
func (f *Form) Len() int {
	return f.store.Len()
}

// FormatRecord renders a record as a log view line.
func FormatRecord(r model.Record) string {
	return fmt.Sprintf("Description: %s, Amount: $%s", r.Description, model.FormatAmount(r.Amount))
}
