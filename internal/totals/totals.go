// Package totals sums records into income, expenses and net.
package totals

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taxtracker/taxtracker/internal/model"
)

// Totals is the result of one pass over the records.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal // magnitude of zero/negative amounts
	Net      decimal.Decimal
}

// Calculate partitions records by sign. Strictly positive amounts are income;
// everything else, zero included, adds its absolute value to expenses.
func Calculate(records []model.Record) Totals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, r := range records {
		if r.Amount.GreaterThan(decimal.Zero) {
			income = income.Add(r.Amount)
		} else {
			expenses = expenses.Add(r.Amount.Abs())
		}
	}
	return Totals{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
	}
}

// Report formats the totals for display.
func (t Totals) Report() string {
	return fmt.Sprintf("Total Income: $%s\nTotal Expenses: $%s\nNet Income: $%s",
		model.FormatAmount(t.Income),
		model.FormatAmount(t.Expenses),
		model.FormatAmount(t.Net))
}
