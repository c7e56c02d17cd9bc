package model

import (
	"github.com/shopspring/decimal"
)

// Kind classifies a record by the sign of its amount.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Record is a single description/amount entry. Records are values and are
// never changed after creation.
type Record struct {
	Description string
	Amount      decimal.Decimal // positive = income, zero or negative = expense
}

// NewRecord builds a Record.
func NewRecord(description string, amount decimal.Decimal) Record {
	return Record{Description: description, Amount: amount}
}

// Kind reports whether the record counts as income or expense.
// A zero amount is an expense.
func (r Record) Kind() Kind {
	if r.Amount.IsPositive() {
		return KindIncome
	}
	return KindExpense
}
