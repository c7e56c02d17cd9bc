package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordKind(t *testing.T) {
	tests := []struct {
		amount string
		want   Kind
	}{
		{"2000.00", KindIncome},
		{"0.01", KindIncome},
		{"0", KindExpense},
		{"-4.50", KindExpense},
	}
	for _, tt := range tests {
		rec := NewRecord("x", decimal.RequireFromString(tt.amount))
		assert.Equal(t, tt.want, rec.Kind(), "Kind(%s)", tt.amount)
	}
}
