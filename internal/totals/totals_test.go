package totals

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/taxtracker/taxtracker/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func rec(desc, amount string) model.Record {
	return model.NewRecord(desc, dec(amount))
}

func TestCalculate(t *testing.T) {
	got := Calculate([]model.Record{
		rec("Coffee", "-4.50"),
		rec("Salary", "2000.00"),
		rec("Books", "-30.00"),
	})

	assert.True(t, got.Income.Equal(dec("2000.00")), "income: %s", got.Income)
	assert.True(t, got.Expenses.Equal(dec("34.50")), "expenses: %s", got.Expenses)
	assert.True(t, got.Net.Equal(dec("1965.50")), "net: %s", got.Net)
}

func TestCalculate_Empty(t *testing.T) {
	got := Calculate(nil)
	assert.True(t, got.Income.IsZero())
	assert.True(t, got.Expenses.IsZero())
	assert.True(t, got.Net.IsZero())
}

func TestCalculate_ZeroIsExpense(t *testing.T) {
	got := Calculate([]model.Record{rec("Nothing", "0"), rec("Gift", "10")})
	assert.True(t, got.Income.Equal(dec("10")))
	assert.True(t, got.Expenses.IsZero())
	assert.True(t, got.Net.Equal(dec("10")))
}

func TestCalculate_NegativeNet(t *testing.T) {
	got := Calculate([]model.Record{rec("Rent", "-900"), rec("Bonus", "500")})
	assert.True(t, got.Net.Equal(dec("-400")), "net: %s", got.Net)
}

func TestCalculate_ExactDecimals(t *testing.T) {
	var records []model.Record
	for range 10 {
		records = append(records, rec("Candy", "-0.10"))
	}
	got := Calculate(records)
	assert.True(t, got.Expenses.Equal(dec("1")), "expenses: %s", got.Expenses)
}

func TestReport(t *testing.T) {
	got := Calculate([]model.Record{
		rec("Coffee", "-4.50"),
		rec("Salary", "2000.00"),
		rec("Books", "-30.00"),
	})
	assert.Equal(t, "Total Income: $2000.00\nTotal Expenses: $34.50\nNet Income: $1965.50", got.Report())
	assert.Equal(t, "Total Income: $0.00\nTotal Expenses: $0.00\nNet Income: $0.00", Calculate(nil).Report())
}
